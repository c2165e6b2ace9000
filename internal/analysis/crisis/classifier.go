package crisis

import (
	"math"
	"strings"
)

// Severity is the tiered risk classification for a piece of user text.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Verdict is the result of scanning one message for risk phrases.
type Verdict struct {
	Severity             Severity `json:"severity"`
	TriggerWords         []string `json:"triggerWords"`
	Confidence           float64  `json:"confidence"`
	RequiresIntervention bool     `json:"requiresIntervention"`
}

var severityMultiplier = map[Severity]float64{
	SeverityNone:   0,
	SeverityLow:    0.3,
	SeverityMedium: 0.6,
	SeverityHigh:   1.0,
}

// Classify scans text against the tiered phrase vocabulary and returns a
// severity verdict. Matching is deliberate substring containment rather than
// word-boundary matching ("depressed" also fires inside "depression"); the
// product treats the extra sensitivity as acceptable for a safety net.
func Classify(text string) Verdict {
	return ClassifyWith(DefaultKeywords, text)
}

// ClassifyWith runs the classifier against an explicit vocabulary.
func ClassifyWith(keywords Keywords, text string) Verdict {
	normalized := strings.TrimSpace(strings.ToLower(text))

	found := []string{}
	severity := SeverityNone

	for _, phrase := range keywords.High {
		if strings.Contains(normalized, phrase) {
			found = append(found, phrase)
			severity = SeverityHigh
		}
	}

	if severity != SeverityHigh {
		for _, phrase := range keywords.Medium {
			if strings.Contains(normalized, phrase) {
				found = append(found, phrase)
				severity = SeverityMedium
			}
		}
	}

	if severity == SeverityNone {
		for _, phrase := range keywords.Low {
			if strings.Contains(normalized, phrase) {
				found = append(found, phrase)
				severity = SeverityLow
			}
		}
	}

	confidence := 0.0
	if len(found) > 0 {
		base := math.Min(float64(len(found))*0.2, 0.8)
		confidence = base * severityMultiplier[severity]
	}

	return Verdict{
		Severity:             severity,
		TriggerWords:         found,
		Confidence:           confidence,
		RequiresIntervention: severity == SeverityHigh || (severity == SeverityMedium && confidence > 0.5),
	}
}
