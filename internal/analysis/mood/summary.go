package mood

import (
	"time"

	moodmodel "github.com/feelbetterai/backend/internal/model/mood"
)

// Summary aggregates one calendar day of mood data for the dashboard.
type Summary struct {
	Date         string  `json:"date"`
	AverageScore float64 `json:"averageScore"`
	SessionCount int     `json:"sessionCount"`
	MessageCount int     `json:"messageCount"`
	HighestMood  float64 `json:"highestMood"`
	LowestMood   float64 `json:"lowestMood"`
}

// DailySummary computes stats for the calendar day containing date, in that
// date's location. Days without entries fall back to the neutral score of 5.
func DailySummary(date time.Time, entries []moodmodel.Entry, sessions []moodmodel.SessionStats) Summary {
	year, month, day := date.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24*time.Hour - time.Millisecond)

	var scores []float64
	for _, entry := range entries {
		if inWindow(entry.RecordedAt, startOfDay, endOfDay) {
			scores = append(scores, entry.Score)
		}
	}

	sessionCount := 0
	messageCount := 0
	for _, session := range sessions {
		if inWindow(session.StartTime, startOfDay, endOfDay) {
			sessionCount++
			messageCount += session.MessageCount
		}
	}

	summary := Summary{
		Date:         startOfDay.Format("2006-01-02"),
		AverageScore: 5,
		SessionCount: sessionCount,
		MessageCount: messageCount,
		HighestMood:  5,
		LowestMood:   5,
	}

	if len(scores) > 0 {
		sum := 0.0
		highest := scores[0]
		lowest := scores[0]
		for _, score := range scores {
			sum += score
			if score > highest {
				highest = score
			}
			if score < lowest {
				lowest = score
			}
		}
		summary.AverageScore = sum / float64(len(scores))
		summary.HighestMood = highest
		summary.LowestMood = lowest
	}

	return summary
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
