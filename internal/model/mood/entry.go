package mood

import "time"

// Entry is one sentiment measurement taken from a single user message.
// Score is on the 1 (very negative) to 10 (very positive) scale; entries
// are immutable once recorded and are read-only inputs to all analysis.
type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	SessionID  string    `json:"sessionId,omitempty"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
	RecordedAt time.Time `json:"recordedAt"`
}

// SessionStats summarizes one chat session for mood analysis.
type SessionStats struct {
	AverageMood  float64   `json:"averageMood"`
	MessageCount int       `json:"messageCount"`
	StartTime    time.Time `json:"startTime"`
}
