package chat

import "time"

// Modes a conversation can run in. Talk is open-ended listening; survey
// walks the user through simple check-in questions.
const (
	ModeTalk   = "talk"
	ModeSurvey = "survey"
)

// Session captures one continuous chat interaction window.
type Session struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Mode         string     `json:"mode"`
	MessageCount int        `json:"messageCount"`
	AverageMood  float64    `json:"averageMood,omitempty"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
}
