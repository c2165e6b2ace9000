package chat

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message persists individual turns for transcript and audit.
// MoodScore is set on user messages once sentiment analysis has run;
// CrisisFlag marks messages that triggered the crisis pipeline.
type Message struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	MoodScore  float64   `json:"moodScore,omitempty"`
	CrisisFlag bool      `json:"crisisFlag,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
