package crisis

import "time"

// Event records one intervention-triggering message for later audit.
// Severity mirrors the classifier verdict that raised the event.
type Event struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	MessageID    string    `json:"messageId,omitempty"`
	Severity     string    `json:"severity"`
	TriggerWords []string  `json:"triggerWords,omitempty"`
	ActionTaken  string    `json:"actionTaken,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
