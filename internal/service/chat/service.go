// Package chat orchestrates the inbound message pipeline: persist the user
// turn, run crisis screening, and either short-circuit with a crisis reply or
// score sentiment and generate the companion's response.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	analysis "github.com/feelbetterai/backend/internal/analysis/crisis"
	"github.com/feelbetterai/backend/internal/model/chat"
	crisismodel "github.com/feelbetterai/backend/internal/model/crisis"
	moodmodel "github.com/feelbetterai/backend/internal/model/mood"
	"github.com/feelbetterai/backend/internal/service/ai"
	"github.com/feelbetterai/backend/internal/store"
)

var (
	ErrUserRequired    = errors.New("user id is required")
	ErrContentRequired = errors.New("message content is required")
	ErrInvalidMode     = errors.New("mode must be talk or survey")
)

// Reply kinds sent back over the realtime channel.
const (
	ReplyChat   = "chat_response"
	ReplyCrisis = "crisis_detected"
)

// AIClient is the external model collaborator. It is optional: without it the
// pipeline still runs on the deterministic keyword classifier and neutral
// sentiment defaults.
type AIClient interface {
	GenerateEmpatheticResponse(ctx context.Context, userMessage string, history []chat.Message, mode string) string
	AnalyzeSentiment(ctx context.Context, text string) ai.Sentiment
	DetectCrisis(ctx context.Context, text string) ai.CrisisCheck
}

// Reply is the outcome of one user message through the pipeline.
type Reply struct {
	Type             string            `json:"type"`
	Severity         analysis.Severity `json:"severity,omitempty"`
	Message          string            `json:"message"`
	UserMessage      *chat.Message     `json:"userMessage,omitempty"`
	AssistantMessage *chat.Message     `json:"aiMessage,omitempty"`
	MoodScore        float64           `json:"moodScore,omitempty"`
	MoodConfidence   float64           `json:"moodConfidence,omitempty"`
}

// Service runs conversations: session lifecycle plus the message pipeline.
type Service struct {
	store store.Store
	ai    AIClient
}

// NewService wires the chat service. aiClient may be nil.
func NewService(st store.Store, aiClient AIClient) *Service {
	return &Service{store: st, ai: aiClient}
}

// CreateSession provisions a session for a user in the given mode.
func (s *Service) CreateSession(ctx context.Context, userID, mode string) (chat.Session, error) {
	if userID == "" {
		return chat.Session{}, ErrUserRequired
	}
	switch mode {
	case "", chat.ModeTalk, chat.ModeSurvey:
	default:
		return chat.Session{}, ErrInvalidMode
	}
	return s.store.CreateSession(ctx, userID, mode)
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(ctx context.Context, sessionID string) (chat.Session, error) {
	return s.store.GetSession(ctx, sessionID)
}

// EndSession stamps the session's end time.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	return s.store.EndSession(ctx, sessionID, time.Now().UTC())
}

// Transcript returns a session's messages in chronological order.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	return s.store.ListMessages(ctx, sessionID)
}

// HandleUserMessage runs one user message through the full pipeline and
// returns the reply to send back over the realtime channel.
func (s *Service) HandleUserMessage(ctx context.Context, sessionID, content string) (Reply, error) {
	if content == "" {
		return Reply{}, ErrContentRequired
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}

	userMessage, err := s.store.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Content:   content,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("save user message: %w", err)
	}

	// The keyword classifier always runs; the AI check is a cross-check on
	// top of it, never a replacement.
	verdict := analysis.Classify(content)
	var aiCheck ai.CrisisCheck
	if s.ai != nil {
		aiCheck = s.ai.DetectCrisis(ctx, content)
	}

	if verdict.RequiresIntervention || aiCheck.IsCrisis {
		return s.handleCrisis(ctx, session, userMessage, verdict, aiCheck)
	}

	sentiment := ai.Sentiment{Rating: 5, Confidence: 0.1}
	if s.ai != nil {
		sentiment = s.ai.AnalyzeSentiment(ctx, content)
	}

	if err := s.store.TagMessage(ctx, userMessage.ID, sentiment.Rating, false); err != nil {
		return Reply{}, fmt.Errorf("tag user message: %w", err)
	}
	userMessage.MoodScore = sentiment.Rating

	if _, err := s.store.CreateMoodEntry(ctx, moodmodel.Entry{
		UserID:     session.UserID,
		SessionID:  sessionID,
		Score:      sentiment.Rating,
		Confidence: sentiment.Confidence,
	}); err != nil {
		return Reply{}, fmt.Errorf("create mood entry: %w", err)
	}

	replyText := s.generateReply(ctx, session, sessionID, content)

	assistantMessage, err := s.store.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleAssistant,
		Content:   replyText,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("save assistant message: %w", err)
	}

	// User turn plus assistant turn; the running mood is the latest rating.
	if err := s.store.UpdateSessionStats(ctx, sessionID, session.MessageCount+2, sentiment.Rating); err != nil {
		log.Printf("[chat] failed to update session stats for session=%s: %v", sessionID, err)
	}

	return Reply{
		Type:             ReplyChat,
		Message:          replyText,
		UserMessage:      &userMessage,
		AssistantMessage: &assistantMessage,
		MoodScore:        sentiment.Rating,
		MoodConfidence:   sentiment.Confidence,
	}, nil
}

func (s *Service) handleCrisis(ctx context.Context, session chat.Session, userMessage chat.Message, verdict analysis.Verdict, aiCheck ai.CrisisCheck) (Reply, error) {
	severity := verdict.Severity
	switch aiCheck.Severity {
	case string(analysis.SeverityHigh):
		severity = analysis.SeverityHigh
	case string(analysis.SeverityMedium):
		severity = analysis.SeverityMedium
	}

	if err := s.store.TagMessage(ctx, userMessage.ID, 0, true); err != nil {
		log.Printf("[chat] failed to flag crisis message=%s: %v", userMessage.ID, err)
	}

	triggerWords := append([]string{}, verdict.TriggerWords...)
	triggerWords = append(triggerWords, aiCheck.TriggerWords...)

	if _, err := s.store.CreateCrisisEvent(ctx, crisismodel.Event{
		UserID:       session.UserID,
		MessageID:    userMessage.ID,
		Severity:     string(severity),
		TriggerWords: triggerWords,
		ActionTaken:  "crisis_modal_triggered",
	}); err != nil {
		return Reply{}, fmt.Errorf("record crisis event: %w", err)
	}

	log.Printf("[chat] crisis detected for session=%s severity=%s", session.ID, severity)

	return Reply{
		Type:     ReplyCrisis,
		Severity: severity,
		Message:  analysis.ResponseFor(severity),
	}, nil
}

func (s *Service) generateReply(ctx context.Context, session chat.Session, sessionID, content string) string {
	if s.ai == nil {
		return "I'm here to listen and support you. How are you feeling right now?"
	}

	history, err := s.store.ListMessages(ctx, sessionID)
	if err != nil {
		log.Printf("[chat] failed to load history for session=%s: %v", sessionID, err)
		history = nil
	}
	// The freshly saved user turn goes into the prompt separately.
	if n := len(history); n > 0 && history[n-1].Role == chat.RoleUser {
		history = history[:n-1]
	}
	if len(history) > 10 {
		history = history[len(history)-10:]
	}

	return s.ai.GenerateEmpatheticResponse(ctx, content, history, session.Mode)
}
