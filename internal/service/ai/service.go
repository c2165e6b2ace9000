// Package ai wraps the external OpenAI collaborator: empathetic reply
// generation, sentiment scoring and the AI-side crisis cross-check. Every
// call degrades to a safe neutral default when the upstream model fails, so
// the chat pipeline never depends on it for availability.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/feelbetterai/backend/internal/config"
	"github.com/feelbetterai/backend/internal/model/chat"
)

// Sentiment is the model's mood reading of one user message.
type Sentiment struct {
	Rating      float64 `json:"rating"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// CrisisCheck is the model's risk reading of one user message. It runs
// alongside the deterministic keyword classifier, never instead of it.
type CrisisCheck struct {
	IsCrisis     bool     `json:"isCrisis"`
	Severity     string   `json:"severity"`
	TriggerWords []string `json:"triggerWords"`
	Confidence   float64  `json:"confidence"`
}

var (
	sentimentSchema = generateSchema[Sentiment]()
	crisisSchema    = generateSchema[CrisisCheck]()
)

// Service encapsulates the OpenAI-backed chat functionality.
type Service struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewService creates the AI service from configuration.
func NewService(cfg config.AIConfig) (*Service, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	return &Service{
		client:    &client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// GenerateEmpatheticResponse produces the companion's reply to a user
// message given recent conversation history. On model failure it returns a
// holding reply rather than an error.
func (s *Service) GenerateEmpatheticResponse(ctx context.Context, userMessage string, history []chat.Message, mode string) string {
	systemPrompt := talkSystemPrompt
	if mode == chat.ModeSurvey {
		systemPrompt = surveySystemPrompt
	}

	input := make([]responses.ResponseInputItemUnionParam, 0, len(history)+1)
	for _, msg := range history {
		switch msg.Role {
		case chat.RoleUser:
			input = append(input, responses.ResponseInputItemParamOfMessage(msg.Content, responses.EasyInputMessageRoleUser))
		case chat.RoleAssistant:
			input = append(input, responses.ResponseInputItemParamOfMessage(msg.Content, responses.EasyInputMessageRoleAssistant))
		}
	}
	input = append(input, responses.ResponseInputItemParamOfMessage(userMessage, responses.EasyInputMessageRoleUser))

	resp, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           s.model,
		MaxOutputTokens: openai.Int(int64(s.maxTokens)),
		Instructions:    openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
	})
	if err != nil {
		log.Printf("[ai] response generation failed: %v", err)
		return fallbackReply
	}

	reply := resp.OutputText()
	if reply == "" {
		return "I'm here to listen. How are you feeling?"
	}
	return reply
}

// AnalyzeSentiment scores a user message on the 1..10 mood scale. On model
// failure it returns the neutral rating with low confidence.
func (s *Service) AnalyzeSentiment(ctx context.Context, text string) Sentiment {
	var result Sentiment
	if err := s.structuredCall(ctx, sentimentSystemPrompt, text, "MoodSentiment", sentimentSchema, &result); err != nil {
		log.Printf("[ai] sentiment analysis failed: %v", err)
		return Sentiment{Rating: 5, Confidence: 0.1, Explanation: "Unable to analyze sentiment"}
	}

	return Sentiment{
		Rating:      clamp(math.Round(result.Rating), 1, 10),
		Confidence:  clamp(result.Confidence, 0, 1),
		Explanation: result.Explanation,
	}
}

// DetectCrisis asks the model for a risk reading of a user message. On model
// failure it reports no crisis; the keyword classifier still runs regardless.
func (s *Service) DetectCrisis(ctx context.Context, text string) CrisisCheck {
	var result CrisisCheck
	if err := s.structuredCall(ctx, crisisSystemPrompt, text, "CrisisCheck", crisisSchema, &result); err != nil {
		log.Printf("[ai] crisis detection failed: %v", err)
		return CrisisCheck{Severity: "low"}
	}

	result.Confidence = clamp(result.Confidence, 0, 1)
	if result.Severity == "" {
		result.Severity = "low"
	}
	return result
}

func (s *Service) structuredCall(ctx context.Context, instructions, text, name string, schema map[string]any, out any) error {
	resp, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        s.model,
		Instructions: openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   name,
					Schema: schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		},
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(resp.OutputText()), out); err != nil {
		return fmt.Errorf("unmarshal %s output: %w", name, err)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
