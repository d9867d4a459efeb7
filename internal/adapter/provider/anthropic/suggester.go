// Package anthropic generates meeting suggestions (preparation items,
// alternative times, a summary) with Claude.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/bizdash-backend/internal/config"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// Suggester asks Claude for an AI suggestion bundle for an event.
type Suggester struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	now       func() time.Time
	log       *slog.Logger
}

// New creates a Suggester from config. Extra options are appended to the
// client options (tests use them to point at a local server).
func New(logger *slog.Logger, cfg config.AIConfig, opts ...option.RequestOption) *Suggester {
	clientOpts := append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &Suggester{
		client:    anthropic.NewClient(clientOpts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		now:       time.Now,
		log:       logger.With("adapter", "anthropic"),
	}
}

type suggestionResponse struct {
	Preparation  []string `json:"preparation"`
	Summary      string   `json:"summary"`
	OptimalTimes []struct {
		Start  time.Time `json:"start"`
		End    time.Time `json:"end"`
		Reason string    `json:"reason"`
	} `json:"optimal_times"`
}

// Generate returns the suggestion bundle for e and its detected conflicts.
func (s *Suggester) Generate(ctx context.Context, e *domain.CalendarEvent) (*domain.AISuggestions, error) {
	prompt, err := buildPrompt(e)
	if err != nil {
		return nil, err
	}

	msg, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: s.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic: suggestions for %s: %w", e.ID, err)
	}
	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("anthropic: empty response for %s", e.ID)
	}

	jsonStr, err := extractJSON(msg.Content[0].Text)
	if err != nil {
		return nil, fmt.Errorf("anthropic: response for %s: %w", e.ID, err)
	}

	var resp suggestionResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, fmt.Errorf("anthropic: decode response for %s: %w", e.ID, err)
	}

	out := &domain.AISuggestions{
		Preparation: resp.Preparation,
		Summary:     strings.TrimSpace(resp.Summary),
		GeneratedAt: s.now().UTC(),
	}
	for _, t := range resp.OptimalTimes {
		slot, err := domain.NewTimeSlot(t.Start.UTC(), t.End.UTC(), 0.5, t.Reason)
		if err != nil {
			s.log.DebugContext(ctx, "dropping invalid suggested time", slog.String("event_id", e.ID.String()))
			continue
		}
		out.OptimalTimes = append(out.OptimalTimes, slot)
	}

	s.log.DebugContext(ctx, "suggestions generated",
		slog.String("event_id", e.ID.String()),
		slog.Int("preparation", len(out.Preparation)),
		slog.Int("optimal_times", len(out.OptimalTimes)),
	)
	return out, nil
}

type promptEvent struct {
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Attendees []string  `json:"attendees"`
	Location  string    `json:"location,omitempty"`
	Conflicts []string  `json:"conflicts,omitempty"`
}

func buildPrompt(e *domain.CalendarEvent) (string, error) {
	pe := promptEvent{
		Title:     e.Title,
		Type:      string(e.Type),
		Priority:  string(e.Priority),
		Start:     e.Start.UTC(),
		End:       e.End.UTC(),
		Attendees: e.AttendeeEmails(),
	}
	if e.Location != nil {
		pe.Location = *e.Location
	}
	for _, c := range e.Conflicts {
		pe.Conflicts = append(pe.Conflicts, fmt.Sprintf("%s (%s)", c.Type, c.Severity))
	}

	eventJSON, err := json.MarshalIndent(pe, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal prompt event: %w", err)
	}

	return fmt.Sprintf(`You are an executive assistant reviewing a business calendar.

Event:
%s

Output ONLY a valid JSON object matching this exact schema:
{
  "preparation": ["<short preparation item>"],
  "summary": "<one sentence about the meeting and its scheduling risks>",
  "optimal_times": [
    {"start": "<RFC 3339 UTC>", "end": "<RFC 3339 UTC>", "reason": "<why this time is better>"}
  ]
}

Rules:
- 2-5 preparation items, each under 80 characters
- Suggest optimal_times only when the event has conflicts; keep the same duration
- Output ONLY the JSON, no markdown, no explanations`, eventJSON), nil
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
