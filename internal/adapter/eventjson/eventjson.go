// Package eventjson encodes the nested parts of a calendar event (attendees,
// conflicts, AI bundle, preference tables) for JSON storage columns and the
// change feed.
package eventjson

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// Attendee is the stored form of domain.Attendee.
type Attendee struct {
	UserID   *uuid.UUID `json:"user_id,omitempty"`
	Email    string     `json:"email"`
	Name     string     `json:"name,omitempty"`
	Response string     `json:"response"`
	Optional bool       `json:"optional,omitempty"`
}

// Slot is the stored form of domain.TimeSlot.
type Slot struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason"`
}

// Resolution is the stored form of domain.ConflictResolution.
type Resolution struct {
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	NewStart     *time.Time `json:"new_start,omitempty"`
	NewEnd       *time.Time `json:"new_end,omitempty"`
	Alternatives []Slot     `json:"alternatives,omitempty"`
}

// Conflict is the stored form of domain.ConflictInfo.
type Conflict struct {
	ConflictingEventID uuid.UUID   `json:"conflicting_event_id"`
	Type               string      `json:"type"`
	Severity           string      `json:"severity"`
	Resolution         *Resolution `json:"resolution,omitempty"`
}

// Suggestions is the stored form of domain.AISuggestions.
type Suggestions struct {
	Preparation  []string  `json:"preparation"`
	OptimalTimes []Slot    `json:"optimal_times,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// MarshalAttendees always returns a JSON array, never null.
func MarshalAttendees(in []domain.Attendee) ([]byte, error) {
	out := make([]Attendee, len(in))
	for i, a := range in {
		out[i] = Attendee{
			UserID:   a.UserID,
			Email:    a.Email,
			Name:     a.Name,
			Response: string(a.Response),
			Optional: a.Optional,
		}
	}
	return marshal("attendees", out)
}

// UnmarshalAttendees decodes attendees; empty input yields nil.
func UnmarshalAttendees(data []byte) ([]domain.Attendee, error) {
	var in []Attendee
	if err := unmarshal("attendees", data, &in); err != nil {
		return nil, err
	}
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]domain.Attendee, len(in))
	for i, a := range in {
		out[i] = domain.Attendee{
			UserID:   a.UserID,
			Email:    a.Email,
			Name:     a.Name,
			Response: domain.ResponseStatus(a.Response),
			Optional: a.Optional,
		}
	}
	return out, nil
}

// Conflicts converts domain conflicts to their stored form.
func Conflicts(in []domain.ConflictInfo) []Conflict {
	out := make([]Conflict, len(in))
	for i, c := range in {
		out[i] = Conflict{
			ConflictingEventID: c.ConflictingEventID,
			Type:               string(c.Type),
			Severity:           string(c.Severity),
		}
		if r := c.Resolution; r != nil {
			out[i].Resolution = &Resolution{
				Type:         string(r.Type),
				Description:  r.Description,
				NewStart:     r.NewStart,
				NewEnd:       r.NewEnd,
				Alternatives: Slots(r.Alternatives),
			}
		}
	}
	return out
}

// MarshalConflicts always returns a JSON array, never null.
func MarshalConflicts(in []domain.ConflictInfo) ([]byte, error) {
	return marshal("conflicts", Conflicts(in))
}

// UnmarshalConflicts decodes conflicts; empty input yields nil.
func UnmarshalConflicts(data []byte) ([]domain.ConflictInfo, error) {
	var in []Conflict
	if err := unmarshal("conflicts", data, &in); err != nil {
		return nil, err
	}
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]domain.ConflictInfo, len(in))
	for i, c := range in {
		out[i] = domain.ConflictInfo{
			ConflictingEventID: c.ConflictingEventID,
			Type:               domain.ConflictType(c.Type),
			Severity:           domain.Severity(c.Severity),
		}
		if r := c.Resolution; r != nil {
			out[i].Resolution = &domain.ConflictResolution{
				Type:         domain.ResolutionType(r.Type),
				Description:  r.Description,
				NewStart:     r.NewStart,
				NewEnd:       r.NewEnd,
				Alternatives: DomainSlots(r.Alternatives),
			}
		}
	}
	return out, nil
}

// MarshalSuggestions returns nil for a nil bundle so the column stays NULL.
func MarshalSuggestions(in *domain.AISuggestions) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	return marshal("ai_suggestions", Suggestions{
		Preparation:  in.Preparation,
		OptimalTimes: Slots(in.OptimalTimes),
		Summary:      in.Summary,
		GeneratedAt:  in.GeneratedAt,
	})
}

// UnmarshalSuggestions decodes the AI bundle; empty input or JSON null yields nil.
func UnmarshalSuggestions(data []byte) (*domain.AISuggestions, error) {
	var in *Suggestions
	if err := unmarshal("ai_suggestions", data, &in); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, nil
	}
	return &domain.AISuggestions{
		Preparation:  in.Preparation,
		OptimalTimes: DomainSlots(in.OptimalTimes),
		Summary:      in.Summary,
		GeneratedAt:  in.GeneratedAt,
	}, nil
}

// Slots converts domain slots to their stored form.
func Slots(in []domain.TimeSlot) []Slot {
	if len(in) == 0 {
		return nil
	}
	out := make([]Slot, len(in))
	for i, s := range in {
		out[i] = Slot(s)
	}
	return out
}

// DomainSlots converts stored slots back to domain slots.
func DomainSlots(in []Slot) []domain.TimeSlot {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.TimeSlot, len(in))
	for i, s := range in {
		out[i] = domain.TimeSlot(s)
	}
	return out
}

func marshal(field string, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", field, err)
	}
	return b, nil
}

func unmarshal(field string, data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", field, err)
	}
	return nil
}
