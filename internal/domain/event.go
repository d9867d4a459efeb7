package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is a scheduled item owned by the event store once persisted.
type CalendarEvent struct {
	ID            uuid.UUID
	Title         string
	Description   *string
	Location      *string
	Start         time.Time
	End           time.Time
	AllDay        bool
	Type          EventType
	Priority      Priority
	Status        EventStatus
	OrganizerID   uuid.UUID
	Attendees     []Attendee
	Recurrence    *string // RFC 5545 RRULE, e.g. "FREQ=WEEKLY;COUNT=4"
	Conflicts     []ConflictInfo
	AISuggestions *AISuggestions
	ProjectID     *uuid.UUID
	ClientID      *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Durable is false when the event lives only in the in-memory fallback
	// store and therefore carries no durable identity guarantee.
	Durable bool
}

// Attendee is a participant of a CalendarEvent. It has no lifecycle of its own.
type Attendee struct {
	UserID   *uuid.UUID
	Email    string
	Name     string
	Response ResponseStatus
	Optional bool
}

// Duration returns End - Start.
func (e *CalendarEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// ValidateInterval reports an *IntervalError when End does not strictly follow Start.
func (e *CalendarEvent) ValidateInterval() error {
	if !e.End.After(e.Start) {
		return &IntervalError{
			Field: "event",
			Start: e.Start.Format(time.RFC3339),
			End:   e.End.Format(time.RFC3339),
		}
	}
	return nil
}

// IsRecurring reports whether the event carries a recurrence rule.
func (e *CalendarEvent) IsRecurring() bool {
	return e.Recurrence != nil && strings.TrimSpace(*e.Recurrence) != ""
}

// HasAttendee reports whether email is among the attendees (case-insensitive).
func (e *CalendarEvent) HasAttendee(email string) bool {
	email = NormalizeEmail(email)
	for _, a := range e.Attendees {
		if NormalizeEmail(a.Email) == email {
			return true
		}
	}
	return false
}

// AttendeeEmails returns normalized attendee emails in attendee order.
func (e *CalendarEvent) AttendeeEmails() []string {
	emails := make([]string, 0, len(e.Attendees))
	for _, a := range e.Attendees {
		emails = append(emails, NormalizeEmail(a.Email))
	}
	return emails
}

// SameAttendees reports whether both events invite the same attendee set in the same order.
func (e *CalendarEvent) SameAttendees(other *CalendarEvent) bool {
	return slices.Equal(e.AttendeeEmails(), other.AttendeeEmails())
}

// Clone returns a deep copy so that stores never share mutable state with callers.
func (e *CalendarEvent) Clone() *CalendarEvent {
	if e == nil {
		return nil
	}
	c := *e
	c.Description = clonePtr(e.Description)
	c.Location = clonePtr(e.Location)
	c.Recurrence = clonePtr(e.Recurrence)
	c.ProjectID = clonePtr(e.ProjectID)
	c.ClientID = clonePtr(e.ClientID)

	if e.Attendees != nil {
		c.Attendees = make([]Attendee, len(e.Attendees))
		for i, a := range e.Attendees {
			a.UserID = clonePtr(a.UserID)
			c.Attendees[i] = a
		}
	}
	if e.Conflicts != nil {
		c.Conflicts = make([]ConflictInfo, len(e.Conflicts))
		for i, ci := range e.Conflicts {
			c.Conflicts[i] = ci.Clone()
		}
	}
	if e.AISuggestions != nil {
		ai := *e.AISuggestions
		ai.Preparation = slices.Clone(e.AISuggestions.Preparation)
		ai.OptimalTimes = slices.Clone(e.AISuggestions.OptimalTimes)
		c.AISuggestions = &ai
	}
	return &c
}

// Overlaps reports half-open interval intersection: touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
