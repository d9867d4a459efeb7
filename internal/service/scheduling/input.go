package scheduling

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 5000
	maxLocationLength    = 500
	maxAttendees         = 200
	maxPageSize          = 500
)

// AttendeeInput describes one invitee.
type AttendeeInput struct {
	UserID   *uuid.UUID
	Email    string
	Name     string
	Response domain.ResponseStatus
	Optional bool
}

// CreateEventInput holds parameters for event creation. Empty Type, Priority
// and Status default to MEETING, MEDIUM and CONFIRMED.
type CreateEventInput struct {
	Title       string
	Description *string
	Location    *string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Type        domain.EventType
	Priority    domain.Priority
	Status      domain.EventStatus
	Attendees   []AttendeeInput
	Recurrence  *string
	ProjectID   *uuid.UUID
	ClientID    *uuid.UUID
}

// Validate validates the create event input. An end not after start is
// reported as an *domain.IntervalError.
func (i CreateEventInput) Validate() error {
	if !i.End.After(i.Start) {
		return intervalError(i.Start, i.End)
	}

	var errs []domain.FieldError
	errs = append(errs, validateTitle(i.Title)...)
	errs = append(errs, validateText(i.Description, i.Location)...)
	if i.Type != "" && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown event type"})
	}
	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	errs = append(errs, validateAttendees(i.Attendees)...)
	errs = append(errs, validateRecurrence(i.Recurrence, i.Start)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateEventInput holds parameters for a partial event update. Nil fields
// are left unchanged. An empty Description, Location or Recurrence clears it.
type UpdateEventInput struct {
	ID          uuid.UUID
	Title       *string
	Description *string
	Location    *string
	Start       *time.Time
	End         *time.Time
	AllDay      *bool
	Type        *domain.EventType
	Priority    *domain.Priority
	Status      *domain.EventStatus
	Attendees   *[]AttendeeInput
	Recurrence  *string
	ProjectID   *uuid.UUID
	ClientID    *uuid.UUID
}

// Validate validates the fields present in the update. The merged interval
// is checked once the stored event is known.
func (i UpdateEventInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Title != nil {
		errs = append(errs, validateTitle(*i.Title)...)
	}
	errs = append(errs, validateText(i.Description, i.Location)...)
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown event type"})
	}
	if i.Priority != nil && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Attendees != nil {
		errs = append(errs, validateAttendees(*i.Attendees)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListEventsInput holds parameters for listing events.
type ListEventsInput struct {
	Filter   domain.EventFilter
	Page     int
	PageSize int
}

// Validate validates the list input.
func (i ListEventsInput) Validate() error {
	var errs []domain.FieldError

	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must not be negative"})
	}
	if i.PageSize < 0 || i.PageSize > maxPageSize {
		errs = append(errs, domain.FieldError{Field: "page_size", Message: fmt.Sprintf("must be between 0 and %d", maxPageSize)})
	}
	if i.Filter.From != nil && i.Filter.To != nil && !i.Filter.To.After(*i.Filter.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must be after from"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CheckConflictsInput describes a hypothetical event to check without
// storing it. ExcludeID names a stored event being moved so it does not
// conflict with itself.
type CheckConflictsInput struct {
	Title     string
	Start     time.Time
	End       time.Time
	Priority  domain.Priority
	Location  *string
	Attendees []AttendeeInput
	ExcludeID *uuid.UUID
}

// Validate validates the check conflicts input.
func (i CheckConflictsInput) Validate() error {
	if !i.End.After(i.Start) {
		return intervalError(i.Start, i.End)
	}

	var errs []domain.FieldError
	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}
	errs = append(errs, validateAttendees(i.Attendees)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ValidateRequest validates a scheduling request.
func ValidateRequest(r domain.SchedulingRequest) error {
	var errs []domain.FieldError

	if r.DurationMinutes < domain.MinMeetingMinutes || r.DurationMinutes > domain.MaxMeetingMinutes {
		errs = append(errs, domain.FieldError{
			Field:   "duration_minutes",
			Message: fmt.Sprintf("must be between %d and %d", domain.MinMeetingMinutes, domain.MaxMeetingMinutes),
		})
	}
	if len(r.AttendeeEmails) == 0 {
		errs = append(errs, domain.FieldError{Field: "attendee_emails", Message: "at least one attendee required"})
	}
	for idx, email := range r.AttendeeEmails {
		if !validEmail(email) {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("attendee_emails[%d]", idx), Message: "invalid email"})
		}
	}
	for idx, s := range r.PreferredSlots {
		if s.End.Before(s.Start) {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("preferred_slots[%d]", idx), Message: "end before start"})
		}
	}
	if r.Priority != "" && !r.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}
	if c := r.Constraints; c != nil {
		if c.MinNotice < 0 {
			errs = append(errs, domain.FieldError{Field: "constraints.min_notice", Message: "must not be negative"})
		}
		if c.MaxAdvanceDays < 0 {
			errs = append(errs, domain.FieldError{Field: "constraints.max_advance_days", Message: "must not be negative"})
		}
		for idx, d := range c.PreferredDays {
			if d < time.Sunday || d > time.Saturday {
				errs = append(errs, domain.FieldError{Field: fmt.Sprintf("constraints.preferred_days[%d]", idx), Message: "must be a weekday"})
			}
		}
		for idx, s := range c.AvoidSlots {
			if s.End.Before(s.Start) {
				errs = append(errs, domain.FieldError{Field: fmt.Sprintf("constraints.avoid_slots[%d]", idx), Message: "end before start"})
			}
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func intervalError(start, end time.Time) error {
	return &domain.IntervalError{
		Field: "event",
		Start: start.Format(time.RFC3339),
		End:   end.Format(time.RFC3339),
	}
}

func validateTitle(title string) []domain.FieldError {
	title = strings.TrimSpace(title)
	if title == "" {
		return []domain.FieldError{{Field: "title", Message: "required"}}
	}
	if len(title) > maxTitleLength {
		return []domain.FieldError{{Field: "title", Message: "too long"}}
	}
	return nil
}

func validateText(description, location *string) []domain.FieldError {
	var errs []domain.FieldError
	if description != nil && len(*description) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}
	if location != nil && len(*location) > maxLocationLength {
		errs = append(errs, domain.FieldError{Field: "location", Message: "too long"})
	}
	return errs
}

func validateAttendees(attendees []AttendeeInput) []domain.FieldError {
	var errs []domain.FieldError
	if len(attendees) > maxAttendees {
		return append(errs, domain.FieldError{Field: "attendees", Message: fmt.Sprintf("at most %d attendees", maxAttendees)})
	}

	seen := make(map[string]bool, len(attendees))
	for idx, a := range attendees {
		field := fmt.Sprintf("attendees[%d]", idx)
		email := domain.NormalizeEmail(a.Email)
		switch {
		case !validEmail(email):
			errs = append(errs, domain.FieldError{Field: field + ".email", Message: "invalid email"})
		case seen[email]:
			errs = append(errs, domain.FieldError{Field: field + ".email", Message: "duplicate attendee"})
		}
		seen[email] = true
		if a.Response != "" && !a.Response.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".response", Message: "unknown response"})
		}
	}
	return errs
}

func validateRecurrence(rule *string, start time.Time) []domain.FieldError {
	if rule == nil || strings.TrimSpace(*rule) == "" {
		return nil
	}
	if _, err := domain.ParseRecurrence(*rule, start); err != nil {
		return []domain.FieldError{{Field: "recurrence", Message: "invalid RRULE"}}
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil && addr.Name == "" && strings.EqualFold(addr.Address, strings.TrimSpace(email))
}

func buildAttendees(in []AttendeeInput) []domain.Attendee {
	out := make([]domain.Attendee, 0, len(in))
	for _, a := range in {
		resp := a.Response
		if resp == "" {
			resp = domain.ResponsePending
		}
		out = append(out, domain.Attendee{
			UserID:   a.UserID,
			Email:    domain.NormalizeEmail(a.Email),
			Name:     strings.TrimSpace(a.Name),
			Response: resp,
			Optional: a.Optional,
		})
	}
	return out
}

// emptyToNil trims s and returns nil when nothing is left.
func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
