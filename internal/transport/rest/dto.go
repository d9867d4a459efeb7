package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/eventjson"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/scheduling"
)

type attendeeRequest struct {
	UserID   *uuid.UUID `json:"user_id"`
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	Response string     `json:"response"`
	Optional bool       `json:"optional"`
}

type slotRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type createEventRequest struct {
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Location    *string           `json:"location"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	AllDay      bool              `json:"all_day"`
	Type        string            `json:"type"`
	Priority    string            `json:"priority"`
	Status      string            `json:"status"`
	Attendees   []attendeeRequest `json:"attendees"`
	Recurrence  *string           `json:"recurrence"`
	ProjectID   *uuid.UUID        `json:"project_id"`
	ClientID    *uuid.UUID        `json:"client_id"`
}

func (r createEventRequest) input() scheduling.CreateEventInput {
	return scheduling.CreateEventInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Start:       r.Start,
		End:         r.End,
		AllDay:      r.AllDay,
		Type:        domain.EventType(r.Type),
		Priority:    domain.Priority(r.Priority),
		Status:      domain.EventStatus(r.Status),
		Attendees:   attendeeInputs(r.Attendees),
		Recurrence:  r.Recurrence,
		ProjectID:   r.ProjectID,
		ClientID:    r.ClientID,
	}
}

// updateEventRequest is a partial update; absent fields are left unchanged.
type updateEventRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Location    *string            `json:"location"`
	Start       *time.Time         `json:"start"`
	End         *time.Time         `json:"end"`
	AllDay      *bool              `json:"all_day"`
	Type        *string            `json:"type"`
	Priority    *string            `json:"priority"`
	Status      *string            `json:"status"`
	Attendees   *[]attendeeRequest `json:"attendees"`
	Recurrence  *string            `json:"recurrence"`
	ProjectID   *uuid.UUID         `json:"project_id"`
	ClientID    *uuid.UUID         `json:"client_id"`
}

func (r updateEventRequest) input(id uuid.UUID) scheduling.UpdateEventInput {
	in := scheduling.UpdateEventInput{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Start:       r.Start,
		End:         r.End,
		AllDay:      r.AllDay,
		Recurrence:  r.Recurrence,
		ProjectID:   r.ProjectID,
		ClientID:    r.ClientID,
	}
	if r.Type != nil {
		t := domain.EventType(*r.Type)
		in.Type = &t
	}
	if r.Priority != nil {
		p := domain.Priority(*r.Priority)
		in.Priority = &p
	}
	if r.Status != nil {
		s := domain.EventStatus(*r.Status)
		in.Status = &s
	}
	if r.Attendees != nil {
		a := attendeeInputs(*r.Attendees)
		in.Attendees = &a
	}
	return in
}

type checkConflictsRequest struct {
	Title     string            `json:"title"`
	Start     time.Time         `json:"start"`
	End       time.Time         `json:"end"`
	Priority  string            `json:"priority"`
	Location  *string           `json:"location"`
	Attendees []attendeeRequest `json:"attendees"`
	ExcludeID *uuid.UUID        `json:"exclude_id"`
}

func (r checkConflictsRequest) input() scheduling.CheckConflictsInput {
	return scheduling.CheckConflictsInput{
		Title:     r.Title,
		Start:     r.Start,
		End:       r.End,
		Priority:  domain.Priority(r.Priority),
		Location:  r.Location,
		Attendees: attendeeInputs(r.Attendees),
		ExcludeID: r.ExcludeID,
	}
}

type constraintsRequest struct {
	WorkingHoursOnly bool          `json:"working_hours_only"`
	AllowWeekends    bool          `json:"allow_weekends"`
	MinNotice        int           `json:"min_notice"`
	MaxAdvanceDays   int           `json:"max_advance_days"`
	PreferredDays    []int         `json:"preferred_days"`
	AvoidSlots       []slotRequest `json:"avoid_slots"`
}

type suggestRequest struct {
	Title           string              `json:"title"`
	DurationMinutes int                 `json:"duration_minutes"`
	AttendeeEmails  []string            `json:"attendee_emails"`
	PreferredSlots  []slotRequest       `json:"preferred_slots"`
	Constraints     *constraintsRequest `json:"constraints"`
	Priority        string              `json:"priority"`
}

func (r suggestRequest) request() domain.SchedulingRequest {
	req := domain.SchedulingRequest{
		Title:           r.Title,
		DurationMinutes: r.DurationMinutes,
		AttendeeEmails:  r.AttendeeEmails,
		PreferredSlots:  domainSlots(r.PreferredSlots),
		Priority:        domain.Priority(r.Priority),
	}
	if c := r.Constraints; c != nil {
		req.Constraints = &domain.SchedulingConstraints{
			WorkingHoursOnly: c.WorkingHoursOnly,
			AllowWeekends:    c.AllowWeekends,
			MinNotice:        c.MinNotice,
			MaxAdvanceDays:   c.MaxAdvanceDays,
			AvoidSlots:       domainSlots(c.AvoidSlots),
		}
		for _, d := range c.PreferredDays {
			req.Constraints.PreferredDays = append(req.Constraints.PreferredDays, time.Weekday(d))
		}
	}
	return req
}

type eventResponse struct {
	ID            uuid.UUID              `json:"id"`
	Title         string                 `json:"title"`
	Description   *string                `json:"description,omitempty"`
	Location      *string                `json:"location,omitempty"`
	Start         time.Time              `json:"start"`
	End           time.Time              `json:"end"`
	AllDay        bool                   `json:"all_day"`
	Type          string                 `json:"type"`
	Priority      string                 `json:"priority"`
	Status        string                 `json:"status"`
	OrganizerID   uuid.UUID              `json:"organizer_id"`
	Attendees     []eventjson.Attendee   `json:"attendees"`
	Recurrence    *string                `json:"recurrence,omitempty"`
	Conflicts     []eventjson.Conflict   `json:"conflicts"`
	AISuggestions *eventjson.Suggestions `json:"ai_suggestions,omitempty"`
	ProjectID     *uuid.UUID             `json:"project_id,omitempty"`
	ClientID      *uuid.UUID             `json:"client_id,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Durable       bool                   `json:"durable"`
}

func toEventResponse(e *domain.CalendarEvent) eventResponse {
	resp := eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Start:       e.Start,
		End:         e.End,
		AllDay:      e.AllDay,
		Type:        string(e.Type),
		Priority:    string(e.Priority),
		Status:      string(e.Status),
		OrganizerID: e.OrganizerID,
		Attendees:   make([]eventjson.Attendee, 0, len(e.Attendees)),
		Recurrence:  e.Recurrence,
		Conflicts:   eventjson.Conflicts(e.Conflicts),
		ProjectID:   e.ProjectID,
		ClientID:    e.ClientID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Durable:     e.Durable,
	}
	for _, a := range e.Attendees {
		resp.Attendees = append(resp.Attendees, eventjson.Attendee{
			UserID:   a.UserID,
			Email:    a.Email,
			Name:     a.Name,
			Response: string(a.Response),
			Optional: a.Optional,
		})
	}
	if s := e.AISuggestions; s != nil {
		resp.AISuggestions = &eventjson.Suggestions{
			Preparation:  s.Preparation,
			OptimalTimes: eventjson.Slots(s.OptimalTimes),
			Summary:      s.Summary,
			GeneratedAt:  s.GeneratedAt,
		}
	}
	return resp
}

type eventListResponse struct {
	Events   []eventResponse `json:"events"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type conflictsResponse struct {
	Conflicts   []eventjson.Conflict `json:"conflicts"`
	MaxSeverity string               `json:"max_severity,omitempty"`
}

type suggestResponse struct {
	Suggestions []eventjson.Slot `json:"suggestions"`
	Preparation []string         `json:"preparation"`
}

func attendeeInputs(in []attendeeRequest) []scheduling.AttendeeInput {
	if in == nil {
		return nil
	}
	out := make([]scheduling.AttendeeInput, len(in))
	for i, a := range in {
		out[i] = scheduling.AttendeeInput{
			UserID:   a.UserID,
			Email:    a.Email,
			Name:     a.Name,
			Response: domain.ResponseStatus(a.Response),
			Optional: a.Optional,
		}
	}
	return out
}

func domainSlots(in []slotRequest) []domain.TimeSlot {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.TimeSlot, len(in))
	for i, s := range in {
		out[i] = domain.TimeSlot{Start: s.Start, End: s.End}
	}
	return out
}

func slotsOrEmpty(in []domain.TimeSlot) []eventjson.Slot {
	if out := eventjson.Slots(in); out != nil {
		return out
	}
	return []eventjson.Slot{}
}
