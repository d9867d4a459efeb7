package rest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/eventjson"
	"github.com/heartmarshall/bizdash-backend/internal/adapter/ical"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/scheduling"
)

const defaultPageSize = 50

// schedulingService defines the operations EventHandler needs.
type schedulingService interface {
	CreateEvent(ctx context.Context, input scheduling.CreateEventInput) (*domain.CalendarEvent, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error)
	ListEvents(ctx context.Context, input scheduling.ListEventsInput) (*scheduling.EventList, error)
	UpdateEvent(ctx context.Context, input scheduling.UpdateEventInput) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	RedetectConflicts(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error)
	RescheduleEvent(ctx context.Context, id uuid.UUID, to domain.TimeSlot) (*domain.CalendarEvent, error)
	CheckConflicts(ctx context.Context, input scheduling.CheckConflictsInput) ([]domain.ConflictInfo, error)
	SuggestOptimalTimes(ctx context.Context, req domain.SchedulingRequest) (*domain.SchedulingResult, error)
}

// EventHandler serves the calendar event and scheduling endpoints.
type EventHandler struct {
	svc schedulingService
	log *slog.Logger
	now func() time.Time
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(svc schedulingService, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: logger.With("handler", "events"), now: time.Now}
}

// Create handles POST /api/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	e, err := h.svc.CreateEvent(r.Context(), req.input())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(e))
}

// Get handles GET /api/events/{id}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	e, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(e))
}

// List handles GET /api/events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseListQuery(r.URL.Query())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	list, err := h.svc.ListEvents(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := eventListResponse{
		Events:   make([]eventResponse, 0, len(list.Events)),
		Total:    list.Total,
		Page:     list.Page,
		PageSize: list.PageSize,
	}
	for _, e := range list.Events {
		resp.Events = append(resp.Events, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PATCH /api/events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req updateEventRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	e, err := h.svc.UpdateEvent(r.Context(), req.input(id))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(e))
}

// Delete handles DELETE /api/events/{id}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteEvent(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Redetect handles POST /api/events/{id}/redetect.
func (h *EventHandler) Redetect(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	e, err := h.svc.RedetectConflicts(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(e))
}

// Reschedule handles POST /api/events/{id}/reschedule.
func (h *EventHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req slotRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	e, err := h.svc.RescheduleEvent(r.Context(), id, domain.TimeSlot{Start: req.Start, End: req.End})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(e))
}

// CheckConflicts handles POST /api/conflicts/check.
func (h *EventHandler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	var req checkConflictsRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	conflicts, err := h.svc.CheckConflicts(r.Context(), req.input())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, conflictsResponse{
		Conflicts:   eventjson.Conflicts(conflicts),
		MaxSeverity: string(domain.MaxSeverity(conflicts)),
	})
}

// Suggest handles POST /api/scheduling/suggestions.
func (h *EventHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.SuggestOptimalTimes(r.Context(), req.request())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	prep := res.Preparation
	if prep == nil {
		prep = []string{}
	}
	writeJSON(w, http.StatusOK, suggestResponse{
		Suggestions: slotsOrEmpty(res.Suggestions),
		Preparation: prep,
	})
}

// ExportICS handles GET /api/events.ics. It accepts the list filters and
// returns every matching event as an iCalendar document.
func (h *EventHandler) ExportICS(w http.ResponseWriter, r *http.Request) {
	input, err := parseListQuery(r.URL.Query())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	input.Page, input.PageSize = 1, 0

	list, err := h.svc.ListEvents(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var buf bytes.Buffer
	if err := ical.Export(&buf, list.Events, h.now()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func parseListQuery(q url.Values) (scheduling.ListEventsInput, error) {
	var (
		input = scheduling.ListEventsInput{Page: 1, PageSize: defaultPageSize}
		errs  []domain.FieldError
	)

	parseTime := func(key string) *time.Time {
		v := q.Get(key)
		if v == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: key, Message: "must be an RFC 3339 timestamp"})
			return nil
		}
		return &t
	}
	parseUUID := func(key string) *uuid.UUID {
		v := q.Get(key)
		if v == "" {
			return nil
		}
		id, err := uuid.Parse(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: key, Message: "must be a UUID"})
			return nil
		}
		return &id
	}
	parseInt := func(key string, dst *int) {
		v := q.Get(key)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: key, Message: "must be an integer"})
			return
		}
		*dst = n
	}

	f := &input.Filter
	f.From = parseTime("from")
	f.To = parseTime("to")
	f.ProjectID = parseUUID("project_id")
	f.ClientID = parseUUID("client_id")
	if v := q.Get("attendee"); v != "" {
		f.AttendeeEmail = &v
	}
	if v := q.Get("q"); v != "" {
		f.Search = &v
	}
	for i, v := range q["type"] {
		t := domain.EventType(v)
		if !t.IsValid() {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("type[%d]", i), Message: "unknown event type"})
		}
		f.Types = append(f.Types, t)
	}
	for i, v := range q["priority"] {
		p := domain.Priority(v)
		if !p.IsValid() {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("priority[%d]", i), Message: "unknown priority"})
		}
		f.Priorities = append(f.Priorities, p)
	}
	for i, v := range q["status"] {
		s := domain.EventStatus(v)
		if !s.IsValid() {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("status[%d]", i), Message: "unknown status"})
		}
		f.Statuses = append(f.Statuses, s)
	}
	parseInt("page", &input.Page)
	parseInt("page_size", &input.PageSize)

	if len(errs) > 0 {
		return input, domain.NewValidationErrors(errs)
	}
	return input, nil
}
