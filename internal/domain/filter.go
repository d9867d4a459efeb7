package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventFilter contains filtering parameters for event queries.
// From/To select events overlapping the half-open window [From, To).
type EventFilter struct {
	From          *time.Time
	To            *time.Time
	Types         []EventType
	Priorities    []Priority
	Statuses      []EventStatus
	ProjectID     *uuid.UUID
	ClientID      *uuid.UUID
	AttendeeEmail *string
	Search        *string
	ExcludeIDs    []uuid.UUID

	// ExpandRecurring keeps recurring series that start before To even when
	// their first instance ends before From. Callers expand them with
	// CalendarEvent.Occurrences.
	ExpandRecurring bool
}

// Matches evaluates the filter in memory. SQL backends translate the same
// predicates into WHERE clauses.
func (f EventFilter) Matches(e *CalendarEvent) bool {
	if f.From != nil && !e.End.After(*f.From) && !(f.ExpandRecurring && e.IsRecurring()) {
		return false
	}
	if f.To != nil && !e.Start.Before(*f.To) {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, e.Type) {
		return false
	}
	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, e.Priority) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, e.Status) {
		return false
	}
	if f.ProjectID != nil && (e.ProjectID == nil || *e.ProjectID != *f.ProjectID) {
		return false
	}
	if f.ClientID != nil && (e.ClientID == nil || *e.ClientID != *f.ClientID) {
		return false
	}
	if f.AttendeeEmail != nil && !e.HasAttendee(*f.AttendeeEmail) {
		return false
	}
	if f.Search != nil && !matchesSearch(e, *f.Search) {
		return false
	}
	if slices.Contains(f.ExcludeIDs, e.ID) {
		return false
	}
	return true
}

func matchesSearch(e *CalendarEvent, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	if e.Description != nil && strings.Contains(strings.ToLower(*e.Description), q) {
		return true
	}
	if e.Location != nil && strings.Contains(strings.ToLower(*e.Location), q) {
		return true
	}
	return false
}

// SortEvents orders events by start ascending, ties by id.
func SortEvents(events []*CalendarEvent) {
	slices.SortStableFunc(events, CompareEvents)
}

// CompareEvents is the canonical event order: start, then id.
func CompareEvents(a, b *CalendarEvent) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

// Paginate slices a sorted result. page is 1-based; pageSize <= 0 returns everything.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	from := (page - 1) * pageSize
	if from >= len(items) {
		return []T{}
	}
	to := min(from+pageSize, len(items))
	return items[from:to]
}
