package domain

import (
	"testing"

	"github.com/google/uuid"
)

func ptr[T any](v T) *T { return &v }

func TestEventFilter_Matches(t *testing.T) {
	t.Parallel()

	project := uuid.New()
	e := &CalendarEvent{
		ID:        uuid.New(),
		Title:     "Quarterly Review",
		Location:  ptr("Room 4B"),
		Start:     at(10, 0),
		End:       at(11, 0),
		Type:      EventTypeMeeting,
		Priority:  PriorityHigh,
		Status:    EventStatusConfirmed,
		ProjectID: &project,
		Attendees: []Attendee{{Email: "Ann@example.com"}},
	}

	tests := []struct {
		name   string
		filter EventFilter
		want   bool
	}{
		{name: "empty filter", filter: EventFilter{}, want: true},
		{name: "window overlaps", filter: EventFilter{From: ptr(at(10, 30)), To: ptr(at(12, 0))}, want: true},
		{name: "window touches end", filter: EventFilter{From: ptr(at(11, 0))}, want: false},
		{name: "window touches start", filter: EventFilter{To: ptr(at(10, 0))}, want: false},
		{name: "type match", filter: EventFilter{Types: []EventType{EventTypeCall, EventTypeMeeting}}, want: true},
		{name: "type mismatch", filter: EventFilter{Types: []EventType{EventTypeTask}}, want: false},
		{name: "priority mismatch", filter: EventFilter{Priorities: []Priority{PriorityLow}}, want: false},
		{name: "status match", filter: EventFilter{Statuses: []EventStatus{EventStatusConfirmed}}, want: true},
		{name: "project match", filter: EventFilter{ProjectID: &project}, want: true},
		{name: "client absent", filter: EventFilter{ClientID: ptr(uuid.New())}, want: false},
		{name: "attendee case-insensitive", filter: EventFilter{AttendeeEmail: ptr("ann@EXAMPLE.com")}, want: true},
		{name: "search title", filter: EventFilter{Search: ptr("review")}, want: true},
		{name: "search location", filter: EventFilter{Search: ptr("4b")}, want: true},
		{name: "search miss", filter: EventFilter{Search: ptr("standup")}, want: false},
		{name: "excluded", filter: EventFilter{ExcludeIDs: []uuid.UUID{e.ID}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.filter.Matches(e); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortEvents_StartThenID(t *testing.T) {
	t.Parallel()

	a := &CalendarEvent{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Start: at(9, 0)}
	b := &CalendarEvent{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Start: at(9, 0)}
	c := &CalendarEvent{ID: uuid.MustParse("00000000-0000-0000-0000-000000000000"), Start: at(10, 0)}

	events := []*CalendarEvent{c, a, b}
	SortEvents(events)

	if events[0] != b || events[1] != a || events[2] != c {
		t.Errorf("unexpected order: %v %v %v", events[0].ID, events[1].ID, events[2].ID)
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name           string
		page, pageSize int
		want           []int
	}{
		{name: "all", page: 1, pageSize: 0, want: []int{1, 2, 3, 4, 5}},
		{name: "first page", page: 1, pageSize: 2, want: []int{1, 2}},
		{name: "last partial", page: 3, pageSize: 2, want: []int{5}},
		{name: "past end", page: 4, pageSize: 2, want: []int{}},
		{name: "page zero treated as first", page: 0, pageSize: 2, want: []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Paginate(items, tt.page, tt.pageSize)
			if len(got) != len(tt.want) {
				t.Fatalf("Paginate = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Paginate = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
