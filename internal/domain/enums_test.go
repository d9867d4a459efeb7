package domain

import "testing"

func TestEventType_IsValid(t *testing.T) {
	t.Parallel()

	valid := []EventType{
		EventTypeMeeting, EventTypeCall, EventTypeTask, EventTypeDeadline,
		EventTypeReminder, EventTypePersonal, EventTypeOther,
	}
	for _, et := range valid {
		if !et.IsValid() {
			t.Errorf("EventType(%q).IsValid() = false, want true", et)
		}
	}
	if EventType("WEBINAR").IsValid() {
		t.Error("EventType(WEBINAR).IsValid() = true, want false")
	}
}

func TestPriority_Weight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityLow, 1},
		{PriorityMedium, 2},
		{PriorityHigh, 3},
		{PriorityUrgent, 4},
		{Priority("INVALID"), 0},
		{Priority(""), 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			t.Parallel()
			if got := tt.priority.Weight(); got != tt.want {
				t.Errorf("Priority(%q).Weight() = %d, want %d", tt.priority, got, tt.want)
			}
			if got := tt.priority.IsValid(); got != (tt.want > 0) {
				t.Errorf("Priority(%q).IsValid() = %v", tt.priority, got)
			}
		})
	}
}

func TestSeverity_Rank(t *testing.T) {
	t.Parallel()

	ordered := []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("%s should rank below %s", ordered[i-1], ordered[i])
		}
	}
	if Severity("BOGUS").IsValid() {
		t.Error("Severity(BOGUS).IsValid() = true, want false")
	}
}

func TestEventStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status EventStatus
		want   bool
	}{
		{EventStatusTentative, true},
		{EventStatusConfirmed, true},
		{EventStatusCancelled, true},
		{EventStatus("DONE"), false},
		{EventStatus(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("EventStatus(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestResponseStatus_IsValid(t *testing.T) {
	t.Parallel()

	valid := []ResponseStatus{ResponsePending, ResponseAccepted, ResponseDeclined, ResponseTentative}
	for _, r := range valid {
		if !r.IsValid() {
			t.Errorf("ResponseStatus(%q).IsValid() = false, want true", r)
		}
	}
	if ResponseStatus("MAYBE").IsValid() {
		t.Error("ResponseStatus(MAYBE).IsValid() = true, want false")
	}
}

func TestCalendarView_String(t *testing.T) {
	t.Parallel()
	if got := CalendarViewWeek.String(); got != "WEEK" {
		t.Errorf("got %q, want WEEK", got)
	}
	if CalendarView("YEAR").IsValid() {
		t.Error("CalendarView(YEAR).IsValid() = true, want false")
	}
}
