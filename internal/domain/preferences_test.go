package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDefaultCalendarPreferences(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	p := DefaultCalendarPreferences(uid)

	if p.UserID != uid {
		t.Errorf("UserID = %v, want %v", p.UserID, uid)
	}
	if p.TimeZone != "UTC" || p.WeekStart != time.Monday || p.DefaultDuration != 60 {
		t.Errorf("unexpected defaults: tz=%s weekStart=%v duration=%d", p.TimeZone, p.WeekStart, p.DefaultDuration)
	}
	if p.DefaultView != CalendarViewWeek {
		t.Errorf("DefaultView = %s, want WEEK", p.DefaultView)
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		want := d != time.Saturday && d != time.Sunday
		if p.WorkingHours[d].Working != want {
			t.Errorf("%s Working = %v, want %v", d, p.WorkingHours[d].Working, want)
		}
		if p.WorkingHours[d].Start != "09:00" || p.WorkingHours[d].End != "17:00" {
			t.Errorf("%s hours = %s-%s", d, p.WorkingHours[d].Start, p.WorkingHours[d].End)
		}
	}
}

func TestCalendarPreferences_Location(t *testing.T) {
	t.Parallel()

	if got := (&CalendarPreferences{TimeZone: "Nowhere/Atlantis"}).Location(); got != time.UTC {
		t.Errorf("unknown zone should fall back to UTC, got %v", got)
	}
	var nilPrefs *CalendarPreferences
	if got := nilPrefs.Location(); got != time.UTC {
		t.Errorf("nil prefs should use UTC, got %v", got)
	}
}

func TestDaySchedule_ContainsWindow(t *testing.T) {
	t.Parallel()

	day := DaySchedule{
		Working: true, Start: "09:00", End: "17:00",
		Breaks: []TimeRange{{Start: "12:00", End: "13:00"}},
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{name: "inside", start: at(9, 0), end: at(10, 0), want: true},
		{name: "ends at close", start: at(16, 0), end: at(17, 0), want: true},
		{name: "starts before open", start: at(8, 0), end: at(9, 0), want: false},
		{name: "runs past close", start: at(16, 30), end: at(17, 30), want: false},
		{name: "hits break", start: at(11, 30), end: at(12, 30), want: false},
		{name: "after break", start: at(13, 0), end: at(14, 0), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := day.ContainsWindow(tt.start, tt.end, time.UTC); got != tt.want {
				t.Errorf("ContainsWindow = %v, want %v", got, tt.want)
			}
		})
	}

	off := DaySchedule{Working: false, Start: "09:00", End: "17:00"}
	if off.ContainsWindow(at(10, 0), at(11, 0), time.UTC) {
		t.Error("non-working day must not contain any window")
	}
}

func TestCalendarPreferences_Clone(t *testing.T) {
	t.Parallel()

	p := DefaultCalendarPreferences(uuid.New())
	p.WorkingHours[time.Monday].Breaks = []TimeRange{{Start: "12:00", End: "13:00"}}
	c := p.Clone()
	c.WorkingHours[time.Monday].Breaks[0].Start = "11:00"
	c.DefaultReminders[0] = 5

	if p.WorkingHours[time.Monday].Breaks[0].Start != "12:00" {
		t.Error("breaks shared with clone")
	}
	if p.DefaultReminders[0] != 15 {
		t.Error("reminders shared with clone")
	}
}
