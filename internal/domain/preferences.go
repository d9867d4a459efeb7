package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// TimeRange is a time-of-day window in "HH:MM" notation.
type TimeRange struct {
	Start string
	End   string
}

// DaySchedule is the working-hours entry for a single weekday.
type DaySchedule struct {
	Working bool
	Start   string
	End     string
	Breaks  []TimeRange
}

// CalendarPreferences holds per-user calendar settings. WorkingHours is
// indexed by time.Weekday (Sunday = 0).
type CalendarPreferences struct {
	UserID           uuid.UUID
	DefaultView      CalendarView
	WorkingHours     [7]DaySchedule
	TimeZone         string
	WeekStart        time.Weekday
	DefaultDuration  int
	DefaultReminders []int
	QuietHours       *TimeRange
	UpdatedAt        time.Time
}

// DefaultCalendarPreferences returns the preferences used until a user stores their own.
func DefaultCalendarPreferences(userID uuid.UUID) *CalendarPreferences {
	p := &CalendarPreferences{
		UserID:           userID,
		DefaultView:      CalendarViewWeek,
		TimeZone:         "UTC",
		WeekStart:        time.Monday,
		DefaultDuration:  60,
		DefaultReminders: []int{15},
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		p.WorkingHours[d] = DaySchedule{
			Working: d != time.Saturday && d != time.Sunday,
			Start:   "09:00",
			End:     "17:00",
		}
	}
	return p
}

// Location resolves TimeZone, falling back to UTC when it is empty or unknown.
func (p *CalendarPreferences) Location() *time.Location {
	if p == nil || p.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clone returns a deep copy.
func (p *CalendarPreferences) Clone() *CalendarPreferences {
	if p == nil {
		return nil
	}
	c := *p
	for i, d := range p.WorkingHours {
		d.Breaks = slices.Clone(d.Breaks)
		c.WorkingHours[i] = d
	}
	c.DefaultReminders = slices.Clone(p.DefaultReminders)
	c.QuietHours = clonePtr(p.QuietHours)
	return &c
}

// ParseClock parses "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ContainsWindow reports whether [start, end) lies inside the day's working
// hours, outside every break. Both instants are interpreted in loc; a window
// spanning midnight is never contained.
func (d DaySchedule) ContainsWindow(start, end time.Time, loc *time.Location) bool {
	if !d.Working {
		return false
	}
	ls, le := start.In(loc), end.In(loc)
	y1, m1, d1 := ls.Date()
	y2, m2, d2 := le.Date()
	sameDay := y1 == y2 && m1 == m2 && d1 == d2
	from := ls.Hour()*60 + ls.Minute()
	to := le.Hour()*60 + le.Minute()
	if !sameDay {
		// An end exactly at the following midnight counts as 24:00.
		if to != 0 || le.Sub(ls) > 24*time.Hour {
			return false
		}
		to = 24 * 60
	}

	open, err := ParseClock(d.Start)
	if err != nil {
		return false
	}
	closeAt, err := ParseClock(d.End)
	if err != nil {
		return false
	}
	if from < open || to > closeAt {
		return false
	}
	for _, b := range d.Breaks {
		bs, err1 := ParseClock(b.Start)
		be, err2 := ParseClock(b.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if from < be && to > bs {
			return false
		}
	}
	return true
}
