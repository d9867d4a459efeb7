package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// ParseRecurrence validates an RRULE anchored at start. A leading "RRULE:" is accepted.
func ParseRecurrence(rule string, start time.Time) (*rrule.RRule, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("parse rrule: %w", err)
	}
	opt.Dtstart = start.UTC()
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("build rrule: %w", err)
	}
	return r, nil
}

// Occurrences expands e into the instances that overlap [from, to). A
// non-recurring event yields itself when it overlaps. Every instance keeps the
// series ID. Expansion is in UTC.
func (e *CalendarEvent) Occurrences(from, to time.Time) []*CalendarEvent {
	if !e.IsRecurring() {
		if Overlaps(e.Start, e.End, from, to) {
			return []*CalendarEvent{e}
		}
		return nil
	}

	r, err := ParseRecurrence(*e.Recurrence, e.Start)
	if err != nil {
		// Stored rules are validated on write; a broken one degrades to the base instance.
		if Overlaps(e.Start, e.End, from, to) {
			return []*CalendarEvent{e}
		}
		return nil
	}

	dur := e.Duration()
	var out []*CalendarEvent
	for _, s := range r.Between(from.Add(-dur).UTC(), to.UTC(), true) {
		end := s.Add(dur)
		if !Overlaps(s, end, from, to) {
			continue
		}
		occ := *e
		occ.Start = s
		occ.End = end
		out = append(out, &occ)
	}
	return out
}
