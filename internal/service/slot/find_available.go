package slot

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// FindAvailable scans the availability horizon starting at the next full hour
// for windows of durationMinutes that overlap no stored event and pass the
// constraints. Attendee free/busy data is used when a provider is configured;
// a provider failure is logged and the search continues without it.
func (e *Engine) FindAvailable(
	ctx context.Context,
	reader EventReader,
	durationMinutes int,
	attendeeEmails []string,
	constraints *domain.SchedulingConstraints,
	prefs *domain.CalendarPreferences,
) ([]domain.TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, domain.NewValidationError("duration_minutes", "must be positive")
	}
	dur := time.Duration(durationMinutes) * time.Minute

	now := e.now()
	first := now.Truncate(time.Hour).Add(e.cfg.Step)
	last := first.Add(e.cfg.AvailabilityHorizon)
	if constraints != nil && constraints.MaxAdvanceDays > 0 {
		last = minTime(last, now.Add(time.Duration(constraints.MaxAdvanceDays)*24*time.Hour).Add(-dur))
	}

	busy, err := busyIntervals(ctx, reader, first, last.Add(dur))
	if err != nil {
		return nil, fmt.Errorf("find available: %w", err)
	}
	if e.freeBusy != nil && len(attendeeEmails) > 0 {
		external, err := e.freeBusy.Busy(ctx, attendeeEmails, first, last.Add(dur))
		if err != nil {
			e.log.WarnContext(ctx, "free/busy lookup failed, ignoring attendee calendars",
				slog.Int("attendees", len(attendeeEmails)),
				slog.String("error", err.Error()),
			)
		} else {
			busy = append(busy, external...)
		}
	}

	f := newFilter(now, constraints, prefs)
	slots := make([]domain.TimeSlot, 0, e.cfg.MaxAvailable)
	for s := first; !s.After(last) && len(slots) < e.cfg.MaxAvailable; s = s.Add(e.cfg.Step) {
		end := s.Add(dur)
		if !f.accepts(s, end) || overlapsAny(busy, s, end) {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			Start:      s,
			End:        end,
			Confidence: availableConfidence,
			Reason:     availableReason,
		})
	}
	return slots, nil
}

// filter applies SchedulingConstraints to a candidate window. A nil
// constraints value accepts everything.
type filter struct {
	c        *domain.SchedulingConstraints
	prefs    *domain.CalendarPreferences
	loc      *time.Location
	earliest time.Time
}

func newFilter(now time.Time, c *domain.SchedulingConstraints, prefs *domain.CalendarPreferences) filter {
	if prefs == nil {
		prefs = domain.DefaultCalendarPreferences(uuid.Nil)
	}
	f := filter{c: c, prefs: prefs, loc: prefs.Location(), earliest: now}
	if c != nil && c.MinNotice > 0 {
		f.earliest = now.Add(time.Duration(c.MinNotice) * time.Minute)
	}
	return f
}

func (f filter) accepts(start, end time.Time) bool {
	if f.c == nil {
		return true
	}
	if start.Before(f.earliest) {
		return false
	}

	weekday := start.In(f.loc).Weekday()
	if !f.c.AllowWeekends && (weekday == time.Saturday || weekday == time.Sunday) {
		return false
	}
	if len(f.c.PreferredDays) > 0 && !slices.Contains(f.c.PreferredDays, weekday) {
		return false
	}
	if f.c.WorkingHoursOnly && !f.prefs.WorkingHours[weekday].ContainsWindow(start, end, f.loc) {
		return false
	}
	for _, avoid := range f.c.AvoidSlots {
		if avoid.Overlaps(start, end) {
			return false
		}
	}
	return true
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
