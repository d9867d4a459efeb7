package conflict

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/slot"
)

// Detect returns one ConflictInfo for every stored event that conflicts with
// candidate, ordered by the first conflicting instance's start, then id.
// Recurring events on both sides are expanded: stored series inside the
// inspected window, the candidate over the recurrence horizon. Each stored
// event yields at most one conflict, with the strongest type found across
// all instance pairs. The candidate itself is excluded by id.
func (d *Detector) Detect(ctx context.Context, reader slot.EventReader, candidate *domain.CalendarEvent) ([]domain.ConflictInfo, error) {
	if err := candidate.ValidateInterval(); err != nil {
		return nil, err
	}

	instances := d.instances(candidate)
	from, to := d.window(instances)
	filter := domain.EventFilter{
		From:            &from,
		To:              &to,
		ExpandRecurring: true,
		ExcludeIDs:      []uuid.UUID{candidate.ID},
	}
	stored, _, err := reader.Query(ctx, filter, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("detect conflicts for %s: %w", candidate.ID, err)
	}

	var inspected []*domain.CalendarEvent
	for _, e := range stored {
		inspected = append(inspected, e.Occurrences(from, to)...)
	}
	domain.SortEvents(inspected)

	type match struct {
		other *domain.CalendarEvent
		typ   domain.ConflictType
		rank  int
	}
	var matches []*match
	byID := make(map[uuid.UUID]*match)
	for _, other := range inspected {
		if m, ok := byID[other.ID]; ok && m.rank == 0 {
			continue
		}
		typ, rank, ok := d.classify(instances, other, inspected)
		if !ok {
			continue
		}
		if m, ok := byID[other.ID]; ok {
			if rank < m.rank {
				m.typ, m.rank = typ, rank
			}
			continue
		}
		m := &match{other: other, typ: typ, rank: rank}
		byID[other.ID] = m
		matches = append(matches, m)
	}

	conflicts := []domain.ConflictInfo{}
	alternatives := make(map[time.Duration][]domain.TimeSlot)
	for _, m := range matches {
		buffer := d.cfg.ResolutionBuffer
		if m.typ == domain.ConflictOverlap {
			buffer = 0
		}
		alts, cached := alternatives[buffer]
		if !cached {
			alts, err = d.finder.FindAlternatives(ctx, reader, candidate, buffer)
			if err != nil {
				return nil, fmt.Errorf("detect conflicts for %s: %w", candidate.ID, err)
			}
			if len(alts) > d.cfg.MaxAlternatives {
				alts = alts[:d.cfg.MaxAlternatives]
			}
			alternatives[buffer] = alts
		}

		weight := max(candidate.Priority.Weight(), m.other.Priority.Weight())
		conflicts = append(conflicts, domain.ConflictInfo{
			ConflictingEventID: m.other.ID,
			Type:               m.typ,
			Severity:           d.cfg.Severity.For(weight),
			Resolution:         resolution(m.typ, m.other, alts),
		})
	}

	d.log.DebugContext(ctx, "conflicts detected",
		slog.String("event_id", candidate.ID.String()),
		slog.Int("instances", len(instances)),
		slog.Int("inspected", len(inspected)),
		slog.Int("conflicts", len(conflicts)),
	)
	return conflicts, nil
}

// instances returns the candidate's occurrences within the recurrence
// horizon, or the candidate alone when it does not recur.
func (d *Detector) instances(c *domain.CalendarEvent) []*domain.CalendarEvent {
	if !c.IsRecurring() || d.cfg.RecurrenceHorizon <= 0 {
		return []*domain.CalendarEvent{c}
	}
	occ := c.Occurrences(c.Start, c.Start.Add(d.cfg.RecurrenceHorizon))
	if len(occ) == 0 {
		return []*domain.CalendarEvent{c}
	}
	return occ
}

// window is the union, over every candidate instance, of the back-to-back
// neighbourhood and every rule span.
func (d *Detector) window(instances []*domain.CalendarEvent) (time.Time, time.Time) {
	var from, to time.Time
	for i, c := range instances {
		f, t := c.Start.Add(-d.cfg.BackToBackBuffer), c.End.Add(d.cfg.BackToBackBuffer)
		for _, r := range d.rules {
			rf, rt := r.Span(c)
			if rf.Before(f) {
				f = rf
			}
			if rt.After(t) {
				t = rt
			}
		}
		if i == 0 || f.Before(from) {
			from = f
		}
		if i == 0 || t.After(to) {
			to = t
		}
	}
	return from, to
}

// classify returns the strongest type between o and any candidate instance,
// with its rank: OVERLAP is 0, BACK_TO_BACK 1, then rules in order.
func (d *Detector) classify(instances []*domain.CalendarEvent, o *domain.CalendarEvent, inspected []*domain.CalendarEvent) (domain.ConflictType, int, bool) {
	var best domain.ConflictType
	bestRank := -1
	for _, c := range instances {
		typ, rank, ok := d.classifyPair(c, o, inspected)
		if !ok || (bestRank >= 0 && rank >= bestRank) {
			continue
		}
		best, bestRank = typ, rank
		if rank == 0 {
			break
		}
	}
	return best, bestRank, bestRank >= 0
}

func (d *Detector) classifyPair(c, o *domain.CalendarEvent, inspected []*domain.CalendarEvent) (domain.ConflictType, int, bool) {
	if domain.Overlaps(c.Start, c.End, o.Start, o.End) {
		return domain.ConflictOverlap, 0, true
	}
	if gap, ok := gapBetween(c, o); ok && gap < d.cfg.BackToBackBuffer {
		return domain.ConflictBackToBack, 1, true
	}
	for i, r := range d.rules {
		if r.Check(c, o, inspected) {
			return r.Type(), i + 2, true
		}
	}
	return "", 0, false
}

// gapBetween returns the time between the earlier event's end and the later
// event's start. ok is false when the events overlap.
func gapBetween(a, b *domain.CalendarEvent) (time.Duration, bool) {
	switch {
	case !a.End.After(b.Start):
		return b.Start.Sub(a.End), true
	case !b.End.After(a.Start):
		return a.Start.Sub(b.End), true
	}
	return 0, false
}

func resolution(typ domain.ConflictType, other *domain.CalendarEvent, alts []domain.TimeSlot) *domain.ConflictResolution {
	r := &domain.ConflictResolution{
		Type:         domain.ResolutionReschedule,
		Description:  describe(typ, other.Title),
		Alternatives: slices.Clone(alts),
	}
	if len(alts) > 0 {
		start, end := alts[0].Start, alts[0].End
		r.NewStart = &start
		r.NewEnd = &end
	}
	return r
}

func describe(typ domain.ConflictType, title string) string {
	switch typ {
	case domain.ConflictOverlap:
		return fmt.Sprintf("Overlaps with %q. Move to a free time slot.", title)
	case domain.ConflictBackToBack:
		return fmt.Sprintf("Scheduled back-to-back with %q. Move to leave a buffer between events.", title)
	case domain.ConflictTravelTime:
		return fmt.Sprintf("Not enough travel time to or from %q.", title)
	case domain.ConflictWorkload:
		return fmt.Sprintf("Too many events on the same day as %q.", title)
	default:
		return fmt.Sprintf("Conflicts with %q.", title)
	}
}
