package conflict

import (
	"strings"
	"time"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// Rule is an additional conflict predicate backed by data the core does not
// own, such as locations or per-day capacity.
type Rule interface {
	Type() domain.ConflictType
	// Span returns the window around the candidate the rule needs to inspect.
	Span(candidate *domain.CalendarEvent) (from, to time.Time)
	// Check reports whether other conflicts with candidate. inspected holds
	// every stored event instance in the detection window.
	Check(candidate, other *domain.CalendarEvent, inspected []*domain.CalendarEvent) bool
}

// TravelEstimator returns the time needed to get from one location to another.
type TravelEstimator func(from, to string) time.Duration

// FixedTravelTime assumes d between any two different locations.
func FixedTravelTime(d time.Duration) TravelEstimator {
	return func(from, to string) time.Duration {
		if strings.EqualFold(strings.TrimSpace(from), strings.TrimSpace(to)) {
			return 0
		}
		return d
	}
}

// TravelTimeRule flags non-overlapping events at different locations whose
// gap is shorter than the estimated travel time.
type TravelTimeRule struct {
	estimate  TravelEstimator
	maxTravel time.Duration
}

// NewTravelTimeRule creates a travel time rule. maxTravel bounds the
// estimator and therefore the inspected window.
func NewTravelTimeRule(estimate TravelEstimator, maxTravel time.Duration) *TravelTimeRule {
	return &TravelTimeRule{estimate: estimate, maxTravel: maxTravel}
}

func (r *TravelTimeRule) Type() domain.ConflictType { return domain.ConflictTravelTime }

func (r *TravelTimeRule) Span(c *domain.CalendarEvent) (time.Time, time.Time) {
	return c.Start.Add(-r.maxTravel), c.End.Add(r.maxTravel)
}

func (r *TravelTimeRule) Check(c, o *domain.CalendarEvent, _ []*domain.CalendarEvent) bool {
	from, to, ok := locations(c, o)
	if !ok {
		return false
	}
	gap, ok := gapBetween(c, o)
	if !ok {
		return false
	}
	need := min(r.estimate(from, to), r.maxTravel)
	return gap < need
}

// locations returns the locations in travel order: the earlier event's first.
func locations(c, o *domain.CalendarEvent) (string, string, bool) {
	if c.Location == nil || o.Location == nil {
		return "", "", false
	}
	a, b := strings.TrimSpace(*c.Location), strings.TrimSpace(*o.Location)
	if a == "" || b == "" {
		return "", "", false
	}
	if o.Start.Before(c.Start) {
		return b, a, true
	}
	return a, b, true
}

// WorkloadRule flags every other event on a UTC day that holds more than
// maxPerDay events including the candidate.
type WorkloadRule struct {
	maxPerDay int
}

// NewWorkloadRule creates a per-day capacity rule.
func NewWorkloadRule(maxPerDay int) *WorkloadRule {
	return &WorkloadRule{maxPerDay: maxPerDay}
}

func (r *WorkloadRule) Type() domain.ConflictType { return domain.ConflictWorkload }

func (r *WorkloadRule) Span(c *domain.CalendarEvent) (time.Time, time.Time) {
	day := dayOf(c.Start)
	return day, day.Add(24 * time.Hour)
}

func (r *WorkloadRule) Check(c, o *domain.CalendarEvent, inspected []*domain.CalendarEvent) bool {
	dayStart, dayEnd := r.Span(c)
	if !domain.Overlaps(o.Start, o.End, dayStart, dayEnd) {
		return false
	}
	n := 1
	for _, e := range inspected {
		if domain.Overlaps(e.Start, e.End, dayStart, dayEnd) {
			n++
		}
	}
	return n > r.maxPerDay
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
