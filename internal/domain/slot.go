package domain

import "time"

// TimeSlot is a candidate contiguous window. Produced and consumed by value.
type TimeSlot struct {
	Start      time.Time
	End        time.Time
	Confidence float64
	Reason     string
}

// NewTimeSlot builds a slot, rejecting End before Start with ErrInvalidInterval.
// Confidence is clamped to [0,1].
func NewTimeSlot(start, end time.Time, confidence float64, reason string) (TimeSlot, error) {
	if end.Before(start) {
		return TimeSlot{}, &IntervalError{
			Field: "slot",
			Start: start.Format(time.RFC3339),
			End:   end.Format(time.RFC3339),
		}
	}
	return TimeSlot{
		Start:      start,
		End:        end,
		Confidence: ClampUnit(confidence),
		Reason:     reason,
	}, nil
}

// Duration returns End - Start.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports half-open intersection with [start, end).
func (s TimeSlot) Overlaps(start, end time.Time) bool {
	return Overlaps(s.Start, s.End, start, end)
}

// OverlapDuration returns how much of [start, end) the slot covers.
func (s TimeSlot) OverlapDuration(start, end time.Time) time.Duration {
	lo := s.Start
	if start.After(lo) {
		lo = start
	}
	hi := s.End
	if end.Before(hi) {
		hi = end
	}
	if !hi.After(lo) {
		return 0
	}
	return hi.Sub(lo)
}

// ClampUnit restricts v to [0,1].
func ClampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
