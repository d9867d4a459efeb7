// Package slot searches the calendar for free time windows and scores them.
package slot

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// EventReader is the read side of an event store.
type EventReader interface {
	Query(ctx context.Context, filter domain.EventFilter, page, pageSize int) ([]*domain.CalendarEvent, int, error)
}

// FreeBusy reports when attendees are busy outside this calendar.
type FreeBusy interface {
	Busy(ctx context.Context, emails []string, from, to time.Time) ([]domain.TimeSlot, error)
}

const (
	alternativeConfidence = 0.8
	alternativeReason     = "Available time slot."
	availableConfidence   = 0.7
	availableReason       = "Available during working hours."
)

// Config bounds both searches.
type Config struct {
	AlternativesHorizon time.Duration
	AvailabilityHorizon time.Duration
	Step                time.Duration
	MaxAlternatives     int
	MaxAvailable        int
}

// DefaultConfig returns a 7-day alternatives scan and a 30-day availability
// scan at 1-hour granularity, capped at 3 and 10 slots.
func DefaultConfig() Config {
	return Config{
		AlternativesHorizon: 7 * 24 * time.Hour,
		AvailabilityHorizon: 30 * 24 * time.Hour,
		Step:                time.Hour,
		MaxAlternatives:     3,
		MaxAvailable:        10,
	}
}

// Engine finds free slots. It holds no state besides its configuration.
type Engine struct {
	cfg      Config
	freeBusy FreeBusy
	now      func() time.Time
	log      *slog.Logger
}

// NewEngine creates a slot search engine. freeBusy may be nil.
func NewEngine(log *slog.Logger, cfg Config, freeBusy FreeBusy) *Engine {
	return &Engine{
		cfg:      cfg,
		freeBusy: freeBusy,
		now:      time.Now,
		log:      log.With("service", "slot"),
	}
}

// busyIntervals loads every stored event instance overlapping [from, to),
// skipping exclude, as sorted intervals.
func busyIntervals(ctx context.Context, reader EventReader, from, to time.Time, exclude ...uuid.UUID) ([]domain.TimeSlot, error) {
	filter := domain.EventFilter{From: &from, To: &to, ExpandRecurring: true, ExcludeIDs: exclude}

	events, _, err := reader.Query(ctx, filter, 1, 0)
	if err != nil {
		return nil, err
	}

	var busy []domain.TimeSlot
	for _, e := range events {
		for _, occ := range e.Occurrences(from, to) {
			busy = append(busy, domain.TimeSlot{Start: occ.Start, End: occ.End})
		}
	}
	return busy, nil
}

func overlapsAny(busy []domain.TimeSlot, start, end time.Time) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
