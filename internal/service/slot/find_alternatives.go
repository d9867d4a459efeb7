package slot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// FindAlternatives scans the horizon after the event's start, one step at a
// time beginning one step after it, for windows of the event's duration plus
// buffer that overlap no stored event other than the event itself. Returned
// slots have the event's duration; the buffer only has to be free.
func (e *Engine) FindAlternatives(ctx context.Context, reader EventReader, event *domain.CalendarEvent, buffer time.Duration) ([]domain.TimeSlot, error) {
	dur := event.Duration()
	if dur <= 0 {
		return nil, event.ValidateInterval()
	}
	if buffer < 0 {
		buffer = 0
	}

	first := event.Start.Add(e.cfg.Step)
	last := event.Start.Add(e.cfg.AlternativesHorizon)
	busy, err := busyIntervals(ctx, reader, first, last.Add(dur+buffer), event.ID)
	if err != nil {
		return nil, fmt.Errorf("find alternatives for %s: %w", event.ID, err)
	}

	slots := make([]domain.TimeSlot, 0, e.cfg.MaxAlternatives)
	for s := first; !s.After(last) && len(slots) < e.cfg.MaxAlternatives; s = s.Add(e.cfg.Step) {
		if overlapsAny(busy, s, s.Add(dur+buffer)) {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			Start:      s,
			End:        s.Add(dur),
			Confidence: alternativeConfidence,
			Reason:     alternativeReason,
		})
	}

	e.log.DebugContext(ctx, "alternatives found",
		slog.String("event_id", event.ID.String()),
		slog.Duration("buffer", buffer),
		slog.Int("count", len(slots)),
	)
	return slots, nil
}
