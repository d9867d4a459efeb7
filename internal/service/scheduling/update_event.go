package scheduling

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/pkg/ctxutil"
)

// UpdateEvent applies a partial update. Conflicts are recomputed only when
// the start, end, recurrence or attendees change; otherwise the stored list
// is kept as is. Returns domain.ErrNotFound if the event does not exist.
func (s *Service) UpdateEvent(ctx context.Context, input UpdateEventInput) (*domain.CalendarEvent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var updated *domain.CalendarEvent
	var redetected bool
	err := s.withBackend(ctx, "update", true, func(b Backend) error {
		return b.Tx.RunInTx(ctx, func(txCtx context.Context) error {
			current, err := b.Events.GetByID(txCtx, input.ID)
			if err != nil {
				return err
			}

			next := applyUpdate(current, input)
			next.UpdatedAt = s.now().UTC()
			if err := next.ValidateInterval(); err != nil {
				return err
			}
			if errs := validateRecurrence(next.Recurrence, next.Start); len(errs) > 0 {
				return &domain.ValidationError{Errors: errs}
			}

			redetected = needsRedetection(current, next)
			if redetected {
				conflicts, err := s.detector.Detect(txCtx, b.Events, next)
				if err != nil {
					return err
				}
				next.Conflicts = conflicts
			}

			updated, err = b.Events.Update(txCtx, next)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling.UpdateEvent: %w", err)
	}

	s.log.InfoContext(ctx, "event updated",
		slog.String("event_id", updated.ID.String()),
		slog.Bool("redetected", redetected),
		slog.Int("conflicts", len(updated.Conflicts)),
	)
	s.publish(ctx, domain.ChangeUpdated, actorID, updated.ID, updated)
	return updated, nil
}

func applyUpdate(current *domain.CalendarEvent, in UpdateEventInput) *domain.CalendarEvent {
	next := current.Clone()

	if in.Title != nil {
		next.Title = domain.NormalizeText(*in.Title)
	}
	if in.Description != nil {
		next.Description = emptyToNil(in.Description)
	}
	if in.Location != nil {
		next.Location = emptyToNil(in.Location)
	}
	if in.Start != nil {
		next.Start = in.Start.UTC()
	}
	if in.End != nil {
		next.End = in.End.UTC()
	}
	if in.AllDay != nil {
		next.AllDay = *in.AllDay
	}
	if in.Type != nil {
		next.Type = *in.Type
	}
	if in.Priority != nil {
		next.Priority = *in.Priority
	}
	if in.Status != nil {
		next.Status = *in.Status
	}
	if in.Attendees != nil {
		next.Attendees = buildAttendees(*in.Attendees)
	}
	if in.Recurrence != nil {
		next.Recurrence = emptyToNil(in.Recurrence)
	}
	if in.ProjectID != nil {
		next.ProjectID = in.ProjectID
	}
	if in.ClientID != nil {
		next.ClientID = in.ClientID
	}
	return next
}

func needsRedetection(current, next *domain.CalendarEvent) bool {
	return !current.Start.Equal(next.Start) ||
		!current.End.Equal(next.End) ||
		!current.SameAttendees(next) ||
		current.IsRecurring() != next.IsRecurring() ||
		(next.IsRecurring() && *current.Recurrence != *next.Recurrence)
}
