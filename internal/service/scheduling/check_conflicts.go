package scheduling

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/pkg/ctxutil"
)

// CheckConflicts previews the conflicts a hypothetical event would have.
// Nothing is stored.
func (s *Service) CheckConflicts(ctx context.Context, input CheckConflictsInput) ([]domain.ConflictInfo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	candidate := &domain.CalendarEvent{
		ID:          uuid.New(),
		Title:       domain.NormalizeText(input.Title),
		Location:    emptyToNil(input.Location),
		Start:       input.Start.UTC(),
		End:         input.End.UTC(),
		Priority:    orDefault(input.Priority, domain.PriorityMedium),
		OrganizerID: actorID,
		Attendees:   buildAttendees(input.Attendees),
	}
	if input.ExcludeID != nil {
		candidate.ID = *input.ExcludeID
	}

	var conflicts []domain.ConflictInfo
	err := s.withBackend(ctx, "check conflicts", false, func(b Backend) error {
		return b.Tx.RunInTx(ctx, func(txCtx context.Context) error {
			var err error
			conflicts, err = s.detector.Detect(txCtx, b.Events, candidate)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling.CheckConflicts: %w", err)
	}
	return conflicts, nil
}

// RedetectConflicts recomputes an event's conflicts from scratch against the
// current store and replaces its list.
func (s *Service) RedetectConflicts(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var updated *domain.CalendarEvent
	err := s.withBackend(ctx, "redetect", true, func(b Backend) error {
		return b.Tx.RunInTx(ctx, func(txCtx context.Context) error {
			current, err := b.Events.GetByID(txCtx, id)
			if err != nil {
				return err
			}
			conflicts, err := s.detector.Detect(txCtx, b.Events, current)
			if err != nil {
				return err
			}
			current.Conflicts = conflicts
			current.UpdatedAt = s.now().UTC()
			updated, err = b.Events.Update(txCtx, current)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling.RedetectConflicts: %w", err)
	}

	s.log.InfoContext(ctx, "conflicts redetected",
		slog.String("event_id", id.String()),
		slog.Int("conflicts", len(updated.Conflicts)),
	)
	s.publish(ctx, domain.ChangeUpdated, actorID, updated.ID, updated)
	return updated, nil
}
