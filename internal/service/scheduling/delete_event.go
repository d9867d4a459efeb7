package scheduling

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/pkg/ctxutil"
)

// DeleteEvent removes an event. Returns domain.ErrNotFound if it does not
// exist. Conflict lists of other events referencing it are left to the next
// re-detection.
func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.withBackend(ctx, "delete", true, func(b Backend) error {
		return b.Tx.RunInTx(ctx, func(txCtx context.Context) error {
			return b.Events.Delete(txCtx, id)
		})
	})
	if err != nil {
		return fmt.Errorf("scheduling.DeleteEvent: %w", err)
	}

	s.log.InfoContext(ctx, "event deleted", slog.String("event_id", id.String()))
	s.publish(ctx, domain.ChangeDeleted, actorID, id, nil)
	return nil
}
