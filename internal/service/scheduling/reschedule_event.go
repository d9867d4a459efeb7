package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// RescheduleEvent moves an event to an accepted slot, typically one of the
// alternatives of a conflict resolution.
func (s *Service) RescheduleEvent(ctx context.Context, id uuid.UUID, to domain.TimeSlot) (*domain.CalendarEvent, error) {
	if !to.End.After(to.Start) {
		return nil, intervalError(to.Start, to.End)
	}
	return s.UpdateEvent(ctx, UpdateEventInput{ID: id, Start: &to.Start, End: &to.End})
}
