package scheduling

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/pkg/ctxutil"
)

// GetEvent returns a stored event. Returns domain.ErrNotFound if absent.
func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	var e *domain.CalendarEvent
	err := s.withBackend(ctx, "get", true, func(b Backend) error {
		var err error
		e, err = b.Events.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling.GetEvent: %w", err)
	}
	return e, nil
}

// EventList is one page of events.
type EventList struct {
	Events   []*domain.CalendarEvent
	Total    int
	Page     int
	PageSize int
}

// ListEvents returns events matching the filter in start order.
func (s *Service) ListEvents(ctx context.Context, input ListEventsInput) (*EventList, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	page := max(input.Page, 1)
	list := &EventList{Page: page, PageSize: input.PageSize}
	err := s.withBackend(ctx, "list", false, func(b Backend) error {
		var err error
		list.Events, list.Total, err = b.Events.Query(ctx, input.Filter, page, input.PageSize)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling.ListEvents: %w", err)
	}
	return list, nil
}
