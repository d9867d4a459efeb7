// Package memory implements the calendar stores in process memory. It backs
// the "memory" storage driver and serves as the fallback when the durable
// backend is unavailable. Events returned from it are never Durable.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// EventStore keeps events keyed by id. Stored values are cloned on the way
// in and out, so callers never share state with the store.
type EventStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID]*domain.CalendarEvent
}

// NewEventStore creates an empty event store.
func NewEventStore() *EventStore {
	return &EventStore{events: make(map[uuid.UUID]*domain.CalendarEvent)}
}

// GetByID returns an event by id. Returns domain.ErrNotFound if absent.
func (s *EventStore) GetByID(_ context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return e.Clone(), nil
}

// Query returns events matching filter ordered by start, id and the total
// match count. page is 1-based; pageSize <= 0 returns all matches.
func (s *EventStore) Query(_ context.Context, filter domain.EventFilter, page, pageSize int) ([]*domain.CalendarEvent, int, error) {
	s.mu.RLock()
	matched := make([]*domain.CalendarEvent, 0, len(s.events))
	for _, e := range s.events {
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}
	s.mu.RUnlock()

	domain.SortEvents(matched)
	total := len(matched)
	matched = domain.Paginate(matched, page, pageSize)

	out := make([]*domain.CalendarEvent, len(matched))
	for i, e := range matched {
		out[i] = e.Clone()
	}
	return out, total, nil
}

// Create stores a new event. The id must not be in use.
func (s *EventStore) Create(_ context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if err := e.ValidateInterval(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[e.ID]; ok {
		return nil, domain.NewValidationError("id", fmt.Sprintf("event %s already exists", e.ID))
	}
	stored := e.Clone()
	stored.Durable = false
	s.events[e.ID] = stored
	return stored.Clone(), nil
}

// Update replaces a stored event. Returns domain.ErrNotFound if absent.
func (s *EventStore) Update(_ context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if err := e.ValidateInterval(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.events[e.ID]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", e.ID, domain.ErrNotFound)
	}
	stored := e.Clone()
	stored.CreatedAt = prev.CreatedAt
	stored.Durable = false
	s.events[e.ID] = stored
	return stored.Clone(), nil
}

// Delete removes an event. Returns domain.ErrNotFound if absent.
func (s *EventStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	delete(s.events, id)
	return nil
}

// Len returns the number of stored events.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func (s *EventStore) snapshot() map[uuid.UUID]*domain.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.events)
}

func (s *EventStore) restore(events map[uuid.UUID]*domain.CalendarEvent) {
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
}
