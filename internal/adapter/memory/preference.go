package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// PrefStore keeps calendar preferences per user.
type PrefStore struct {
	mu    sync.RWMutex
	prefs map[uuid.UUID]*domain.CalendarPreferences
}

// NewPrefStore creates an empty preference store.
func NewPrefStore() *PrefStore {
	return &PrefStore{prefs: make(map[uuid.UUID]*domain.CalendarPreferences)}
}

// Get returns the stored preferences. Returns domain.ErrNotFound when the
// user has none yet.
func (s *PrefStore) Get(_ context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[userID]
	if !ok {
		return nil, fmt.Errorf("preferences %s: %w", userID, domain.ErrNotFound)
	}
	return p.Clone(), nil
}

// Upsert replaces the user's preferences wholesale.
func (s *PrefStore) Upsert(_ context.Context, p *domain.CalendarPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[p.UserID] = p.Clone()
	return nil
}
