package preference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// Get returns the user's preferences. On first access the defaults are
// stored and returned. When the store is unavailable the defaults are
// returned without being stored, so reads keep working during an outage.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error) {
	p, err := s.prefs.Get(ctx, userID)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, domain.ErrStorageUnavailable):
		return s.unstoredDefaults(ctx, userID, err), nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("preference.Get: %w", err)
	}

	p = domain.DefaultCalendarPreferences(userID)
	p.UpdatedAt = s.now().UTC()
	if err := s.prefs.Upsert(ctx, p); err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return s.unstoredDefaults(ctx, userID, err), nil
		}
		return nil, fmt.Errorf("preference.Get: store defaults: %w", err)
	}

	s.log.InfoContext(ctx, "default preferences initialized",
		slog.String("user_id", userID.String()))
	return p, nil
}

func (s *Service) unstoredDefaults(ctx context.Context, userID uuid.UUID, cause error) *domain.CalendarPreferences {
	s.log.WarnContext(ctx, "preference store unavailable, serving defaults",
		slog.String("user_id", userID.String()),
		slog.String("error", cause.Error()),
	)
	p := domain.DefaultCalendarPreferences(userID)
	p.UpdatedAt = s.now().UTC()
	return p
}
