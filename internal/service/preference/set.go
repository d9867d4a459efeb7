package preference

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// Set replaces the user's preferences wholesale and returns the stored
// value. Last write wins.
func (s *Service) Set(ctx context.Context, userID uuid.UUID, p *domain.CalendarPreferences) (*domain.CalendarPreferences, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	stored := p.Clone()
	stored.UserID = userID
	stored.UpdatedAt = s.now().UTC()
	if err := s.prefs.Upsert(ctx, stored); err != nil {
		return nil, fmt.Errorf("preference.Set: %w", err)
	}

	s.log.InfoContext(ctx, "preferences updated",
		slog.String("user_id", userID.String()),
		slog.String("time_zone", stored.TimeZone))
	return stored, nil
}
