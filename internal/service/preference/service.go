// Package preference manages per-user calendar preferences.
package preference

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

type prefRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error)
	Upsert(ctx context.Context, p *domain.CalendarPreferences) error
}

// Service provides preference reads and wholesale replacement.
type Service struct {
	prefs prefRepo
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a new preference service.
func NewService(log *slog.Logger, prefs prefRepo) *Service {
	return &Service{
		prefs: prefs,
		now:   time.Now,
		log:   log.With("service", "preference"),
	}
}
