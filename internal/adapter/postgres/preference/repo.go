// Package preference implements the calendar preference store using PostgreSQL.
package preference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/eventjson"
	postgres "github.com/heartmarshall/bizdash-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

const getSQL = `
SELECT user_id, default_view, working_hours, time_zone, week_start,
       default_duration, default_reminders, quiet_hours, updated_at
FROM calendar_preferences
WHERE user_id = $1`

const upsertSQL = `
INSERT INTO calendar_preferences (
    user_id, default_view, working_hours, time_zone, week_start,
    default_duration, default_reminders, quiet_hours, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (user_id) DO UPDATE SET
    default_view      = EXCLUDED.default_view,
    working_hours     = EXCLUDED.working_hours,
    time_zone         = EXCLUDED.time_zone,
    week_start        = EXCLUDED.week_start,
    default_duration  = EXCLUDED.default_duration,
    default_reminders = EXCLUDED.default_reminders,
    quiet_hours       = EXCLUDED.quiet_hours,
    updated_at        = EXCLUDED.updated_at`

// Repo provides preference persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new preference repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the stored preferences. Returns domain.ErrNotFound when the
// user has none yet.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error) {
	var (
		p            domain.CalendarPreferences
		view         string
		workingHours []byte
		weekStart    int16
		reminders    []int32
		quietHours   []byte
	)

	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getSQL, userID).Scan(
		&p.UserID, &view, &workingHours, &p.TimeZone, &weekStart,
		&p.DefaultDuration, &reminders, &quietHours, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, userID)
	}

	p.DefaultView = domain.CalendarView(view)
	p.WeekStart = time.Weekday(weekStart)
	p.UpdatedAt = p.UpdatedAt.UTC()
	for _, m := range reminders {
		p.DefaultReminders = append(p.DefaultReminders, int(m))
	}
	if p.WorkingHours, err = eventjson.UnmarshalWorkingHours(workingHours); err != nil {
		return nil, fmt.Errorf("preferences %s: %w", userID, err)
	}
	if p.QuietHours, err = eventjson.UnmarshalQuietHours(quietHours); err != nil {
		return nil, fmt.Errorf("preferences %s: %w", userID, err)
	}
	return &p, nil
}

// Upsert replaces the user's preferences wholesale.
func (r *Repo) Upsert(ctx context.Context, p *domain.CalendarPreferences) error {
	workingHours, err := eventjson.MarshalWorkingHours(p.WorkingHours)
	if err != nil {
		return err
	}
	quietHours, err := eventjson.MarshalQuietHours(p.QuietHours)
	if err != nil {
		return err
	}
	reminders := make([]int32, len(p.DefaultReminders))
	for i, m := range p.DefaultReminders {
		reminders[i] = int32(m)
	}

	_, err = postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, upsertSQL,
		p.UserID, string(p.DefaultView), workingHours, p.TimeZone, int16(p.WeekStart),
		p.DefaultDuration, reminders, quietHours, p.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapError(err, p.UserID)
	}
	return nil
}

func mapError(err error, userID uuid.UUID) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("preferences %s: %w", userID, domain.ErrNotFound)
	}
	if postgres.IsUnavailable(err) {
		return fmt.Errorf("preferences %s: %w: %v", userID, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("preferences %s: %w", userID, err)
}
