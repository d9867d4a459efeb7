package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/eventjson"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

const upsertPrefsSQL = `
INSERT INTO calendar_preferences (user_id, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

// PrefRepo stores calendar preferences as one JSON document per user.
type PrefRepo struct {
	db *sql.DB
}

// NewPrefRepo creates a new preference repository.
func NewPrefRepo(db *sql.DB) *PrefRepo {
	return &PrefRepo{db: db}
}

// Get returns the stored preferences. Returns domain.ErrNotFound when the
// user has none yet.
func (r *PrefRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error) {
	var data string
	err := querierFromCtx(ctx, r.db).
		QueryRowContext(ctx, `SELECT data FROM calendar_preferences WHERE user_id = ?`, userID.String()).
		Scan(&data)
	if err != nil {
		return nil, mapError(err, "preferences "+userID.String())
	}

	p, err := eventjson.UnmarshalPreferences([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("preferences %s: %w", userID, err)
	}
	p.UserID = userID
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

// Upsert replaces the user's preferences wholesale.
func (r *PrefRepo) Upsert(ctx context.Context, p *domain.CalendarPreferences) error {
	data, err := eventjson.MarshalPreferences(p)
	if err != nil {
		return err
	}
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	_, err = querierFromCtx(ctx, r.db).ExecContext(ctx, upsertPrefsSQL, p.UserID.String(), string(data), updated.UnixNano())
	if err != nil {
		return mapError(err, "preferences "+p.UserID.String())
	}
	return nil
}
