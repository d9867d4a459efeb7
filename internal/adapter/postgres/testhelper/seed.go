package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// SeedEvent inserts a minimal confirmed meeting occupying [start, start+dur)
// and returns it. Nested JSON columns take their defaults.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, title string, start time.Time, dur time.Duration) domain.CalendarEvent {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.CalendarEvent{
		ID:          uuid.New(),
		Title:       title,
		Start:       start.UTC().Truncate(time.Microsecond),
		End:         start.Add(dur).UTC().Truncate(time.Microsecond),
		Type:        domain.EventTypeMeeting,
		Priority:    domain.PriorityMedium,
		Status:      domain.EventStatusConfirmed,
		OrganizerID: uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Durable:     true,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO calendar_events (id, title, start_at, end_at, type, priority, status, organizer_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.Title, e.Start, e.End, string(e.Type), string(e.Priority), string(e.Status), e.OrganizerID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent insert: %v", err)
	}

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM calendar_events WHERE id = $1`, e.ID)
	})

	return e
}
