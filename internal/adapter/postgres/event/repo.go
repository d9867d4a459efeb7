// Package event implements the calendar event store using PostgreSQL.
// Filters are built with squirrel; rows are scanned with scany. Nested parts
// of an event (attendees, conflicts, AI bundle) live in JSONB columns.
package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/eventjson"
	postgres "github.com/heartmarshall/bizdash-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

const table = "calendar_events"

var columns = []string{
	"id", "title", "description", "location", "start_at", "end_at", "all_day",
	"type", "priority", "status", "organizer_id", "attendees", "recurrence",
	"conflicts", "ai_suggestions", "project_id", "client_id", "created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// row mirrors one calendar_events record.
type row struct {
	ID            uuid.UUID  `db:"id"`
	Title         string     `db:"title"`
	Description   *string    `db:"description"`
	Location      *string    `db:"location"`
	StartAt       time.Time  `db:"start_at"`
	EndAt         time.Time  `db:"end_at"`
	AllDay        bool       `db:"all_day"`
	Type          string     `db:"type"`
	Priority      string     `db:"priority"`
	Status        string     `db:"status"`
	OrganizerID   uuid.UUID  `db:"organizer_id"`
	Attendees     []byte     `db:"attendees"`
	Recurrence    *string    `db:"recurrence"`
	Conflicts     []byte     `db:"conflicts"`
	AISuggestions []byte     `db:"ai_suggestions"`
	ProjectID     *uuid.UUID `db:"project_id"`
	ClientID      *uuid.UUID `db:"client_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an event by primary key.
// Returns domain.ErrNotFound if the event does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	query, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get event: %w", err)
	}

	var rec row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rec, query, args...); err != nil {
		return nil, mapError(err, "event", id)
	}
	return toDomain(rec)
}

// Query returns events matching filter ordered by start_at, id together with
// the total match count. page is 1-based; pageSize <= 0 returns all rows.
func (r *Repo) Query(ctx context.Context, filter domain.EventFilter, page, pageSize int) ([]*domain.CalendarEvent, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	where := buildWhere(filter)

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count events: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, mapError(err, "events", uuid.Nil)
	}

	sel := psql.Select(columns...).From(table).Where(where).OrderBy("start_at ASC", "id ASC")
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		sel = sel.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))
	}
	query, args, err := sel.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query events: %w", err)
	}

	var recs []row
	if err := pgxscan.Select(ctx, q, &recs, query, args...); err != nil {
		return nil, 0, mapError(err, "events", uuid.Nil)
	}

	events := make([]*domain.CalendarEvent, 0, len(recs))
	for _, rec := range recs {
		e, err := toDomain(rec)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts the event and returns the stored row.
func (r *Repo) Create(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	vals, err := values(e)
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Insert(table).
		SetMap(vals).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert event: %w", err)
	}

	var rec row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rec, query, args...); err != nil {
		return nil, mapError(err, "event", e.ID)
	}
	return toDomain(rec)
}

// Update replaces every mutable column of the event.
// Returns domain.ErrNotFound if the event does not exist.
func (r *Repo) Update(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	vals, err := values(e)
	if err != nil {
		return nil, err
	}
	delete(vals, "id")
	delete(vals, "created_at")

	query, args, err := psql.Update(table).
		SetMap(vals).
		Where(sq.Eq{"id": e.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update event: %w", err)
	}

	var rec row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rec, query, args...); err != nil {
		return nil, mapError(err, "event", e.ID)
	}
	return toDomain(rec)
}

// Delete removes an event. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete event: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "event", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func buildWhere(f domain.EventFilter) sq.And {
	where := sq.And{}
	if f.From != nil {
		var from sq.Sqlizer = sq.Gt{"end_at": *f.From}
		if f.ExpandRecurring {
			from = sq.Or{from, sq.And{sq.NotEq{"recurrence": nil}, sq.NotEq{"recurrence": ""}}}
		}
		where = append(where, from)
	}
	if f.To != nil {
		where = append(where, sq.Lt{"start_at": *f.To})
	}
	if len(f.Types) > 0 {
		where = append(where, sq.Eq{"type": toStrings(f.Types)})
	}
	if len(f.Priorities) > 0 {
		where = append(where, sq.Eq{"priority": toStrings(f.Priorities)})
	}
	if len(f.Statuses) > 0 {
		where = append(where, sq.Eq{"status": toStrings(f.Statuses)})
	}
	if f.ProjectID != nil {
		where = append(where, sq.Eq{"project_id": *f.ProjectID})
	}
	if f.ClientID != nil {
		where = append(where, sq.Eq{"client_id": *f.ClientID})
	}
	if f.AttendeeEmail != nil {
		where = append(where, sq.Expr(
			"EXISTS (SELECT 1 FROM jsonb_array_elements(attendees) a WHERE lower(a->>'email') = ?)",
			domain.NormalizeEmail(*f.AttendeeEmail),
		))
	}
	if f.Search != nil {
		if s := strings.TrimSpace(*f.Search); s != "" {
			pattern := "%" + escapeLike(s) + "%"
			where = append(where, sq.Or{
				sq.ILike{"title": pattern},
				sq.ILike{"description": pattern},
				sq.ILike{"location": pattern},
			})
		}
	}
	if len(f.ExcludeIDs) > 0 {
		where = append(where, sq.NotEq{"id": f.ExcludeIDs})
	}
	return where
}

func values(e *domain.CalendarEvent) (map[string]any, error) {
	attendees, err := eventjson.MarshalAttendees(e.Attendees)
	if err != nil {
		return nil, err
	}
	conflicts, err := eventjson.MarshalConflicts(e.Conflicts)
	if err != nil {
		return nil, err
	}
	suggestions, err := eventjson.MarshalSuggestions(e.AISuggestions)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"id":             e.ID,
		"title":          e.Title,
		"description":    e.Description,
		"location":       e.Location,
		"start_at":       e.Start.UTC(),
		"end_at":         e.End.UTC(),
		"all_day":        e.AllDay,
		"type":           string(e.Type),
		"priority":       string(e.Priority),
		"status":         string(e.Status),
		"organizer_id":   e.OrganizerID,
		"attendees":      attendees,
		"recurrence":     e.Recurrence,
		"conflicts":      conflicts,
		"ai_suggestions": suggestions,
		"project_id":     e.ProjectID,
		"client_id":      e.ClientID,
		"created_at":     e.CreatedAt.UTC(),
		"updated_at":     e.UpdatedAt.UTC(),
	}, nil
}

func toDomain(r row) (*domain.CalendarEvent, error) {
	attendees, err := eventjson.UnmarshalAttendees(r.Attendees)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", r.ID, err)
	}
	conflicts, err := eventjson.UnmarshalConflicts(r.Conflicts)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", r.ID, err)
	}
	suggestions, err := eventjson.UnmarshalSuggestions(r.AISuggestions)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", r.ID, err)
	}

	return &domain.CalendarEvent{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		Start:         r.StartAt.UTC(),
		End:           r.EndAt.UTC(),
		AllDay:        r.AllDay,
		Type:          domain.EventType(r.Type),
		Priority:      domain.Priority(r.Priority),
		Status:        domain.EventStatus(r.Status),
		OrganizerID:   r.OrganizerID,
		Attendees:     attendees,
		Recurrence:    r.Recurrence,
		Conflicts:     conflicts,
		AISuggestions: suggestions,
		ProjectID:     r.ProjectID,
		ClientID:      r.ClientID,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
		Durable:       true,
	}, nil
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// mapError converts pgx/pgconn errors to domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23514" {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrInvalidInterval)
	}

	if postgres.IsUnavailable(err) {
		return fmt.Errorf("%s %s: %w: %v", entity, id, domain.ErrStorageUnavailable, err)
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
