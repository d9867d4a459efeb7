package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/eventjson"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

const eventsTable = "calendar_events"

var eventColumns = []string{
	"id", "title", "description", "location", "start_at", "end_at", "all_day",
	"type", "priority", "status", "organizer_id", "attendees", "recurrence",
	"conflicts", "ai_suggestions", "project_id", "client_id", "created_at", "updated_at",
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// EventRepo provides event persistence backed by SQLite.
// Instants are stored as UTC unix nanoseconds.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo creates a new event repository.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// GetByID returns an event by primary key.
// Returns domain.ErrNotFound if the event does not exist.
func (r *EventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	query, args, err := builder.Select(eventColumns...).From(eventsTable).Where(sq.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get event: %w", err)
	}

	e, err := scanEvent(querierFromCtx(ctx, r.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "event "+id.String())
	}
	return e, nil
}

// Query returns events matching filter ordered by start, id together with the
// total match count. page is 1-based; pageSize <= 0 returns all rows.
func (r *EventRepo) Query(ctx context.Context, filter domain.EventFilter, page, pageSize int) ([]*domain.CalendarEvent, int, error) {
	q := querierFromCtx(ctx, r.db)
	where := buildWhere(filter)

	countQuery, countArgs, err := builder.Select("COUNT(*)").From(eventsTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count events: %w", err)
	}
	var total int
	if err := q.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, mapError(err, "count events")
	}

	sel := builder.Select(eventColumns...).From(eventsTable).Where(where).OrderBy("start_at ASC", "id ASC")
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

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err, "query events")
	}
	defer rows.Close()

	events := []*domain.CalendarEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, mapError(err, "scan event")
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "query events")
	}
	return events, total, nil
}

// Create inserts the event and returns the stored row.
func (r *EventRepo) Create(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	vals, err := eventValues(e)
	if err != nil {
		return nil, err
	}

	query, args, err := builder.Insert(eventsTable).SetMap(vals).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert event: %w", err)
	}
	if _, err := querierFromCtx(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return nil, mapError(err, "event "+e.ID.String())
	}
	return r.GetByID(ctx, e.ID)
}

// Update replaces every mutable column of the event.
// Returns domain.ErrNotFound if the event does not exist.
func (r *EventRepo) Update(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	vals, err := eventValues(e)
	if err != nil {
		return nil, err
	}
	delete(vals, "id")
	delete(vals, "created_at")

	query, args, err := builder.Update(eventsTable).SetMap(vals).Where(sq.Eq{"id": e.ID.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update event: %w", err)
	}
	res, err := querierFromCtx(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "event "+e.ID.String())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("event %s: %w", e.ID, domain.ErrNotFound)
	}
	return r.GetByID(ctx, e.ID)
}

// Delete removes an event. Returns domain.ErrNotFound if nothing was deleted.
func (r *EventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := builder.Delete(eventsTable).Where(sq.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete event: %w", err)
	}
	res, err := querierFromCtx(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "event "+id.String())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func buildWhere(f domain.EventFilter) sq.And {
	where := sq.And{}
	if f.From != nil {
		var from sq.Sqlizer = sq.Gt{"end_at": f.From.UnixNano()}
		if f.ExpandRecurring {
			from = sq.Or{from, sq.And{sq.NotEq{"recurrence": nil}, sq.NotEq{"recurrence": ""}}}
		}
		where = append(where, from)
	}
	if f.To != nil {
		where = append(where, sq.Lt{"start_at": f.To.UnixNano()})
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
		where = append(where, sq.Eq{"project_id": f.ProjectID.String()})
	}
	if f.ClientID != nil {
		where = append(where, sq.Eq{"client_id": f.ClientID.String()})
	}
	if f.AttendeeEmail != nil {
		where = append(where, sq.Expr(
			"EXISTS (SELECT 1 FROM json_each(attendees) a WHERE lower(json_extract(a.value, '$.email')) = ?)",
			domain.NormalizeEmail(*f.AttendeeEmail),
		))
	}
	if f.Search != nil {
		if s := strings.TrimSpace(*f.Search); s != "" {
			pattern := "%" + escapeLike(strings.ToLower(s)) + "%"
			where = append(where, sq.Or{
				sq.Expr(`lower(title) LIKE ? ESCAPE '\'`, pattern),
				sq.Expr(`lower(coalesce(description, '')) LIKE ? ESCAPE '\'`, pattern),
				sq.Expr(`lower(coalesce(location, '')) LIKE ? ESCAPE '\'`, pattern),
			})
		}
	}
	if len(f.ExcludeIDs) > 0 {
		ids := make([]string, len(f.ExcludeIDs))
		for i, id := range f.ExcludeIDs {
			ids[i] = id.String()
		}
		where = append(where, sq.NotEq{"id": ids})
	}
	return where
}

func eventValues(e *domain.CalendarEvent) (map[string]any, error) {
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

	var aiCol any
	if suggestions != nil {
		aiCol = string(suggestions)
	}

	return map[string]any{
		"id":             e.ID.String(),
		"title":          e.Title,
		"description":    e.Description,
		"location":       e.Location,
		"start_at":       e.Start.UnixNano(),
		"end_at":         e.End.UnixNano(),
		"all_day":        e.AllDay,
		"type":           string(e.Type),
		"priority":       string(e.Priority),
		"status":         string(e.Status),
		"organizer_id":   e.OrganizerID.String(),
		"attendees":      string(attendees),
		"recurrence":     e.Recurrence,
		"conflicts":      string(conflicts),
		"ai_suggestions": aiCol,
		"project_id":     uuidString(e.ProjectID),
		"client_id":      uuidString(e.ClientID),
		"created_at":     e.CreatedAt.UnixNano(),
		"updated_at":     e.UpdatedAt.UnixNano(),
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.CalendarEvent, error) {
	var (
		e                                 domain.CalendarEvent
		id, organizer                     string
		typ, priority, status             string
		start, end, created, updated      int64
		attendees, conflicts              string
		suggestions, projectID, clientID  sql.NullString
		description, location, recurrence sql.NullString
	)
	err := s.Scan(
		&id, &e.Title, &description, &location, &start, &end, &e.AllDay,
		&typ, &priority, &status, &organizer, &attendees, &recurrence,
		&conflicts, &suggestions, &projectID, &clientID, &created, &updated,
	)
	if err != nil {
		return nil, err
	}

	if e.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("event id %q: %w", id, err)
	}
	if e.OrganizerID, err = uuid.Parse(organizer); err != nil {
		return nil, fmt.Errorf("event %s organizer: %w", id, err)
	}
	if e.ProjectID, err = parseNullUUID(projectID); err != nil {
		return nil, fmt.Errorf("event %s project: %w", id, err)
	}
	if e.ClientID, err = parseNullUUID(clientID); err != nil {
		return nil, fmt.Errorf("event %s client: %w", id, err)
	}
	if e.Attendees, err = eventjson.UnmarshalAttendees([]byte(attendees)); err != nil {
		return nil, fmt.Errorf("event %s: %w", id, err)
	}
	if e.Conflicts, err = eventjson.UnmarshalConflicts([]byte(conflicts)); err != nil {
		return nil, fmt.Errorf("event %s: %w", id, err)
	}
	if suggestions.Valid {
		if e.AISuggestions, err = eventjson.UnmarshalSuggestions([]byte(suggestions.String)); err != nil {
			return nil, fmt.Errorf("event %s: %w", id, err)
		}
	}

	e.Description = nullString(description)
	e.Location = nullString(location)
	e.Recurrence = nullString(recurrence)
	e.Type = domain.EventType(typ)
	e.Priority = domain.Priority(priority)
	e.Status = domain.EventStatus(status)
	e.Start = time.Unix(0, start).UTC()
	e.End = time.Unix(0, end).UTC()
	e.CreatedAt = time.Unix(0, created).UTC()
	e.UpdatedAt = time.Unix(0, updated).UTC()
	e.Durable = true
	return &e, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func parseNullUUID(s sql.NullString) (*uuid.UUID, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidString(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
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
