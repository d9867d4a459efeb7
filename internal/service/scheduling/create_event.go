package scheduling

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/pkg/ctxutil"
)

// CreateEvent validates the input, detects conflicts against the active
// backend and stores the event with them. The organizer is the caller.
// When the primary backend is unavailable the event is stored in the
// fallback and returned with Durable=false.
func (s *Service) CreateEvent(ctx context.Context, input CreateEventInput) (*domain.CalendarEvent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	now := s.now().UTC()
	candidate := &domain.CalendarEvent{
		ID:          uuid.New(),
		Title:       domain.NormalizeText(input.Title),
		Description: emptyToNil(input.Description),
		Location:    emptyToNil(input.Location),
		Start:       input.Start.UTC(),
		End:         input.End.UTC(),
		AllDay:      input.AllDay,
		Type:        orDefault(input.Type, domain.EventTypeMeeting),
		Priority:    orDefault(input.Priority, domain.PriorityMedium),
		Status:      orDefault(input.Status, domain.EventStatusConfirmed),
		OrganizerID: actorID,
		Attendees:   buildAttendees(input.Attendees),
		Recurrence:  emptyToNil(input.Recurrence),
		ProjectID:   input.ProjectID,
		ClientID:    input.ClientID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	candidate.AISuggestions = s.suggest(ctx, candidate)

	var created *domain.CalendarEvent
	var backend string
	err := s.withBackend(ctx, "create", false, func(b Backend) error {
		e, err := s.detectAndStore(ctx, b, candidate, b.Events.Create)
		if err != nil {
			return err
		}
		created, backend = e, b.Name
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling.CreateEvent: %w", err)
	}

	s.log.InfoContext(ctx, "event created",
		slog.String("event_id", created.ID.String()),
		slog.String("organizer_id", actorID.String()),
		slog.Int("conflicts", len(created.Conflicts)),
		slog.String("backend", backend),
		slog.Bool("durable", created.Durable),
	)
	s.publish(ctx, domain.ChangeCreated, actorID, created.ID, created)
	return created, nil
}

// suggest asks the AI collaborator for a bundle before the unit of work so
// the writer lock is not held across the call. The prompt sees a preview of
// the conflicts from the backend the write will use; the stored list is
// recomputed inside the unit of work. Any failure omits the bundle.
func (s *Service) suggest(ctx context.Context, candidate *domain.CalendarEvent) *domain.AISuggestions {
	if s.ai == nil {
		return nil
	}

	preview := candidate.Clone()
	err := s.withBackend(ctx, "preview", false, func(b Backend) error {
		conflicts, err := s.detector.Detect(ctx, b.Events, preview)
		if err != nil {
			return err
		}
		preview.Conflicts = conflicts
		return nil
	})
	if err != nil {
		s.log.WarnContext(ctx, "conflict preview unavailable",
			slog.String("event_id", candidate.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	aiCtx := ctx
	if s.cfg.AITimeout > 0 {
		var cancel context.CancelFunc
		aiCtx, cancel = context.WithTimeout(ctx, s.cfg.AITimeout)
		defer cancel()
	}

	bundle, err := s.ai.Generate(aiCtx, preview)
	if err != nil {
		s.log.WarnContext(ctx, "ai suggestions unavailable",
			slog.String("event_id", candidate.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return bundle
}

func orDefault[T ~string](v, def T) T {
	if v == "" {
		return def
	}
	return v
}
