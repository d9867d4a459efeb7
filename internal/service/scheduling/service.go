// Package scheduling is the entry point for calendar mutations and scheduling
// requests. It validates input, runs conflict detection inside a single unit
// of work on the active storage backend and persists the result.
package scheduling

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/slot"
)

// EventStore is the storage contract every backend implements.
type EventStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error)
	Query(ctx context.Context, filter domain.EventFilter, page, pageSize int) ([]*domain.CalendarEvent, int, error)
	Create(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error)
	Update(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TxManager runs a unit of work that serializes writers on one backend.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Backend pairs an event store with the transaction manager guarding it.
type Backend struct {
	Name   string
	Events EventStore
	Tx     TxManager
}

type conflictDetector interface {
	Detect(ctx context.Context, reader slot.EventReader, candidate *domain.CalendarEvent) ([]domain.ConflictInfo, error)
}

type slotSearch interface {
	FindAvailable(ctx context.Context, reader slot.EventReader, durationMinutes int, attendeeEmails []string, constraints *domain.SchedulingConstraints, prefs *domain.CalendarPreferences) ([]domain.TimeSlot, error)
	Score(s domain.TimeSlot, req *domain.SchedulingRequest, prefs *domain.CalendarPreferences) float64
}

type prefReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error)
}

type suggestionGenerator interface {
	Generate(ctx context.Context, e *domain.CalendarEvent) (*domain.AISuggestions, error)
}

type changePublisher interface {
	Publish(ctx context.Context, change domain.EventChange) error
}

// Config holds façade tunables.
type Config struct {
	AITimeout      time.Duration
	MaxSuggestions int
}

// DefaultConfig returns a 10-second AI budget and 5 suggestions.
func DefaultConfig() Config {
	return Config{AITimeout: 10 * time.Second, MaxSuggestions: 5}
}

// Deps groups the collaborators of the Service. Fallback, AI and Feed are
// optional; leave them nil to disable.
type Deps struct {
	Primary  Backend
	Fallback *Backend
	Detector conflictDetector
	Slots    slotSearch
	Prefs    prefReader
	AI       suggestionGenerator
	Feed     changePublisher
}

// Service orchestrates event mutations and scheduling requests.
type Service struct {
	cfg      Config
	primary  Backend
	fallback *Backend
	detector conflictDetector
	slots    slotSearch
	prefs    prefReader
	ai       suggestionGenerator
	feed     changePublisher
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new scheduling service.
func NewService(log *slog.Logger, cfg Config, deps Deps) *Service {
	return &Service{
		cfg:      cfg,
		primary:  deps.Primary,
		fallback: deps.Fallback,
		detector: deps.Detector,
		slots:    deps.Slots,
		prefs:    deps.Prefs,
		ai:       deps.AI,
		feed:     deps.Feed,
		now:      time.Now,
		log:      log.With("service", "scheduling"),
	}
}

// withBackend runs fn against the primary backend and, when the primary
// reports domain.ErrStorageUnavailable, once more against the fallback.
// With byID set, a NotFound from the primary is also retried on the fallback
// because events created during an outage only exist there; the primary's
// error is returned if the fallback does not have the event either.
func (s *Service) withBackend(ctx context.Context, op string, byID bool, fn func(b Backend) error) error {
	err := fn(s.primary)
	if err == nil || s.fallback == nil {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrStorageUnavailable):
		s.log.WarnContext(ctx, "primary storage unavailable, using fallback",
			slog.String("op", op),
			slog.String("primary", s.primary.Name),
			slog.String("fallback", s.fallback.Name),
			slog.String("error", err.Error()),
		)
		return fn(*s.fallback)
	case byID && errors.Is(err, domain.ErrNotFound):
		if ferr := fn(*s.fallback); ferr == nil || !errors.Is(ferr, domain.ErrNotFound) {
			return ferr
		}
		return err
	}
	return err
}

// publish sends a change notice after commit. Failures are logged only.
func (s *Service) publish(ctx context.Context, kind domain.ChangeKind, actorID uuid.UUID, id uuid.UUID, e *domain.CalendarEvent) {
	if s.feed == nil {
		return
	}
	change := domain.EventChange{
		Kind:       kind,
		EventID:    id,
		ActorID:    actorID,
		Event:      e,
		OccurredAt: s.now().UTC(),
	}
	if err := s.feed.Publish(ctx, change); err != nil {
		s.log.WarnContext(ctx, "publish event change failed",
			slog.String("kind", string(kind)),
			slog.String("event_id", id.String()),
			slog.String("error", err.Error()),
		)
	}
}

// detectAndStore detects conflicts for e inside the backend's unit of work
// and writes it with the fresh list using write.
func (s *Service) detectAndStore(
	ctx context.Context,
	b Backend,
	e *domain.CalendarEvent,
	write func(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error),
) (*domain.CalendarEvent, error) {
	var stored *domain.CalendarEvent
	err := b.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		conflicts, err := s.detector.Detect(txCtx, b.Events, e)
		if err != nil {
			return err
		}
		next := e.Clone()
		next.Conflicts = conflicts
		stored, err = write(txCtx, next)
		return err
	})
	return stored, err
}
