package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/memory"
	"github.com/heartmarshall/bizdash-backend/internal/adapter/postgres"
	pgevent "github.com/heartmarshall/bizdash-backend/internal/adapter/postgres/event"
	pgpref "github.com/heartmarshall/bizdash-backend/internal/adapter/postgres/preference"
	"github.com/heartmarshall/bizdash-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/bizdash-backend/internal/config"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/scheduling"
	"github.com/heartmarshall/bizdash-backend/internal/transport/rest"
)

type prefStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error)
	Upsert(ctx context.Context, p *domain.CalendarPreferences) error
}

// storage is the opened persistence layer for one process.
type storage struct {
	primary  scheduling.Backend
	fallback *scheduling.Backend
	prefs    prefStore
	health   rest.Component
	closers  []func()
}

func (s *storage) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func memoryBackend() scheduling.Backend {
	store := memory.NewEventStore()
	return scheduling.Backend{Name: config.DriverMemory, Events: store, Tx: memory.NewTxManager(store)}
}

// openStorage connects the configured driver. With the fallback enabled the
// primary store is reported as non-critical, since writes keep working in
// memory while it is down.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	s := &storage{}
	critical := !cfg.Storage.Fallback || cfg.Storage.Driver == config.DriverMemory

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		s.primary = memoryBackend()
		s.prefs = memory.NewPrefStore()
		s.health = rest.Component{
			Name:     "storage",
			Pinger:   rest.PingFunc(func(context.Context) error { return nil }),
			Critical: true,
		}

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("app.openStorage: %w", err)
		}
		s.closers = append(s.closers, pool.Close)

		if cfg.Database.AutoMigrate {
			results, err := postgres.Migrate(ctx, pool)
			if err != nil {
				s.close()
				return nil, fmt.Errorf("app.openStorage: migrate: %w", err)
			}
			logger.Info("database migrated", slog.Int("applied", len(results)))
		}

		s.primary = scheduling.Backend{
			Name:   config.DriverPostgres,
			Events: pgevent.New(pool),
			Tx:     postgres.NewTxManager(pool),
		}
		s.prefs = pgpref.New(pool)
		s.health = rest.Component{Name: "postgres", Pinger: pool, Critical: critical}

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("app.openStorage: %w", err)
		}
		s.closers = append(s.closers, func() { _ = db.Close() })

		s.primary = scheduling.Backend{
			Name:   config.DriverSQLite,
			Events: sqlite.NewEventRepo(db),
			Tx:     sqlite.NewTxManager(db),
		}
		s.prefs = sqlite.NewPrefRepo(db)
		s.health = rest.Component{Name: "sqlite", Pinger: rest.PingFunc(db.PingContext), Critical: critical}

	default:
		return nil, fmt.Errorf("app.openStorage: unknown driver %q", cfg.Storage.Driver)
	}

	if cfg.Storage.Fallback && cfg.Storage.Driver != config.DriverMemory {
		fb := memoryBackend()
		s.fallback = &fb
	}

	logger.Info("storage ready",
		slog.String("driver", cfg.Storage.Driver),
		slog.Bool("fallback", s.fallback != nil),
	)
	return s, nil
}
