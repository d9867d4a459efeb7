package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/bizdash-backend/internal/adapter/provider/freebusy"
	"github.com/heartmarshall/bizdash-backend/internal/adapter/redis"
	"github.com/heartmarshall/bizdash-backend/internal/auth"
	"github.com/heartmarshall/bizdash-backend/internal/config"
	"github.com/heartmarshall/bizdash-backend/internal/service/conflict"
	"github.com/heartmarshall/bizdash-backend/internal/service/preference"
	"github.com/heartmarshall/bizdash-backend/internal/service/scheduling"
	"github.com/heartmarshall/bizdash-backend/internal/service/slot"
	"github.com/heartmarshall/bizdash-backend/internal/transport/middleware"
	"github.com/heartmarshall/bizdash-backend/internal/transport/rest"
)

const rateLimitCleanup = 5 * time.Minute

// App is a fully wired calendar backend.
type App struct {
	// Handler serves the REST API and the health probes.
	Handler http.Handler
	// Scheduler is the wired scheduling service, for commands that bypass HTTP.
	Scheduler *scheduling.Service

	cfg     *config.Config
	log     *slog.Logger
	closers []func()
}

// New opens storage and the optional collaborators and builds the HTTP
// handler. Call Close when done.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: logger}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.close)

	components := []rest.Component{store.health}
	prefs := store.prefs
	var feed *redis.Publisher

	if cfg.Redis.Enabled() {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			// The cache and the change feed are optional.
			logger.Warn("redis unavailable, running without cache and change feed", slog.String("error", err.Error()))
		} else {
			a.closers = append(a.closers, func() { _ = client.Close() })
			prefs = redis.NewPrefCache(logger, client, prefs, cfg.Redis.PrefsTTL)
			feed = redis.NewPublisher(client, cfg.Redis.ChangeChannel)
			components = append(components, rest.Component{
				Name:   "redis",
				Pinger: rest.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() }),
			})
		}
	}

	sc := cfg.Scheduling

	var freeBusy slot.FreeBusy
	if cfg.FreeBusy.Enabled() {
		freeBusy = freebusy.NewProvider(logger, cfg.FreeBusy.URL, cfg.FreeBusy.Timeout)
	}
	slots := slot.NewEngine(logger, slot.Config{
		AlternativesHorizon: sc.AlternativesHorizon,
		AvailabilityHorizon: sc.AvailabilityHorizon,
		Step:                sc.SearchStep,
		MaxAlternatives:     sc.MaxAlternatives,
		MaxAvailable:        sc.MaxAvailable,
	}, freeBusy)

	var rules []conflict.Rule
	if sc.TravelTime > 0 {
		rules = append(rules, conflict.NewTravelTimeRule(conflict.FixedTravelTime(sc.TravelTime), sc.TravelTime))
	}
	if sc.MaxEventsPerDay > 0 {
		rules = append(rules, conflict.NewWorkloadRule(sc.MaxEventsPerDay))
	}
	detector := conflict.NewDetector(logger, conflict.Config{
		BackToBackBuffer:  sc.BackToBackBuffer,
		ResolutionBuffer:  sc.ResolutionBuffer,
		MaxAlternatives:   sc.MaxAlternatives,
		RecurrenceHorizon: sc.RecurrenceHorizon,
		Severity: conflict.SeverityTable{
			Critical: sc.SeverityCritical,
			High:     sc.SeverityHigh,
			Medium:   sc.SeverityMedium,
		},
	}, slots, rules...)

	prefSvc := preference.NewService(logger, prefs)

	deps := scheduling.Deps{
		Primary:  store.primary,
		Fallback: store.fallback,
		Detector: detector,
		Slots:    slots,
		Prefs:    prefSvc,
	}
	if cfg.AI.Enabled() {
		deps.AI = anthropic.New(logger, cfg.AI)
	}
	if feed != nil {
		deps.Feed = feed
	}
	schedSvc := scheduling.NewService(logger, scheduling.Config{
		AITimeout:      cfg.AI.Timeout,
		MaxSuggestions: sc.MaxSuggestions,
	}, deps)

	a.Scheduler = schedSvc

	var api middleware.Middleware
	if cfg.Server.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(rateLimitCleanup)
		a.closers = append(a.closers, limiter.Stop)
		api = limiter.Limit(cfg.Server.RateLimit)
	}

	router := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(Version, components...),
		Events:      rest.NewEventHandler(schedSvc, logger),
		Preferences: rest.NewPreferenceHandler(prefSvc, logger),
	}, api)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	a.Handler = middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		middleware.Logger(logger),
	)(router)

	logger.Info("application wired",
		slog.Bool("ai", cfg.AI.Enabled()),
		slog.Bool("freebusy", cfg.FreeBusy.Enabled()),
		slog.Bool("change_feed", feed != nil),
		slog.Int("conflict_rules", len(rules)),
	)
	return a, nil
}

// Close releases everything New opened, in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// within the configured timeout.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      a.Handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.log.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Run is the server entry point: it loads configuration, wires the
// application and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}
