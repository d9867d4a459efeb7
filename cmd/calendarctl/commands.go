package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/ical"
	"github.com/heartmarshall/bizdash-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizdash-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/bizdash-backend/internal/app"
	"github.com/heartmarshall/bizdash-backend/internal/auth"
	"github.com/heartmarshall/bizdash-backend/internal/config"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/scheduling"
	"github.com/heartmarshall/bizdash-backend/pkg/ctxutil"
)

func loadConfig(c *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

// userFlag names the actor the command acts as.
func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "user",
		Usage:    "User `ID` the command acts as.",
		Required: true,
	}
}

func parseUser(c *cli.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.String("user"))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("--user must be a non-nil UUID: %q", c.String("user"))
	}
	return id, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API until interrupted.",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig(c)
			if err != nil {
				return err
			}
			logger.Info("starting application", slog.String("version", app.BuildVersion()))

			a, err := app.New(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Serve(c.Context)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations to the configured database.",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig(c)
			if err != nil {
				return err
			}

			switch cfg.Storage.Driver {
			case config.DriverPostgres:
				pool, err := postgres.NewPool(c.Context, cfg.Database)
				if err != nil {
					return err
				}
				defer pool.Close()

				results, err := postgres.Migrate(c.Context, pool)
				if err != nil {
					return err
				}
				for _, r := range results {
					logger.Info("migration applied",
						slog.Int64("version", r.Source.Version),
						slog.Duration("duration", r.Duration),
					)
				}
				logger.Info("migrations complete", slog.Int("applied", len(results)))

			case config.DriverSQLite:
				// Open migrates on the way in.
				db, err := sqlite.Open(c.Context, cfg.SQLite.Path)
				if err != nil {
					return err
				}
				defer db.Close()
				logger.Info("migrations complete", slog.String("path", cfg.SQLite.Path))

			default:
				return fmt.Errorf("storage driver %q has no schema to migrate", cfg.Storage.Driver)
			}
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write events as an iCalendar file.",
		Flags: []cli.Flag{
			userFlag(),
			&cli.TimestampFlag{Name: "from", Layout: time.RFC3339, Usage: "Only events ending after this RFC 3339 time."},
			&cli.TimestampFlag{Name: "to", Layout: time.RFC3339, Usage: "Only events starting before this RFC 3339 time."},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output `FILE`; stdout when empty."},
		},
		Action: func(c *cli.Context) error {
			userID, err := parseUser(c)
			if err != nil {
				return err
			}
			cfg, logger, err := loadConfig(c)
			if err != nil {
				return err
			}

			a, err := app.New(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			input := scheduling.ListEventsInput{
				Filter: domain.EventFilter{From: c.Timestamp("from"), To: c.Timestamp("to")},
				Page:   1,
			}
			list, err := a.Scheduler.ListEvents(ctxutil.WithUserID(c.Context, userID), input)
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if path := c.String("out"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create %s: %w", path, err)
				}
				defer f.Close()
				w = f
			}

			bw := bufio.NewWriter(w)
			if err := ical.Export(bw, list.Events, time.Now()); err != nil {
				return err
			}
			if err := bw.Flush(); err != nil {
				return fmt.Errorf("write calendar: %w", err)
			}

			logger.Info("events exported", slog.Int("count", len(list.Events)))
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Create events from an iCalendar file, detecting conflicts for each.",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{userFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("import takes exactly one file argument")
			}
			userID, err := parseUser(c)
			if err != nil {
				return err
			}
			cfg, logger, err := loadConfig(c)
			if err != nil {
				return err
			}

			f, err := os.Open(c.Args().First())
			if err != nil {
				return fmt.Errorf("open %s: %w", c.Args().First(), err)
			}
			defer f.Close()

			events, err := ical.Import(f, userID, time.Now())
			if err != nil {
				return err
			}

			a, err := app.New(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			sum, err := importEvents(ctxutil.WithUserID(c.Context, userID), a.Scheduler, events)
			logger.Info("events imported",
				slog.Int("read", len(events)),
				slog.Int("created", sum.created),
				slog.Int("rejected", sum.rejected),
				slog.Int("with_conflicts", sum.withConflicts),
			)
			return err
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Print a signed access token for a user.",
		Flags: []cli.Flag{
			userFlag(),
			&cli.StringFlag{Name: "name", Usage: "Display name carried in the token."},
			&cli.DurationFlag{Name: "ttl", Usage: "Token lifetime; the configured access token TTL when zero."},
		},
		Action: func(c *cli.Context) error {
			userID, err := parseUser(c)
			if err != nil {
				return err
			}
			cfg, _, err := loadConfig(c)
			if err != nil {
				return err
			}

			ttl := cfg.Auth.AccessTokenTTL
			if d := c.Duration("ttl"); d > 0 {
				ttl = d
			}
			token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, ttl).
				GenerateAccessToken(userID, c.String("name"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, token)
			return err
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information.",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprintln(c.App.Writer, app.BuildVersion())
			return err
		},
	}
}
