// Command calendarctl is the operator CLI of the calendar backend: it serves
// the API, applies migrations, moves events in and out as iCalendar files and
// mints access tokens for scripts.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	// Preference time zones must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.Error("calendarctl failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "calendarctl",
		Usage: "Operate the business dashboard calendar backend.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML configuration file.",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			exportCommand(),
			importCommand(),
			tokenCommand(),
			versionCommand(),
		},
	}
}
