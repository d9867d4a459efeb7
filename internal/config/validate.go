package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0 (got %d)", c.Server.RateLimit)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("sqlite.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory, postgres, sqlite (got %q)", c.Storage.Driver)
	}

	if err := c.Scheduling.validate(); err != nil {
		return fmt.Errorf("scheduling: %w", err)
	}

	if c.AI.Enabled() && c.AI.MaxTokens <= 0 {
		return fmt.Errorf("ai.max_tokens must be > 0 (got %d)", c.AI.MaxTokens)
	}

	return nil
}

func (s *SchedulingConfig) validate() error {
	if s.BackToBackBuffer < 0 {
		return fmt.Errorf("back_to_back_buffer must be >= 0 (got %v)", s.BackToBackBuffer)
	}
	if s.ResolutionBuffer < 0 {
		return fmt.Errorf("resolution_buffer must be >= 0 (got %v)", s.ResolutionBuffer)
	}
	if s.SearchStep <= 0 {
		return fmt.Errorf("search_step must be > 0 (got %v)", s.SearchStep)
	}
	if s.AlternativesHorizon < s.SearchStep || s.AvailabilityHorizon < s.SearchStep {
		return fmt.Errorf("search horizons must be at least one search step")
	}
	if s.MaxAlternatives <= 0 || s.MaxAvailable <= 0 || s.MaxSuggestions <= 0 {
		return fmt.Errorf("result caps must be > 0")
	}
	if !(s.SeverityCritical >= s.SeverityHigh && s.SeverityHigh >= s.SeverityMedium && s.SeverityMedium > 1) {
		return fmt.Errorf("severity thresholds must satisfy critical >= high >= medium > 1 (got %d/%d/%d)",
			s.SeverityCritical, s.SeverityHigh, s.SeverityMedium)
	}
	if s.RecurrenceHorizon < 0 {
		return fmt.Errorf("recurrence_horizon must be >= 0 (got %v)", s.RecurrenceHorizon)
	}
	if s.TravelTime < 0 {
		return fmt.Errorf("travel_time must be >= 0 (got %v)", s.TravelTime)
	}
	if s.MaxEventsPerDay < 0 {
		return fmt.Errorf("max_events_per_day must be >= 0 (got %d)", s.MaxEventsPerDay)
	}
	return nil
}
