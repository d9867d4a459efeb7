// Package conflict classifies scheduling conflicts between a candidate event
// and the events already in a store.
package conflict

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/slot"
)

type alternativeFinder interface {
	FindAlternatives(ctx context.Context, reader slot.EventReader, event *domain.CalendarEvent, buffer time.Duration) ([]domain.TimeSlot, error)
}

// SeverityTable holds the minimum max-priority weight for each severity
// level. Weights below Medium map to LOW.
type SeverityTable struct {
	Critical int
	High     int
	Medium   int
}

// DefaultSeverityTable maps URGENT to CRITICAL, HIGH to HIGH and MEDIUM to MEDIUM.
func DefaultSeverityTable() SeverityTable {
	return SeverityTable{Critical: 4, High: 3, Medium: 2}
}

// For returns the severity for a max-priority weight.
func (t SeverityTable) For(weight int) domain.Severity {
	switch {
	case weight >= t.Critical:
		return domain.SeverityCritical
	case weight >= t.High:
		return domain.SeverityHigh
	case weight >= t.Medium:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// Config holds detection tunables.
type Config struct {
	// Gaps strictly below this are BACK_TO_BACK.
	BackToBackBuffer  time.Duration
	// Buffer requested from slot search for every type except OVERLAP.
	ResolutionBuffer  time.Duration
	MaxAlternatives   int
	Severity          SeverityTable
	// A recurring candidate is expanded over this span from its start.
	// Zero checks only its first instance.
	RecurrenceHorizon time.Duration
}

// DefaultConfig returns a 5-minute back-to-back buffer, a 15-minute
// resolution buffer, up to 3 alternatives per conflict and a 90-day
// recurrence horizon.
func DefaultConfig() Config {
	return Config{
		BackToBackBuffer:  5 * time.Minute,
		ResolutionBuffer:  15 * time.Minute,
		MaxAlternatives:   3,
		Severity:          DefaultSeverityTable(),
		RecurrenceHorizon: 90 * 24 * time.Hour,
	}
}

// Detector computes conflict lists. It keeps no state between calls, so a
// list can always be recomputed from the store.
type Detector struct {
	cfg    Config
	finder alternativeFinder
	rules  []Rule
	log    *slog.Logger
}

// NewDetector creates a conflict detector. Rules are checked in order after
// OVERLAP and BACK_TO_BACK.
func NewDetector(log *slog.Logger, cfg Config, finder alternativeFinder, rules ...Rule) *Detector {
	return &Detector{
		cfg:    cfg,
		finder: finder,
		rules:  rules,
		log:    log.With("service", "conflict"),
	}
}
