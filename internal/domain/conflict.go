package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// ConflictInfo describes one stored event that is incompatible with a candidate.
// ConflictingEventID is a lookup key only; the referenced event may since have
// changed or been deleted.
type ConflictInfo struct {
	ConflictingEventID uuid.UUID
	Type               ConflictType
	Severity           Severity
	Resolution         *ConflictResolution
}

// ConflictResolution is a suggested way out of a conflict.
type ConflictResolution struct {
	Type         ResolutionType
	Description  string
	NewStart     *time.Time
	NewEnd       *time.Time
	Alternatives []TimeSlot
}

// Clone returns a deep copy.
func (c ConflictInfo) Clone() ConflictInfo {
	if c.Resolution != nil {
		r := *c.Resolution
		r.NewStart = clonePtr(c.Resolution.NewStart)
		r.NewEnd = clonePtr(c.Resolution.NewEnd)
		r.Alternatives = slices.Clone(c.Resolution.Alternatives)
		c.Resolution = &r
	}
	return c
}

// MaxSeverity returns the highest severity in conflicts, or "" when there are none.
func MaxSeverity(conflicts []ConflictInfo) Severity {
	var out Severity
	for _, c := range conflicts {
		if c.Severity.Rank() > out.Rank() {
			out = c.Severity
		}
	}
	return out
}
