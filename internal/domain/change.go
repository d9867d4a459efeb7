package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeKind names what happened to an event.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// EventChange is published after a committed write so that upstream
// notifiers can react. Event is nil for deletions.
type EventChange struct {
	Kind       ChangeKind
	EventID    uuid.UUID
	ActorID    uuid.UUID
	Event      *CalendarEvent
	OccurredAt time.Time
}
