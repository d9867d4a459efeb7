package eventjson

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// Change is the wire form of domain.EventChange on the change feed.
type Change struct {
	Kind       string     `json:"kind"`
	EventID    uuid.UUID  `json:"event_id"`
	ActorID    uuid.UUID  `json:"actor_id"`
	Title      string     `json:"title,omitempty"`
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	Attendees  []string   `json:"attendees,omitempty"`
	Severity   string     `json:"max_severity,omitempty"`
	Conflicts  []Conflict `json:"conflicts"`
	Durable    bool       `json:"durable"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// MarshalChange encodes a change notice. Conflicts is always an array.
func MarshalChange(c domain.EventChange) ([]byte, error) {
	v := Change{
		Kind:       string(c.Kind),
		EventID:    c.EventID,
		ActorID:    c.ActorID,
		Conflicts:  []Conflict{},
		OccurredAt: c.OccurredAt.UTC(),
	}
	if e := c.Event; e != nil {
		start, end := e.Start.UTC(), e.End.UTC()
		v.Title = e.Title
		v.Start = &start
		v.End = &end
		v.Attendees = e.AttendeeEmails()
		v.Conflicts = Conflicts(e.Conflicts)
		v.Severity = string(domain.MaxSeverity(e.Conflicts))
		v.Durable = e.Durable
	}
	return marshal("change", v)
}

// UnmarshalChange decodes a change notice.
func UnmarshalChange(data []byte) (*Change, error) {
	var v Change
	if err := unmarshal("change", data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
