// Package ical converts calendar events to and from iCalendar (RFC 5545).
package ical

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	goical "github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

const productID = "-//bizdash//calendar//EN"

// Export writes events as a single VCALENDAR. stamp is used for DTSTAMP.
func Export(w io.Writer, events []*domain.CalendarEvent, stamp time.Time) error {
	if len(events) == 0 {
		// The encoder rejects calendars without components.
		_, err := io.WriteString(w, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:"+productID+"\r\nEND:VCALENDAR\r\n")
		return err
	}

	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, productID)

	for _, e := range events {
		cal.Children = append(cal.Children, toVEvent(e, stamp))
	}

	if err := goical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func toVEvent(e *domain.CalendarEvent, stamp time.Time) *goical.Component {
	ve := goical.NewComponent(goical.CompEvent)
	ve.Props.SetText(goical.PropUID, e.ID.String())
	ve.Props.SetText(goical.PropSummary, e.Title)
	ve.Props.SetDateTime(goical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(goical.PropDateTimeStart, e.Start.UTC())
	ve.Props.SetDateTime(goical.PropDateTimeEnd, e.End.UTC())
	ve.Props.SetText(goical.PropStatus, string(e.Status))
	ve.Props.SetText(goical.PropCategories, string(e.Type))
	ve.Props.SetText(goical.PropPriority, strconv.Itoa(icsPriority(e.Priority)))

	if e.Description != nil {
		ve.Props.SetText(goical.PropDescription, *e.Description)
	}
	if e.Location != nil {
		ve.Props.SetText(goical.PropLocation, *e.Location)
	}
	if e.IsRecurring() {
		p := goical.NewProp(goical.PropRecurrenceRule)
		p.Value = strings.TrimPrefix(strings.TrimSpace(*e.Recurrence), "RRULE:")
		ve.Props.Set(p)
	}
	for _, a := range e.Attendees {
		p := goical.NewProp(goical.PropAttendee)
		p.Value = "mailto:" + a.Email
		if a.Name != "" {
			p.Params.Set("CN", a.Name)
		}
		p.Params.Set("PARTSTAT", partStat(a.Response))
		if a.Optional {
			p.Params.Set("ROLE", "OPT-PARTICIPANT")
		} else {
			p.Params.Set("ROLE", "REQ-PARTICIPANT")
		}
		ve.Props.Add(p)
	}
	return ve
}

// Import reads every VEVENT of every VCALENDAR in r. Imported events are
// owned by organizerID. UIDs that are not UUIDs map to a stable name-based id.
func Import(r io.Reader, organizerID uuid.UUID, now time.Time) ([]*domain.CalendarEvent, error) {
	dec := goical.NewDecoder(r)

	var out []*domain.CalendarEvent
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}

		for _, ev := range cal.Events() {
			e, err := fromVEvent(ev, organizerID, now)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func fromVEvent(ev goical.Event, organizerID uuid.UUID, now time.Time) (*domain.CalendarEvent, error) {
	uid, err := ev.Props.Text(goical.PropUID)
	if err != nil || uid == "" {
		return nil, domain.NewValidationError("uid", "VEVENT without UID")
	}

	start, err := ev.DateTimeStart(time.UTC)
	if err != nil {
		return nil, fmt.Errorf("event %s: DTSTART: %w", uid, err)
	}
	end, err := ev.DateTimeEnd(time.UTC)
	if err != nil {
		return nil, fmt.Errorf("event %s: DTEND: %w", uid, err)
	}

	e := &domain.CalendarEvent{
		ID:          eventID(uid),
		Start:       start.UTC(),
		End:         end.UTC(),
		Type:        domain.EventTypeMeeting,
		Priority:    domain.PriorityMedium,
		Status:      domain.EventStatusConfirmed,
		OrganizerID: organizerID,
		Attendees:   []domain.Attendee{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p := ev.Props.Get(goical.PropDateTimeStart); p != nil && p.ValueType() == goical.ValueDate {
		e.AllDay = true
	}
	if e.End.IsZero() || !e.End.After(e.Start) {
		if e.AllDay {
			e.End = e.Start.Add(24 * time.Hour)
		} else {
			e.End = e.Start.Add(time.Hour)
		}
	}

	e.Title, _ = ev.Props.Text(goical.PropSummary)
	e.Description = optionalText(ev.Props, goical.PropDescription)
	e.Location = optionalText(ev.Props, goical.PropLocation)
	if p := ev.Props.Get(goical.PropRecurrenceRule); p != nil && p.Value != "" {
		rule := p.Value
		e.Recurrence = &rule
	}
	if s, _ := ev.Props.Text(goical.PropStatus); domain.EventStatus(strings.ToUpper(s)).IsValid() {
		e.Status = domain.EventStatus(strings.ToUpper(s))
	}
	if c, _ := ev.Props.Text(goical.PropCategories); domain.EventType(strings.ToUpper(c)).IsValid() {
		e.Type = domain.EventType(strings.ToUpper(c))
	}
	if p, _ := ev.Props.Text(goical.PropPriority); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			e.Priority = domainPriority(n)
		}
	}

	for _, p := range ev.Props[goical.PropAttendee] {
		email := strings.TrimPrefix(strings.TrimPrefix(p.Value, "mailto:"), "MAILTO:")
		if email == "" {
			continue
		}
		e.Attendees = append(e.Attendees, domain.Attendee{
			Email:    domain.NormalizeEmail(email),
			Name:     p.Params.Get("CN"),
			Response: domainResponse(p.Params.Get("PARTSTAT")),
			Optional: strings.EqualFold(p.Params.Get("ROLE"), "OPT-PARTICIPANT"),
		})
	}
	return e, nil
}

func eventID(uid string) uuid.UUID {
	if id, err := uuid.Parse(uid); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("ical:"+uid))
}

func optionalText(props goical.Props, name string) *string {
	s, err := props.Text(name)
	if err != nil || s == "" {
		return nil
	}
	return &s
}

// icsPriority maps to the RFC 5545 1 (highest) .. 9 (lowest) scale.
func icsPriority(p domain.Priority) int {
	switch p {
	case domain.PriorityUrgent:
		return 1
	case domain.PriorityHigh:
		return 3
	case domain.PriorityLow:
		return 9
	default:
		return 5
	}
}

func domainPriority(n int) domain.Priority {
	switch {
	case n <= 0:
		return domain.PriorityMedium
	case n <= 2:
		return domain.PriorityUrgent
	case n <= 4:
		return domain.PriorityHigh
	case n <= 6:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func partStat(r domain.ResponseStatus) string {
	switch r {
	case domain.ResponseAccepted:
		return "ACCEPTED"
	case domain.ResponseDeclined:
		return "DECLINED"
	case domain.ResponseTentative:
		return "TENTATIVE"
	default:
		return "NEEDS-ACTION"
	}
}

func domainResponse(s string) domain.ResponseStatus {
	switch strings.ToUpper(s) {
	case "ACCEPTED":
		return domain.ResponseAccepted
	case "DECLINED":
		return domain.ResponseDeclined
	case "TENTATIVE":
		return domain.ResponseTentative
	default:
		return domain.ResponsePending
	}
}
