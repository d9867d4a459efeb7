package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/scheduling"
)

type eventCreator interface {
	CreateEvent(ctx context.Context, input scheduling.CreateEventInput) (*domain.CalendarEvent, error)
}

type importSummary struct {
	created       int
	rejected      int
	withConflicts int
}

// importEvents creates every parsed event through the scheduling service so
// each one gets conflict detection against what is already stored. Invalid
// events are skipped; any other failure stops the import.
func importEvents(ctx context.Context, svc eventCreator, events []*domain.CalendarEvent) (importSummary, error) {
	var sum importSummary
	for _, e := range events {
		created, err := svc.CreateEvent(ctx, createInput(e))
		switch {
		case errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrInvalidInterval):
			sum.rejected++
			slog.WarnContext(ctx, "skipping invalid event",
				slog.String("title", e.Title),
				slog.Time("start", e.Start),
				slog.String("error", err.Error()),
			)
			continue
		case err != nil:
			return sum, fmt.Errorf("import %q: %w", e.Title, err)
		}

		sum.created++
		if len(created.Conflicts) > 0 {
			sum.withConflicts++
		}
	}
	return sum, nil
}

func createInput(e *domain.CalendarEvent) scheduling.CreateEventInput {
	in := scheduling.CreateEventInput{
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Start:       e.Start,
		End:         e.End,
		AllDay:      e.AllDay,
		Type:        e.Type,
		Priority:    e.Priority,
		Status:      e.Status,
		Recurrence:  e.Recurrence,
		ProjectID:   e.ProjectID,
		ClientID:    e.ClientID,
	}
	for _, a := range e.Attendees {
		in.Attendees = append(in.Attendees, scheduling.AttendeeInput{
			UserID:   a.UserID,
			Email:    a.Email,
			Name:     a.Name,
			Response: a.Response,
			Optional: a.Optional,
		})
	}
	return in
}
