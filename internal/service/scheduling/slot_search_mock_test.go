package scheduling

import (
	"context"
	"sync"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/slot"
)

var _ slotSearch = &slotSearchMock{}

type slotSearchMock struct {
	FindAvailableFunc func(ctx context.Context, reader slot.EventReader, durationMinutes int, attendeeEmails []string, constraints *domain.SchedulingConstraints, prefs *domain.CalendarPreferences) ([]domain.TimeSlot, error)
	ScoreFunc         func(s domain.TimeSlot, req *domain.SchedulingRequest, prefs *domain.CalendarPreferences) float64

	calls struct {
		FindAvailable []struct {
			Ctx             context.Context
			Reader          slot.EventReader
			DurationMinutes int
			AttendeeEmails  []string
			Constraints     *domain.SchedulingConstraints
			Prefs           *domain.CalendarPreferences
		}
		Score []struct {
			S     domain.TimeSlot
			Req   *domain.SchedulingRequest
			Prefs *domain.CalendarPreferences
		}
	}
	lockFindAvailable sync.RWMutex
	lockScore         sync.RWMutex
}

func (mock *slotSearchMock) FindAvailable(ctx context.Context, reader slot.EventReader, durationMinutes int, attendeeEmails []string, constraints *domain.SchedulingConstraints, prefs *domain.CalendarPreferences) ([]domain.TimeSlot, error) {
	if mock.FindAvailableFunc == nil {
		panic("slotSearchMock.FindAvailableFunc: method is nil but slotSearch.FindAvailable was just called")
	}
	callInfo := struct {
		Ctx             context.Context
		Reader          slot.EventReader
		DurationMinutes int
		AttendeeEmails  []string
		Constraints     *domain.SchedulingConstraints
		Prefs           *domain.CalendarPreferences
	}{Ctx: ctx, Reader: reader, DurationMinutes: durationMinutes, AttendeeEmails: attendeeEmails, Constraints: constraints, Prefs: prefs}
	mock.lockFindAvailable.Lock()
	mock.calls.FindAvailable = append(mock.calls.FindAvailable, callInfo)
	mock.lockFindAvailable.Unlock()
	return mock.FindAvailableFunc(ctx, reader, durationMinutes, attendeeEmails, constraints, prefs)
}

func (mock *slotSearchMock) FindAvailableCalls() []struct {
	Ctx             context.Context
	Reader          slot.EventReader
	DurationMinutes int
	AttendeeEmails  []string
	Constraints     *domain.SchedulingConstraints
	Prefs           *domain.CalendarPreferences
} {
	mock.lockFindAvailable.RLock()
	calls := mock.calls.FindAvailable
	mock.lockFindAvailable.RUnlock()
	return calls
}

func (mock *slotSearchMock) Score(s domain.TimeSlot, req *domain.SchedulingRequest, prefs *domain.CalendarPreferences) float64 {
	if mock.ScoreFunc == nil {
		panic("slotSearchMock.ScoreFunc: method is nil but slotSearch.Score was just called")
	}
	callInfo := struct {
		S     domain.TimeSlot
		Req   *domain.SchedulingRequest
		Prefs *domain.CalendarPreferences
	}{S: s, Req: req, Prefs: prefs}
	mock.lockScore.Lock()
	mock.calls.Score = append(mock.calls.Score, callInfo)
	mock.lockScore.Unlock()
	return mock.ScoreFunc(s, req, prefs)
}

func (mock *slotSearchMock) ScoreCalls() []struct {
	S     domain.TimeSlot
	Req   *domain.SchedulingRequest
	Prefs *domain.CalendarPreferences
} {
	mock.lockScore.RLock()
	calls := mock.calls.Score
	mock.lockScore.RUnlock()
	return calls
}
