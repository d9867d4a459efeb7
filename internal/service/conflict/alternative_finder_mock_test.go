package conflict

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/slot"
)

var _ alternativeFinder = &alternativeFinderMock{}

type alternativeFinderMock struct {
	FindAlternativesFunc func(ctx context.Context, reader slot.EventReader, event *domain.CalendarEvent, buffer time.Duration) ([]domain.TimeSlot, error)

	calls struct {
		FindAlternatives []struct {
			Ctx    context.Context
			Reader slot.EventReader
			Event  *domain.CalendarEvent
			Buffer time.Duration
		}
	}
	lockFindAlternatives sync.RWMutex
}

func (mock *alternativeFinderMock) FindAlternatives(ctx context.Context, reader slot.EventReader, event *domain.CalendarEvent, buffer time.Duration) ([]domain.TimeSlot, error) {
	if mock.FindAlternativesFunc == nil {
		panic("alternativeFinderMock.FindAlternativesFunc: method is nil but alternativeFinder.FindAlternatives was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Reader slot.EventReader
		Event  *domain.CalendarEvent
		Buffer time.Duration
	}{Ctx: ctx, Reader: reader, Event: event, Buffer: buffer}
	mock.lockFindAlternatives.Lock()
	mock.calls.FindAlternatives = append(mock.calls.FindAlternatives, callInfo)
	mock.lockFindAlternatives.Unlock()
	return mock.FindAlternativesFunc(ctx, reader, event, buffer)
}

func (mock *alternativeFinderMock) FindAlternativesCalls() []struct {
	Ctx    context.Context
	Reader slot.EventReader
	Event  *domain.CalendarEvent
	Buffer time.Duration
} {
	mock.lockFindAlternatives.RLock()
	calls := mock.calls.FindAlternatives
	mock.lockFindAlternatives.RUnlock()
	return calls
}
