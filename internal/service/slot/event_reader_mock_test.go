package slot

import (
	"context"
	"sync"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

var _ EventReader = &EventReaderMock{}

type EventReaderMock struct {
	QueryFunc func(ctx context.Context, filter domain.EventFilter, page int, pageSize int) ([]*domain.CalendarEvent, int, error)

	calls struct {
		Query []struct {
			Ctx      context.Context
			Filter   domain.EventFilter
			Page     int
			PageSize int
		}
	}
	lockQuery sync.RWMutex
}

func (mock *EventReaderMock) Query(ctx context.Context, filter domain.EventFilter, page int, pageSize int) ([]*domain.CalendarEvent, int, error) {
	if mock.QueryFunc == nil {
		panic("EventReaderMock.QueryFunc: method is nil but EventReader.Query was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Filter   domain.EventFilter
		Page     int
		PageSize int
	}{Ctx: ctx, Filter: filter, Page: page, PageSize: pageSize}
	mock.lockQuery.Lock()
	mock.calls.Query = append(mock.calls.Query, callInfo)
	mock.lockQuery.Unlock()
	return mock.QueryFunc(ctx, filter, page, pageSize)
}

func (mock *EventReaderMock) QueryCalls() []struct {
	Ctx      context.Context
	Filter   domain.EventFilter
	Page     int
	PageSize int
} {
	mock.lockQuery.RLock()
	calls := mock.calls.Query
	mock.lockQuery.RUnlock()
	return calls
}
