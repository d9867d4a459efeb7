package scheduling

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

var _ EventStore = &EventStoreMock{}

type EventStoreMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error)
	QueryFunc   func(ctx context.Context, filter domain.EventFilter, page int, pageSize int) ([]*domain.CalendarEvent, int, error)
	CreateFunc  func(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error)
	UpdateFunc  func(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Query []struct {
			Ctx      context.Context
			Filter   domain.EventFilter
			Page     int
			PageSize int
		}
		Create []struct {
			Ctx context.Context
			E   *domain.CalendarEvent
		}
		Update []struct {
			Ctx context.Context
			E   *domain.CalendarEvent
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
	lockQuery   sync.RWMutex
	lockCreate  sync.RWMutex
	lockUpdate  sync.RWMutex
	lockDelete  sync.RWMutex
}

func (mock *EventStoreMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	if mock.GetByIDFunc == nil {
		panic("EventStoreMock.GetByIDFunc: method is nil but EventStore.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *EventStoreMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *EventStoreMock) Query(ctx context.Context, filter domain.EventFilter, page int, pageSize int) ([]*domain.CalendarEvent, int, error) {
	if mock.QueryFunc == nil {
		panic("EventStoreMock.QueryFunc: method is nil but EventStore.Query was just called")
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

func (mock *EventStoreMock) QueryCalls() []struct {
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

func (mock *EventStoreMock) Create(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if mock.CreateFunc == nil {
		panic("EventStoreMock.CreateFunc: method is nil but EventStore.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.CalendarEvent
	}{Ctx: ctx, E: e}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *EventStoreMock) CreateCalls() []struct {
	Ctx context.Context
	E   *domain.CalendarEvent
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *EventStoreMock) Update(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if mock.UpdateFunc == nil {
		panic("EventStoreMock.UpdateFunc: method is nil but EventStore.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.CalendarEvent
	}{Ctx: ctx, E: e}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, e)
}

func (mock *EventStoreMock) UpdateCalls() []struct {
	Ctx context.Context
	E   *domain.CalendarEvent
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *EventStoreMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("EventStoreMock.DeleteFunc: method is nil but EventStore.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *EventStoreMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
