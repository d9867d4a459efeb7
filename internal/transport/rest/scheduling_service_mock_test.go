package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/internal/service/scheduling"
)

var _ schedulingService = &schedulingServiceMock{}

type schedulingServiceMock struct {
	CreateEventFunc         func(ctx context.Context, input scheduling.CreateEventInput) (*domain.CalendarEvent, error)
	GetEventFunc            func(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error)
	ListEventsFunc          func(ctx context.Context, input scheduling.ListEventsInput) (*scheduling.EventList, error)
	UpdateEventFunc         func(ctx context.Context, input scheduling.UpdateEventInput) (*domain.CalendarEvent, error)
	DeleteEventFunc         func(ctx context.Context, id uuid.UUID) error
	RedetectConflictsFunc   func(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error)
	RescheduleEventFunc     func(ctx context.Context, id uuid.UUID, to domain.TimeSlot) (*domain.CalendarEvent, error)
	CheckConflictsFunc      func(ctx context.Context, input scheduling.CheckConflictsInput) ([]domain.ConflictInfo, error)
	SuggestOptimalTimesFunc func(ctx context.Context, req domain.SchedulingRequest) (*domain.SchedulingResult, error)

	calls struct {
		CreateEvent []struct {
			Ctx   context.Context
			Input scheduling.CreateEventInput
		}
		GetEvent []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListEvents []struct {
			Ctx   context.Context
			Input scheduling.ListEventsInput
		}
		UpdateEvent []struct {
			Ctx   context.Context
			Input scheduling.UpdateEventInput
		}
		DeleteEvent []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		RedetectConflicts []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		RescheduleEvent []struct {
			Ctx context.Context
			ID  uuid.UUID
			To  domain.TimeSlot
		}
		CheckConflicts []struct {
			Ctx   context.Context
			Input scheduling.CheckConflictsInput
		}
		SuggestOptimalTimes []struct {
			Ctx context.Context
			Req domain.SchedulingRequest
		}
	}
	lockCreateEvent         sync.RWMutex
	lockGetEvent            sync.RWMutex
	lockListEvents          sync.RWMutex
	lockUpdateEvent         sync.RWMutex
	lockDeleteEvent         sync.RWMutex
	lockRedetectConflicts   sync.RWMutex
	lockRescheduleEvent     sync.RWMutex
	lockCheckConflicts      sync.RWMutex
	lockSuggestOptimalTimes sync.RWMutex
}

func (mock *schedulingServiceMock) CreateEvent(ctx context.Context, input scheduling.CreateEventInput) (*domain.CalendarEvent, error) {
	if mock.CreateEventFunc == nil {
		panic("schedulingServiceMock.CreateEventFunc: method is nil but schedulingService.CreateEvent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input scheduling.CreateEventInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateEvent.Lock()
	mock.calls.CreateEvent = append(mock.calls.CreateEvent, callInfo)
	mock.lockCreateEvent.Unlock()
	return mock.CreateEventFunc(ctx, input)
}

func (mock *schedulingServiceMock) CreateEventCalls() []struct {
	Ctx   context.Context
	Input scheduling.CreateEventInput
} {
	mock.lockCreateEvent.RLock()
	calls := mock.calls.CreateEvent
	mock.lockCreateEvent.RUnlock()
	return calls
}

func (mock *schedulingServiceMock) GetEvent(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	if mock.GetEventFunc == nil {
		panic("schedulingServiceMock.GetEventFunc: method is nil but schedulingService.GetEvent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetEvent.Lock()
	mock.calls.GetEvent = append(mock.calls.GetEvent, callInfo)
	mock.lockGetEvent.Unlock()
	return mock.GetEventFunc(ctx, id)
}

func (mock *schedulingServiceMock) GetEventCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetEvent.RLock()
	calls := mock.calls.GetEvent
	mock.lockGetEvent.RUnlock()
	return calls
}

func (mock *schedulingServiceMock) ListEvents(ctx context.Context, input scheduling.ListEventsInput) (*scheduling.EventList, error) {
	if mock.ListEventsFunc == nil {
		panic("schedulingServiceMock.ListEventsFunc: method is nil but schedulingService.ListEvents was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input scheduling.ListEventsInput
	}{Ctx: ctx, Input: input}
	mock.lockListEvents.Lock()
	mock.calls.ListEvents = append(mock.calls.ListEvents, callInfo)
	mock.lockListEvents.Unlock()
	return mock.ListEventsFunc(ctx, input)
}

func (mock *schedulingServiceMock) ListEventsCalls() []struct {
	Ctx   context.Context
	Input scheduling.ListEventsInput
} {
	mock.lockListEvents.RLock()
	calls := mock.calls.ListEvents
	mock.lockListEvents.RUnlock()
	return calls
}

func (mock *schedulingServiceMock) UpdateEvent(ctx context.Context, input scheduling.UpdateEventInput) (*domain.CalendarEvent, error) {
	if mock.UpdateEventFunc == nil {
		panic("schedulingServiceMock.UpdateEventFunc: method is nil but schedulingService.UpdateEvent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input scheduling.UpdateEventInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdateEvent.Lock()
	mock.calls.UpdateEvent = append(mock.calls.UpdateEvent, callInfo)
	mock.lockUpdateEvent.Unlock()
	return mock.UpdateEventFunc(ctx, input)
}

func (mock *schedulingServiceMock) UpdateEventCalls() []struct {
	Ctx   context.Context
	Input scheduling.UpdateEventInput
} {
	mock.lockUpdateEvent.RLock()
	calls := mock.calls.UpdateEvent
	mock.lockUpdateEvent.RUnlock()
	return calls
}

func (mock *schedulingServiceMock) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteEventFunc == nil {
		panic("schedulingServiceMock.DeleteEventFunc: method is nil but schedulingService.DeleteEvent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDeleteEvent.Lock()
	mock.calls.DeleteEvent = append(mock.calls.DeleteEvent, callInfo)
	mock.lockDeleteEvent.Unlock()
	return mock.DeleteEventFunc(ctx, id)
}

func (mock *schedulingServiceMock) DeleteEventCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDeleteEvent.RLock()
	calls := mock.calls.DeleteEvent
	mock.lockDeleteEvent.RUnlock()
	return calls
}

func (mock *schedulingServiceMock) RedetectConflicts(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	if mock.RedetectConflictsFunc == nil {
		panic("schedulingServiceMock.RedetectConflictsFunc: method is nil but schedulingService.RedetectConflicts was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockRedetectConflicts.Lock()
	mock.calls.RedetectConflicts = append(mock.calls.RedetectConflicts, callInfo)
	mock.lockRedetectConflicts.Unlock()
	return mock.RedetectConflictsFunc(ctx, id)
}

func (mock *schedulingServiceMock) RedetectConflictsCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockRedetectConflicts.RLock()
	calls := mock.calls.RedetectConflicts
	mock.lockRedetectConflicts.RUnlock()
	return calls
}

func (mock *schedulingServiceMock) RescheduleEvent(ctx context.Context, id uuid.UUID, to domain.TimeSlot) (*domain.CalendarEvent, error) {
	if mock.RescheduleEventFunc == nil {
		panic("schedulingServiceMock.RescheduleEventFunc: method is nil but schedulingService.RescheduleEvent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		To  domain.TimeSlot
	}{Ctx: ctx, ID: id, To: to}
	mock.lockRescheduleEvent.Lock()
	mock.calls.RescheduleEvent = append(mock.calls.RescheduleEvent, callInfo)
	mock.lockRescheduleEvent.Unlock()
	return mock.RescheduleEventFunc(ctx, id, to)
}

func (mock *schedulingServiceMock) RescheduleEventCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	To  domain.TimeSlot
} {
	mock.lockRescheduleEvent.RLock()
	calls := mock.calls.RescheduleEvent
	mock.lockRescheduleEvent.RUnlock()
	return calls
}

func (mock *schedulingServiceMock) CheckConflicts(ctx context.Context, input scheduling.CheckConflictsInput) ([]domain.ConflictInfo, error) {
	if mock.CheckConflictsFunc == nil {
		panic("schedulingServiceMock.CheckConflictsFunc: method is nil but schedulingService.CheckConflicts was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input scheduling.CheckConflictsInput
	}{Ctx: ctx, Input: input}
	mock.lockCheckConflicts.Lock()
	mock.calls.CheckConflicts = append(mock.calls.CheckConflicts, callInfo)
	mock.lockCheckConflicts.Unlock()
	return mock.CheckConflictsFunc(ctx, input)
}

func (mock *schedulingServiceMock) CheckConflictsCalls() []struct {
	Ctx   context.Context
	Input scheduling.CheckConflictsInput
} {
	mock.lockCheckConflicts.RLock()
	calls := mock.calls.CheckConflicts
	mock.lockCheckConflicts.RUnlock()
	return calls
}

func (mock *schedulingServiceMock) SuggestOptimalTimes(ctx context.Context, req domain.SchedulingRequest) (*domain.SchedulingResult, error) {
	if mock.SuggestOptimalTimesFunc == nil {
		panic("schedulingServiceMock.SuggestOptimalTimesFunc: method is nil but schedulingService.SuggestOptimalTimes was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.SchedulingRequest
	}{Ctx: ctx, Req: req}
	mock.lockSuggestOptimalTimes.Lock()
	mock.calls.SuggestOptimalTimes = append(mock.calls.SuggestOptimalTimes, callInfo)
	mock.lockSuggestOptimalTimes.Unlock()
	return mock.SuggestOptimalTimesFunc(ctx, req)
}

func (mock *schedulingServiceMock) SuggestOptimalTimesCalls() []struct {
	Ctx context.Context
	Req domain.SchedulingRequest
} {
	mock.lockSuggestOptimalTimes.RLock()
	calls := mock.calls.SuggestOptimalTimes
	mock.lockSuggestOptimalTimes.RUnlock()
	return calls
}
