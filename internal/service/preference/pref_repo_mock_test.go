package preference

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

var _ prefRepo = &prefRepoMock{}

type prefRepoMock struct {
	GetFunc    func(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error)
	UpsertFunc func(ctx context.Context, p *domain.CalendarPreferences) error

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Upsert []struct {
			Ctx context.Context
			P   *domain.CalendarPreferences
		}
	}
	lockGet    sync.RWMutex
	lockUpsert sync.RWMutex
}

func (mock *prefRepoMock) Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error) {
	if mock.GetFunc == nil {
		panic("prefRepoMock.GetFunc: method is nil but prefRepo.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID)
}

func (mock *prefRepoMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *prefRepoMock) Upsert(ctx context.Context, p *domain.CalendarPreferences) error {
	if mock.UpsertFunc == nil {
		panic("prefRepoMock.UpsertFunc: method is nil but prefRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.CalendarPreferences
	}{Ctx: ctx, P: p}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, p)
}

func (mock *prefRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	P   *domain.CalendarPreferences
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
