package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

var _ preferenceService = &preferenceServiceMock{}

type preferenceServiceMock struct {
	GetFunc func(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error)
	SetFunc func(ctx context.Context, userID uuid.UUID, p *domain.CalendarPreferences) (*domain.CalendarPreferences, error)

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Set []struct {
			Ctx    context.Context
			UserID uuid.UUID
			P      *domain.CalendarPreferences
		}
	}
	lockGet sync.RWMutex
	lockSet sync.RWMutex
}

func (mock *preferenceServiceMock) Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error) {
	if mock.GetFunc == nil {
		panic("preferenceServiceMock.GetFunc: method is nil but preferenceService.Get was just called")
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

func (mock *preferenceServiceMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *preferenceServiceMock) Set(ctx context.Context, userID uuid.UUID, p *domain.CalendarPreferences) (*domain.CalendarPreferences, error) {
	if mock.SetFunc == nil {
		panic("preferenceServiceMock.SetFunc: method is nil but preferenceService.Set was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		P      *domain.CalendarPreferences
	}{Ctx: ctx, UserID: userID, P: p}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, userID, p)
}

func (mock *preferenceServiceMock) SetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	P      *domain.CalendarPreferences
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}
