package slot

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

var _ FreeBusy = &FreeBusyMock{}

type FreeBusyMock struct {
	BusyFunc func(ctx context.Context, emails []string, from time.Time, to time.Time) ([]domain.TimeSlot, error)

	calls struct {
		Busy []struct {
			Ctx    context.Context
			Emails []string
			From   time.Time
			To     time.Time
		}
	}
	lockBusy sync.RWMutex
}

func (mock *FreeBusyMock) Busy(ctx context.Context, emails []string, from time.Time, to time.Time) ([]domain.TimeSlot, error) {
	if mock.BusyFunc == nil {
		panic("FreeBusyMock.BusyFunc: method is nil but FreeBusy.Busy was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Emails []string
		From   time.Time
		To     time.Time
	}{Ctx: ctx, Emails: emails, From: from, To: to}
	mock.lockBusy.Lock()
	mock.calls.Busy = append(mock.calls.Busy, callInfo)
	mock.lockBusy.Unlock()
	return mock.BusyFunc(ctx, emails, from, to)
}

func (mock *FreeBusyMock) BusyCalls() []struct {
	Ctx    context.Context
	Emails []string
	From   time.Time
	To     time.Time
} {
	mock.lockBusy.RLock()
	calls := mock.calls.Busy
	mock.lockBusy.RUnlock()
	return calls
}
