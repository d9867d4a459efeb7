package scheduling

import (
	"context"
	"sync"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

var _ changePublisher = &changePublisherMock{}

type changePublisherMock struct {
	PublishFunc func(ctx context.Context, change domain.EventChange) error

	calls struct {
		Publish []struct {
			Ctx    context.Context
			Change domain.EventChange
		}
	}
	lockPublish sync.RWMutex
}

func (mock *changePublisherMock) Publish(ctx context.Context, change domain.EventChange) error {
	if mock.PublishFunc == nil {
		panic("changePublisherMock.PublishFunc: method is nil but changePublisher.Publish was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Change domain.EventChange
	}{Ctx: ctx, Change: change}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, change)
}

func (mock *changePublisherMock) PublishCalls() []struct {
	Ctx    context.Context
	Change domain.EventChange
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
