package scheduling

import (
	"context"
	"sync"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

var _ suggestionGenerator = &suggestionGeneratorMock{}

type suggestionGeneratorMock struct {
	GenerateFunc func(ctx context.Context, e *domain.CalendarEvent) (*domain.AISuggestions, error)

	calls struct {
		Generate []struct {
			Ctx context.Context
			E   *domain.CalendarEvent
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *suggestionGeneratorMock) Generate(ctx context.Context, e *domain.CalendarEvent) (*domain.AISuggestions, error) {
	if mock.GenerateFunc == nil {
		panic("suggestionGeneratorMock.GenerateFunc: method is nil but suggestionGenerator.Generate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.CalendarEvent
	}{Ctx: ctx, E: e}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, e)
}

func (mock *suggestionGeneratorMock) GenerateCalls() []struct {
	Ctx context.Context
	E   *domain.CalendarEvent
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}
