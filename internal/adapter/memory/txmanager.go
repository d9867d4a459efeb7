package memory

import (
	"context"
	"fmt"
	"sync"
)

type txCtxKey struct{}

// TxManager serializes writers on an EventStore. A failed unit of work
// restores the events present when it began.
type TxManager struct {
	mu    sync.Mutex
	store *EventStore
}

// NewTxManager creates a TxManager guarding store.
func NewTxManager(store *EventStore) *TxManager {
	return &TxManager{store: store}
}

// RunInTx executes fn while holding the writer lock. Nested calls reuse the
// outer unit.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txCtxKey{}) == m {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	saved := m.store.snapshot()
	defer func() {
		if r := recover(); r != nil {
			m.store.restore(saved)
			panic(r)
		}
		if err != nil {
			m.store.restore(saved)
		}
	}()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}
	return fn(context.WithValue(ctx, txCtxKey{}, m))
}
