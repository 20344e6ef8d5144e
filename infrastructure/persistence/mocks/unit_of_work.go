package mocks

import (
	"context"
	"sync"

	"storefront/domain/shared"
)

// Store is a mock repository whose whole state can be copied before a unit of
// work runs and put back when it fails
type Store interface {
	Snapshot() any
	Restore(state any)
}

// cloneMap copies a repository state map, cloning each stored value
func cloneMap[K comparable, V any](m map[K]*V) map[K]*V {
	out := make(map[K]*V, len(m))
	for k, v := range m {
		clone := *v
		out[k] = &clone
	}
	return out
}

// UnitOfWork in-memory implementation of the unit of work
// Participating stores are snapshotted before fn runs and restored when fn
// fails, so a failed transaction leaves no partial writes behind; events
// drained from registered sources are recorded for assertions
type UnitOfWork struct {
	mu      sync.Mutex
	stores  []Store
	sources []shared.EventSource

	// Events accumulates everything drained across Execute calls
	Events []shared.DomainEvent
}

// NewUnitOfWork creates an in-memory unit of work over the given stores
func NewUnitOfWork(stores ...Store) *UnitOfWork {
	return &UnitOfWork{stores: stores}
}

// Execute runs fn and drains registered sources into Events.
// On error every participating store is rolled back to its pre-fn state.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	u.sources = nil
	snapshots := make([]any, len(u.stores))
	for i, store := range u.stores {
		snapshots[i] = store.Snapshot()
	}
	u.mu.Unlock()

	if err := fn(ctx); err != nil {
		u.mu.Lock()
		defer u.mu.Unlock()
		for i := len(u.stores) - 1; i >= 0; i-- {
			u.stores[i].Restore(snapshots[i])
		}
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for _, source := range u.sources {
		u.Events = append(u.Events, source.PullEvents()...)
	}
	return nil
}

// Register registers an event source for draining after fn succeeds
func (u *UnitOfWork) Register(source shared.EventSource) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sources = append(u.sources, source)
}

// UnitOfWorkFactory hands out a shared in-memory unit of work so tests can
// inspect the collected events
type UnitOfWorkFactory struct {
	UoW *UnitOfWork
}

// NewUnitOfWorkFactory creates a factory around a single shared instance
func NewUnitOfWorkFactory(stores ...Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{UoW: NewUnitOfWork(stores...)}
}

// New returns the shared unit of work
func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return f.UoW
}

// Compile-time checks
var (
	_ shared.UnitOfWork        = (*UnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
)
