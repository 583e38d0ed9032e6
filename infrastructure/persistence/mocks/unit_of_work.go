package mocks

import (
	"context"

	"foody/domain/shared"
)

// TxStore is implemented by the in-memory repositories. The unit of work
// snapshots every enlisted store before running fn and restores the
// snapshots when fn or the commit hook fails, mirroring a transaction
// rollback.
type TxStore interface {
	snapshot() any
	restore(snapshot any)
}

var (
	_ TxStore = (*CartRepository)(nil)
	_ TxStore = (*OrderRepository)(nil)
	_ TxStore = (*ReviewRepository)(nil)
)

// UnitOfWork mock transaction boundary. fn runs against the in-memory
// repositories directly; enlisted stores are snapshotted up front and
// restored on failure, so an aborted Execute leaves no partial writes.
// Events pulled from registered aggregates are captured in SavedEvents so
// tests can assert on them.
//
// BeforeCommit, when set, runs after fn succeeds and before events are
// collected; returning an error simulates a commit failure for atomicity
// tests.
type UnitOfWork struct {
	stores       []TxStore
	aggregates   []shared.AggregateRoot
	SavedEvents  []shared.DomainEvent
	BeforeCommit func() error
}

// NewUnitOfWork creates a mock unit of work over the given stores.
func NewUnitOfWork(stores ...TxStore) *UnitOfWork {
	return &UnitOfWork{stores: stores, aggregates: make([]shared.AggregateRoot, 0)}
}

// Enlist adds stores to snapshot and restore around Execute.
func (u *UnitOfWork) Enlist(stores ...TxStore) {
	u.stores = append(u.stores, stores...)
}

// Execute runs fn, restoring the enlisted stores when fn or BeforeCommit
// fails.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.aggregates = make([]shared.AggregateRoot, 0)

	snapshots := make([]any, len(u.stores))
	for i, store := range u.stores {
		snapshots[i] = store.snapshot()
	}
	rollback := func() {
		for i, store := range u.stores {
			store.restore(snapshots[i])
		}
	}

	if err := fn(ctx); err != nil {
		rollback()
		return err
	}

	if u.BeforeCommit != nil {
		if err := u.BeforeCommit(); err != nil {
			rollback()
			return err
		}
	}

	for _, agg := range u.aggregates {
		u.SavedEvents = append(u.SavedEvents, agg.PullEvents()...)
	}
	return nil
}

// RegisterNew registers a newly created aggregate for event collection.
func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate for event collection.
func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterRemoved registers a removed aggregate for event collection.
func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWorkFactory hands out units of work over a fixed set of stores.
// With Shared set, every New() returns the same instance so tests can
// inspect SavedEvents afterwards.
type UnitOfWorkFactory struct {
	Shared *UnitOfWork

	stores []TxStore
}

// NewUnitOfWorkFactory creates a factory producing units of work that
// snapshot and restore the given stores.
func NewUnitOfWorkFactory(stores ...TxStore) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{stores: stores}
}

// New returns the shared unit of work when set, otherwise a fresh one.
func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	if f.Shared != nil {
		return f.Shared
	}
	return NewUnitOfWork(f.stores...)
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
