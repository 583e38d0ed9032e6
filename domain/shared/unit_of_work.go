package shared

import "context"

// UnitOfWork manages the transaction boundary and collects events from the
// aggregates touched inside it. Reads performed through repositories inside
// Execute see a consistent snapshot; writes commit all-or-nothing.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// UnitOfWorkFactory creates a fresh unit of work per request, so concurrent
// requests never share aggregate registrations.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events inside the active transaction.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
