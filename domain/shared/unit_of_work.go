package shared

import "context"

// EventSource is anything the unit of work can drain events from.
type EventSource interface {
	PullEvents() []DomainEvent
}

// UnitOfWork manages a transaction boundary and event collection.
// Execute runs fn inside a transaction; repositories pick the transaction up
// from the context. Events pulled from registered sources are written to the
// outbox table before commit.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	Register(source EventSource)
}

// UnitOfWorkFactory builds a fresh unit of work per use.
// A UnitOfWork accumulates registered sources, so sharing one instance across
// concurrent requests is not safe.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events for asynchronous publishing.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
