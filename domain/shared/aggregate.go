package shared

// AggregateRoot is the entry point of an aggregate. It maintains the
// aggregate's consistency boundary: all modifications go through the root,
// and the root records the domain events those modifications raise.
type AggregateRoot interface {
	// ID returns the globally unique identifier of the aggregate root.
	ID() string

	// Version returns the optimistic-lock version used for concurrency control.
	Version() int

	// PullEvents returns and clears the recorded domain events.
	// The unit of work calls this inside the transaction to persist events
	// to the outbox atomically with the business data.
	PullEvents() []DomainEvent
}

// Entity has identity; equality follows the ID, not the attributes.
type Entity interface {
	ID() string
}
