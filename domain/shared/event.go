package shared

import (
	"fmt"
	"time"
)

// DomainEvent is a fact recorded by an aggregate when its state changes.
// Events are collected by the unit of work, written to the outbox table in
// the same transaction as the state change, and processed asynchronously by
// the stats worker.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// EventHandler processes one event type. Implemented by the stats worker's
// projection handlers.
type EventHandler interface {
	Handle(event DomainEvent) error
	Name() string
}

// ValidateEvent rejects structurally invalid events before they reach
// the outbox.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}
