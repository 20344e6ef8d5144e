package shared

import "time"

// DomainEvent is raised by aggregates on significant state changes.
// Events are collected by the unit of work, written to the outbox table in the
// same transaction as the state change, and published asynchronously by the
// outbox worker.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// EventRecorder is embedded by aggregates that raise domain events.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event to the pending list
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents returns the pending events and clears the list.
// Clearing avoids double-writing events when an aggregate is saved twice.
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}
