package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a state change.
// Events are drained by the unit of work after the transaction commits.
type DomainEvent interface {
	EventID() UUID
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseEvent carries the envelope fields every event shares. Concrete events embed it.
type BaseEvent struct {
	ID        UUID      `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate UUID      `json:"aggregate_id"`
	At        time.Time `json:"occurred_at"`
}

// NewBaseEvent stamps a fresh event id and normalizes at to UTC.
func NewBaseEvent(eventType string, aggregateID UUID, at time.Time) BaseEvent {
	return BaseEvent{
		ID:        NewUUID(),
		Type:      eventType,
		Aggregate: aggregateID,
		At:        at.UTC(),
	}
}

// EventID returns the unique id of this occurrence.
func (e BaseEvent) EventID() UUID { return e.ID }

// EventType returns the routing name, for example order.status_changed.
func (e BaseEvent) EventType() string { return e.Type }

// AggregateID returns the id of the aggregate that recorded the event.
func (e BaseEvent) AggregateID() UUID { return e.Aggregate }

// OccurredAt returns when the event happened, in UTC.
func (e BaseEvent) OccurredAt() time.Time { return e.At }
