package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"etching/internal/core/domain/model/kernel"
)

const envelopeVersion = 1

// Envelope is the wire form of every event this service emits. Payload holds
// the event's own JSON.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps ev. The aggregate id doubles as correlation id so all
// events of one order can be followed on the consumer side.
func NewEnvelope(producer string, ev kernel.DomainEvent) (Envelope, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", ev.EventType(), err)
	}

	return Envelope{
		EventID:       ev.EventID().String(),
		EventType:     ev.EventType(),
		EventVersion:  envelopeVersion,
		OccurredAt:    ev.OccurredAt().UTC(),
		Producer:      producer,
		CorrelationID: ev.AggregateID().String(),
		Payload:       payload,
	}, nil
}

// UnwrapPayload decodes the payload into a concrete event type.
func UnwrapPayload[T any](env Envelope) (T, error) {
	var t T
	if err := json.Unmarshal(env.Payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
