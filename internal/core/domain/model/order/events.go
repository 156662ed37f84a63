package order

import (
	"maps"
	"time"

	"etching/internal/core/domain/model/kernel"
)

// EventTypeStatusChanged is the event type of StatusChanged.
const EventTypeStatusChanged = "order.status_changed"

// StatusChanged is recorded by Order.ChangeStatus after a transition was
// applied. The notification flags are resolved at record time so consumers
// never need their own copy of the rules.
type StatusChanged struct {
	kernel.BaseEvent
	From           Status            `json:"from"`
	To             Status            `json:"to"`
	Reason         string            `json:"reason,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	TimestampField string            `json:"timestamp_field,omitempty"`
	Critical       bool              `json:"critical"`
	NotifyByEmail  bool              `json:"notify_by_email"`
}

func newStatusChanged(id kernel.UUID, from, to Status, change StatusChange, field string, at time.Time) StatusChanged {
	return StatusChanged{
		BaseEvent:      kernel.NewBaseEvent(EventTypeStatusChanged, id, at),
		From:           from,
		To:             to,
		Reason:         change.Reason,
		Notes:          change.Notes,
		Metadata:       maps.Clone(change.Metadata),
		TimestampField: field,
		Critical:       IsCriticalChange(to),
		NotifyByEmail:  ShouldNotifyByEmail(to),
	}
}
