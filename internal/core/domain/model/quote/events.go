package quote

import (
	"time"

	"etching/internal/core/domain/model/kernel"
)

// EventTypeStatusChanged is the event type of StatusChanged.
const EventTypeStatusChanged = "quote.status_changed"

// StatusChanged is recorded on every quote transition. CounterAmountCents is
// set once a counter offer exists.
type StatusChanged struct {
	kernel.BaseEvent
	OrderID             kernel.UUID `json:"order_id"`
	From                Status      `json:"from"`
	To                  Status      `json:"to"`
	AmountCents         int64       `json:"amount_cents"`
	CounterAmountCents  *int64      `json:"counter_amount_cents,omitempty"`
	RequiresVendorInput bool        `json:"requires_vendor_action"`
	RequiresAdminInput  bool        `json:"requires_admin_action"`
}

func newStatusChanged(q *Quote, from Status, at time.Time) StatusChanged {
	return StatusChanged{
		BaseEvent:           kernel.NewBaseEvent(EventTypeStatusChanged, q.id, at),
		OrderID:             q.orderID,
		From:                from,
		To:                  q.status,
		AmountCents:         q.amountCents,
		CounterAmountCents:  q.counterAmountCents,
		RequiresVendorInput: RequiresVendorAction(q.status),
		RequiresAdminInput:  RequiresAdminAction(q.status),
	}
}
