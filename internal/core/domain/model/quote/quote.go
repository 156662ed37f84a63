package quote

import (
	"context"
	"errors"
	"math"
	"time"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/workflow"
	"etching/internal/pkg/errs"
)

// ErrQuoteIsNotConstructed is returned when a zero Quote is used.
var ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote constructor")

// Quote is a vendor price offer for an order.
type Quote struct {
	id                 kernel.UUID
	orderID            kernel.UUID
	vendorID           kernel.UUID
	amountCents        int64
	counterAmountCents *int64
	validUntil         time.Time
	status             Status
	version            int

	events        []kernel.DomainEvent
	isConstructed bool
}

// NewQuote creates a draft quote. Every invalid argument is reported.
func NewQuote(id, orderID, vendorID kernel.UUID, amountCents int64, validUntil time.Time) (*Quote, error) {
	q := &Quote{
		status:        Draft,
		isConstructed: true,
	}

	if err := errors.Join(
		q.setIDs(id, orderID, vendorID),
		q.setAmount(amountCents),
		q.setValidUntil(validUntil),
	); err != nil {
		return nil, err
	}

	return q, nil
}

// RestoreParams carries a stored quote back into the domain.
type RestoreParams struct {
	ID                 kernel.UUID
	OrderID            kernel.UUID
	VendorID           kernel.UUID
	AmountCents        int64
	CounterAmountCents *int64
	ValidUntil         time.Time
	Status             Status
	Version            int
}

// RestoreQuote rebuilds a quote loaded from storage without recording events.
func RestoreQuote(p RestoreParams) (*Quote, error) {
	q := &Quote{
		counterAmountCents: p.CounterAmountCents,
		version:            p.Version,
		isConstructed:      true,
	}

	if err := errors.Join(
		q.setIDs(p.ID, p.OrderID, p.VendorID),
		q.setAmount(p.AmountCents),
		q.setValidUntil(p.ValidUntil),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	q.status = p.Status

	return q, nil
}

// Validate rejects a nil or zero Quote.
func (q *Quote) Validate() error {
	if q == nil || !q.isConstructed {
		return ErrQuoteIsNotConstructed
	}
	return nil
}

// ID returns the quote id.
func (q *Quote) ID() kernel.UUID { return q.id }

// OrderID returns the order the quote prices.
func (q *Quote) OrderID() kernel.UUID { return q.orderID }

// VendorID returns the vendor that made the offer.
func (q *Quote) VendorID() kernel.UUID { return q.vendorID }

// AmountCents returns the original offer.
func (q *Quote) AmountCents() int64 { return q.amountCents }

// CounterAmountCents returns the counter offer, nil until one is made.
func (q *Quote) CounterAmountCents() *int64 { return q.counterAmountCents }

// ValidUntil returns the end of the validity window in UTC.
func (q *Quote) ValidUntil() time.Time { return q.validUntil }

// Status returns the current workflow status.
func (q *Quote) Status() Status { return q.status }

// Version returns the stored version the quote was loaded with.
func (q *Quote) Version() int { return q.version }

// MarkPersisted records the version the repository stored.
func (q *Quote) MarkPersisted(version int) {
	q.version = version
}

// IsExpired reports whether the validity window passed while the quote is still open.
func (q *Quote) IsExpired(now time.Time) bool {
	return !IsTerminal(q.status) && !now.Before(q.validUntil)
}

// ChangeStatus applies a legal transition. The error is a *workflow.ValidationError
// listing every failure. An expired quote can no longer be accepted or countered.
func (q *Quote) ChangeStatus(ctx context.Context, to Status, now time.Time) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if err := q.validateChange(to, now).Err(); err != nil {
		return err
	}

	from := q.status
	next, err := graph.Fire(ctx, from, to, nil)
	if err != nil {
		return err
	}
	q.status = next
	q.events = append(q.events, newStatusChanged(q, from, now))
	return nil
}

// Counter records the vendor's counter offer and moves the quote to countered.
func (q *Quote) Counter(ctx context.Context, amountCents int64, now time.Time) error {
	if err := q.Validate(); err != nil {
		return err
	}

	failures := q.validateChange(Countered, now)
	if amountCents < 0 {
		failures = append(failures, workflow.Amount("counter_amount_cents", "counter amount must not be negative"))
	}
	if err := failures.Err(); err != nil {
		return err
	}

	prev := q.counterAmountCents
	q.counterAmountCents = &amountCents
	if err := q.ChangeStatus(ctx, Countered, now); err != nil {
		q.counterAmountCents = prev
		return err
	}
	return nil
}

// Expire moves an open quote whose window passed to expired. It returns false
// when nothing changed.
func (q *Quote) Expire(ctx context.Context, now time.Time) (bool, error) {
	if !q.IsExpired(now) {
		return false, nil
	}
	if err := q.ChangeStatus(ctx, Expired, now); err != nil {
		return false, err
	}
	return true, nil
}

// DomainEvents returns a copy of the events recorded since the last clear.
func (q *Quote) DomainEvents() []kernel.DomainEvent {
	out := make([]kernel.DomainEvent, len(q.events))
	copy(out, q.events)
	return out
}

// ClearDomainEvents drops the recorded events once they are published.
func (q *Quote) ClearDomainEvents() {
	q.events = nil
}

func (q *Quote) validateChange(to Status, now time.Time) workflow.Failures {
	failures := ValidateTransition(q.status, to)
	if (to == Accepted || to == Countered) && q.IsExpired(now) {
		failures = append(failures, workflow.Guard("valid_until", "quote has expired"))
	}
	return failures
}

func (q *Quote) setIDs(id, orderID, vendorID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate(), vendorID.Validate()); err != nil {
		return err
	}
	q.id, q.orderID, q.vendorID = id, orderID, vendorID
	return nil
}

func (q *Quote) setAmount(cents int64) error {
	if cents < 0 {
		return errs.NewValueIsOutOfRangeError("amount_cents", cents, 0, int64(math.MaxInt64))
	}
	q.amountCents = cents
	return nil
}

func (q *Quote) setValidUntil(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("valid_until")
	}
	q.validUntil = t.UTC()
	return nil
}
