package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/payment"
	"etching/internal/core/domain/model/workflow"
	"etching/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned for orders not built by NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of a custom-etching purchase order.
//
// Invariants:
//   - status only changes through ChangeStatus, which validates the
//     transition table and every guard first
//   - downPayment + remaining == totalCents whenever a payment type is set
//   - a closed (terminal) order accepts no further detail changes
type Order struct {
	id          kernel.UUID
	status      Status
	paymentType payment.Type
	totalCents  int64
	split       payment.Split

	vendorID          *kernel.UUID
	costBasisCents    *int64
	shippingAddress   string
	productionStartAt *time.Time

	shippedAt   *time.Time
	deliveredAt *time.Time
	paymentDate *time.Time

	statusReason string
	notes        string

	// version is the persisted revision used for optimistic locking.
	version int

	events        []kernel.DomainEvent
	isConstructed bool
}

// NewOrder creates a draft order. paymentType may be empty when the policy is
// not agreed yet; the payment guards will then block the payment statuses.
func NewOrder(id kernel.UUID, totalCents int64, paymentType payment.Type) (*Order, error) {
	o := &Order{
		status:        Draft,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTotal(totalCents),
		o.setPaymentType(paymentType),
	); err != nil {
		return nil, err
	}

	if err := o.recalculateSplit(); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams is the persisted state of an order.
type RestoreParams struct {
	ID                kernel.UUID
	Status            Status
	PaymentType       payment.Type
	TotalCents        int64
	VendorID          *kernel.UUID
	CostBasisCents    *int64
	ShippingAddress   string
	ProductionStartAt *time.Time
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	PaymentDate       *time.Time
	StatusReason      string
	Notes             string
	Version           int
}

// RestoreOrder rebuilds an order read from storage without replaying its history.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		vendorID:          p.VendorID,
		costBasisCents:    p.CostBasisCents,
		shippingAddress:   p.ShippingAddress,
		productionStartAt: p.ProductionStartAt,
		shippedAt:         p.ShippedAt,
		deliveredAt:       p.DeliveredAt,
		paymentDate:       p.PaymentDate,
		statusReason:      p.StatusReason,
		notes:             p.Notes,
		version:           p.Version,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setStatus(p.Status),
		o.setTotal(p.TotalCents),
		o.setPaymentType(p.PaymentType),
	); err != nil {
		return nil, err
	}

	if err := o.recalculateSplit(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order id.
func (o *Order) ID() kernel.UUID { return o.id }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentType returns the payment policy, empty until chosen.
func (o *Order) PaymentType() payment.Type { return o.paymentType }

// TotalCents returns the order total.
func (o *Order) TotalCents() int64 { return o.totalCents }

// DownPaymentCents returns the upfront part of the total.
func (o *Order) DownPaymentCents() int64 { return o.split.DownPayment }

// RemainingCents returns what is left after the down payment.
func (o *Order) RemainingCents() int64 { return o.split.Remaining }

// VendorID returns the assigned vendor or nil.
func (o *Order) VendorID() *kernel.UUID { return o.vendorID }

// CostBasisCents returns the vendor cost or nil.
func (o *Order) CostBasisCents() *int64 { return o.costBasisCents }

// ShippingAddress returns the delivery address.
func (o *Order) ShippingAddress() string { return o.shippingAddress }

// ProductionStartAt returns when production started.
func (o *Order) ProductionStartAt() *time.Time { return o.productionStartAt }

// ShippedAt is stamped on entering shipping.
func (o *Order) ShippedAt() *time.Time { return o.shippedAt }

// DeliveredAt is stamped on entering completed.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// PaymentDate is stamped on entering full_payment.
func (o *Order) PaymentDate() *time.Time { return o.paymentDate }

// StatusReason returns the reason given for cancel or refund.
func (o *Order) StatusReason() string { return o.statusReason }

// Notes returns the accumulated notes.
func (o *Order) Notes() string { return o.notes }

// Version returns the stored version the order was loaded with.
func (o *Order) Version() int { return o.version }

// PossibleTransitions lists the legal next statuses from the current one.
func (o *Order) PossibleTransitions() []Status { return PossibleTransitions(o.status) }

// CanTransitionTo reports whether to is a legal next status.
func (o *Order) CanTransitionTo(to Status) bool { return CanTransitionTo(o.status, to) }

// MarkPersisted records the version the repository stored.
func (o *Order) MarkPersisted(version int) {
	o.version = version
}

// AssignVendor records the etching vendor the order is sourced from.
func (o *Order) AssignVendor(vendorID kernel.UUID) error {
	if err := errors.Join(o.ensureOpen(), vendorID.Validate()); err != nil {
		return err
	}
	o.vendorID = &vendorID
	return nil
}

// SetCostBasis records the negotiated vendor price the customer quote is based on.
func (o *Order) SetCostBasis(cents int64) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if cents < 0 {
		return errs.NewValueIsOutOfRangeError("cost_basis_cents", cents, 0, int64(math.MaxInt64))
	}
	o.costBasisCents = &cents
	return nil
}

// SetPaymentType changes the payment policy and recomputes the split. Once
// any payment was taken the policy is locked.
func (o *Order) SetPaymentType(t payment.Type) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if o.paymentTaken() {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment type is locked",
			fmt.Errorf("order is already in %s", o.status),
		)
	}
	if t == "" {
		return errs.NewValueIsRequiredError("payment_type")
	}
	if err := o.setPaymentType(t); err != nil {
		return err
	}
	return o.recalculateSplit()
}

// SetShippingAddress records where the finished goods are delivered.
func (o *Order) SetShippingAddress(address string) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("shipping_address")
	}
	o.shippingAddress = address
	return nil
}

// ScheduleProduction records when the vendor starts producing.
func (o *Order) ScheduleProduction(at time.Time) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("production_start_at")
	}
	at = at.UTC()
	o.productionStartAt = &at
	return nil
}

// AuxFields derives the guard inputs from the order state.
func (o *Order) AuxFields() AuxFields {
	return AuxFields{
		VendorAssigned:    o.vendorID != nil,
		CostBasisSet:      o.costBasisCents != nil,
		PaymentType:       o.paymentType,
		ProductionStartAt: o.productionStartAt,
		ShippingAddress:   o.shippingAddress,
	}
}

// StatusChange is a requested transition.
type StatusChange struct {
	To       Status
	Reason   string
	Notes    string
	Metadata map[string]string
}

// ChangeStatus validates and applies change. On failure the order is left
// untouched and the error is a *workflow.ValidationError with every problem
// found. On success it returns the timestamp field that was stamped (empty if
// none) and records a StatusChanged event.
func (o *Order) ChangeStatus(ctx context.Context, change StatusChange, now time.Time) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}

	change.Reason = strings.TrimSpace(change.Reason)
	aux := o.AuxFields()
	aux.Reason = change.Reason

	if err := ValidateTransition(o.status, change.To, aux).Err(); err != nil {
		return "", err
	}

	from := o.status
	to, err := graph.Fire(ctx, from, change.To, func(_ context.Context, _, entered Status) {
		o.stamp(entered, now.UTC())
	})
	if err != nil {
		return "", err
	}

	o.status = to
	if RequiresReason(to) {
		o.statusReason = change.Reason
	}
	if change.Notes != "" {
		o.notes = change.Notes
	}

	field, _ := TimestampFieldFor(to)
	o.events = append(o.events, newStatusChanged(o.id, from, to, change, field, now))
	return field, nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	out := make([]kernel.DomainEvent, len(o.events))
	copy(out, o.events)
	return out
}

// ClearDomainEvents drops the recorded events after they were published.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) stamp(entered Status, now time.Time) {
	switch entered {
	case Shipping:
		o.shippedAt = &now
	case Completed:
		o.deliveredAt = &now
	case FullPayment:
		o.paymentDate = &now
	default:
	}
}

func (o *Order) paymentTaken() bool {
	switch o.status {
	case Draft, Pending, VendorSourcing, VendorNegotiation, CustomerQuote, AwaitingPayment:
		return false
	default:
		return true
	}
}

func (o *Order) ensureOpen() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if IsTerminal(o.status) {
		return errs.NewValueIsInvalidErrorWithCause("order is closed", fmt.Errorf("order is %s", o.status))
	}
	return nil
}

func (o *Order) recalculateSplit() error {
	if o.paymentType == "" {
		o.split = payment.Split{}
		return nil
	}
	split, err := payment.CalculateAmounts(o.totalCents, o.paymentType)
	if err != nil {
		return err
	}
	o.split = split
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *Order) setTotal(cents int64) error {
	if cents < 0 {
		return workflow.Failures{
			workflow.Amount("total_cents", fmt.Sprintf("total amount must not be negative, got %d", cents)),
		}.Err()
	}
	o.totalCents = cents
	return nil
}

func (o *Order) setPaymentType(t payment.Type) error {
	if t == "" {
		o.paymentType = ""
		return nil
	}
	if err := t.Validate(); err != nil {
		return err
	}
	o.paymentType = t
	return nil
}
