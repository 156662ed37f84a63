package commands

import (
	"errors"
	"math"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/payment"
	"etching/internal/pkg/errs"
	"etching/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned by Validate on a zero command.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new draft order.
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), 250000, payment.DP50)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	totalCents  int64
	paymentType payment.Type

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand accepts an empty payment type; it can be agreed later.
func NewCreateOrderCommand(orderID kernel.UUID, totalCents int64, paymentType payment.Type) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTotal(totalCents),
		cmd.setPaymentType(paymentType),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate rejects a command not built by NewCreateOrderCommand.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the id the new order gets.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// TotalCents returns the order total in cents.
func (c CreateOrderCommand) TotalCents() int64 { return c.totalCents }

// PaymentType returns the payment type, empty when not chosen yet.
func (c CreateOrderCommand) PaymentType() payment.Type { return c.paymentType }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTotal(cents int64) error {
	if cents < 0 {
		return errs.NewValueIsOutOfRangeError("total_cents", cents, 0, int64(math.MaxInt64))
	}
	c.totalCents = cents
	return nil
}

func (c *CreateOrderCommand) setPaymentType(t payment.Type) error {
	if t != "" {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	c.paymentType = t
	return nil
}
