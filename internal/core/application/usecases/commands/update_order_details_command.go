package commands

import (
	"errors"
	"math"
	"strings"
	"time"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/payment"
	"etching/internal/pkg/errs"
	"etching/internal/pkg/guard"
)

var (
	// ErrUpdateOrderDetailsCommandIsNotConstructed is returned by Validate on a zero command.
	ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
		"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
	)
	// ErrNothingToUpdate rejects a details update with every field nil.
	ErrNothingToUpdate = errors.New("at least one order detail must be provided")
)

// OrderDetails is a partial update; nil fields are left as they are.
type OrderDetails struct {
	VendorID          *kernel.UUID
	CostBasisCents    *int64
	PaymentType       *payment.Type
	ShippingAddress   *string
	ProductionStartAt *time.Time
}

func (d OrderDetails) empty() bool {
	return d.VendorID == nil && d.CostBasisCents == nil && d.PaymentType == nil &&
		d.ShippingAddress == nil && d.ProductionStartAt == nil
}

// UpdateOrderDetailsCommand sets the non-status facts of an order.
type UpdateOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	details OrderDetails

	guard guard.ConstructorGuard
}

// NewUpdateOrderDetailsCommand requires an order id and at least one detail.
func NewUpdateOrderDetailsCommand(orderID kernel.UUID, details OrderDetails) (UpdateOrderDetailsCommand, error) {
	cmd := UpdateOrderDetailsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDetails(details),
	); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}

	return cmd, nil
}

// Validate rejects a command not built by NewUpdateOrderDetailsCommand.
func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID { return c.orderID }

// Details returns the fields to set.
func (c UpdateOrderDetailsCommand) Details() OrderDetails { return c.details }

func (c *UpdateOrderDetailsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderDetailsCommand) setDetails(d OrderDetails) error {
	if d.empty() {
		return ErrNothingToUpdate
	}

	var err error
	if d.VendorID != nil {
		err = errors.Join(err, d.VendorID.Validate())
	}
	if d.CostBasisCents != nil && *d.CostBasisCents < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("cost_basis_cents", *d.CostBasisCents, 0, int64(math.MaxInt64)))
	}
	if d.PaymentType != nil {
		err = errors.Join(err, d.PaymentType.Validate())
	}
	if d.ShippingAddress != nil && strings.TrimSpace(*d.ShippingAddress) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("shipping_address"))
	}
	if d.ProductionStartAt != nil && d.ProductionStartAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("production_start_at"))
	}
	if err != nil {
		return err
	}

	c.details = d
	return nil
}
