package commands

import (
	"errors"
	"maps"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"
	"etching/internal/pkg/errs"
	"etching/internal/pkg/guard"
)

// ErrUpdateOrderStatusCommandIsNotConstructed is returned by Validate on a zero command.
var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks to move an order to a new status. The target
// is not checked here: unknown targets come back from the handler as part of
// the transition failure list.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status
	reason    string
	notes     string
	metadata  map[string]string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand copies metadata so later changes by the caller
// are not seen.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	reason, notes string,
	metadata map[string]string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		reason:   reason,
		notes:    notes,
		metadata: maps.Clone(metadata),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate rejects a command not built by NewUpdateOrderStatusCommand.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// NewStatus returns the requested target.
func (c UpdateOrderStatusCommand) NewStatus() order.Status { return c.newStatus }

// Reason returns the status reason, required for cancel and refund.
func (c UpdateOrderStatusCommand) Reason() string { return c.reason }

// Notes returns free text appended to the order notes.
func (c UpdateOrderStatusCommand) Notes() string { return c.notes }

// Metadata returns a copy of the caller supplied key/value pairs.
func (c UpdateOrderStatusCommand) Metadata() map[string]string { return maps.Clone(c.metadata) }

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(s order.Status) error {
	if s == "" {
		return errs.NewValueIsRequiredError("status")
	}
	c.newStatus = s
	return nil
}
