package commands

import (
	"context"
	"errors"

	"etching/internal/core/domain/model/order"
)

// UpdateOrderDetailsCommandHandler records the facts the status guards look
// at: vendor, cost basis, payment type, shipping address and production start.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderDetailsCommandHandler builds the handler.
func NewUpdateOrderDetailsCommandHandler(uowFactory OrderUoWFactory) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{uowFactory: uowFactory}
}

// Handle applies the details to the stored order under its version guard.
func (h *UpdateOrderDetailsCommandHandler) Handle(ctx context.Context, cmd UpdateOrderDetailsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = apply(o, cmd.Details()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func apply(o *order.Order, d OrderDetails) error {
	var err error
	if d.VendorID != nil {
		err = errors.Join(err, o.AssignVendor(*d.VendorID))
	}
	if d.CostBasisCents != nil {
		err = errors.Join(err, o.SetCostBasis(*d.CostBasisCents))
	}
	if d.PaymentType != nil {
		err = errors.Join(err, o.SetPaymentType(*d.PaymentType))
	}
	if d.ShippingAddress != nil {
		err = errors.Join(err, o.SetShippingAddress(*d.ShippingAddress))
	}
	if d.ProductionStartAt != nil {
		err = errors.Join(err, o.ScheduleProduction(*d.ProductionStartAt))
	}
	return err
}
