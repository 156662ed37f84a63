package commands

import (
	"context"
	"log/slog"
	"time"

	"etching/internal/core/domain/model/order"
	"etching/internal/core/ports"
)

// UpdateOrderStatusResult reports the applied status and the timestamp field
// the transition stamped, empty when it stamped none.
type UpdateOrderStatusResult struct {
	Status         order.Status
	TimestampField string
	Version        int
}

// UpdateOrderStatusCommandHandler runs order transitions and keeps the status
// cache in step with committed writes.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.StatusCache
	logger     *slog.Logger
	now        Clock
}

// NewUpdateOrderStatusCommandHandler builds the handler. cache may be nil.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.StatusCache,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With("component", "update_order_status"),
		now:        time.Now,
	}
}

// WithClock replaces the time source used to stamp transitions.
func (h UpdateOrderStatusCommandHandler) WithClock(now Clock) UpdateOrderStatusCommandHandler {
	h.now = now
	return h
}

// Handle loads the order, validates and applies the transition and persists
// it. A rejected transition returns a *workflow.ValidationError carrying
// every failure. The status cache is refreshed only after the commit.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (UpdateOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}

	from := o.Status()
	field, err := o.ChangeStatus(ctx, order.StatusChange{
		To:       cmd.NewStatus(),
		Reason:   cmd.Reason(),
		Notes:    cmd.Notes(),
		Metadata: cmd.Metadata(),
	}, h.now())
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	h.logger.Info("order status changed",
		"order_id", o.ID().String(),
		"from", from.String(),
		"to", o.Status().String(),
	)

	h.refreshCache(ctx, o)

	return UpdateOrderStatusResult{
		Status:         o.Status(),
		TimestampField: field,
		Version:        o.Version(),
	}, nil
}

// refreshCache writes the committed status. If the write fails the entry is
// dropped so that readers fall back to the database instead of a stale value.
func (h *UpdateOrderStatusCommandHandler) refreshCache(ctx context.Context, o *order.Order) {
	if h.cache == nil {
		return
	}

	err := h.cache.Set(ctx, o.ID(), o.Status(), o.Version())
	if err == nil {
		return
	}
	h.logger.Warn("failed to cache order status", "order_id", o.ID().String(), "error", err)

	if err = h.cache.Delete(ctx, o.ID()); err != nil {
		h.logger.Warn("failed to invalidate cached order status", "order_id", o.ID().String(), "error", err)
	}
}
