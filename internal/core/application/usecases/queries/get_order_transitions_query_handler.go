package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"etching/internal/core/domain/model/order"
	"etching/internal/core/ports"
	"etching/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderTransitionsQueryHandler reads through the status cache.
type GetOrderTransitionsQueryHandler struct {
	db     *gorm.DB
	cache  ports.StatusCache
	logger *slog.Logger
}

// NewGetOrderTransitionsQueryHandler builds the handler. cache may be nil.
func NewGetOrderTransitionsQueryHandler(db *gorm.DB, cache ports.StatusCache, logger *slog.Logger) GetOrderTransitionsQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GetOrderTransitionsQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "get_order_transitions"),
	}
}

// Handle resolves the current status from the cache, falling back to the
// orders table on a miss or a cache error, and lists the legal next statuses.
func (h GetOrderTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTransitionsQuery,
) (GetOrderTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}

	status, fromCache, err := h.currentStatus(ctx, query)
	if err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}

	return GetOrderTransitionsQueryResponse{
		OrderID:   query.OrderID(),
		Current:   StatusView{Status: status, Info: order.Info(status)},
		Terminal:  order.IsTerminal(status),
		Next:      transitionsOf(status),
		FromCache: fromCache,
	}, nil
}

func (h GetOrderTransitionsQueryHandler) currentStatus(ctx context.Context, query GetOrderTransitionsQuery) (order.Status, bool, error) {
	id := query.OrderID()

	if h.cache != nil {
		status, ok, err := h.cache.Get(ctx, id)
		switch {
		case err != nil:
			h.logger.Warn("status cache read failed", "order_id", id.String(), "error", err)
		case ok:
			return status, true, nil
		}
	}

	var (
		raw     string
		version int
	)
	err := h.db.WithContext(ctx).
		Raw(`SELECT status, version FROM orders WHERE id = ?`, id.Bytes()).
		Row().
		Scan(&raw, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, errs.NewObjectNotFoundError("order", id.String())
		}
		return "", false, err
	}

	status, err := order.ParseStatus(raw)
	if err != nil {
		return "", false, err
	}

	if h.cache != nil {
		// the version guard keeps this fill from replacing a status cached
		// by a transition that committed after the row was read
		if err = h.cache.Set(ctx, id, status, version); err != nil {
			h.logger.Warn("status cache write failed", "order_id", id.String(), "error", err)
		}
	}

	return status, false, nil
}
