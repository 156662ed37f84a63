// Package ports defines the contracts between the workflow domain and the
// infrastructure that stores, caches and publishes it.
package ports

import (
	"context"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add persists a new order. The stored version becomes 1.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes guarded by the aggregate's version.
	// A concurrent writer that got there first yields errs.ErrVersionIsInvalid;
	// a missing row yields errs.ErrObjectNotFound.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or an errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
