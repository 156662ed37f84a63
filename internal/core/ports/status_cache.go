package ports

import (
	"context"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"
)

// StatusCache keeps the latest known order status for fast reads.
// It is never authoritative: writers go through the repository first.
type StatusCache interface {
	// Get reports a miss as ("", false, nil).
	Get(ctx context.Context, id kernel.UUID) (order.Status, bool, error)
	// Set records status as of the given aggregate version. It leaves an
	// entry with the same or a higher version untouched.
	Set(ctx context.Context, id kernel.UUID, status order.Status, version int) error
	// Delete drops the entry; the next read falls through to the repository.
	Delete(ctx context.Context, id kernel.UUID) error
}
