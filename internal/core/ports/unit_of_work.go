package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Aggregates touched through
// its repositories are tracked; their domain events are published once
// Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the transaction and then publishes the tracked events.
	Commit(ctx context.Context) error

	// Rollback discards the transaction and the tracked events.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	QuoteRepository() QuoteRepository
}
