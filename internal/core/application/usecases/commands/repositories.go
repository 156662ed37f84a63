// Package commands contains the write side: every command is validated at
// construction, and its handler runs inside one unit of work.
package commands

import (
	"context"
	"time"

	"etching/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	QuoteRepoFactory interface {
		QuoteRepository() ports.QuoteRepository
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// QuoteUoW is used by commands that only touch quotes.
	QuoteUoW interface {
		TxManager
		QuoteRepoFactory
	}

	QuoteUoWFactory interface {
		Create() QuoteUoW
	}
)

// Clock returns the current time. Handlers default to time.Now.
type Clock func() time.Time
