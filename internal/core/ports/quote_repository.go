package ports

import (
	"context"
	"time"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/quote"
)

// QuoteRepository persists quote aggregates with the same version contract
// as OrderRepository.
type QuoteRepository interface {
	Add(ctx context.Context, aggregate *quote.Quote) error
	Update(ctx context.Context, aggregate *quote.Quote) error
	Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error)

	// GetAllExpirable returns at most limit open quotes whose validity
	// window ended before now, oldest first.
	GetAllExpirable(ctx context.Context, now time.Time, limit int) ([]*quote.Quote, error)
}
