package commands

import (
	"context"
	"errors"
	"log/slog"

	"etching/internal/pkg/errs"
)

// ExpireQuotesCommandHandler moves quotes past their window to expired.
type ExpireQuotesCommandHandler struct {
	uowFactory QuoteUoWFactory
	logger     *slog.Logger
}

// NewExpireQuotesCommandHandler builds the handler. logger may be nil.
func NewExpireQuotesCommandHandler(uowFactory QuoteUoWFactory, logger *slog.Logger) ExpireQuotesCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ExpireQuotesCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "expire_quotes"),
	}
}

// Handle expires one batch in a single transaction and returns how many
// quotes changed. A quote modified concurrently is skipped and picked up by
// the next run if it is still open.
func (h *ExpireQuotesCommandHandler) Handle(ctx context.Context, cmd ExpireQuotesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.QuoteRepository()
	quotes, err := repo.GetAllExpirable(ctx, cmd.Now(), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, q := range quotes {
		changed, expireErr := q.Expire(ctx, cmd.Now())
		if expireErr != nil {
			return 0, expireErr
		}
		if !changed {
			continue
		}

		if err = repo.Update(ctx, q); err != nil {
			if errors.Is(err, errs.ErrVersionIsInvalid) {
				h.logger.Warn("quote changed concurrently, skipping", "quote_id", q.ID().String())
				continue
			}
			return 0, err
		}
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return expired, nil
}
