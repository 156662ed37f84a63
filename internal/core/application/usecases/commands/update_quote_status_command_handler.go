package commands

import (
	"context"
	"time"

	"etching/internal/core/domain/model/quote"
)

// UpdateQuoteStatusCommandHandler applies quote transitions and counter offers.
type UpdateQuoteStatusCommandHandler struct {
	uowFactory QuoteUoWFactory
	now        Clock
}

// NewUpdateQuoteStatusCommandHandler builds the handler using the wall clock.
func NewUpdateQuoteStatusCommandHandler(uowFactory QuoteUoWFactory) UpdateQuoteStatusCommandHandler {
	return UpdateQuoteStatusCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle loads the quote, applies the change and persists it. An expired quote
// cannot be accepted or countered.
func (h *UpdateQuoteStatusCommandHandler) Handle(ctx context.Context, cmd UpdateQuoteStatusCommand) (quote.Status, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.QuoteRepository()
	q, err := repo.Get(ctx, cmd.QuoteID())
	if err != nil {
		return "", err
	}

	if amount := cmd.CounterAmount(); amount != nil {
		err = q.Counter(ctx, *amount, h.now())
	} else {
		err = q.ChangeStatus(ctx, cmd.NewStatus(), h.now())
	}
	if err != nil {
		return "", err
	}

	if err = repo.Update(ctx, q); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return q.Status(), nil
}
