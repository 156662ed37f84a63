package commands

import (
	"context"

	"etching/internal/core/domain/model/quote"
)

// CreateQuoteCommandHandler stores a new draft quote.
type CreateQuoteCommandHandler struct {
	uowFactory QuoteUoWFactory
}

// NewCreateQuoteCommandHandler builds the handler.
func NewCreateQuoteCommandHandler(uowFactory QuoteUoWFactory) CreateQuoteCommandHandler {
	return CreateQuoteCommandHandler{uowFactory: uowFactory}
}

// Handle creates the quote and commits it.
func (h *CreateQuoteCommandHandler) Handle(ctx context.Context, cmd CreateQuoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	q, err := quote.NewQuote(cmd.QuoteID(), cmd.OrderID(), cmd.VendorID(), cmd.AmountCents(), cmd.ValidUntil())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.QuoteRepository().Add(ctx, q); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
