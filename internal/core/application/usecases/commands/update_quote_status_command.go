package commands

import (
	"errors"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/quote"
	"etching/internal/pkg/errs"
	"etching/internal/pkg/guard"
)

var (
	// ErrUpdateQuoteStatusCommandIsNotConstructed is returned by Validate on a zero command.
	ErrUpdateQuoteStatusCommandIsNotConstructed = errors.New(
		"UpdateQuoteStatusCommand must be created via NewUpdateQuoteStatusCommand constructor",
	)
	// ErrCounterAmountIsRequired rejects a countered target without an amount.
	ErrCounterAmountIsRequired = errors.New("counter amount is required when countering a quote")
)

// UpdateQuoteStatusCommand moves a quote. A counter amount is required for
// countered and ignored otherwise.
type UpdateQuoteStatusCommand struct { //nolint:recvcheck //using for validation
	quoteID       kernel.UUID
	newStatus     quote.Status
	counterAmount *int64

	guard guard.ConstructorGuard
}

// NewUpdateQuoteStatusCommand builds the command. counterAmount is kept only
// when the target is countered.
func NewUpdateQuoteStatusCommand(quoteID kernel.UUID, newStatus quote.Status, counterAmount *int64) (UpdateQuoteStatusCommand, error) {
	cmd := UpdateQuoteStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setQuoteID(quoteID),
		cmd.setStatus(newStatus, counterAmount),
	); err != nil {
		return UpdateQuoteStatusCommand{}, err
	}

	return cmd, nil
}

// Validate rejects a command not built by NewUpdateQuoteStatusCommand.
func (c UpdateQuoteStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateQuoteStatusCommandIsNotConstructed)
}

// QuoteID returns the quote to move.
func (c UpdateQuoteStatusCommand) QuoteID() kernel.UUID { return c.quoteID }

// NewStatus returns the requested target.
func (c UpdateQuoteStatusCommand) NewStatus() quote.Status { return c.newStatus }

// CounterAmount returns the counter offer, nil unless countering.
func (c UpdateQuoteStatusCommand) CounterAmount() *int64 { return c.counterAmount }

func (c *UpdateQuoteStatusCommand) setQuoteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.quoteID = id
	return nil
}

func (c *UpdateQuoteStatusCommand) setStatus(s quote.Status, counterAmount *int64) error {
	if s == "" {
		return errs.NewValueIsRequiredError("status")
	}
	if s == quote.Countered && counterAmount == nil {
		return ErrCounterAmountIsRequired
	}
	c.newStatus = s
	if s == quote.Countered {
		c.counterAmount = counterAmount
	}
	return nil
}
