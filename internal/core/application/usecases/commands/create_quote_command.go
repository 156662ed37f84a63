package commands

import (
	"errors"
	"math"
	"time"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/pkg/errs"
	"etching/internal/pkg/guard"
)

// ErrCreateQuoteCommandIsNotConstructed is returned by Validate on a zero command.
var ErrCreateQuoteCommandIsNotConstructed = errors.New(
	"CreateQuoteCommand must be created via NewCreateQuoteCommand constructor",
)

// CreateQuoteCommand records a vendor offer for an order.
type CreateQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID     kernel.UUID
	orderID     kernel.UUID
	vendorID    kernel.UUID
	amountCents int64
	validUntil  time.Time

	guard guard.ConstructorGuard
}

// NewCreateQuoteCommand validates every argument and reports all problems at once.
func NewCreateQuoteCommand(
	quoteID, orderID, vendorID kernel.UUID,
	amountCents int64,
	validUntil time.Time,
) (CreateQuoteCommand, error) {
	cmd := CreateQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(quoteID, orderID, vendorID),
		cmd.setAmount(amountCents),
		cmd.setValidUntil(validUntil),
	); err != nil {
		return CreateQuoteCommand{}, err
	}

	return cmd, nil
}

// Validate rejects a command not built by NewCreateQuoteCommand.
func (c CreateQuoteCommand) Validate() error {
	return c.guard.Validate(ErrCreateQuoteCommandIsNotConstructed)
}

// QuoteID returns the id the new quote gets.
func (c CreateQuoteCommand) QuoteID() kernel.UUID { return c.quoteID }

// OrderID returns the priced order.
func (c CreateQuoteCommand) OrderID() kernel.UUID { return c.orderID }

// VendorID returns the offering vendor.
func (c CreateQuoteCommand) VendorID() kernel.UUID { return c.vendorID }

// AmountCents returns the offer in cents.
func (c CreateQuoteCommand) AmountCents() int64 { return c.amountCents }

// ValidUntil returns the end of the validity window.
func (c CreateQuoteCommand) ValidUntil() time.Time { return c.validUntil }

func (c *CreateQuoteCommand) setIDs(quoteID, orderID, vendorID kernel.UUID) error {
	if err := errors.Join(quoteID.Validate(), orderID.Validate(), vendorID.Validate()); err != nil {
		return err
	}
	c.quoteID, c.orderID, c.vendorID = quoteID, orderID, vendorID
	return nil
}

func (c *CreateQuoteCommand) setAmount(cents int64) error {
	if cents < 0 {
		return errs.NewValueIsOutOfRangeError("amount_cents", cents, 0, int64(math.MaxInt64))
	}
	c.amountCents = cents
	return nil
}

func (c *CreateQuoteCommand) setValidUntil(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("valid_until")
	}
	c.validUntil = t
	return nil
}
