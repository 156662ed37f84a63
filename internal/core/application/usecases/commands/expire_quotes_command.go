package commands

import (
	"errors"
	"time"

	"etching/internal/pkg/errs"
	"etching/internal/pkg/guard"
)

// ErrExpireQuotesCommandIsNotConstructed is returned by Validate on a zero command.
var ErrExpireQuotesCommandIsNotConstructed = errors.New(
	"ExpireQuotesCommand must be created via NewExpireQuotesCommand constructor",
)

// DefaultExpireBatchSize applies when no positive batch size is given.
const DefaultExpireBatchSize = 100

// ExpireQuotesCommand expires open quotes whose validity ended before now.
type ExpireQuotesCommand struct { //nolint:recvcheck //using for validation
	now       time.Time
	batchSize int

	guard guard.ConstructorGuard
}

// NewExpireQuotesCommand requires now. A batch size of zero or less falls back
// to DefaultExpireBatchSize.
func NewExpireQuotesCommand(now time.Time, batchSize int) (ExpireQuotesCommand, error) {
	if now.IsZero() {
		return ExpireQuotesCommand{}, errs.NewValueIsRequiredError("now")
	}
	if batchSize <= 0 {
		batchSize = DefaultExpireBatchSize
	}
	return ExpireQuotesCommand{
		now:       now,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate rejects a command not built by NewExpireQuotesCommand.
func (c ExpireQuotesCommand) Validate() error {
	return c.guard.Validate(ErrExpireQuotesCommandIsNotConstructed)
}

// Now returns the reference time quotes are compared against.
func (c ExpireQuotesCommand) Now() time.Time { return c.now }

// BatchSize returns the maximum number of quotes expired in one run.
func (c ExpireQuotesCommand) BatchSize() int { return c.batchSize }
