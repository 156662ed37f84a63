// Package payment splits an order total according to its payment policy.
package payment

import (
	"fmt"

	"etching/internal/core/domain/model/workflow"
	"etching/internal/pkg/errs"
)

// Type is the payment policy agreed with the customer.
type Type string

const (
	// DP50 takes a 50% down payment and the remainder later.
	DP50 Type = "DP50"
	// Full takes the whole amount upfront.
	Full Type = "FULL"
)

// ParseType accepts the wire form of a payment type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate rejects anything but DP50 and FULL.
func (t Type) Validate() error {
	switch t {
	case DP50, Full:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"payment type is invalid",
			fmt.Errorf("%q is not one of %s, %s", string(t), DP50, Full),
		)
	}
}

// String returns the wire form.
func (t Type) String() string {
	return string(t)
}

// Split is the result of CalculateAmounts. DownPayment + Remaining always
// equals the total it was computed from.
type Split struct {
	DownPayment int64
	Remaining   int64
}

// CalculateAmounts splits totalCents (minor currency units) for t.
//
// DP50 rounds the down payment half up to the minor unit and derives the
// remainder by subtraction, so the parts never leak a cent. A zero total
// yields a zero split. A negative total is an InvalidAmount failure returned
// as a *workflow.ValidationError.
func CalculateAmounts(totalCents int64, t Type) (Split, error) {
	var failures workflow.Failures
	if totalCents < 0 {
		failures = append(failures, workflow.Amount(
			"total_cents",
			fmt.Sprintf("total amount must not be negative, got %d", totalCents),
		))
	}
	if err := t.Validate(); err != nil {
		failures = append(failures, workflow.Amount("payment_type", err.Error()))
	}
	if err := failures.Err(); err != nil {
		return Split{}, err
	}

	switch t {
	case DP50:
		down := totalCents/2 + totalCents%2
		return Split{DownPayment: down, Remaining: totalCents - down}, nil
	default:
		return Split{DownPayment: totalCents, Remaining: 0}, nil
	}
}
