package queries

import (
	"context"
	"errors"

	"etching/internal/core/domain/model/payment"
	"etching/internal/pkg/guard"
)

// ErrCalculatePaymentSplitQueryIsNotConstructed is returned by Validate on a zero query.
var ErrCalculatePaymentSplitQueryIsNotConstructed = errors.New(
	"CalculatePaymentSplitQuery must be created via NewCalculatePaymentSplitQuery constructor",
)

// CalculatePaymentSplitQuery previews a split. Amount and type are checked
// by the calculator so that both problems are reported together.
type CalculatePaymentSplitQuery struct {
	totalCents  int64
	paymentType payment.Type

	guard guard.ConstructorGuard
}

// NewCalculatePaymentSplitQuery never fails; see CalculatePaymentSplitQuery.
func NewCalculatePaymentSplitQuery(totalCents int64, paymentType payment.Type) CalculatePaymentSplitQuery {
	return CalculatePaymentSplitQuery{
		totalCents:  totalCents,
		paymentType: paymentType,
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate rejects a query not built by NewCalculatePaymentSplitQuery.
func (q CalculatePaymentSplitQuery) Validate() error {
	return q.guard.Validate(ErrCalculatePaymentSplitQueryIsNotConstructed)
}

// CalculatePaymentSplitQueryResponse echoes the input with the computed split.
type CalculatePaymentSplitQueryResponse struct {
	TotalCents       int64
	PaymentType      payment.Type
	DownPaymentCents int64
	RemainingCents   int64
}

// CalculatePaymentSplitQueryHandler is stateless.
type CalculatePaymentSplitQueryHandler struct{}

// NewCalculatePaymentSplitQueryHandler builds the handler.
func NewCalculatePaymentSplitQueryHandler() CalculatePaymentSplitQueryHandler {
	return CalculatePaymentSplitQueryHandler{}
}

// Handle returns the down payment and remaining amounts for the query.
func (h CalculatePaymentSplitQueryHandler) Handle(_ context.Context, query CalculatePaymentSplitQuery) (CalculatePaymentSplitQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculatePaymentSplitQueryResponse{}, err
	}

	split, err := payment.CalculateAmounts(query.totalCents, query.paymentType)
	if err != nil {
		return CalculatePaymentSplitQueryResponse{}, err
	}

	return CalculatePaymentSplitQueryResponse{
		TotalCents:       query.totalCents,
		PaymentType:      query.paymentType,
		DownPaymentCents: split.DownPayment,
		RemainingCents:   split.Remaining,
	}, nil
}
