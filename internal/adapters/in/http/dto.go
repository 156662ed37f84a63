package http

import (
	"time"

	"etching/internal/core/application/usecases/queries"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type newOrderRequest struct {
	TotalCents  int64  `json:"total_cents"`
	PaymentType string `json:"payment_type"`
}

type createdResponse struct {
	ID     openapi_types.UUID `json:"id"`
	Status string             `json:"status"`
}

type orderDetailsRequest struct {
	VendorID          *openapi_types.UUID `json:"vendor_id"`
	CostBasisCents    *int64              `json:"cost_basis_cents"`
	PaymentType       *string             `json:"payment_type"`
	ShippingAddress   *string             `json:"shipping_address"`
	ProductionStartAt *time.Time          `json:"production_start_at"`
}

type orderStatusRequest struct {
	Status   string            `json:"status"`
	Reason   string            `json:"reason"`
	Notes    string            `json:"notes"`
	Metadata map[string]string `json:"metadata"`
}

type orderStatusResponse struct {
	Status         string `json:"status"`
	TimestampField string `json:"timestamp_field,omitempty"`
	Version        int    `json:"version"`
}

type newQuoteRequest struct {
	OrderID     openapi_types.UUID `json:"order_id"`
	VendorID    openapi_types.UUID `json:"vendor_id"`
	AmountCents int64              `json:"amount_cents"`
	ValidUntil  time.Time          `json:"valid_until"`
}

type quoteStatusRequest struct {
	Status             string `json:"status"`
	CounterAmountCents *int64 `json:"counter_amount_cents"`
}

type quoteStatusResponse struct {
	Status string `json:"status"`
}

type paymentSplitRequest struct {
	TotalCents  int64  `json:"total_cents"`
	PaymentType string `json:"payment_type"`
}

type paymentSplitResponse struct {
	TotalCents       int64  `json:"total_cents"`
	PaymentType      string `json:"payment_type"`
	DownPaymentCents int64  `json:"down_payment_cents"`
	RemainingCents   int64  `json:"remaining_cents"`
}

type statusInfoResponse struct {
	Status      string `json:"status"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	Phase       string `json:"phase,omitempty"`
}

type catalogEntryResponse struct {
	statusInfoResponse
	Terminal       bool     `json:"terminal"`
	RequiresReason bool     `json:"requires_reason"`
	Next           []string `json:"next"`
}

type transitionResponse struct {
	statusInfoResponse
	RequiresReason bool   `json:"requires_reason"`
	TimestampField string `json:"timestamp_field,omitempty"`
}

type orderTransitionsResponse struct {
	OrderID  openapi_types.UUID   `json:"order_id"`
	Current  statusInfoResponse   `json:"current"`
	Terminal bool                 `json:"terminal"`
	Next     []transitionResponse `json:"next"`
}

func statusInfoOf(v queries.StatusView) statusInfoResponse {
	return statusInfoResponse{
		Status:      v.Status.String(),
		Label:       v.Info.Label,
		Description: v.Info.Description,
		Color:       v.Info.Color,
		Phase:       string(v.Info.Phase),
	}
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type failureResponse struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Code     int               `json:"code"`
	Message  string            `json:"message"`
	Failures []failureResponse `json:"failures"`
}
