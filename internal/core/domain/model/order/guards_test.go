package order_test

import (
	"testing"
	"time"

	"etching/internal/core/domain/model/order"
	"etching/internal/core/domain/model/payment"
	"etching/internal/core/domain/model/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition_MissingPaymentType(t *testing.T) {
	failures := order.ValidateTransition(order.AwaitingPayment, order.PartialPayment, order.AuxFields{})

	require.Len(t, failures, 1)
	assert.Equal(t, workflow.GuardFailure, failures[0].Kind)
	assert.Equal(t, "payment type must be specified", failures[0].Message)
	assert.False(t, failures.Has(workflow.IllegalTransition))
}

func TestValidateTransition_IllegalAndGuardAccumulate(t *testing.T) {
	failures := order.ValidateTransition(order.Completed, order.Cancelled, order.AuxFields{})

	require.Len(t, failures, 2)
	assert.Equal(t, 1, failures.Count(workflow.IllegalTransition))
	assert.Equal(t, 1, failures.Count(workflow.GuardFailure))
	assert.Equal(t, "illegal transition from completed to cancelled", failures[0].Message)
	assert.Equal(t, "reason is required when moving to cancelled", failures[1].Message)

	err := failures.Err()
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestValidateTransition_GuardsPass(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		from order.Status
		to   order.Status
		aux  order.AuxFields
	}{
		{order.Draft, order.Pending, order.AuxFields{}},
		{order.VendorSourcing, order.VendorNegotiation, order.AuxFields{VendorAssigned: true}},
		{order.Pending, order.CustomerQuote, order.AuxFields{CostBasisSet: true}},
		{order.AwaitingPayment, order.FullPayment, order.AuxFields{PaymentType: payment.Full}},
		{order.AwaitingPayment, order.PartialPayment, order.AuxFields{PaymentType: payment.DP50}},
		{order.FullPayment, order.InProduction, order.AuxFields{ProductionStartAt: &start}},
		{order.QualityControl, order.Shipping, order.AuxFields{ShippingAddress: "Jl. Merdeka 1"}},
		{order.Draft, order.Cancelled, order.AuxFields{Reason: "customer withdrew"}},
		{order.Completed, order.Refunded, order.AuxFields{Reason: "damaged in transit"}},
	}

	for _, tc := range testCases {
		failures := order.ValidateTransition(tc.from, tc.to, tc.aux)
		assert.True(t, failures.OK(), "%s -> %s: %v", tc.from, tc.to, failures.Messages())
		assert.NoError(t, failures.Err())
	}
}

func TestValidateTransition_GuardsFail(t *testing.T) {
	zero := time.Time{}

	testCases := []struct {
		from    order.Status
		to      order.Status
		aux     order.AuxFields
		field   string
		message string
	}{
		{order.VendorSourcing, order.VendorNegotiation, order.AuxFields{}, "vendor_id", "vendor must be assigned"},
		{order.VendorNegotiation, order.CustomerQuote, order.AuxFields{}, "cost_basis", "price or cost basis must be set"},
		{order.AwaitingPayment, order.FullPayment, order.AuxFields{}, "payment_type", "payment type must be specified"},
		{order.PartialPayment, order.InProduction, order.AuxFields{ProductionStartAt: &zero}, "production_start_at", "production start date must be set"},
		{order.QualityControl, order.Shipping, order.AuxFields{ShippingAddress: "   "}, "shipping_address", "shipping address must be provided"},
		{order.Pending, order.Cancelled, order.AuxFields{Reason: " "}, "reason", "reason is required when moving to cancelled"},
		{order.Completed, order.Refunded, order.AuxFields{}, "reason", "reason is required when moving to refunded"},
	}

	for _, tc := range testCases {
		failures := order.ValidateTransition(tc.from, tc.to, tc.aux)

		require.Len(t, failures, 1, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, workflow.GuardFailure, failures[0].Kind)
		assert.Equal(t, tc.field, failures[0].Field)
		assert.Equal(t, tc.message, failures[0].Message)
	}
}

func TestValidateTransition_InvalidPaymentType(t *testing.T) {
	failures := order.ValidateTransition(order.AwaitingPayment, order.FullPayment, order.AuxFields{PaymentType: "CREDIT"})

	require.Len(t, failures, 1)
	assert.Equal(t, "payment_type", failures[0].Field)
	assert.NotEqual(t, "payment type must be specified", failures[0].Message)
}

func TestValidateTransition_UnknownStatuses(t *testing.T) {
	failures := order.ValidateTransition(order.Status("bogus"), order.Pending, order.AuxFields{})
	require.Len(t, failures, 1)
	assert.Equal(t, workflow.IllegalTransition, failures[0].Kind)
	assert.Equal(t, "current", failures[0].Field)

	failures = order.ValidateTransition(order.Draft, order.Status("bogus"), order.AuxFields{})
	require.Len(t, failures, 1)
	assert.Equal(t, "candidate", failures[0].Field)
}

func TestValidateTransition_IllegalWithoutGuards(t *testing.T) {
	failures := order.ValidateTransition(order.Draft, order.Completed, order.AuxFields{})

	require.Len(t, failures, 1)
	assert.Equal(t, workflow.IllegalTransition, failures[0].Kind)
}
