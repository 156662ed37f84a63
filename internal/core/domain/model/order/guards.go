package order

import (
	"fmt"
	"strings"
	"time"

	"etching/internal/core/domain/model/payment"
	"etching/internal/core/domain/model/workflow"
)

// AuxFields are the order facts the guards inspect. The caller fills them
// from the loaded order; Reason comes from the status change request.
type AuxFields struct {
	VendorAssigned    bool
	CostBasisSet      bool
	PaymentType       payment.Type
	ProductionStartAt *time.Time
	ShippingAddress   string
	Reason            string
}

type guardFunc func(to Status, aux AuxFields) (workflow.Failure, bool)

var guards = map[Status][]guardFunc{
	VendorNegotiation: {requireVendor},
	CustomerQuote:     {requireCostBasis},
	PartialPayment:    {requirePaymentType},
	FullPayment:       {requirePaymentType},
	InProduction:      {requireProductionStart},
	Shipping:          {requireShippingAddress},
	Cancelled:         {requireReason},
	Refunded:          {requireReason},
}

func requireVendor(_ Status, aux AuxFields) (workflow.Failure, bool) {
	return workflow.Guard("vendor_id", "vendor must be assigned"), aux.VendorAssigned
}

func requireCostBasis(_ Status, aux AuxFields) (workflow.Failure, bool) {
	return workflow.Guard("cost_basis", "price or cost basis must be set"), aux.CostBasisSet
}

func requirePaymentType(_ Status, aux AuxFields) (workflow.Failure, bool) {
	if aux.PaymentType == "" {
		return workflow.Guard("payment_type", "payment type must be specified"), false
	}
	if err := aux.PaymentType.Validate(); err != nil {
		return workflow.Guard("payment_type", err.Error()), false
	}
	return workflow.Failure{}, true
}

func requireProductionStart(_ Status, aux AuxFields) (workflow.Failure, bool) {
	ok := aux.ProductionStartAt != nil && !aux.ProductionStartAt.IsZero()
	return workflow.Guard("production_start_at", "production start date must be set"), ok
}

func requireShippingAddress(_ Status, aux AuxFields) (workflow.Failure, bool) {
	return workflow.Guard("shipping_address", "shipping address must be provided"), strings.TrimSpace(aux.ShippingAddress) != ""
}

func requireReason(to Status, aux AuxFields) (workflow.Failure, bool) {
	return workflow.Guard("reason", fmt.Sprintf("reason is required when moving to %s", to)), strings.TrimSpace(aux.Reason) != ""
}

// ValidateTransition checks legality of current -> candidate and then every
// guard attached to candidate. All problems are returned, not just the first;
// an empty list means the transition may be applied.
func ValidateTransition(current, candidate Status, aux AuxFields) workflow.Failures {
	var failures workflow.Failures

	currentKnown, candidateKnown := graph.Knows(current), graph.Knows(candidate)
	if !currentKnown {
		failures = append(failures, workflow.Unknown("current", current))
	}
	if !candidateKnown {
		failures = append(failures, workflow.Unknown("candidate", candidate))
		return failures
	}
	if currentKnown && !CanTransitionTo(current, candidate) {
		failures = append(failures, workflow.Illegal(current, candidate))
	}

	for _, g := range guards[candidate] {
		if f, ok := g(candidate, aux); !ok {
			failures = append(failures, f)
		}
	}

	return failures
}
