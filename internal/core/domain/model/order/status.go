package order

import (
	"fmt"

	"etching/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Values are the wire and
// persistence form.
type Status string

// Order statuses in lifecycle order.
const (
	Draft             Status = "draft"
	Pending           Status = "pending"
	VendorSourcing    Status = "vendor_sourcing"
	VendorNegotiation Status = "vendor_negotiation"
	CustomerQuote     Status = "customer_quote"
	AwaitingPayment   Status = "awaiting_payment"
	PartialPayment    Status = "partial_payment"
	FullPayment       Status = "full_payment"
	InProduction      Status = "in_production"
	QualityControl    Status = "quality_control"
	Shipping          Status = "shipping"
	Completed         Status = "completed"
	Cancelled         Status = "cancelled"
	Refunded          Status = "refunded"
)

// ParseStatus converts the wire form into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that s is one of the declared statuses.
func (s Status) Validate() error {
	if !graph.Knows(s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the wire form.
func (s Status) String() string {
	return string(s)
}
