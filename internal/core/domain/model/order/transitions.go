package order

import "etching/internal/core/domain/model/workflow"

var graph = workflow.NewGraph(
	[]Status{
		Draft, Pending, VendorSourcing, VendorNegotiation, CustomerQuote,
		AwaitingPayment, PartialPayment, FullPayment, InProduction,
		QualityControl, Shipping, Completed, Cancelled, Refunded,
	},
	map[Status][]Status{
		Draft:             {Pending, Cancelled},
		Pending:           {VendorSourcing, CustomerQuote, Cancelled},
		VendorSourcing:    {VendorNegotiation, Cancelled},
		VendorNegotiation: {CustomerQuote, VendorSourcing, Cancelled},
		CustomerQuote:     {AwaitingPayment, VendorNegotiation, Cancelled},
		AwaitingPayment:   {PartialPayment, FullPayment, Cancelled},
		PartialPayment:    {InProduction, Cancelled},
		FullPayment:       {InProduction},
		InProduction:      {QualityControl},
		QualityControl:    {Shipping, InProduction},
		Shipping:          {Completed},
		// completed looks final but a delivered order can still be refunded.
		Completed: {Refunded},
	},
)

// Statuses returns every order status in lifecycle order.
func Statuses() []Status {
	return graph.Statuses()
}

// PossibleTransitions returns the legal next statuses of current.
func PossibleTransitions(current Status) []Status {
	return graph.PossibleTransitions(current)
}

// CanTransitionTo reports whether candidate is a legal next status of current.
func CanTransitionTo(current, candidate Status) bool {
	return graph.CanTransitionTo(current, candidate)
}

// IsTerminal is true for cancelled and refunded.
func IsTerminal(s Status) bool {
	return graph.IsTerminal(s)
}

// RequiresReason reports whether moving into s needs a free-text reason.
func RequiresReason(s Status) bool {
	return s == Cancelled || s == Refunded
}

var timestampFields = map[Status]string{
	Shipping:    "shipped_at",
	Completed:   "delivered_at",
	FullPayment: "payment_date",
}

// TimestampFieldFor names the order field to stamp when entering s.
func TimestampFieldFor(s Status) (string, bool) {
	field, ok := timestampFields[s]
	return field, ok
}

// IsCriticalChange flags transitions that event consumers escalate.
// Shipping is the "shipped" and completed the "delivered" notion of the
// notification layer.
func IsCriticalChange(s Status) bool {
	switch s {
	case Cancelled, Shipping, Completed, Refunded:
		return true
	default:
		return false
	}
}

// ShouldNotifyByEmail flags transitions the customer is mailed about.
func ShouldNotifyByEmail(s Status) bool {
	switch s {
	case InProduction, Shipping, Completed, Cancelled, Refunded:
		return true
	default:
		return false
	}
}
