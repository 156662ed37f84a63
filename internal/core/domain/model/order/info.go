package order

// Phase groups statuses for dashboards.
type Phase string

// Phases in the order a typical order passes them.
const (
	PhaseIntake      Phase = "intake"
	PhaseSourcing    Phase = "sourcing"
	PhaseQuotation   Phase = "quotation"
	PhasePayment     Phase = "payment"
	PhaseProduction  Phase = "production"
	PhaseFulfillment Phase = "fulfillment"
	PhaseClosed      Phase = "closed"
)

// StatusInfo is display metadata. It carries no business meaning.
type StatusInfo struct {
	Label       string
	Description string
	Color       string
	Phase       Phase
}

var statusInfo = map[Status]StatusInfo{
	Draft:             {"Draft", "Order is being prepared and has not been submitted", "gray", PhaseIntake},
	Pending:           {"Pending", "Submitted and waiting for review", "yellow", PhaseIntake},
	VendorSourcing:    {"Vendor Sourcing", "Looking for an etching vendor", "blue", PhaseSourcing},
	VendorNegotiation: {"Vendor Negotiation", "Negotiating price and lead time with the vendor", "indigo", PhaseSourcing},
	CustomerQuote:     {"Customer Quote", "Quote sent to the customer for approval", "purple", PhaseQuotation},
	AwaitingPayment:   {"Awaiting Payment", "Quote accepted, waiting for the customer to pay", "orange", PhasePayment},
	PartialPayment:    {"Partial Payment", "Down payment received", "amber", PhasePayment},
	FullPayment:       {"Full Payment", "Order paid in full", "emerald", PhasePayment},
	InProduction:      {"In Production", "Vendor is producing the order", "cyan", PhaseProduction},
	QualityControl:    {"Quality Control", "Finished goods are being inspected", "teal", PhaseProduction},
	Shipping:          {"Shipping", "Order handed over to the courier", "sky", PhaseFulfillment},
	Completed:         {"Completed", "Order delivered to the customer", "green", PhaseFulfillment},
	Cancelled:         {"Cancelled", "Order was cancelled", "red", PhaseClosed},
	Refunded:          {"Refunded", "Payment returned to the customer", "rose", PhaseClosed},
}

// Info returns the display metadata of s. Unknown statuses get their raw
// value as label.
func Info(s Status) StatusInfo {
	if info, ok := statusInfo[s]; ok {
		return info
	}
	return StatusInfo{Label: string(s), Color: "gray"}
}
