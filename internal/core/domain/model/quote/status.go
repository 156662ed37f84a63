package quote

import (
	"fmt"

	"etching/internal/core/domain/model/workflow"
	"etching/internal/pkg/errs"
)

// Status is a quote workflow state.
type Status string

// Quote statuses.
const (
	Draft           Status = "draft"
	Sent            Status = "sent"
	PendingResponse Status = "pending_response"
	Accepted        Status = "accepted"
	Rejected        Status = "rejected"
	Countered       Status = "countered"
	Expired         Status = "expired"
)

var graph = workflow.NewGraph(
	[]Status{Draft, Sent, PendingResponse, Accepted, Rejected, Countered, Expired},
	map[Status][]Status{
		Draft:           {Sent},
		Sent:            {PendingResponse, Accepted, Rejected, Countered, Expired},
		PendingResponse: {Accepted, Rejected, Countered, Expired},
		Countered:       {Accepted, Rejected, Expired},
	},
)

// ParseStatus converts a stored or submitted value into a known Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate rejects values outside the quote enumeration.
func (s Status) Validate() error {
	if !graph.Knows(s) {
		return errs.NewValueIsInvalidErrorWithCause("quote status is invalid", fmt.Errorf("%q is not a valid quote status", string(s)))
	}
	return nil
}

// String returns the wire form.
func (s Status) String() string {
	return string(s)
}

// Statuses lists every quote status in declaration order.
func Statuses() []Status {
	return graph.Statuses()
}

// PossibleTransitions returns the legal next statuses, empty for terminals.
func PossibleTransitions(current Status) []Status {
	return graph.PossibleTransitions(current)
}

// CanTransitionTo reports whether current -> candidate is an edge of the graph.
func CanTransitionTo(current, candidate Status) bool {
	return graph.CanTransitionTo(current, candidate)
}

// IsTerminal is true for accepted, rejected and expired.
func IsTerminal(s Status) bool {
	return graph.IsTerminal(s)
}

// RequiresVendorAction reports whether the vendor owes a response.
func RequiresVendorAction(s Status) bool {
	switch s {
	case Sent, PendingResponse, Countered:
		return true
	default:
		return false
	}
}

// RequiresAdminAction reports whether an admin must answer a counter offer.
func RequiresAdminAction(s Status) bool {
	return s == Countered
}

// ValidateTransition checks legality of current -> candidate.
func ValidateTransition(current, candidate Status) workflow.Failures {
	var failures workflow.Failures

	if !graph.Knows(current) {
		failures = append(failures, workflow.Unknown("current", current))
	}
	if !graph.Knows(candidate) {
		return append(failures, workflow.Unknown("candidate", candidate))
	}
	if graph.Knows(current) && !CanTransitionTo(current, candidate) {
		failures = append(failures, workflow.Illegal(current, candidate))
	}

	return failures
}

// StatusInfo is the display metadata of a status.
type StatusInfo struct {
	Label       string
	Description string
	Color       string
}

var statusInfo = map[Status]StatusInfo{
	Draft:           {"Draft", "Quote request is being prepared", "gray"},
	Sent:            {"Sent", "Quote request sent to the vendor", "blue"},
	PendingResponse: {"Pending Response", "Vendor acknowledged and is preparing a price", "yellow"},
	Accepted:        {"Accepted", "Quote accepted", "green"},
	Rejected:        {"Rejected", "Quote rejected", "red"},
	Countered:       {"Countered", "Vendor made a counter offer", "orange"},
	Expired:         {"Expired", "Quote validity period passed", "gray"},
}

// Info returns the display metadata of s. Unknown values get a gray label
// carrying the raw value.
func Info(s Status) StatusInfo {
	if info, ok := statusInfo[s]; ok {
		return info
	}
	return StatusInfo{Label: string(s), Color: "gray"}
}

// ExpirableStatuses lists the statuses a quote can expire from.
func ExpirableStatuses() []Status {
	var out []Status
	for _, s := range graph.Statuses() {
		if CanTransitionTo(s, Expired) {
			out = append(out, s)
		}
	}
	return out
}
