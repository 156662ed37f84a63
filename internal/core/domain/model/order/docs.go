// Package order models a custom-etching purchase order and its status
// workflow.
//
// The package includes:
//   - Status: the fourteen order statuses and the single transition table
//     that governs them (see transitions.go)
//   - AuxFields and ValidateTransition: business-rule guards evaluated on top
//     of graph legality, reported through the accumulate-all failure list
//   - Order: the aggregate root that applies validated transitions, keeps the
//     payment split in sync with its total and records StatusChanged events
//
// Lifecycle (happy path):
//
//	draft -> pending -> vendor_sourcing <-> vendor_negotiation -> customer_quote
//	      -> awaiting_payment -> partial_payment|full_payment -> in_production
//	      <-> quality_control -> shipping -> completed -> refunded
//
// cancelled and refunded are terminal. completed is not: a delivered order
// may still be refunded.
package order
