// Package quote models vendor quotes attached to an order.
//
//	draft ─▶ sent ─▶ pending_response ─▶ accepted | rejected | countered | expired
//	          │                              ▲
//	          └──────────────────────────────┘
//	countered ─▶ accepted | rejected | expired
//
// Quotes carry no guards; ValidateTransition only checks legality, but it
// reports through the same workflow.Failures contract as orders.
package quote
