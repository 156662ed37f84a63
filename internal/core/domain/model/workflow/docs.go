// Package workflow implements the status transition engine shared by orders
// and quotes.
//
// A Graph is declared once per status enumeration from an ordered status list
// and a current -> legal-next table. Every question about legality
// (PossibleTransitions, CanTransitionTo, IsTerminal) is answered from that one
// table, and the looplab/fsm machine that aggregates fire is generated from it
// as well, so there is never a second copy of the transition rules.
//
// Validation follows an accumulate-all contract: validators collect every
// Failure (illegal transition, failed guard, invalid amount) into Failures and
// the caller renders the complete list. Failures.Err converts a non-empty list
// into a *ValidationError that matches ErrInvalidTransition or ErrInvalidAmount
// through errors.Is.
package workflow
