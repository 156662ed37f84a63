// Package kernel contains the value objects shared by the order and quote
// aggregates: UUID identifiers and the DomainEvent contract that aggregates
// use to announce status changes to the outside world.
package kernel
