package ports

import (
	"context"

	"etching/internal/core/domain/model/kernel"
)

// EventPublisher delivers domain events to downstream consumers such as the
// notification service.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
