package kernel_test

import (
	"testing"
	"time"

	"etching/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	aggregate := kernel.NewUUID()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("WIB", 7*60*60))

	event := kernel.NewBaseEvent("order.status_changed", aggregate, at)

	var _ kernel.DomainEvent = event
	require.NoError(t, event.EventID().Validate())
	assert.Equal(t, "order.status_changed", event.EventType())
	assert.True(t, aggregate.IsEqual(event.AggregateID()))
	assert.Equal(t, time.UTC, event.OccurredAt().Location())
	assert.True(t, at.Equal(event.OccurredAt()))
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	aggregate := kernel.NewUUID()
	now := time.Now()

	first := kernel.NewBaseEvent("quote.status_changed", aggregate, now)
	second := kernel.NewBaseEvent("quote.status_changed", aggregate, now)

	assert.False(t, first.EventID().IsEqual(second.EventID()))
}
