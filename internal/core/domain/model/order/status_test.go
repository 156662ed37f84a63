package order_test

import (
	"testing"

	"etching/internal/core/domain/model/order"
	"etching/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range order.Statuses() {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseStatus("shipped")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), `"shipped" is not a valid status`)
}

func TestStatuses_CanonicalSet(t *testing.T) {
	statuses := order.Statuses()

	assert.Len(t, statuses, 14)
	assert.Equal(t, order.Draft, statuses[0])
	assert.Equal(t, order.Refunded, statuses[len(statuses)-1])
}

func TestInfo(t *testing.T) {
	for _, s := range order.Statuses() {
		info := order.Info(s)
		assert.NotEmpty(t, info.Label, s)
		assert.NotEmpty(t, info.Color, s)
		assert.NotEmpty(t, info.Phase, s)
	}

	assert.Equal(t, order.PhaseClosed, order.Info(order.Cancelled).Phase)

	unknown := order.Info(order.Status("mystery"))
	assert.Equal(t, "mystery", unknown.Label)
	assert.Equal(t, "gray", unknown.Color)
}
