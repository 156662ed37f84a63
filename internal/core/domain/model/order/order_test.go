package order_test

import (
	"testing"
	"time"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"
	"etching/internal/core/domain/model/payment"
	"etching/internal/core/domain/model/workflow"
	"etching/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func Test_NewOrder(t *testing.T) {
	id := kernel.NewUUID()

	o, err := order.NewOrder(id, 100001, payment.DP50)

	require.NoError(t, err)
	assert.Equal(t, id, o.ID())
	assert.Equal(t, order.Draft, o.Status())
	assert.Equal(t, int64(100001), o.TotalCents())
	assert.Equal(t, int64(50001), o.DownPaymentCents())
	assert.Equal(t, int64(50000), o.RemainingCents())
	assert.Zero(t, o.Version())
	assert.Empty(t, o.DomainEvents())
	assert.NoError(t, o.Validate())
}

func Test_NewOrder_WithoutPaymentType(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), 5000, "")

	require.NoError(t, err)
	assert.Empty(t, o.PaymentType())
	assert.Zero(t, o.DownPaymentCents())
	assert.Zero(t, o.RemainingCents())
}

func Test_NewOrder_InvalidInput(t *testing.T) {
	_, err := order.NewOrder(kernel.UUID{}, -1, "CREDIT")

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, workflow.ErrInvalidAmount)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_Order_ZeroValueIsNotConstructed(t *testing.T) {
	var o order.Order

	assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	_, err := o.ChangeStatus(t.Context(), order.StatusChange{To: order.Pending}, now)
	assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}

func Test_Order_HappyPath(t *testing.T) {
	ctx := t.Context()
	o, err := order.NewOrder(kernel.NewUUID(), 200000, "")
	require.NoError(t, err)

	step := func(to order.Status) string {
		t.Helper()
		field, err := o.ChangeStatus(ctx, order.StatusChange{To: to}, now)
		require.NoError(t, err, "moving to %s", to)
		require.Equal(t, to, o.Status())
		return field
	}

	step(order.Pending)
	step(order.VendorSourcing)
	require.NoError(t, o.AssignVendor(kernel.NewUUID()))
	step(order.VendorNegotiation)
	require.NoError(t, o.SetCostBasis(150000))
	step(order.CustomerQuote)
	step(order.AwaitingPayment)
	require.NoError(t, o.SetPaymentType(payment.Full))

	assert.Equal(t, "payment_date", step(order.FullPayment))
	require.NotNil(t, o.PaymentDate())
	assert.Equal(t, now, *o.PaymentDate())

	require.NoError(t, o.ScheduleProduction(now.Add(24*time.Hour)))
	step(order.InProduction)
	step(order.QualityControl)
	require.NoError(t, o.SetShippingAddress("  Jl. Sudirman 5, Jakarta "))
	assert.Equal(t, "Jl. Sudirman 5, Jakarta", o.ShippingAddress())

	assert.Equal(t, "shipped_at", step(order.Shipping))
	require.NotNil(t, o.ShippedAt())
	assert.Equal(t, "delivered_at", step(order.Completed))
	require.NotNil(t, o.DeliveredAt())

	events := o.DomainEvents()
	require.Len(t, events, 10)
	last, ok := events[len(events)-1].(order.StatusChanged)
	require.True(t, ok)
	assert.Equal(t, order.EventTypeStatusChanged, last.EventType())
	assert.Equal(t, o.ID(), last.AggregateID())
	assert.Equal(t, order.Shipping, last.From)
	assert.Equal(t, order.Completed, last.To)
	assert.Equal(t, "delivered_at", last.TimestampField)
	assert.True(t, last.Critical)
	assert.True(t, last.NotifyByEmail)

	o.ClearDomainEvents()
	assert.Empty(t, o.DomainEvents())
}

func Test_Order_ChangeStatus_FailureLeavesOrderUntouched(t *testing.T) {
	o := restore(t, order.AwaitingPayment, "")

	field, err := o.ChangeStatus(t.Context(), order.StatusChange{To: order.PartialPayment}, now)

	require.Error(t, err)
	assert.Empty(t, field)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	failures, ok := workflow.FailuresOf(err)
	require.True(t, ok)
	assert.Equal(t, []string{"payment type must be specified"}, failures.Messages())
	assert.Equal(t, order.AwaitingPayment, o.Status())
	assert.Empty(t, o.DomainEvents())
}

func Test_Order_Cancel(t *testing.T) {
	o := restore(t, order.Pending, payment.DP50)

	_, err := o.ChangeStatus(t.Context(), order.StatusChange{To: order.Cancelled}, now)
	require.Error(t, err)

	field, err := o.ChangeStatus(t.Context(), order.StatusChange{
		To:       order.Cancelled,
		Reason:   " customer withdrew ",
		Notes:    "called on monday",
		Metadata: map[string]string{"actor": "admin"},
	}, now)

	require.NoError(t, err)
	assert.Empty(t, field)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, "customer withdrew", o.StatusReason())
	assert.Equal(t, "called on monday", o.Notes())
	assert.Empty(t, o.PossibleTransitions())

	events := o.DomainEvents()
	require.Len(t, events, 1)
	ev := events[0].(order.StatusChanged)
	assert.Equal(t, "customer withdrew", ev.Reason)
	assert.Equal(t, "admin", ev.Metadata["actor"])
	assert.True(t, ev.Critical)
}

func Test_Order_ClosedOrderRejectsChanges(t *testing.T) {
	o := restore(t, order.Refunded, payment.Full)

	assert.ErrorIs(t, o.AssignVendor(kernel.NewUUID()), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, o.SetCostBasis(10), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, o.SetShippingAddress("x"), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, o.ScheduleProduction(now), errs.ErrValueIsInvalid)
}

func Test_Order_PaymentTypeLockedAfterPayment(t *testing.T) {
	o := restore(t, order.PartialPayment, payment.DP50)

	err := o.SetPaymentType(payment.Full)

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, payment.DP50, o.PaymentType())
}

func Test_Order_SetPaymentTypeRecomputesSplit(t *testing.T) {
	o := restore(t, order.AwaitingPayment, "")

	require.NoError(t, o.SetPaymentType(payment.DP50))
	assert.Equal(t, int64(500), o.DownPaymentCents())
	assert.Equal(t, int64(499), o.RemainingCents())

	require.NoError(t, o.SetPaymentType(payment.Full))
	assert.Equal(t, int64(999), o.DownPaymentCents())
	assert.Zero(t, o.RemainingCents())

	assert.ErrorIs(t, o.SetPaymentType(""), errs.ErrValueIsRequired)
	assert.ErrorIs(t, o.SetPaymentType("CREDIT"), errs.ErrValueIsInvalid)
}

func Test_Order_SetCostBasisRejectsNegative(t *testing.T) {
	o := restore(t, order.VendorNegotiation, "")

	assert.ErrorIs(t, o.SetCostBasis(-5), errs.ErrValueIsOutOfRange)
	assert.Nil(t, o.CostBasisCents())
	assert.False(t, o.AuxFields().CostBasisSet)
}

func Test_RestoreOrder_InvalidStatus(t *testing.T) {
	_, err := order.RestoreOrder(order.RestoreParams{
		ID:         kernel.NewUUID(),
		Status:     "lost",
		TotalCents: 1,
	})

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func restore(t *testing.T, status order.Status, pt payment.Type) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:          kernel.NewUUID(),
		Status:      status,
		PaymentType: pt,
		TotalCents:  999,
		Version:     3,
	})
	require.NoError(t, err)
	return o
}
