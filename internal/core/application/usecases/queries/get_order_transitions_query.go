package queries

import (
	"errors"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"
	"etching/internal/pkg/guard"
)

// ErrGetOrderTransitionsQueryIsNotConstructed is returned by Validate on a zero query.
var ErrGetOrderTransitionsQueryIsNotConstructed = errors.New(
	"GetOrderTransitionsQuery must be created via NewGetOrderTransitionsQuery constructor",
)

// GetOrderTransitionsQuery asks for the current status of an order and where it can go.
type GetOrderTransitionsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTransitionsQuery rejects a zero order id.
func NewGetOrderTransitionsQuery(orderID kernel.UUID) (GetOrderTransitionsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTransitionsQuery{}, err
	}
	return GetOrderTransitionsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate rejects a query not built by NewGetOrderTransitionsQuery.
func (q GetOrderTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTransitionsQueryIsNotConstructed)
}

// OrderID returns the queried order.
func (q GetOrderTransitionsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StatusView is a status with its display metadata.
type StatusView struct {
	Status order.Status
	Info   order.StatusInfo
}

// TransitionView is one legal next status of an order.
type TransitionView struct {
	StatusView
	RequiresReason bool
	// TimestampField is the field the transition stamps, empty if none.
	TimestampField string
}

// GetOrderTransitionsQueryResponse is the current status and its legal next statuses.
type GetOrderTransitionsQueryResponse struct {
	OrderID  kernel.UUID
	Current  StatusView
	Terminal bool
	Next     []TransitionView
	// FromCache reports whether the current status came from the status cache.
	FromCache bool
}

func transitionsOf(s order.Status) []TransitionView {
	next := order.PossibleTransitions(s)
	views := make([]TransitionView, 0, len(next))
	for _, n := range next {
		field, _ := order.TimestampFieldFor(n)
		views = append(views, TransitionView{
			StatusView:     StatusView{Status: n, Info: order.Info(n)},
			RequiresReason: order.RequiresReason(n),
			TimestampField: field,
		})
	}
	return views
}
