package queries

import (
	"context"
	"errors"

	"etching/internal/core/domain/model/order"
	"etching/internal/pkg/guard"
)

// ErrGetOrderStatusCatalogQueryIsNotConstructed is returned by Validate on a zero query.
var ErrGetOrderStatusCatalogQueryIsNotConstructed = errors.New(
	"GetOrderStatusCatalogQuery must be created via NewGetOrderStatusCatalogQuery constructor",
)

// GetOrderStatusCatalogQuery takes no parameters.
type GetOrderStatusCatalogQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderStatusCatalogQuery builds the query.
func NewGetOrderStatusCatalogQuery() GetOrderStatusCatalogQuery {
	return GetOrderStatusCatalogQuery{guard: guard.NewConstructorGuard()}
}

// Validate rejects a query not built by NewGetOrderStatusCatalogQuery.
func (q GetOrderStatusCatalogQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusCatalogQueryIsNotConstructed)
}

// StatusCatalogEntry describes one status and its outgoing edges.
type StatusCatalogEntry struct {
	StatusView
	Terminal       bool
	RequiresReason bool
	Next           []order.Status
}

// GetOrderStatusCatalogQueryHandler describes the whole order lifecycle for
// clients that render status pickers.
type GetOrderStatusCatalogQueryHandler struct{}

// NewGetOrderStatusCatalogQueryHandler builds the handler.
func NewGetOrderStatusCatalogQueryHandler() GetOrderStatusCatalogQueryHandler {
	return GetOrderStatusCatalogQueryHandler{}
}

// Handle lists every status in declaration order.
func (h GetOrderStatusCatalogQueryHandler) Handle(_ context.Context, query GetOrderStatusCatalogQuery) ([]StatusCatalogEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := order.Statuses()
	entries := make([]StatusCatalogEntry, 0, len(statuses))
	for _, s := range statuses {
		entries = append(entries, StatusCatalogEntry{
			StatusView:     StatusView{Status: s, Info: order.Info(s)},
			Terminal:       order.IsTerminal(s),
			RequiresReason: order.RequiresReason(s),
			Next:           order.PossibleTransitions(s),
		})
	}
	return entries, nil
}
