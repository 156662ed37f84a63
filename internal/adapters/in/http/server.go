package http

import (
	"net/http"

	"etching/internal/core/application/usecases/commands"
	"etching/internal/core/application/usecases/queries"
	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"
	"etching/internal/core/domain/model/payment"
	"etching/internal/core/domain/model/quote"
	"etching/internal/core/domain/model/workflow"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases the HTTP adapter exposes.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	UpdateOrderDetails commands.UpdateOrderDetailsCommandHandler
	UpdateOrderStatus  commands.UpdateOrderStatusCommandHandler
	CreateQuote        commands.CreateQuoteCommandHandler
	UpdateQuoteStatus  commands.UpdateQuoteStatusCommandHandler

	OrderTransitions queries.GetOrderTransitionsQueryHandler
	StatusCatalog    queries.GetOrderStatusCatalogQueryHandler
	PaymentSplit     queries.CalculatePaymentSplitQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h       Handlers
	metrics *Metrics
}

// NewServer builds a server over h. metrics may be nil.
func NewServer(h Handlers, metrics *Metrics) *Server {
	return &Server{h: h, metrics: metrics}
}

// ListOrderStatuses handles GET /api/v1/order-statuses.
func (s *Server) ListOrderStatuses(ctx echo.Context) error {
	entries, err := s.h.StatusCatalog.Handle(ctx.Request().Context(), queries.NewGetOrderStatusCatalogQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]catalogEntryResponse, len(entries))
	for i, e := range entries {
		next := make([]string, len(e.Next))
		for j, n := range e.Next {
			next[j] = n.String()
		}
		response[i] = catalogEntryResponse{
			statusInfoResponse: statusInfoOf(e.StatusView),
			Terminal:           e.Terminal,
			RequiresReason:     e.RequiresReason,
			Next:               next,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req newOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, req.TotalCents, payment.Type(req.PaymentType))
	if err != nil {
		return rejectInput(ctx, err)
	}

	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: id.Bytes(), Status: order.Draft.String()})
}

// UpdateOrderDetails handles PATCH /api/v1/orders/{id}.
func (s *Server) UpdateOrderDetails(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	var req orderDetailsRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	details := commands.OrderDetails{
		CostBasisCents:    req.CostBasisCents,
		ShippingAddress:   req.ShippingAddress,
		ProductionStartAt: req.ProductionStartAt,
	}
	if req.VendorID != nil {
		vendorID, vErr := kernel.UUIDFromBytes(req.VendorID[:])
		if vErr != nil {
			return badRequest(ctx, "invalid vendor id: "+vErr.Error())
		}
		details.VendorID = &vendorID
	}
	if req.PaymentType != nil {
		pt := payment.Type(*req.PaymentType)
		details.PaymentType = &pt
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(id, details)
	if err != nil {
		return rejectInput(ctx, err)
	}

	if err = s.h.UpdateOrderDetails.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles POST /api/v1/orders/{id}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	var req orderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, order.Status(req.Status), req.Reason, req.Notes, req.Metadata)
	if err != nil {
		return rejectInput(ctx, err)
	}

	result, err := s.h.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	s.recordTransition("order", err)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderStatusResponse{
		Status:         result.Status.String(),
		TimestampField: result.TimestampField,
		Version:        result.Version,
	})
}

// GetOrderTransitions handles GET /api/v1/orders/{id}/transitions.
func (s *Server) GetOrderTransitions(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderTransitionsQuery(id)
	if err != nil {
		return rejectInput(ctx, err)
	}

	resp, err := s.h.OrderTransitions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	next := make([]transitionResponse, len(resp.Next))
	for i, t := range resp.Next {
		next[i] = transitionResponse{
			statusInfoResponse: statusInfoOf(t.StatusView),
			RequiresReason:     t.RequiresReason,
			TimestampField:     t.TimestampField,
		}
	}

	return ctx.JSON(http.StatusOK, orderTransitionsResponse{
		OrderID:  resp.OrderID.Bytes(),
		Current:  statusInfoOf(resp.Current),
		Terminal: resp.Terminal,
		Next:     next,
	})
}

// CreateQuote handles POST /api/v1/quotes.
func (s *Server) CreateQuote(ctx echo.Context) error {
	var req newQuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(req.OrderID[:])
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}
	vendorID, err := kernel.UUIDFromBytes(req.VendorID[:])
	if err != nil {
		return badRequest(ctx, "invalid vendor id: "+err.Error())
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateQuoteCommand(id, orderID, vendorID, req.AmountCents, req.ValidUntil)
	if err != nil {
		return rejectInput(ctx, err)
	}

	if err = s.h.CreateQuote.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: id.Bytes(), Status: quote.Draft.String()})
}

// ChangeQuoteStatus handles POST /api/v1/quotes/{id}/status.
func (s *Server) ChangeQuoteStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid quote id: "+err.Error())
	}

	var req quoteStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateQuoteStatusCommand(id, quote.Status(req.Status), req.CounterAmountCents)
	if err != nil {
		return rejectInput(ctx, err)
	}

	status, err := s.h.UpdateQuoteStatus.Handle(ctx.Request().Context(), cmd)
	s.recordTransition("quote", err)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quoteStatusResponse{Status: status.String()})
}

// CalculatePaymentSplit handles POST /api/v1/payments/split.
func (s *Server) CalculatePaymentSplit(ctx echo.Context) error {
	var req paymentSplitRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	query := queries.NewCalculatePaymentSplitQuery(req.TotalCents, payment.Type(req.PaymentType))
	resp, err := s.h.PaymentSplit.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentSplitResponse{
		TotalCents:       resp.TotalCents,
		PaymentType:      resp.PaymentType.String(),
		DownPaymentCents: resp.DownPaymentCents,
		RemainingCents:   resp.RemainingCents,
	})
}

func (s *Server) recordTransition(entity string, err error) {
	if s.metrics == nil {
		return
	}
	switch _, rejected := workflow.FailuresOf(err); {
	case err == nil:
		s.metrics.Transition(entity, OutcomeApplied)
	case rejected:
		s.metrics.Transition(entity, OutcomeRejected)
	default:
		s.metrics.Transition(entity, OutcomeFailed)
	}
}

// rejectInput reports a command or query that could not be constructed.
func rejectInput(ctx echo.Context, err error) error {
	if _, ok := workflow.FailuresOf(err); ok {
		return writeError(ctx, err)
	}
	return badRequest(ctx, err.Error())
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromBytes(id[:])
}
