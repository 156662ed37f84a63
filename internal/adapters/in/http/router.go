package http

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRouter registers the API under /api/v1 behind request validation, plus
// the health and metrics endpoints.
func NewRouter(server *Server, doc *openapi3.T, metrics *Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	if metrics != nil {
		e.Use(metrics.Middleware())
		e.GET("/metrics", metrics.Handler())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	if doc != nil {
		api.Use(RequestValidator(doc))
	}
	api.GET("/order-statuses", server.ListOrderStatuses)
	api.POST("/orders", server.CreateOrder)
	api.PATCH("/orders/:id", server.UpdateOrderDetails)
	api.POST("/orders/:id/status", server.ChangeOrderStatus)
	api.GET("/orders/:id/transitions", server.GetOrderTransitions)
	api.POST("/quotes", server.CreateQuote)
	api.POST("/quotes/:id/status", server.ChangeQuoteStatus)
	api.POST("/payments/split", server.CalculatePaymentSplit)

	return e
}
