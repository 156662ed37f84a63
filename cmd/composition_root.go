package cmd

import (
	"log/slog"

	httpadapter "etching/internal/adapters/in/http"
	"etching/internal/adapters/out/postgres"
	"etching/internal/core/application/usecases/commands"
	"etching/internal/core/application/usecases/queries"
	"etching/internal/core/ports"
	"etching/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot builds use case handlers over shared infrastructure.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	cache      ports.StatusCache
	logger     *slog.Logger
}

// NewCompositionRoot wires the use cases. cache may be nil when no Redis
// address is configured.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	cache ports.StatusCache,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		cache:      cache,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) quoteUoWFactory() commands.QuoteUoWFactory {
	return FuncQuoteUoWFactory(func() commands.QuoteUoW {
		return c.uowFactory.Create()
	})
}

// CreateCreateOrderCommandHandler returns a handler with its own unit of work per call.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

// CreateUpdateOrderDetailsCommandHandler returns the details handler.
func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	return commands.NewUpdateOrderDetailsCommandHandler(c.orderUoWFactory())
}

// CreateUpdateOrderStatusCommandHandler returns the transition handler wired to the status cache.
func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.cache, c.logger)
}

// CreateCreateQuoteCommandHandler returns the quote creation handler.
func (c *CompositionRoot) CreateCreateQuoteCommandHandler() commands.CreateQuoteCommandHandler {
	return commands.NewCreateQuoteCommandHandler(c.quoteUoWFactory())
}

// CreateUpdateQuoteStatusCommandHandler returns the quote transition handler.
func (c *CompositionRoot) CreateUpdateQuoteStatusCommandHandler() commands.UpdateQuoteStatusCommandHandler {
	return commands.NewUpdateQuoteStatusCommandHandler(c.quoteUoWFactory())
}

// CreateExpireQuotesCommandHandler returns the handler the expiry job drives.
func (c *CompositionRoot) CreateExpireQuotesCommandHandler() *commands.ExpireQuotesCommandHandler {
	h := commands.NewExpireQuotesCommandHandler(c.quoteUoWFactory(), c.logger)
	return &h
}

// CreateGetOrderTransitionsQueryHandler reads through the status cache when one is set.
func (c *CompositionRoot) CreateGetOrderTransitionsQueryHandler() queries.GetOrderTransitionsQueryHandler {
	return queries.NewGetOrderTransitionsQueryHandler(c.gormDB, c.cache, c.logger)
}

// HTTPHandlers collects every use case the HTTP adapter serves.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		UpdateOrderDetails: c.CreateUpdateOrderDetailsCommandHandler(),
		UpdateOrderStatus:  c.CreateUpdateOrderStatusCommandHandler(),
		CreateQuote:        c.CreateCreateQuoteCommandHandler(),
		UpdateQuoteStatus:  c.CreateUpdateQuoteStatusCommandHandler(),
		OrderTransitions:   c.CreateGetOrderTransitionsQueryHandler(),
		StatusCatalog:      queries.NewGetOrderStatusCatalogQueryHandler(),
		PaymentSplit:       queries.NewCalculatePaymentSplitQueryHandler(),
	}
}

// CreateJobManager schedules quote expiry on cfg.QuoteExpirySpec.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireQuotesCommandHandler(), c.cfg.QuoteExpirySpec, c.logger)
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create calls f.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncQuoteUoWFactory adapts a function to commands.QuoteUoWFactory.
type FuncQuoteUoWFactory func() commands.QuoteUoW

// Create calls f.
func (f FuncQuoteUoWFactory) Create() commands.QuoteUoW {
	return f()
}
