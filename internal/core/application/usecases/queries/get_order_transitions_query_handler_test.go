package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"etching/internal/adapters/out/postgres/orderrepo"
	"etching/internal/core/application/usecases/queries"
	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"
	"etching/internal/core/domain/model/payment"
	"etching/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type mockStatusCache struct{ mock.Mock }

func (m *mockStatusCache) Get(ctx context.Context, id kernel.UUID) (order.Status, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(order.Status), args.Bool(1), args.Error(2)
}

func (m *mockStatusCache) Set(ctx context.Context, id kernel.UUID, s order.Status, version int) error {
	return m.Called(ctx, id, s, version).Error(0)
}

func (m *mockStatusCache) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type GetOrderTransitionsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderTransitionsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderTransitionsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderTransitionsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetOrderTransitionsQueryHandlerTestSuite) TestCacheHit() {
	ctx := suite.T().Context()
	id := kernel.NewUUID()
	cache := new(mockStatusCache)
	cache.On("Get", ctx, id).Return(order.AwaitingPayment, true, nil).Once()

	h := queries.NewGetOrderTransitionsQueryHandler(suite.db, cache, nil)
	query, err := queries.NewGetOrderTransitionsQuery(id)
	suite.Require().NoError(err)

	resp, err := h.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(resp.FromCache)
	suite.Equal(order.AwaitingPayment, resp.Current.Status)
	suite.False(resp.Terminal)
	suite.Require().Len(resp.Next, 3)
	suite.Equal(order.PartialPayment, resp.Next[0].Status)
	suite.Equal("payment_date", resp.Next[1].TimestampField)
	suite.True(resp.Next[2].RequiresReason)
	cache.AssertExpectations(suite.T())
}

func (suite *GetOrderTransitionsQueryHandlerTestSuite) TestCacheMissReadsDatabaseAndFillsCache() {
	ctx := suite.T().Context()
	o, err := order.NewOrder(kernel.NewUUID(), 100, payment.Full)
	suite.Require().NoError(err)
	_, err = o.ChangeStatus(ctx, order.StatusChange{To: order.Cancelled, Reason: "spam"}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	cache := new(mockStatusCache)
	cache.On("Get", ctx, o.ID()).Return(order.Status(""), false, nil).Once()
	cache.On("Set", ctx, o.ID(), order.Cancelled, 1).Return(nil).Once()

	h := queries.NewGetOrderTransitionsQueryHandler(suite.db, cache, nil)
	query, _ := queries.NewGetOrderTransitionsQuery(o.ID())
	resp, err := h.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.False(resp.FromCache)
	suite.Equal(order.Cancelled, resp.Current.Status)
	suite.True(resp.Terminal)
	suite.Empty(resp.Next)
	cache.AssertExpectations(suite.T())
}

func (suite *GetOrderTransitionsQueryHandlerTestSuite) TestCacheErrorFallsBack() {
	ctx := suite.T().Context()
	o, err := order.NewOrder(kernel.NewUUID(), 100, "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	cache := new(mockStatusCache)
	cache.On("Get", ctx, o.ID()).Return(order.Status(""), false, errors.New("timeout")).Once()
	cache.On("Set", ctx, o.ID(), order.Draft, 1).Return(errors.New("timeout")).Once()

	h := queries.NewGetOrderTransitionsQueryHandler(suite.db, cache, nil)
	query, _ := queries.NewGetOrderTransitionsQuery(o.ID())
	resp, err := h.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(order.Draft, resp.Current.Status)
	suite.Len(resp.Next, 2)
}

func (suite *GetOrderTransitionsQueryHandlerTestSuite) TestWithoutCache_NotFound() {
	h := queries.NewGetOrderTransitionsQueryHandler(suite.db, nil, nil)
	query, _ := queries.NewGetOrderTransitionsQuery(kernel.NewUUID())

	_, err := h.Handle(suite.T().Context(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGetOrderTransitionsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderTransitionsQueryHandlerTestSuite))
}
