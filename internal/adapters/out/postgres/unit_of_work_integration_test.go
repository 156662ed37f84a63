package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "etching/internal/adapters/out/postgres"
	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"
	"etching/internal/core/domain/model/payment"
	"etching/internal/core/domain/model/quote"
	"etching/internal/core/ports"
	"etching/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *MockEventPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, quotes").Error)

	suite.publisher = new(MockEventPublisher)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.QuoteRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second begin reuses the transaction")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPublishesEvents() {
	ctx := suite.T().Context()
	o := suite.addOrder()

	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []kernel.DomainEvent) bool {
		if len(events) != 1 {
			return false
		}
		ev, ok := events[0].(order.StatusChanged)
		return ok && ev.From == order.Draft && ev.To == order.Pending
	})).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.ChangeStatus(ctx, order.StatusChange{To: order.Pending}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Empty(loaded.DomainEvents())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsWritesAndEvents() {
	ctx := suite.T().Context()
	o := suite.addOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.ChangeStatus(ctx, order.StatusChange{To: order.Cancelled, Reason: "test"}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Rollback(ctx))

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Draft, got.Status())
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PublishFailureKeepsCommit() {
	ctx := suite.T().Context()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	q, err := quote.NewQuote(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1000, time.Now().Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(q.ChangeStatus(ctx, quote.Sent, time.Now()))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.QuoteRepository().Add(ctx, q))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().QuoteRepository().Get(ctx, q.ID())
	suite.Require().NoError(err)
	suite.Equal(quote.Sent, got.Status())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentWritersConflict() {
	ctx := suite.T().Context()
	o := suite.addOrder()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()

	a, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	b, err := second.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = a.ChangeStatus(ctx, order.StatusChange{To: order.Pending}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(first.OrderRepository().Update(ctx, a))
	suite.Require().NoError(first.Commit(ctx))

	_, err = b.ChangeStatus(ctx, order.StatusChange{To: order.Cancelled, Reason: "late"}, time.Now())
	suite.Require().NoError(err)
	err = second.OrderRepository().Update(ctx, b)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *UnitOfWorkIntegrationTestSuite) addOrder() *order.Order {
	ctx := suite.T().Context()
	o, err := order.NewOrder(kernel.NewUUID(), 5000, payment.Full)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
