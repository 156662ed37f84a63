package commands_test

import (
	"context"
	"time"

	"etching/internal/core/application/usecases/commands"
	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"
	"etching/internal/core/domain/model/quote"
	"etching/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockQuoteRepository struct{ mock.Mock }

func (m *MockQuoteRepository) Add(ctx context.Context, q *quote.Quote) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQuoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	q, _ := args.Get(0).(*quote.Quote)
	return q, args.Error(1)
}

func (m *MockQuoteRepository) GetAllExpirable(ctx context.Context, now time.Time, limit int) ([]*quote.Quote, error) {
	args := m.Called(ctx, now, limit)
	qs, _ := args.Get(0).([]*quote.Quote)
	return qs, args.Error(1)
}

type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockTx) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockTx) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

type MockOrderUoW struct{ MockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockQuoteUoW struct{ MockTx }

func (m *MockQuoteUoW) QuoteRepository() ports.QuoteRepository {
	return m.Called().Get(0).(ports.QuoteRepository)
}

type MockQuoteUoWFactory struct{ mock.Mock }

func (m *MockQuoteUoWFactory) Create() commands.QuoteUoW {
	return m.Called().Get(0).(commands.QuoteUoW)
}

type MockStatusCache struct{ mock.Mock }

func (m *MockStatusCache) Get(ctx context.Context, id kernel.UUID) (order.Status, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(order.Status), args.Bool(1), args.Error(2)
}

func (m *MockStatusCache) Set(ctx context.Context, id kernel.UUID, s order.Status, version int) error {
	return m.Called(ctx, id, s, version).Error(0)
}

func (m *MockStatusCache) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}
