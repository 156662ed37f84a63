package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	rediscache "etching/internal/adapters/out/redis"
	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type StatusCacheIntegrationTestSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *redis.Client
	cache     *rediscache.StatusCache
}

func (suite *StatusCacheIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	suite.Require().NoError(err)
	suite.container = container

	uri, err := container.ConnectionString(ctx)
	suite.Require().NoError(err)
	opts, err := redis.ParseURL(uri)
	suite.Require().NoError(err)

	suite.client = redis.NewClient(opts)
	suite.cache = rediscache.NewStatusCache(suite.client, time.Minute)
}

func (suite *StatusCacheIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
}

func (suite *StatusCacheIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StatusCacheIntegrationTestSuite) TestMissIsNotAnError() {
	status, ok, err := suite.cache.Get(suite.T().Context(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.False(ok)
	suite.Empty(status)
}

func (suite *StatusCacheIntegrationTestSuite) TestSetGetDelete() {
	ctx := suite.T().Context()
	id := kernel.NewUUID()

	suite.Require().NoError(suite.cache.Set(ctx, id, order.InProduction, 7))

	status, ok, err := suite.cache.Get(ctx, id)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(order.InProduction, status)

	ttl, err := suite.client.TTL(ctx, fmt.Sprintf(rediscache.KeyOrderStatus, id.String())).Result()
	suite.Require().NoError(err)
	suite.Positive(ttl)
	suite.LessOrEqual(ttl, time.Minute)

	suite.Require().NoError(suite.cache.Delete(ctx, id))
	_, ok, err = suite.cache.Get(ctx, id)
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *StatusCacheIntegrationTestSuite) TestCorruptEntryIsAMiss() {
	ctx := suite.T().Context()
	id := kernel.NewUUID()
	k := fmt.Sprintf(rediscache.KeyOrderStatus, id.String())
	suite.Require().NoError(suite.client.Set(ctx, k, "teleported", 0).Err())

	_, ok, err := suite.cache.Get(ctx, id)

	suite.Require().NoError(err)
	suite.False(ok)
	n, err := suite.client.Exists(ctx, k).Result()
	suite.Require().NoError(err)
	suite.Zero(n)
}

func (suite *StatusCacheIntegrationTestSuite) TestOlderVersionNeverReplacesNewer() {
	ctx := suite.T().Context()
	id := kernel.NewUUID()

	// the v3 transition lands first, the v2 write arrives late
	suite.Require().NoError(suite.cache.Set(ctx, id, order.VendorSourcing, 3))
	suite.Require().NoError(suite.cache.Set(ctx, id, order.Pending, 2))

	status, ok, err := suite.cache.Get(ctx, id)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(order.VendorSourcing, status)

	raw, err := suite.client.Get(ctx, fmt.Sprintf(rediscache.KeyOrderStatus, id.String())).Result()
	suite.Require().NoError(err)
	suite.Equal("vendor_sourcing@3", raw)
}

func (suite *StatusCacheIntegrationTestSuite) TestNewerVersionReplacesOlder() {
	ctx := suite.T().Context()
	id := kernel.NewUUID()

	suite.Require().NoError(suite.cache.Set(ctx, id, order.Pending, 2))
	suite.Require().NoError(suite.cache.Set(ctx, id, order.VendorSourcing, 3))

	status, ok, err := suite.cache.Get(ctx, id)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(order.VendorSourcing, status)
}

func (suite *StatusCacheIntegrationTestSuite) TestEntryWithoutVersionIsAMiss() {
	ctx := suite.T().Context()
	id := kernel.NewUUID()
	k := fmt.Sprintf(rediscache.KeyOrderStatus, id.String())
	suite.Require().NoError(suite.client.Set(ctx, k, "pending", 0).Err())

	_, ok, err := suite.cache.Get(ctx, id)

	suite.Require().NoError(err)
	suite.False(ok)
}

func TestStatusCacheIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StatusCacheIntegrationTestSuite))
}
