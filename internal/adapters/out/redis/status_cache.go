// Package redis caches order statuses in Redis with redis/go-redis.
//
// Every entry is stored as "status@version". Writes go through a script that
// only replaces an entry carrying a lower version, so a late write from an
// older transition or from a read-through fill can never shadow a newer one.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"etching/internal/core/domain/model/kernel"
	"etching/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
)

// KeyOrderStatus is order_status:{order_id} -> status@version.
const KeyOrderStatus = "order_status:%s"

// DefaultStatusTTL bounds how long an entry may outlive a missed invalidation.
const DefaultStatusTTL = 5 * time.Minute

// setIfNewer stores ARGV[1] under KEYS[1] for ARGV[3] milliseconds unless the
// current entry already carries a version >= ARGV[2]. Returns 1 when stored.
var setIfNewer = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current then
  local v = tonumber(string.match(current, '@(%d+)$'))
  if v and v >= tonumber(ARGV[2]) then
    return 0
  end
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// NewClient builds a client with short timeouts; the cache must never hold
// up a request for long.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// StatusCache implements ports.StatusCache on top of Redis.
type StatusCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewStatusCache creates the cache. A non-positive ttl uses DefaultStatusTTL.
func NewStatusCache(rdb redis.Cmdable, ttl time.Duration) *StatusCache {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &StatusCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached status. Missing and unreadable entries are a miss;
// unreadable ones are dropped.
func (c *StatusCache) Get(ctx context.Context, id kernel.UUID) (order.Status, bool, error) {
	raw, err := c.rdb.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	status, _, err := decode(raw)
	if err != nil {
		_ = c.rdb.Del(ctx, key(id)).Err()
		return "", false, nil
	}
	return status, true, nil
}

// Set stores status for the given order version unless a newer or equal
// version is already cached.
func (c *StatusCache) Set(ctx context.Context, id kernel.UUID, status order.Status, version int) error {
	return setIfNewer.Run(ctx, c.rdb,
		[]string{key(id)},
		encode(status, version), version, c.ttl.Milliseconds(),
	).Err()
}

// Delete drops the entry so that the next read goes to the database.
func (c *StatusCache) Delete(ctx context.Context, id kernel.UUID) error {
	return c.rdb.Del(ctx, key(id)).Err()
}

func key(id kernel.UUID) string {
	return fmt.Sprintf(KeyOrderStatus, id.String())
}

func encode(status order.Status, version int) string {
	return status.String() + "@" + strconv.Itoa(version)
}

func decode(raw string) (order.Status, int, error) {
	s, v, ok := strings.Cut(raw, "@")
	if !ok {
		return "", 0, fmt.Errorf("cache entry %q has no version", raw)
	}
	version, err := strconv.Atoi(v)
	if err != nil {
		return "", 0, fmt.Errorf("cache entry %q: %w", raw, err)
	}
	status, err := order.ParseStatus(s)
	if err != nil {
		return "", 0, err
	}
	return status, version, nil
}
