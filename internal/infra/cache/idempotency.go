package cache

import (
	"context"
	"sync"
	"time"

	"agriconnect/config"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/errors"

	"github.com/go-redis/redis/v8"
)

const (
	idempotencyKeyPrefix  = keyPrefix + "idempotent-key:"
	defaultIdempotencyTTL = 24 * time.Hour
)

// NewIdempotencyGuard picks the Redis guard when a client is available.
func NewIdempotencyGuard(cfg *config.Config, client *redis.Client) service.IdempotencyGuard {
	ttl := defaultIdempotencyTTL
	if cfg.Redis != nil && cfg.Redis.IdempotencyTTL > 0 {
		ttl = cfg.Redis.IdempotencyTTL
	}

	if client == nil {
		return NewMemoryIdempotencyGuard(ttl)
	}

	return &redisIdempotencyGuard{client: client, ttl: ttl}
}

type memoryIdempotencyGuard struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]time.Time
	now  func() time.Time
}

// NewMemoryIdempotencyGuard remembers keys for ttl within this process.
func NewMemoryIdempotencyGuard(ttl time.Duration) service.IdempotencyGuard {
	return &memoryIdempotencyGuard{
		ttl:  ttl,
		seen: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (g *memoryIdempotencyGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, expires := range g.seen {
		if now.After(expires) {
			delete(g.seen, k)
		}
	}

	if _, ok := g.seen[key]; ok {
		return false, nil
	}
	g.seen[key] = now.Add(g.ttl)

	return true, nil
}

func (g *memoryIdempotencyGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.seen, key)

	return nil
}

type redisIdempotencyGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func (g *redisIdempotencyGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, idempotencyKeyPrefix+key, "exists", g.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to store idempotency key")
	}

	return ok, nil
}

func (g *redisIdempotencyGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return errors.Wrap(err, "failed to release idempotency key")
	}

	return nil
}
