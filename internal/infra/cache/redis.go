// Package cache holds the process-wide keyed stores: the admin inbox and
// the idempotency guard. Both run in memory unless redis.addr is configured.
package cache

import (
	"context"
	"log/slog"

	"agriconnect/config"
	"agriconnect/internal/domain/lifecycle"
	"agriconnect/internal/errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

const keyPrefix = "agriconnect:"

// RedisParams defines the dependencies of the Redis client
type RedisParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewRedisClient connects to the configured Redis. It returns a nil client when
// no address is set, which selects the in-memory stores.
func NewRedisClient(params RedisParams) *redis.Client {
	rc := params.Config.Redis
	if rc == nil || rc.Addr == "" {
		params.Logger.Info("Redis not configured, using in-memory stores")

		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrapf(err, "failed to ping redis at %s", rc.Addr)
			}
			params.Logger.Info("Connected to Redis", slog.String("addr", rc.Addr))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return client
}
