package lock

import (
	"context"
	"fmt"
	"log/slog"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/deliveryportal/internal/config"
)

// Module provides the order creation locker.
var Module = fx.Provide(newLocker)

type lockerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newLocker(p lockerParams) (Locker, error) {
	if p.Config.RedisURL == "" {
		p.Logger.Info("redis not configured, order creation relies on store checks only")
		return NopLocker{}, nil
	}

	opts, err := redis.ParseURL(p.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				p.Logger.Warn("redis unreachable at startup", slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return NewRedisLocker(client), nil
}
