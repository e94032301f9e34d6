package database

import (
	"context"
	"fmt"
	"pix_checkout/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens the idempotency cache and pings it once.
func ConnectRedis(ctx context.Context, cfg config.Cache) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           0,
		MinIdleConns: 2,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
