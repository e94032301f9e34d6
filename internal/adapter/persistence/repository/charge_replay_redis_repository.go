package repository

import (
	"context"
	"errors"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const chargeReplayKeyPrefix = "pix:charge:idempotency:"

// ChargeReplayRedisRepository stores replay entries as JSON strings with a native
// Redis expiry.
type ChargeReplayRedisRepository struct {
	cache *redis.Client
}

var _ interfaces.IChargeReplayStore = (*ChargeReplayRedisRepository)(nil)

func NewChargeReplayRedisRepository(cache *redis.Client) *ChargeReplayRedisRepository {
	return &ChargeReplayRedisRepository{cache: cache}
}

func (r *ChargeReplayRedisRepository) Get(ctx context.Context, key string) (entities.Charge, bool, error) {
	payload, err := r.cache.Get(ctx, chargeReplayKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.Charge{}, false, nil
	}
	if err != nil {
		return entities.Charge{}, false, err
	}

	var it chargeReplayItem
	if err := sonic.Unmarshal(payload, &it); err != nil {
		return entities.Charge{}, false, err
	}
	return fromChargeReplayItem(it), true, nil
}

func (r *ChargeReplayRedisRepository) Save(ctx context.Context, key string, charge entities.Charge, ttl time.Duration) error {
	payload, err := sonic.Marshal(toChargeReplayItem(key, charge, time.Now().Add(ttl)))
	if err != nil {
		return err
	}
	return r.cache.SetNX(ctx, chargeReplayKeyPrefix+key, payload, ttl).Err()
}
