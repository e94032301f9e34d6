package repository

import (
	"context"
	"log"
	"pix_checkout/internal/config"
	"pix_checkout/internal/domain/errs"
	"pix_checkout/internal/infrastructure/database"
	"pix_checkout/internal/usecase/interfaces"
)

// NewChargeReplayStore opens the replay backend selected by IDEMPOTENCY_STORE.
// The returned store is nil for "none". closeFn is never nil.
func NewChargeReplayStore(ctx context.Context, cfg *config.Config) (store interfaces.IChargeReplayStore, closeFn func(), err error) {
	noop := func() {}

	switch cfg.Idempotency.Store {
	case config.StoreNone:
		log.Printf("[replay][store] idempotency disabled")
		return nil, noop, nil
	case config.StoreMemory:
		log.Printf("[replay][store] using in-memory store")
		return NewChargeReplayMemoryRepository(), noop, nil
	case config.StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx)
		if err != nil {
			return nil, noop, err
		}
		if err := database.EnsureChargeReplayTable(ctx, ddb, cfg.Idempotency.Table); err != nil {
			return nil, noop, err
		}
		log.Printf("[replay][store] using dynamodb table=%s", cfg.Idempotency.Table)
		return NewChargeReplayDynamoRepository(ddb, cfg.Idempotency.Table), noop, nil
	case config.StoreRedis:
		rdb, err := database.ConnectRedis(ctx, cfg.Cache)
		if err != nil {
			return nil, noop, err
		}
		log.Printf("[replay][store] using redis addr=%s:%s", cfg.Cache.Host, cfg.Cache.Port)
		return NewChargeReplayRedisRepository(rdb), func() { _ = rdb.Close() }, nil
	}

	return nil, noop, errs.NewConfigError("IDEMPOTENCY_STORE", "unknown idempotency store "+cfg.Idempotency.Store)
}
