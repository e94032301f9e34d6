package main

import (
	"context"
	"pix_checkout/internal/adapter/persistence/repository"
	"pix_checkout/internal/config"
	"pix_checkout/internal/usecase/interfaces"
)

// newReplayStore ignores the in-memory backend, which does not outlive a command.
func newReplayStore(ctx context.Context, cfg *config.Config) (interfaces.IChargeReplayStore, func(), error) {
	if cfg.Idempotency.Store == config.StoreMemory {
		return nil, func() {}, nil
	}
	return repository.NewChargeReplayStore(ctx, cfg)
}
