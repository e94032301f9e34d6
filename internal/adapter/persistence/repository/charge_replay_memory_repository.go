package repository

import (
	"context"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"
	"sync"
	"time"
)

type memoryReplayEntry struct {
	charge    entities.Charge
	expiresAt time.Time
}

// ChargeReplayMemoryRepository keeps replay entries in process memory. Expired
// entries are dropped lazily on access.
type ChargeReplayMemoryRepository struct {
	mu      sync.Mutex
	entries map[string]memoryReplayEntry
	now     func() time.Time
}

var _ interfaces.IChargeReplayStore = (*ChargeReplayMemoryRepository)(nil)

func NewChargeReplayMemoryRepository() *ChargeReplayMemoryRepository {
	return &ChargeReplayMemoryRepository{
		entries: make(map[string]memoryReplayEntry),
		now:     time.Now,
	}
}

func (r *ChargeReplayMemoryRepository) Get(_ context.Context, key string) (entities.Charge, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return entities.Charge{}, false, nil
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.entries, key)
		return entities.Charge{}, false, nil
	}
	return e.charge, true, nil
}

func (r *ChargeReplayMemoryRepository) Save(_ context.Context, key string, charge entities.Charge, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.entries[key]; ok && now.Before(e.expiresAt) {
		return nil
	}
	r.entries[key] = memoryReplayEntry{charge: charge, expiresAt: now.Add(ttl)}
	return nil
}
