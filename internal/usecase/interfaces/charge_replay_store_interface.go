package interfaces

import (
	"context"
	"pix_checkout/internal/domain/entities"
	"time"
)

// IChargeReplayStore keeps short-lived idempotency entries: the charge issued for a
// caller-supplied key, so a retried request returns it instead of creating a new
// transaction. Entries expire after ttl; it is not a transaction ledger.
//
//go:generate mockgen -source=charge_replay_store_interface.go -destination=mocks/charge_replay_store_interface.go -package=mock_interfaces
type IChargeReplayStore interface {
	// Get returns found=false for unknown or expired keys.
	Get(ctx context.Context, key string) (charge entities.Charge, found bool, err error)
	// Save keeps the first charge stored for a key; later saves are ignored.
	Save(ctx context.Context, key string, charge entities.Charge, ttl time.Duration) error
}
