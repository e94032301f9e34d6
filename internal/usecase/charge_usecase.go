package usecase

import (
	"context"
	"fmt"
	"log"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/domain/errs"
	"pix_checkout/internal/usecase/interfaces"
	"strings"
	"sync"
	"time"
)

// IChargeUseCase is the charge orchestrator consumed by the HTTP layer and the CLI.
//
//go:generate mockgen -destination=../adapter/http/handlers/mocks/charge_usecase.go -package=mocks pix_checkout/internal/usecase IChargeUseCase
type IChargeUseCase interface {
	RequestCharge(ctx context.Context, amount float64) (entities.Charge, error)
	RequestIdempotentCharge(ctx context.Context, idempotencyKey string, amount float64) (entities.Charge, error)
	CheckStatus(ctx context.Context, transactionID string) (entities.ChargeStatus, error)
}

type ChargeUseCase struct {
	gateway   interfaces.IPaymentGateway
	replay    interfaces.IChargeReplayStore
	replayTTL time.Duration
	keys      *keyLocks
	now       func() time.Time
}

var _ IChargeUseCase = (*ChargeUseCase)(nil)

// NewChargeUseCase wires the orchestrator. replay may be nil, in which case
// idempotency keys are ignored and every request creates a new transaction.
func NewChargeUseCase(gateway interfaces.IPaymentGateway, replay interfaces.IChargeReplayStore, replayTTL time.Duration) *ChargeUseCase {
	return &ChargeUseCase{
		gateway:   gateway,
		replay:    replay,
		replayTTL: replayTTL,
		keys:      newKeyLocks(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *ChargeUseCase) RequestCharge(ctx context.Context, amount float64) (entities.Charge, error) {
	log.Printf("[charge][usecase] request start amount=%v", amount)
	minor, err := validateAmount(amount)
	if err != nil {
		log.Printf("[charge][usecase] invalid amount amount=%v", amount)
		return entities.Charge{}, err
	}
	return u.createCharge(ctx, minor)
}

// RequestIdempotentCharge returns the charge already issued for idempotencyKey when
// there is one, and creates it otherwise. Requests sharing a key are serialized so
// only one of them reaches the processor.
func (u *ChargeUseCase) RequestIdempotentCharge(ctx context.Context, idempotencyKey string, amount float64) (entities.Charge, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" || u.replay == nil {
		return u.RequestCharge(ctx, amount)
	}
	log.Printf("[charge][usecase] idempotent request start key=%s amount=%v", idempotencyKey, amount)

	minor, err := validateAmount(amount)
	if err != nil {
		log.Printf("[charge][usecase] invalid amount key=%s amount=%v", idempotencyKey, amount)
		return entities.Charge{}, err
	}

	unlock := u.keys.lock(idempotencyKey)
	defer unlock()

	stored, found, err := u.replay.Get(ctx, idempotencyKey)
	if err != nil {
		log.Printf("[charge][usecase] replay lookup failed key=%s err=%v", idempotencyKey, err)
		return entities.Charge{}, fmt.Errorf("charge replay lookup: %w", err)
	}
	if found {
		if stored.AmountMinor != minor {
			log.Printf("[charge][usecase] key reused with another amount key=%s stored=%d requested=%d", idempotencyKey, stored.AmountMinor, minor)
			return entities.Charge{}, errs.NewValidationError("idempotency_key", errs.ErrIdempotencyKeyReused)
		}
		log.Printf("[charge][usecase] replaying charge key=%s transaction_id=%s", idempotencyKey, stored.TransactionID)
		stored.Status = entities.ChargeStatusPending
		return stored, nil
	}

	charge, err := u.createCharge(ctx, minor)
	if err != nil {
		return entities.Charge{}, err
	}

	if err := u.replay.Save(ctx, idempotencyKey, charge, u.replayTTL); err != nil {
		log.Printf("[charge][usecase] replay save failed key=%s transaction_id=%s err=%v", idempotencyKey, charge.TransactionID, err)
	}
	return charge, nil
}

func (u *ChargeUseCase) createCharge(ctx context.Context, minor int64) (entities.Charge, error) {
	if u.gateway == nil {
		log.Printf("[charge][usecase] gateway not configured")
		return entities.Charge{}, &errs.ChargeFailedError{Reason: errs.NewConfigError("", "payment gateway not configured")}
	}

	log.Printf("[charge][usecase] calling payment gateway amount_minor=%d", minor)
	charge, err := u.gateway.CreateCharge(ctx, minor)
	if err != nil {
		log.Printf("[charge][usecase] payment gateway failed amount_minor=%d err=%v", minor, err)
		return entities.Charge{}, &errs.ChargeFailedError{Reason: err}
	}

	charge.Status = entities.ChargeStatusPending
	charge.AmountMinor = minor
	charge.Amount = entities.FromMinorUnits(minor)
	if charge.CreatedAt.IsZero() {
		charge.CreatedAt = u.now()
	}
	log.Printf("[charge][usecase] request success transaction_id=%s amount_minor=%d", charge.TransactionID, minor)
	return charge, nil
}

func (u *ChargeUseCase) CheckStatus(ctx context.Context, transactionID string) (entities.ChargeStatus, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return "", errs.NewValidationError("transaction_id", errs.ErrInvalidTransactionID)
	}
	if u.gateway == nil {
		return "", errs.NewConfigError("", "payment gateway not configured")
	}

	status, err := u.gateway.GetStatus(ctx, transactionID)
	if err != nil {
		log.Printf("[charge][usecase] status check failed transaction_id=%s err=%v", transactionID, err)
		return "", err
	}
	log.Printf("[charge][usecase] status check transaction_id=%s status=%s", transactionID, status)
	return status, nil
}

// validateAmount rejects NaN, infinities, non-positive values and amounts below one
// cent, returning the minor-unit value for the rest.
func validateAmount(amount float64) (int64, error) {
	minor, ok := entities.ToMinorUnits(amount)
	if !ok || amount <= 0 || minor <= 0 {
		return 0, errs.NewValidationError("amount", errs.ErrInvalidAmount)
	}
	return minor, nil
}

type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*keyLock)}
}

func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
