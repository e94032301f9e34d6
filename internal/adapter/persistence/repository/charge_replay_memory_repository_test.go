package repository

import (
	"context"
	"pix_checkout/internal/domain/entities"
	"testing"
	"time"
)

func TestChargeReplayMemoryRepository_FirstSaveWinsAndExpires(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewChargeReplayMemoryRepository()
	r.now = func() time.Time { return now }
	ctx := context.Background()

	if _, found, err := r.Get(ctx, "k1"); err != nil || found {
		t.Fatalf("expected miss, got found=%v err=%v", found, err)
	}

	first := entities.Charge{TransactionID: "tx-1", AmountMinor: 350, Status: entities.ChargeStatusPending}
	second := entities.Charge{TransactionID: "tx-2", AmountMinor: 350, Status: entities.ChargeStatusPending}
	if err := r.Save(ctx, "k1", first, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Save(ctx, "k1", second, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, found, err := r.Get(ctx, "k1")
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%v err=%v", found, err)
	}
	if got.TransactionID != "tx-1" {
		t.Fatalf("expected first save to win, got %s", got.TransactionID)
	}

	now = now.Add(time.Minute)
	if _, found, _ := r.Get(ctx, "k1"); found {
		t.Fatalf("expected entry to expire")
	}
	if err := r.Save(ctx, "k1", second, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _, _ := r.Get(ctx, "k1"); got.TransactionID != "tx-2" {
		t.Fatalf("expected expired key to be reusable, got %s", got.TransactionID)
	}
}
