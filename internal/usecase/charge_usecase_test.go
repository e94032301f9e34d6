package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/domain/errs"
	mock_interfaces "pix_checkout/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestChargeUseCase_RequestCharge_InvalidAmount(t *testing.T) {
	for _, amount := range []float64{0, -1, -0.01, 0.004, math.NaN(), math.Inf(1), math.Inf(-1)} {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		gateway.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).Times(0)
		uc := NewChargeUseCase(gateway, nil, 0)

		_, err := uc.RequestCharge(context.Background(), amount)
		if !errors.Is(err, errs.ErrInvalidAmount) || !errs.IsValidation(err) {
			t.Fatalf("amount %v: expected validation error, got %v", amount, err)
		}
		ctrl.Finish()
	}
}

func TestChargeUseCase_RequestCharge_MinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		minor  int64
	}{
		{amount: 3.50, minor: 350},
		{amount: 47.00, minor: 4700},
		{amount: 87.00, minor: 8700},
	}

	for _, tc := range cases {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewChargeUseCase(gateway, nil, 0)

		gateway.EXPECT().CreateCharge(gomock.Any(), tc.minor).Return(entities.Charge{
			TransactionID: "tx-1",
			QRCodeText:    "000201...",
			QRCodeImage:   "data:image/png;base64,AAA",
			Status:        entities.ChargeStatusPaid,
		}, nil)

		charge, err := uc.RequestCharge(context.Background(), tc.amount)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if charge.Status != entities.ChargeStatusPending {
			t.Fatalf("charge must start pending, got %s", charge.Status)
		}
		if charge.AmountMinor != tc.minor || !charge.Amount.Equal(entities.FromMinorUnits(tc.minor)) {
			t.Fatalf("unexpected amount: %+v", charge)
		}
		if charge.QRCodeText == "" || charge.QRCodeImage == "" || charge.CreatedAt.IsZero() {
			t.Fatalf("unexpected charge: %+v", charge)
		}
		ctrl.Finish()
	}
}

func TestChargeUseCase_RequestCharge_GatewayErrors(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "config", err: errs.NewConfigError("PIX_API_TOKEN", "payment credential is not configured"), check: errs.IsConfig},
		{name: "upstream", err: errs.NewUpstreamError(422, "valor inválido"), check: errs.IsUpstream},
		{name: "transient", err: &errs.TransientFetchError{Err: errors.New("timeout")}, check: errs.IsTransient},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewChargeUseCase(gateway, nil, 0)

			gateway.EXPECT().CreateCharge(gomock.Any(), int64(350)).Return(entities.Charge{}, tc.err)

			_, err := uc.RequestCharge(context.Background(), 3.5)
			var failed *errs.ChargeFailedError
			if !errors.As(err, &failed) {
				t.Fatalf("expected ChargeFailedError, got %v", err)
			}
			if !tc.check(err) {
				t.Fatalf("expected cause to be preserved, got %v", err)
			}
		})
	}

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewChargeUseCase(nil, nil, 0)
		_, err := uc.RequestCharge(context.Background(), 3.5)
		if !errs.IsConfig(err) {
			t.Fatalf("expected config error, got %v", err)
		}
	})
}

func TestChargeUseCase_RequestCharge_DoesNotShareState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewChargeUseCase(gateway, nil, 0)

	gateway.EXPECT().CreateCharge(gomock.Any(), int64(350)).Return(entities.Charge{TransactionID: "tx-1"}, nil)
	gateway.EXPECT().CreateCharge(gomock.Any(), int64(350)).Return(entities.Charge{TransactionID: "tx-2"}, nil)

	first, err := uc.RequestCharge(context.Background(), 3.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.RequestCharge(context.Background(), 3.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TransactionID == second.TransactionID {
		t.Fatalf("expected distinct transactions without idempotency key")
	}
	if first.TransactionID != "tx-1" || first.Status != entities.ChargeStatusPending {
		t.Fatalf("first charge was modified: %+v", first)
	}
}

func TestChargeUseCase_RequestIdempotentCharge(t *testing.T) {
	t.Run("replays stored charge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		replay := mock_interfaces.NewMockIChargeReplayStore(ctrl)
		uc := NewChargeUseCase(gateway, replay, time.Minute)

		stored := entities.Charge{TransactionID: "tx-1", AmountMinor: 350, Status: entities.ChargeStatusPending}
		replay.EXPECT().Get(gomock.Any(), "key-1").Return(stored, true, nil)
		gateway.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).Times(0)

		charge, err := uc.RequestIdempotentCharge(context.Background(), " key-1 ", 3.5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if charge.TransactionID != "tx-1" {
			t.Fatalf("expected replayed charge, got %+v", charge)
		}
	})

	t.Run("key reused for another amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		replay := mock_interfaces.NewMockIChargeReplayStore(ctrl)
		uc := NewChargeUseCase(gateway, replay, time.Minute)

		replay.EXPECT().Get(gomock.Any(), "key-1").Return(entities.Charge{TransactionID: "tx-1", AmountMinor: 4700}, true, nil)

		_, err := uc.RequestIdempotentCharge(context.Background(), "key-1", 3.5)
		if !errors.Is(err, errs.ErrIdempotencyKeyReused) {
			t.Fatalf("expected ErrIdempotencyKeyReused, got %v", err)
		}
	})

	t.Run("creates and saves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		replay := mock_interfaces.NewMockIChargeReplayStore(ctrl)
		uc := NewChargeUseCase(gateway, replay, time.Minute)

		replay.EXPECT().Get(gomock.Any(), "key-1").Return(entities.Charge{}, false, nil)
		gateway.EXPECT().CreateCharge(gomock.Any(), int64(350)).Return(entities.Charge{TransactionID: "tx-9"}, nil)
		replay.EXPECT().Save(gomock.Any(), "key-1", gomock.AssignableToTypeOf(entities.Charge{}), time.Minute).DoAndReturn(
			func(_ context.Context, _ string, c entities.Charge, _ time.Duration) error {
				if c.TransactionID != "tx-9" || c.AmountMinor != 350 {
					t.Fatalf("unexpected saved charge: %+v", c)
				}
				return errors.New("store down")
			},
		)

		charge, err := uc.RequestIdempotentCharge(context.Background(), "key-1", 3.5)
		if err != nil {
			t.Fatalf("save failures must not fail the request: %v", err)
		}
		if charge.TransactionID != "tx-9" {
			t.Fatalf("unexpected charge: %+v", charge)
		}
	})

	t.Run("lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		replay := mock_interfaces.NewMockIChargeReplayStore(ctrl)
		uc := NewChargeUseCase(gateway, replay, time.Minute)

		replay.EXPECT().Get(gomock.Any(), "key-1").Return(entities.Charge{}, false, errors.New("db"))
		gateway.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).Times(0)

		if _, err := uc.RequestIdempotentCharge(context.Background(), "key-1", 3.5); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid amount skips store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		replay := mock_interfaces.NewMockIChargeReplayStore(ctrl)
		uc := NewChargeUseCase(mock_interfaces.NewMockIPaymentGateway(ctrl), replay, time.Minute)

		_, err := uc.RequestIdempotentCharge(context.Background(), "key-1", -3)
		if !errors.Is(err, errs.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("concurrent requests share one charge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		replay := mock_interfaces.NewMockIChargeReplayStore(ctrl)
		uc := NewChargeUseCase(gateway, replay, time.Minute)

		var mu sync.Mutex
		saved := map[string]entities.Charge{}
		replay.EXPECT().Get(gomock.Any(), "key-1").DoAndReturn(func(_ context.Context, key string) (entities.Charge, bool, error) {
			mu.Lock()
			defer mu.Unlock()
			c, ok := saved[key]
			return c, ok, nil
		}).Times(5)
		replay.EXPECT().Save(gomock.Any(), "key-1", gomock.Any(), time.Minute).DoAndReturn(func(_ context.Context, key string, c entities.Charge, _ time.Duration) error {
			mu.Lock()
			defer mu.Unlock()
			saved[key] = c
			return nil
		}).Times(1)

		var created atomic.Int32
		gateway.EXPECT().CreateCharge(gomock.Any(), int64(350)).DoAndReturn(func(_ context.Context, _ int64) (entities.Charge, error) {
			created.Add(1)
			return entities.Charge{TransactionID: "tx-1"}, nil
		}).Times(1)

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c, err := uc.RequestIdempotentCharge(context.Background(), "key-1", 3.5)
				if err != nil || c.TransactionID != "tx-1" {
					t.Errorf("unexpected result: %+v %v", c, err)
				}
			}()
		}
		wg.Wait()
		if created.Load() != 1 {
			t.Fatalf("expected a single charge, got %d", created.Load())
		}
	})
}

func TestChargeUseCase_CheckStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewChargeUseCase(gateway, nil, 0)

	if _, err := uc.CheckStatus(context.Background(), "  "); !errors.Is(err, errs.ErrInvalidTransactionID) {
		t.Fatalf("expected ErrInvalidTransactionID, got %v", err)
	}

	gateway.EXPECT().GetStatus(gomock.Any(), "tx-1").Return(entities.ChargeStatusPaid, nil)
	status, err := uc.CheckStatus(context.Background(), " tx-1 ")
	if err != nil || status != entities.ChargeStatusPaid {
		t.Fatalf("expected paid, got %s %v", status, err)
	}

	gateway.EXPECT().GetStatus(gomock.Any(), "tx-2").Return(entities.ChargeStatus(""), errs.NewUpstreamError(200, "unknown status \"refunded\""))
	if _, err := uc.CheckStatus(context.Background(), "tx-2"); !errs.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
