package payments

import (
	"context"
	"pix_checkout/internal/config"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/domain/errs"
	"testing"
)

func TestMockGateway_PaidAfterChecks(t *testing.T) {
	g := NewMockGateway(2)
	ctx := context.Background()

	charge, err := g.CreateCharge(ctx, 350)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if charge.TransactionID == "" || charge.QRCodeText == "" || charge.Status != entities.ChargeStatusPending {
		t.Fatalf("unexpected charge %+v", charge)
	}

	if s, _ := g.GetStatus(ctx, charge.TransactionID); s != entities.ChargeStatusPending {
		t.Fatalf("expected pending on first check, got %s", s)
	}
	if s, _ := g.GetStatus(ctx, charge.TransactionID); s != entities.ChargeStatusPaid {
		t.Fatalf("expected paid on second check, got %s", s)
	}
	if _, err := g.GetStatus(ctx, "unknown"); !errs.IsUpstream(err) {
		t.Fatalf("expected upstream error for unknown id, got %v", err)
	}
}

func TestMockGateway_CancelledContext(t *testing.T) {
	g := NewMockGateway(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.CreateCharge(ctx, 350); !errs.IsUpstream(err) {
		t.Fatalf("expected upstream error on create, got %v", err)
	}
	if _, err := g.GetStatus(ctx, "1"); !errs.IsTransient(err) {
		t.Fatalf("expected transient error on status, got %v", err)
	}
}

func TestNewGateway(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Gateway
		wantErr bool
		check   func(any) bool
	}{
		{name: "mock", cfg: config.Gateway{Mock: true, Provider: "whatever"}, check: func(g any) bool { _, ok := g.(*MockGateway); return ok }},
		{name: "pushinpay", cfg: config.Gateway{Provider: config.ProviderPushinPay, Variant: VariantPushinPayV1, BaseURL: "http://x"}, check: func(g any) bool { _, ok := g.(*PushinPayGateway); return ok }},
		{name: "mercadopago", cfg: config.Gateway{Provider: config.ProviderMercadoPago}, check: func(g any) bool { _, ok := g.(*MercadoPagoGateway); return ok }},
		{name: "bad variant", cfg: config.Gateway{Provider: config.ProviderPushinPay, Variant: "nope"}, wantErr: true},
		{name: "unknown provider", cfg: config.Gateway{Provider: "stripe"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGateway(tc.cfg)
			if tc.wantErr {
				if !errs.IsConfig(err) || g != nil {
					t.Fatalf("expected config error and nil gateway, got %v %v", g, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.check(g) {
				t.Fatalf("unexpected gateway type %T", g)
			}
		})
	}
}
