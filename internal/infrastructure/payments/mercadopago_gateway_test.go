package payments

import (
	"context"
	"errors"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/domain/errs"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/payment"
)

type fakePayments struct {
	createReq  payment.Request
	createResp *payment.Response
	getResp    *payment.Response
	getID      int
	err        error
}

func (f *fakePayments) Create(_ context.Context, req payment.Request) (*payment.Response, error) {
	f.createReq = req
	return f.createResp, f.err
}

func (f *fakePayments) Get(_ context.Context, id int) (*payment.Response, error) {
	f.getID = id
	return f.getResp, f.err
}

func TestMercadoPagoGateway_CreateCharge(t *testing.T) {
	resp := &payment.Response{ID: 998877, Status: "pending"}
	resp.PointOfInteraction.TransactionData.QRCode = "000201MP"
	resp.PointOfInteraction.TransactionData.QRCodeBase64 = "QUJD"
	resp.PointOfInteraction.TransactionData.TicketURL = "https://mp.example/ticket"
	fake := &fakePayments{createResp: resp}
	g := newMercadoPagoGateway(fake, "buyer@example.com", "https://shop.example/webhook")

	charge, err := g.CreateCharge(context.Background(), 8700)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.createReq.PaymentMethodID != "pix" || fake.createReq.TransactionAmount != 87 {
		t.Fatalf("unexpected request %+v", fake.createReq)
	}
	if fake.createReq.Payer == nil || fake.createReq.Payer.Email != "buyer@example.com" {
		t.Fatalf("expected payer email to be set")
	}
	if fake.createReq.NotificationURL != "https://shop.example/webhook" {
		t.Fatalf("unexpected notification url %q", fake.createReq.NotificationURL)
	}
	if charge.TransactionID != "998877" || charge.QRCodeText != "000201MP" || charge.PaymentURL != "https://mp.example/ticket" {
		t.Fatalf("unexpected charge %+v", charge)
	}
	if charge.QRCodeImage != "data:image/png;base64,QUJD" {
		t.Fatalf("unexpected image %q", charge.QRCodeImage)
	}
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	g, err := NewMercadoPagoGateway("", "buyer@example.com", "")
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	if _, err := g.CreateCharge(context.Background(), 350); !errs.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
	if _, err := g.GetStatus(context.Background(), "1"); !errs.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestMercadoPagoGateway_GetStatus_Mapping(t *testing.T) {
	tests := []struct {
		provider string
		want     entities.ChargeStatus
	}{
		{"pending", entities.ChargeStatusPending},
		{"in_process", entities.ChargeStatusPending},
		{"authorized", entities.ChargeStatusPending},
		{"approved", entities.ChargeStatusPaid},
		{"cancelled", entities.ChargeStatusExpired},
		{"rejected", entities.ChargeStatusFailed},
		{"refunded", entities.ChargeStatusFailed},
		{"charged_back", entities.ChargeStatusFailed},
	}

	for _, tc := range tests {
		t.Run(tc.provider, func(t *testing.T) {
			fake := &fakePayments{getResp: &payment.Response{ID: 42, Status: tc.provider}}
			g := newMercadoPagoGateway(fake, "", "")

			got, err := g.GetStatus(context.Background(), "42")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fake.getID != 42 {
				t.Fatalf("expected id 42, got %d", fake.getID)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestMercadoPagoGateway_GetStatus_Errors(t *testing.T) {
	g := newMercadoPagoGateway(&fakePayments{getResp: &payment.Response{Status: "mystery"}}, "", "")
	if _, err := g.GetStatus(context.Background(), "42"); !errs.IsUpstream(err) {
		t.Fatalf("expected upstream error for unknown status, got %v", err)
	}

	if _, err := g.GetStatus(context.Background(), "not-a-number"); !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	g = newMercadoPagoGateway(&fakePayments{err: context.DeadlineExceeded}, "", "")
	if _, err := g.GetStatus(context.Background(), "42"); !errs.IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}

	if _, err := g.CreateCharge(context.Background(), 350); errs.IsTransient(err) || !errs.IsUpstream(err) {
		t.Fatalf("expected upstream error on create, got %v", err)
	}

	g = newMercadoPagoGateway(&fakePayments{err: errors.New(`{"message":"invalid access token","error":"unauthorized","status":401}`)}, "", "")
	_, err := g.GetStatus(context.Background(), "42")
	var up *errs.UpstreamError
	if !errors.As(err, &up) || up.StatusCode != 401 {
		t.Fatalf("expected 401 upstream error, got %v", err)
	}
}
