package response

import (
	"testing"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase"
)

func TestFromCharge(t *testing.T) {
	now := time.Now().UTC()
	c := entities.Charge{
		TransactionID: "tx-1",
		Amount:        entities.FromMinorUnits(350),
		AmountMinor:   350,
		QRCodeText:    "000201",
		QRCodeImage:   "data:image/png;base64,AAA",
		PaymentURL:    "https://pay.example/tx-1",
		Status:        entities.ChargeStatusPending,
		CreatedAt:     now,
	}

	res := FromCharge(c)
	if !res.Success {
		t.Fatalf("expected success envelope")
	}
	if res.Charge.TransactionID != "tx-1" || res.Charge.Amount != "3.5" || res.Charge.AmountMinor != 350 {
		t.Fatalf("unexpected charge fields: %+v", res.Charge)
	}
	if res.Charge.Status != "pending" || !res.Charge.CreatedAt.Equal(now) {
		t.Fatalf("unexpected status/date: %+v", res.Charge)
	}
}

func TestFromPollingSnapshot(t *testing.T) {
	started := time.Now().UTC()
	ended := started.Add(time.Second)

	res := FromPollingSnapshot(usecase.PollingSnapshot{
		SessionID:     "s-1",
		TransactionID: "tx-1",
		State:         entities.PollingStateConfirmed,
		Status:        entities.ChargeStatusPaid,
		Failures:      0,
		StartedAt:     started,
		EndedAt:       &ended,
	})
	if res.Session.State != "confirmed" || res.Session.Status != "paid" {
		t.Fatalf("unexpected session: %+v", res.Session)
	}
	if res.Session.EndedAt == nil || !res.Session.EndedAt.Equal(ended) {
		t.Fatalf("unexpected ended_at: %+v", res.Session.EndedAt)
	}
}

func TestFromChargeStatus(t *testing.T) {
	res := FromChargeStatus("tx-1", entities.ChargeStatusExpired)
	if !res.Success || res.Status != "expired" || res.TransactionID != "tx-1" {
		t.Fatalf("unexpected response: %+v", res)
	}
}
