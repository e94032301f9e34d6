package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeStatus is the canonical status of a Pix charge as reported by the processor.
//
// Domain notes:
//   - A charge starts as pending when the processor accepts it.
//   - paid, expired and failed are terminal; a terminal charge never goes back to pending.
type ChargeStatus string

const (
	ChargeStatusPending ChargeStatus = "pending"
	ChargeStatusPaid    ChargeStatus = "paid"
	ChargeStatusExpired ChargeStatus = "expired"
	ChargeStatusFailed  ChargeStatus = "failed"
)

// ParseChargeStatus accepts only the four canonical values.
func ParseChargeStatus(v string) (ChargeStatus, bool) {
	switch s := ChargeStatus(v); s {
	case ChargeStatusPending, ChargeStatusPaid, ChargeStatusExpired, ChargeStatusFailed:
		return s, true
	}
	return "", false
}

func (s ChargeStatus) IsTerminal() bool {
	return s == ChargeStatusPaid || s == ChargeStatusExpired || s == ChargeStatusFailed
}

// CanTransitionTo reports whether moving from s to next keeps the status monotonic.
func (s ChargeStatus) CanTransitionTo(next ChargeStatus) bool {
	if s.IsTerminal() {
		return s == next
	}
	return true
}

// Charge is one requested Pix payment.
//
// Only idempotency replay entries keep a copy of it.
// Amount keeps the major-unit value requested by the caller and AmountMinor the
// integer (cents) value transmitted to the processor.
type Charge struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	AmountMinor   int64           `json:"amount_minor"`
	QRCodeText    string          `json:"qr_code_text"`
	QRCodeImage   string          `json:"qr_code_image"`
	PaymentURL    string          `json:"payment_url,omitempty"`
	Status        ChargeStatus    `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PendingCharge builds the minimal charge a poller needs to watch an already issued
// transaction.
func PendingCharge(transactionID string) Charge {
	return Charge{TransactionID: transactionID, Status: ChargeStatusPending}
}
