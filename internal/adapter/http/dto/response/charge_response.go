package response

import (
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase"
	"time"
)

type ChargeResponse struct {
	TransactionID string    `json:"transaction_id"`
	Amount        string    `json:"amount" example:"3.5"`
	AmountMinor   int64     `json:"amount_minor" example:"350"`
	QRCodeText    string    `json:"qr_code_text"`
	QRCodeImage   string    `json:"qr_code_image,omitempty"`
	PaymentURL    string    `json:"payment_url,omitempty"`
	Status        string    `json:"status" example:"pending"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChargeEnvelope is the consumer-facing success shape: {success: true, charge}.
type ChargeEnvelope struct {
	Success bool           `json:"success"`
	Charge  ChargeResponse `json:"charge"`
}

type ChargeStatusResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status" example:"paid"`
}

type PollingSessionResponse struct {
	SessionID           string     `json:"session_id"`
	TransactionID       string     `json:"transaction_id"`
	State               string     `json:"state" example:"polling"`
	Status              string     `json:"status" example:"pending"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	StartedAt           time.Time  `json:"started_at"`
	EndedAt             *time.Time `json:"ended_at,omitempty"`
	Error               string     `json:"error,omitempty"`
}

type PollingSessionEnvelope struct {
	Success bool                   `json:"success"`
	Session PollingSessionResponse `json:"session"`
}

func FromCharge(c entities.Charge) ChargeEnvelope {
	return ChargeEnvelope{
		Success: true,
		Charge: ChargeResponse{
			TransactionID: c.TransactionID,
			Amount:        c.Amount.String(),
			AmountMinor:   c.AmountMinor,
			QRCodeText:    c.QRCodeText,
			QRCodeImage:   c.QRCodeImage,
			PaymentURL:    c.PaymentURL,
			Status:        string(c.Status),
			CreatedAt:     c.CreatedAt,
		},
	}
}

func FromChargeStatus(transactionID string, s entities.ChargeStatus) ChargeStatusResponse {
	return ChargeStatusResponse{Success: true, TransactionID: transactionID, Status: string(s)}
}

func FromPollingSnapshot(s usecase.PollingSnapshot) PollingSessionEnvelope {
	return PollingSessionEnvelope{
		Success: true,
		Session: PollingSessionResponse{
			SessionID:           s.SessionID,
			TransactionID:       s.TransactionID,
			State:               string(s.State),
			Status:              string(s.Status),
			ConsecutiveFailures: s.Failures,
			StartedAt:           s.StartedAt,
			EndedAt:             s.EndedAt,
			Error:               s.Error,
		},
	}
}
