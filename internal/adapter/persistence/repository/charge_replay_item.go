package repository

import (
	"pix_checkout/internal/domain/entities"
	"time"
)

// chargeReplayItem is the stored form of a replayable charge, shared by the
// DynamoDB and Redis stores.
type chargeReplayItem struct {
	Key           string `dynamodbav:"idempotency_key" json:"idempotency_key"`
	TransactionID string `dynamodbav:"transaction_id" json:"transaction_id"`
	AmountMinor   int64  `dynamodbav:"amount_minor" json:"amount_minor"`
	QRCodeText    string `dynamodbav:"qr_code_text" json:"qr_code_text"`
	QRCodeImage   string `dynamodbav:"qr_code_image,omitempty" json:"qr_code_image,omitempty"`
	PaymentURL    string `dynamodbav:"payment_url,omitempty" json:"payment_url,omitempty"`
	Status        string `dynamodbav:"status" json:"status"`
	CreatedAt     string `dynamodbav:"created_at" json:"created_at"`
	ExpiresAt     int64  `dynamodbav:"expires_at" json:"expires_at"`
}

func toChargeReplayItem(key string, c entities.Charge, expiresAt time.Time) chargeReplayItem {
	return chargeReplayItem{
		Key:           key,
		TransactionID: c.TransactionID,
		AmountMinor:   c.AmountMinor,
		QRCodeText:    c.QRCodeText,
		QRCodeImage:   c.QRCodeImage,
		PaymentURL:    c.PaymentURL,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339Nano),
		ExpiresAt:     expiresAt.Unix(),
	}
}

func fromChargeReplayItem(it chargeReplayItem) entities.Charge {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	status, ok := entities.ParseChargeStatus(it.Status)
	if !ok {
		status = entities.ChargeStatusPending
	}
	return entities.Charge{
		TransactionID: it.TransactionID,
		Amount:        entities.FromMinorUnits(it.AmountMinor),
		AmountMinor:   it.AmountMinor,
		QRCodeText:    it.QRCodeText,
		QRCodeImage:   it.QRCodeImage,
		PaymentURL:    it.PaymentURL,
		Status:        status,
		CreatedAt:     createdAt,
	}
}
