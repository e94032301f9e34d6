package payments

import (
	"bytes"
	"errors"
	"fmt"
	"pix_checkout/internal/domain/entities"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Upstream contract variants observed across processor versions. One adapter per
// variant; the variant is chosen by configuration, never by sniffing the body.
const (
	VariantPushinPayV1 = "pushinpay-v1"
	VariantPushinPayV2 = "pushinpay-v2"
	VariantNested      = "nested"
)

const pngDataURIPrefix = "data:image/png;base64,"

// ChargeAdapter maps between the canonical Charge and one upstream wire format.
type ChargeAdapter interface {
	Name() string
	EncodeChargeRequest(amountMinor int64, callbackURL string) ([]byte, error)
	DecodeCharge(body []byte) (entities.Charge, error)
	DecodeStatus(body []byte) (entities.ChargeStatus, error)
}

func AdapterFor(variant string) (ChargeAdapter, bool) {
	switch strings.ToLower(strings.TrimSpace(variant)) {
	case VariantPushinPayV1:
		return pushinPayV1Adapter{}, true
	case VariantPushinPayV2:
		return pushinPayV2Adapter{}, true
	case VariantNested:
		return nestedAdapter{}, true
	}
	return nil, false
}

// upstreamID accepts both numeric and string identifiers.
type upstreamID string

func (id *upstreamID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*id = upstreamID(strings.TrimSpace(s))
		return nil
	}
	*id = upstreamID(b)
	return nil
}

type statusBody struct {
	Status string `json:"status"`
}

func decodeStatus(body []byte) (entities.ChargeStatus, error) {
	var sb statusBody
	if err := sonic.Unmarshal(body, &sb); err != nil {
		return "", fmt.Errorf("malformed status response: %w", err)
	}
	status, ok := entities.ParseChargeStatus(strings.ToLower(strings.TrimSpace(sb.Status)))
	if !ok {
		return "", fmt.Errorf("unrecognized charge status %q", sb.Status)
	}
	return status, nil
}

func buildCharge(id upstreamID, qrText, qrImage, paymentURL string) (entities.Charge, error) {
	if id == "" {
		return entities.Charge{}, errors.New("malformed charge response: missing id")
	}
	if qrText == "" {
		return entities.Charge{}, errors.New("malformed charge response: missing qr code")
	}
	return entities.Charge{
		TransactionID: string(id),
		QRCodeText:    qrText,
		QRCodeImage:   imageDataURI(qrImage),
		PaymentURL:    paymentURL,
		Status:        entities.ChargeStatusPending,
	}, nil
}

func imageDataURI(b64 string) string {
	b64 = strings.TrimSpace(b64)
	if b64 == "" || strings.HasPrefix(b64, "data:") {
		return b64
	}
	return pngDataURIPrefix + b64
}

// pushinpay-v1: {value, webhook_url} -> {id, qr_code, qr_code_base64, payment_url}
type pushinPayV1Adapter struct{}

type pushinPayV1Request struct {
	Value      int64  `json:"value"`
	WebhookURL string `json:"webhook_url,omitempty"`
}

type pushinPayV1Response struct {
	ID           upstreamID `json:"id"`
	QRCode       string     `json:"qr_code"`
	QRCodeBase64 string     `json:"qr_code_base64"`
	PaymentURL   string     `json:"payment_url"`
}

func (pushinPayV1Adapter) Name() string { return VariantPushinPayV1 }

func (pushinPayV1Adapter) EncodeChargeRequest(amountMinor int64, callbackURL string) ([]byte, error) {
	return sonic.Marshal(pushinPayV1Request{Value: amountMinor, WebhookURL: callbackURL})
}

func (pushinPayV1Adapter) DecodeCharge(body []byte) (entities.Charge, error) {
	var r pushinPayV1Response
	if err := sonic.Unmarshal(body, &r); err != nil {
		return entities.Charge{}, fmt.Errorf("malformed charge response: %w", err)
	}
	return buildCharge(r.ID, r.QRCode, r.QRCodeBase64, r.PaymentURL)
}

func (pushinPayV1Adapter) DecodeStatus(body []byte) (entities.ChargeStatus, error) {
	return decodeStatus(body)
}

// pushinpay-v2: {value_in_minor_units, callback_url} -> {id, qr_code_text, qr_code_image_base64, payment_url}
type pushinPayV2Adapter struct{}

type minorUnitsRequest struct {
	ValueInMinorUnits int64  `json:"value_in_minor_units"`
	CallbackURL       string `json:"callback_url,omitempty"`
}

type pushinPayV2Response struct {
	ID                upstreamID `json:"id"`
	QRCodeText        string     `json:"qr_code_text"`
	QRCodeImageBase64 string     `json:"qr_code_image_base64"`
	PaymentURL        string     `json:"payment_url"`
}

func (pushinPayV2Adapter) Name() string { return VariantPushinPayV2 }

func (pushinPayV2Adapter) EncodeChargeRequest(amountMinor int64, callbackURL string) ([]byte, error) {
	return sonic.Marshal(minorUnitsRequest{ValueInMinorUnits: amountMinor, CallbackURL: callbackURL})
}

func (pushinPayV2Adapter) DecodeCharge(body []byte) (entities.Charge, error) {
	var r pushinPayV2Response
	if err := sonic.Unmarshal(body, &r); err != nil {
		return entities.Charge{}, fmt.Errorf("malformed charge response: %w", err)
	}
	return buildCharge(r.ID, r.QRCodeText, r.QRCodeImageBase64, r.PaymentURL)
}

func (pushinPayV2Adapter) DecodeStatus(body []byte) (entities.ChargeStatus, error) {
	return decodeStatus(body)
}

// nested: {value_in_minor_units, callback_url} -> {transaction: {id, qr_code_text, qr_code_base64, payment_url}}
type nestedAdapter struct{}

type nestedResponse struct {
	Transaction *struct {
		ID           upstreamID `json:"id"`
		QRCodeText   string     `json:"qr_code_text"`
		QRCodeBase64 string     `json:"qr_code_base64"`
		PaymentURL   string     `json:"payment_url"`
	} `json:"transaction"`
}

func (nestedAdapter) Name() string { return VariantNested }

func (nestedAdapter) EncodeChargeRequest(amountMinor int64, callbackURL string) ([]byte, error) {
	return sonic.Marshal(minorUnitsRequest{ValueInMinorUnits: amountMinor, CallbackURL: callbackURL})
}

func (nestedAdapter) DecodeCharge(body []byte) (entities.Charge, error) {
	var r nestedResponse
	if err := sonic.Unmarshal(body, &r); err != nil {
		return entities.Charge{}, fmt.Errorf("malformed charge response: %w", err)
	}
	if r.Transaction == nil {
		return entities.Charge{}, errors.New("malformed charge response: missing transaction")
	}
	t := r.Transaction
	return buildCharge(t.ID, t.QRCodeText, t.QRCodeBase64, t.PaymentURL)
}

func (nestedAdapter) DecodeStatus(body []byte) (entities.ChargeStatus, error) {
	return decodeStatus(body)
}

type upstreamErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// upstreamMessage extracts the processor's own explanation from an error body.
func upstreamMessage(body []byte) string {
	var eb upstreamErrorBody
	if len(body) == 0 || sonic.Unmarshal(body, &eb) != nil {
		return ""
	}
	if m := strings.TrimSpace(eb.Message); m != "" {
		return m
	}
	return strings.TrimSpace(eb.Error)
}
