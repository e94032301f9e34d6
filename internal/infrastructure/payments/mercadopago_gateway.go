package payments

import (
	"context"
	"errors"
	"log"
	"net"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/domain/errs"
	"pix_checkout/internal/usecase/interfaces"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

const (
	mercadoPagoPixMethod   = "pix"
	mercadoPagoDescription = "Pix charge"
)

// mercadoPagoPayments is the subset of payment.Client the gateway uses.
type mercadoPagoPayments interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type MercadoPagoGateway struct {
	client          mercadoPagoPayments
	payerEmail      string
	notificationURL string
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken, payerEmail, notificationURL string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		log.Printf("[charge][gateway] missing MERCADOPAGO_ACCESS_TOKEN; requests will fail until it is set")
		return &MercadoPagoGateway{payerEmail: payerEmail, notificationURL: notificationURL}, nil
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[charge][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[charge][gateway] Mercado Pago client initialized")

	return newMercadoPagoGateway(payment.NewClient(cfg), payerEmail, notificationURL), nil
}

func newMercadoPagoGateway(client mercadoPagoPayments, payerEmail, notificationURL string) *MercadoPagoGateway {
	return &MercadoPagoGateway{client: client, payerEmail: payerEmail, notificationURL: notificationURL}
}

func (g *MercadoPagoGateway) CreateCharge(ctx context.Context, amountMinor int64) (entities.Charge, error) {
	if g == nil || g.client == nil {
		log.Printf("[charge][gateway] gateway not configured")
		return entities.Charge{}, errs.NewConfigError("MERCADOPAGO_ACCESS_TOKEN", "payment credential is not configured")
	}
	if amountMinor <= 0 {
		return entities.Charge{}, errs.NewValidationError("amount", errs.ErrInvalidAmount)
	}

	req := payment.Request{
		TransactionAmount: entities.FromMinorUnits(amountMinor).InexactFloat64(),
		PaymentMethodID:   mercadoPagoPixMethod,
		Description:       mercadoPagoDescription,
		NotificationURL:   g.notificationURL,
		Payer:             &payment.PayerRequest{Email: g.payerEmail},
	}
	log.Printf("[charge][gateway] create start amount_minor=%d", amountMinor)

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[charge][gateway] sdk create failed err=%v", err)
		return entities.Charge{}, createFailure(classifyMercadoPagoError(err))
	}
	if resp == nil || resp.ID == 0 {
		return entities.Charge{}, errs.NewUpstreamError(0, "malformed charge response: missing id")
	}

	td := resp.PointOfInteraction.TransactionData
	if td.QRCode == "" {
		return entities.Charge{}, errs.NewUpstreamError(0, "malformed charge response: missing qr code")
	}
	log.Printf("[charge][gateway] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return entities.Charge{
		TransactionID: strconv.Itoa(resp.ID),
		QRCodeText:    td.QRCode,
		QRCodeImage:   imageDataURI(td.QRCodeBase64),
		PaymentURL:    td.TicketURL,
		Status:        entities.ChargeStatusPending,
	}, nil
}

func (g *MercadoPagoGateway) GetStatus(ctx context.Context, transactionID string) (entities.ChargeStatus, error) {
	if g == nil || g.client == nil {
		log.Printf("[charge][gateway] gateway not configured")
		return "", errs.NewConfigError("MERCADOPAGO_ACCESS_TOKEN", "payment credential is not configured")
	}
	id, err := strconv.Atoi(strings.TrimSpace(transactionID))
	if err != nil || id <= 0 {
		return "", errs.NewValidationError("transaction_id", errs.ErrInvalidTransactionID)
	}

	resp, err := g.client.Get(ctx, id)
	if err != nil {
		log.Printf("[charge][gateway] sdk get failed transaction_id=%d err=%v", id, err)
		return "", classifyMercadoPagoError(err)
	}
	if resp == nil {
		return "", errs.NewUpstreamError(0, "malformed status response")
	}

	status, ok := mapMercadoPagoStatus(resp.Status)
	if !ok {
		log.Printf("[charge][gateway] unrecognized provider status transaction_id=%d provider_status=%s", id, resp.Status)
		return "", errs.NewUpstreamError(0, "unrecognized charge status "+strconv.Quote(resp.Status))
	}
	return status, nil
}

func mapMercadoPagoStatus(s string) (entities.ChargeStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "in_process", "authorized":
		return entities.ChargeStatusPending, true
	case "approved":
		return entities.ChargeStatusPaid, true
	case "cancelled":
		return entities.ChargeStatusExpired, true
	case "rejected", "refunded", "charged_back":
		return entities.ChargeStatusFailed, true
	}
	return "", false
}

func classifyMercadoPagoError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), errors.As(err, &netErr):
		return &errs.TransientFetchError{Err: err}
	case isGatewayUnauthorized(err):
		return errs.NewUpstreamError(401, "payment provider rejected the credential")
	case isGatewayBadRequest(err):
		return errs.NewUpstreamError(400, "payment provider rejected the request")
	case isGatewayNotFound(err):
		return errs.NewUpstreamError(404, "transaction not found")
	}
	return errs.NewUpstreamError(0, err.Error())
}

// createFailure keeps charge creation inside the config/upstream taxonomy.
func createFailure(err error) error {
	var te *errs.TransientFetchError
	if errors.As(err, &te) {
		return errs.NewUnreachableError(te.Err)
	}
	return err
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"not_found\"") || strings.Contains(msg, "\"status\":404")
}
