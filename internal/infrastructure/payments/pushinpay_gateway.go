package payments

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/domain/errs"
	"pix_checkout/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const defaultGatewayTimeout = 10 * time.Second

// PushinPayOptions is the injectable client configuration for PushinPayGateway.
type PushinPayOptions struct {
	BaseURL     string
	Token       string
	Variant     string
	ChargePath  string
	StatusPath  string
	CallbackURL string
	Timeout     time.Duration
}

// PushinPayGateway talks to a PushinPay-style Pix API over HTTP.
type PushinPayGateway struct {
	baseURL     string
	token       string
	chargePath  string
	statusPath  string
	callbackURL string
	timeout     time.Duration
	adapter     ChargeAdapter
	client      *fasthttp.Client
}

var _ interfaces.IPaymentGateway = (*PushinPayGateway)(nil)

// NewPushinPayGateway only validates the wire variant. A missing token is reported
// by each call, before anything is sent.
func NewPushinPayGateway(opts PushinPayOptions) (*PushinPayGateway, error) {
	adapter, ok := AdapterFor(opts.Variant)
	if !ok {
		log.Printf("[charge][gateway] unknown response variant variant=%q", opts.Variant)
		return nil, errs.NewConfigError("PIX_GATEWAY_VARIANT", "unknown gateway response variant "+opts.Variant)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultGatewayTimeout
	}
	if opts.Token == "" {
		log.Printf("[charge][gateway] missing PIX_API_TOKEN; requests will fail until it is set")
	}
	log.Printf("[charge][gateway] PushinPay client initialized base_url=%s variant=%s", opts.BaseURL, adapter.Name())

	return &PushinPayGateway{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		token:       strings.TrimSpace(opts.Token),
		chargePath:  opts.ChargePath,
		statusPath:  opts.StatusPath,
		callbackURL: opts.CallbackURL,
		timeout:     opts.Timeout,
		adapter:     adapter,
		client: &fasthttp.Client{
			ReadTimeout:               opts.Timeout,
			WriteTimeout:              opts.Timeout,
			MaxIdemponentCallAttempts: 1,
		},
	}, nil
}

func (g *PushinPayGateway) CreateCharge(ctx context.Context, amountMinor int64) (entities.Charge, error) {
	if err := g.checkCredential(); err != nil {
		return entities.Charge{}, err
	}
	if amountMinor <= 0 {
		return entities.Charge{}, errs.NewValidationError("amount", errs.ErrInvalidAmount)
	}

	payload, err := g.adapter.EncodeChargeRequest(amountMinor, g.callbackURL)
	if err != nil {
		return entities.Charge{}, err
	}
	log.Printf("[charge][gateway] create start amount_minor=%d variant=%s", amountMinor, g.adapter.Name())

	statusCode, body, err := g.do(ctx, http.MethodPost, g.endpoint(g.chargePath), payload)
	if err != nil {
		log.Printf("[charge][gateway] create request failed err=%v", err)
		return entities.Charge{}, errs.NewUnreachableError(err)
	}
	if statusCode < 200 || statusCode > 299 {
		msg := upstreamMessage(body)
		log.Printf("[charge][gateway] create rejected status=%d message=%q", statusCode, msg)
		return entities.Charge{}, errs.NewUpstreamError(statusCode, msg)
	}

	charge, err := g.adapter.DecodeCharge(body)
	if err != nil {
		log.Printf("[charge][gateway] create response invalid status=%d err=%v", statusCode, err)
		return entities.Charge{}, errs.NewUpstreamError(statusCode, err.Error())
	}
	log.Printf("[charge][gateway] create success transaction_id=%s", charge.TransactionID)
	return charge, nil
}

func (g *PushinPayGateway) GetStatus(ctx context.Context, transactionID string) (entities.ChargeStatus, error) {
	if err := g.checkCredential(); err != nil {
		return "", err
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return "", errs.NewValidationError("transaction_id", errs.ErrInvalidTransactionID)
	}

	endpoint := g.endpoint(g.statusPath) + "/" + url.PathEscape(transactionID)
	statusCode, body, err := g.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("[charge][gateway] status request failed transaction_id=%s err=%v", transactionID, err)
		return "", &errs.TransientFetchError{Err: err}
	}
	if statusCode < 200 || statusCode > 299 {
		msg := upstreamMessage(body)
		log.Printf("[charge][gateway] status rejected transaction_id=%s status=%d message=%q", transactionID, statusCode, msg)
		return "", errs.NewUpstreamError(statusCode, msg)
	}

	status, err := g.adapter.DecodeStatus(body)
	if err != nil {
		log.Printf("[charge][gateway] status response invalid transaction_id=%s err=%v", transactionID, err)
		return "", errs.NewUpstreamError(statusCode, err.Error())
	}
	return status, nil
}

func (g *PushinPayGateway) checkCredential() error {
	if g == nil || g.token == "" {
		log.Printf("[charge][gateway] missing PIX_API_TOKEN")
		return errs.NewConfigError("PIX_API_TOKEN", "payment credential is not configured")
	}
	return nil
}

func (g *PushinPayGateway) endpoint(path string) string {
	return g.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (g *PushinPayGateway) do(ctx context.Context, method, uri string, payload []byte) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline := time.Now().Add(g.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := g.client.DoDeadline(req, resp, deadline); err != nil {
		return 0, nil, err
	}

	body := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), body, nil
}
