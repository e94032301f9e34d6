package interfaces

import (
	"context"
	"pix_checkout/internal/domain/entities"
)

// IPaymentGateway abstracts the external Pix processor (PushinPay, Mercado Pago).
//
// Implementations:
//   - fail with *errs.ConfigError before any request when the credential is missing
//   - fail with *errs.UpstreamError on non-2xx, malformed bodies or unknown statuses
//   - fail CreateCharge with an unreachable *errs.UpstreamError on network-level failures
//   - fail GetStatus with *errs.TransientFetchError on network-level failures
//   - issue exactly one request per call and never retry
//
//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_interface.go -package=mock_interfaces
type IPaymentGateway interface {
	CreateCharge(ctx context.Context, amountMinor int64) (entities.Charge, error)
	GetStatus(ctx context.Context, transactionID string) (entities.ChargeStatus, error)
}
