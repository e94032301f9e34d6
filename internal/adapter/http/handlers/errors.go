package handlers

import (
	"errors"
	"net/http"
	"pix_checkout/internal/domain/errs"
	"pix_checkout/pkg"
)

func mapChargeError(err error) *pkg.AppError {
	var upstream *errs.UpstreamError
	switch {
	case errors.Is(err, errs.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amount must be a positive number", http.StatusBadRequest)
	case errors.Is(err, errs.ErrInvalidTransactionID):
		return pkg.NewDomainErrorSimple("INVALID_TRANSACTION_ID", "Transaction id is required", http.StatusBadRequest)
	case errors.Is(err, errs.ErrIdempotencyKeyReused):
		return pkg.NewDomainErrorSimple("IDEMPOTENCY_KEY_REUSED", "Idempotency key was already used with a different amount", http.StatusConflict)
	case errs.IsValidation(err):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errs.IsConfig(err):
		return pkg.NewDomainError("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider is not configured", err, http.StatusServiceUnavailable)
	case errors.As(err, &upstream) && upstream.Unreachable():
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider is unreachable", err, http.StatusGatewayTimeout)
	case errors.As(err, &upstream):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", upstream.Message, err, http.StatusBadGateway)
	case errs.IsTransient(err):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider is unreachable", err, http.StatusGatewayTimeout)
	case errors.Is(err, errs.ErrChargeNotPending):
		return pkg.NewDomainErrorSimple("CHARGE_NOT_PENDING", "Charge is not pending", http.StatusConflict)
	case errors.Is(err, errs.ErrPollingSessionActive):
		return pkg.NewDomainErrorSimple("POLLING_ALREADY_ACTIVE", "A polling session is already active for this transaction", http.StatusConflict)
	case errors.Is(err, errs.ErrPollingSessionNotFound):
		return pkg.NewDomainErrorSimple("POLLING_NOT_FOUND", "Polling session not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
