// Package errs holds the error taxonomy shared by the gateway, the use cases and the
// HTTP layer.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount          = errors.New("amount must be a finite positive number")
	ErrInvalidTransactionID   = errors.New("invalid transaction_id")
	ErrChargeNotPending       = errors.New("charge is not pending")
	ErrPollingSessionActive   = errors.New("a polling session is already active for this transaction")
	ErrPollingSessionNotFound = errors.New("polling session not found")
	ErrIdempotencyKeyReused   = errors.New("idempotency key already used for a different amount")
)

// ConfigError means a required setting (usually the processor credential) is missing.
// It is raised before any network call and never retried.
type ConfigError struct {
	Setting string
	Message string
}

func NewConfigError(setting, message string) *ConfigError {
	return &ConfigError{Setting: setting, Message: message}
}

func (e *ConfigError) Error() string {
	if e.Setting == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Setting)
}

// ValidationError rejects caller input before any network access.
type ValidationError struct {
	Field string
	Err   error
}

func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// UpstreamError is a non-success answer from the processor: non-2xx, malformed body or
// a status outside the canonical set. A charge creation that never got an answer is
// also an UpstreamError, with Err holding the network cause.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

const (
	genericUpstreamMessage     = "payment processor returned an unexpected response"
	unreachableUpstreamMessage = "payment processor is unreachable"
)

func NewUpstreamError(statusCode int, message string) *UpstreamError {
	if message == "" {
		message = genericUpstreamMessage
	}
	return &UpstreamError{StatusCode: statusCode, Message: message}
}

// NewUnreachableError reports a create request that failed before any response.
func NewUnreachableError(cause error) *UpstreamError {
	return &UpstreamError{Message: unreachableUpstreamMessage, Err: cause}
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream: %s: %v", e.Message, e.Err)
	}
	if e.StatusCode == 0 {
		return "upstream: " + e.Message
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Unreachable is true when the processor never answered.
func (e *UpstreamError) Unreachable() bool { return e.Err != nil }

// TransientFetchError is a network-level failure of a single request. The poller
// recovers from it by waiting for the next tick.
type TransientFetchError struct {
	Err error
}

func (e *TransientFetchError) Error() string {
	return "transient fetch failure: " + e.Err.Error()
}

func (e *TransientFetchError) Unwrap() error { return e.Err }

// ChargeFailedError is what the orchestrator returns when the gateway could not create
// the charge. Reason keeps the gateway error for errors.As.
type ChargeFailedError struct {
	Reason error
}

func (e *ChargeFailedError) Error() string {
	return "charge failed: " + e.Reason.Error()
}

func (e *ChargeFailedError) Unwrap() error { return e.Reason }

func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsTransient(err error) bool {
	var te *TransientFetchError
	return errors.As(err, &te)
}
