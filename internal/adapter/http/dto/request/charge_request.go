package request

import "errors"

var ErrMissingAmount = errors.New("amount is required")

// ChargeCreateRequest is the payload for POST /v1/charges. Amount is in major
// units (3.50 means R$ 3,50).
type ChargeCreateRequest struct {
	Amount *float64 `json:"amount" example:"3.5"`
}

func (r ChargeCreateRequest) Validate() error {
	if r.Amount == nil {
		return ErrMissingAmount
	}
	return nil
}
