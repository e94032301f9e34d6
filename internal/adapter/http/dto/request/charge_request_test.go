package request

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestChargeCreateRequest_Validate(t *testing.T) {
	var missing ChargeCreateRequest
	if err := json.Unmarshal([]byte(`{}`), &missing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := missing.Validate(); !errors.Is(err, ErrMissingAmount) {
		t.Fatalf("expected ErrMissingAmount, got %v", err)
	}

	var zero ChargeCreateRequest
	if err := json.Unmarshal([]byte(`{"amount":0}`), &zero); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount is rejected by the use case, not the DTO: %v", err)
	}
	if *zero.Amount != 0 {
		t.Fatalf("unexpected amount %v", *zero.Amount)
	}
}
