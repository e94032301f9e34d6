package payments

import (
	"context"
	"fmt"
	"log"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/domain/errs"
	"pix_checkout/internal/usecase/interfaces"
	"strconv"
	"strings"
	"sync"
	"time"
)

// 1x1 transparent PNG.
const mockQRCodeBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// MockGateway issues fake charges and reports them paid after a fixed number of
// status checks. Used for local runs and demos.
type MockGateway struct {
	paidAfter int

	mu     sync.Mutex
	checks map[string]int
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway(paidAfter int) *MockGateway {
	log.Printf("[charge][gateway] mock mode enabled paid_after=%d", paidAfter)
	return &MockGateway{paidAfter: paidAfter, checks: make(map[string]int)}
}

func (g *MockGateway) CreateCharge(ctx context.Context, amountMinor int64) (entities.Charge, error) {
	if amountMinor <= 0 {
		return entities.Charge{}, errs.NewValidationError("amount", errs.ErrInvalidAmount)
	}
	if err := ctx.Err(); err != nil {
		return entities.Charge{}, errs.NewUnreachableError(err)
	}

	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)

	g.mu.Lock()
	g.checks[id] = 0
	g.mu.Unlock()

	log.Printf("[charge][gateway] mock create success transaction_id=%s amount_minor=%d", id, amountMinor)
	return entities.Charge{
		TransactionID: id,
		QRCodeText:    fmt.Sprintf("00020126580014br.gov.bcb.pix0136%s5204000053039865406%d5802BR", id, amountMinor),
		QRCodeImage:   pngDataURIPrefix + mockQRCodeBase64,
		PaymentURL:    "https://example.invalid/pix/" + id,
		Status:        entities.ChargeStatusPending,
	}, nil
}

func (g *MockGateway) GetStatus(ctx context.Context, transactionID string) (entities.ChargeStatus, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return "", errs.NewValidationError("transaction_id", errs.ErrInvalidTransactionID)
	}
	if err := ctx.Err(); err != nil {
		return "", &errs.TransientFetchError{Err: err}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.checks[transactionID]
	if !ok {
		return "", errs.NewUpstreamError(404, "transaction not found")
	}
	n++
	g.checks[transactionID] = n

	if n >= g.paidAfter {
		return entities.ChargeStatusPaid, nil
	}
	return entities.ChargeStatusPending, nil
}
