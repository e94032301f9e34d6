package usecase

import (
	"context"
	"log"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/domain/errs"
	"pix_checkout/internal/usecase/interfaces"
	"strings"
	"sync"
	"time"
)

const (
	defaultPollingInterval   = 3 * time.Second
	defaultFinishedRetention = time.Minute
)

// PollerConfig tunes every session started by a StatusPoller.
// MaxDuration and MaxConsecutiveFailures are disabled when zero. FinishedRetention
// is how long a finished session stays readable through Session.
type PollerConfig struct {
	Interval               time.Duration
	MaxDuration            time.Duration
	MaxConsecutiveFailures int
	FinishedRetention      time.Duration
}

// IStatusPoller is the polling side of the consumer-facing interface.
type IStatusPoller interface {
	StartPolling(ctx context.Context, charge entities.Charge, onUpdate StatusUpdateFunc, onError PollingErrorFunc) (*PollingSession, error)
	CancelPolling(session *PollingSession)
	CancelByTransactionID(transactionID string) error
	Session(transactionID string) (*PollingSession, bool)
	Shutdown()
}

// StatusPoller starts polling sessions and keeps at most one live session per
// transaction.
type StatusPoller struct {
	gateway   interfaces.IPaymentGateway
	cfg       PollerConfig
	newTicker TickerFactory

	mu       sync.Mutex
	sessions map[string]*PollingSession
}

var _ IStatusPoller = (*StatusPoller)(nil)

func NewStatusPoller(gateway interfaces.IPaymentGateway, cfg PollerConfig, newTicker TickerFactory) *StatusPoller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollingInterval
	}
	if cfg.FinishedRetention <= 0 {
		cfg.FinishedRetention = defaultFinishedRetention
	}
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	return &StatusPoller{
		gateway:   gateway,
		cfg:       cfg,
		newTicker: newTicker,
		sessions:  make(map[string]*PollingSession),
	}
}

// StartPolling begins a session for a pending charge. The session stops on a
// terminal status, on Cancel, when ctx is done or after MaxDuration.
func (p *StatusPoller) StartPolling(ctx context.Context, charge entities.Charge, onUpdate StatusUpdateFunc, onError PollingErrorFunc) (*PollingSession, error) {
	charge.TransactionID = strings.TrimSpace(charge.TransactionID)
	if charge.TransactionID == "" {
		return nil, errs.NewValidationError("transaction_id", errs.ErrInvalidTransactionID)
	}
	if charge.Status != entities.ChargeStatusPending {
		log.Printf("[polling][poller] refusing to start transaction_id=%s status=%s", charge.TransactionID, charge.Status)
		return nil, errs.ErrChargeNotPending
	}
	if p.gateway == nil {
		return nil, errs.NewConfigError("", "payment gateway not configured")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.sessions[charge.TransactionID]; ok && !existing.State().IsTerminal() {
		log.Printf("[polling][poller] session already active transaction_id=%s session_id=%s", charge.TransactionID, existing.ID)
		return nil, errs.ErrPollingSessionActive
	}

	session := newPollingSession(charge, p.gateway, p.cfg, onUpdate, onError)
	p.sessions[charge.TransactionID] = session
	session.start(ctx, p.newTicker(p.cfg.Interval))

	go p.release(session)
	return session, nil
}

func (p *StatusPoller) release(session *PollingSession) {
	<-session.Done()
	time.AfterFunc(p.cfg.FinishedRetention, func() { p.forget(session) })
}

func (p *StatusPoller) forget(session *PollingSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sessions[session.TransactionID] == session {
		delete(p.sessions, session.TransactionID)
		log.Printf("[polling][poller] released session_id=%s transaction_id=%s", session.ID, session.TransactionID)
	}
}

func (p *StatusPoller) CancelPolling(session *PollingSession) {
	if session == nil {
		return
	}
	session.Cancel()
}

func (p *StatusPoller) CancelByTransactionID(transactionID string) error {
	session, ok := p.Session(transactionID)
	if !ok {
		return errs.ErrPollingSessionNotFound
	}
	session.Cancel()
	return nil
}

// Session returns the session registered for a transaction. A finished session is
// kept for FinishedRetention, or until a new session replaces it.
func (p *StatusPoller) Session(transactionID string) (*PollingSession, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sessions[strings.TrimSpace(transactionID)]
	return s, ok
}

// Shutdown cancels every live session.
func (p *StatusPoller) Shutdown() {
	p.mu.Lock()
	live := make([]*PollingSession, 0, len(p.sessions))
	for _, s := range p.sessions {
		if !s.State().IsTerminal() {
			live = append(live, s)
		}
	}
	p.mu.Unlock()

	for _, s := range live {
		s.Cancel()
	}
	log.Printf("[polling][poller] shutdown cancelled_sessions=%d", len(live))
}
