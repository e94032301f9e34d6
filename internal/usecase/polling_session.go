package usecase

import (
	"context"
	"fmt"
	"log"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/domain/errs"
	"pix_checkout/internal/usecase/interfaces"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type (
	// StatusUpdateFunc receives every status change of the watched charge.
	StatusUpdateFunc func(status entities.ChargeStatus)
	// PollingErrorFunc receives failed status checks, transient or terminal.
	PollingErrorFunc func(err error)
)

// PollingSession watches one charge until it reaches a terminal state.
//
// The session is the only writer of its charge status. inFlight keeps at most one
// GetStatus request running; cancelled is checked before any late response is
// applied, so nothing changes once Cancel returns.
type PollingSession struct {
	ID            string
	TransactionID string

	gateway     interfaces.IPaymentGateway
	maxDuration time.Duration
	maxFailures int
	onUpdate    StatusUpdateFunc
	onError     PollingErrorFunc

	mu        sync.Mutex
	charge    entities.Charge
	state     entities.PollingState
	err       error
	failures  int
	startedAt time.Time
	endedAt   time.Time

	inFlight  atomic.Bool
	cancelled atomic.Bool
	fetches   sync.WaitGroup

	ctx      context.Context
	stopCtx  context.CancelFunc
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// PollingSnapshot is a point-in-time copy of a session.
type PollingSnapshot struct {
	SessionID     string                `json:"session_id"`
	TransactionID string                `json:"transaction_id"`
	State         entities.PollingState `json:"state"`
	Status        entities.ChargeStatus `json:"status"`
	Failures      int                   `json:"consecutive_failures"`
	StartedAt     time.Time             `json:"started_at"`
	EndedAt       *time.Time            `json:"ended_at,omitempty"`
	Error         string                `json:"error,omitempty"`
}

func newPollingSession(charge entities.Charge, gateway interfaces.IPaymentGateway, cfg PollerConfig, onUpdate StatusUpdateFunc, onError PollingErrorFunc) *PollingSession {
	return &PollingSession{
		ID:            uuid.NewString(),
		TransactionID: charge.TransactionID,
		gateway:       gateway,
		maxDuration:   cfg.MaxDuration,
		maxFailures:   cfg.MaxConsecutiveFailures,
		onUpdate:      onUpdate,
		onError:       onError,
		charge:        charge,
		state:         entities.PollingStateIdle,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

func (s *PollingSession) start(parent context.Context, ticker Ticker) {
	s.ctx, s.stopCtx = context.WithCancel(parent)

	s.mu.Lock()
	s.state = entities.PollingStatePolling
	s.startedAt = time.Now().UTC()
	s.mu.Unlock()

	log.Printf("[polling][session] start session_id=%s transaction_id=%s max_duration=%s", s.ID, s.TransactionID, s.maxDuration)
	go s.run(ticker)
}

func (s *PollingSession) run(ticker Ticker) {
	defer close(s.done)
	defer s.fetches.Wait()
	defer ticker.Stop()

	var timeout <-chan time.Time
	if s.maxDuration > 0 {
		timer := time.NewTimer(s.maxDuration)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case <-s.stop:
			return
		case <-s.ctx.Done():
			s.Cancel()
			return
		case <-timeout:
			s.timeOut()
			return
		case <-ticker.C():
			s.tick()
		}
	}
}

func (s *PollingSession) tick() {
	if s.cancelled.Load() || s.State() != entities.PollingStatePolling {
		return
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Printf("[polling][session] tick skipped, status request in flight session_id=%s transaction_id=%s", s.ID, s.TransactionID)
		return
	}
	s.fetches.Add(1)
	go s.fetch()
}

func (s *PollingSession) fetch() {
	defer s.fetches.Done()
	defer s.inFlight.Store(false)

	status, err := s.gateway.GetStatus(s.ctx, s.TransactionID)
	s.apply(status, err)
}

func (s *PollingSession) apply(status entities.ChargeStatus, err error) {
	if s.cancelled.Load() {
		log.Printf("[polling][session] late response dropped session_id=%s transaction_id=%s", s.ID, s.TransactionID)
		return
	}

	s.mu.Lock()
	if s.state != entities.PollingStatePolling {
		s.mu.Unlock()
		log.Printf("[polling][session] response after end dropped session_id=%s state=%s", s.ID, s.state)
		return
	}

	if err != nil {
		s.failures++
		report := err
		terminal := false
		switch {
		case errs.IsConfig(err):
			terminal = true
		case s.maxFailures > 0 && s.failures >= s.maxFailures:
			report = errs.NewUpstreamError(0, fmt.Sprintf("status check failed %d consecutive times: %v", s.failures, err))
			terminal = true
		}
		if terminal {
			s.endLocked(entities.PollingStateCancelled, report)
		}
		failures := s.failures
		s.mu.Unlock()

		if terminal {
			log.Printf("[polling][session] giving up session_id=%s transaction_id=%s failures=%d err=%v", s.ID, s.TransactionID, failures, report)
		} else {
			log.Printf("[polling][session] status check failed session_id=%s transaction_id=%s failures=%d err=%v", s.ID, s.TransactionID, failures, err)
		}
		if !s.cancelled.Load() && s.onError != nil {
			s.onError(report)
		}
		if terminal {
			s.stopLoop()
		}
		return
	}

	s.failures = 0
	if !s.charge.Status.CanTransitionTo(status) {
		s.mu.Unlock()
		return
	}
	changed := s.charge.Status != status
	s.charge.Status = status

	switch status {
	case entities.ChargeStatusPaid:
		s.endLocked(entities.PollingStateConfirmed, nil)
	case entities.ChargeStatusExpired, entities.ChargeStatusFailed:
		s.endLocked(entities.PollingStateCancelled, nil)
	}
	state := s.state
	s.mu.Unlock()

	if changed && s.onUpdate != nil {
		s.onUpdate(status)
	}
	if state.IsTerminal() {
		log.Printf("[polling][session] finished session_id=%s transaction_id=%s state=%s status=%s", s.ID, s.TransactionID, state, status)
		s.stopLoop()
	}
}

// Cancel stops the session. Responses still in flight are discarded when they
// arrive. Cancelling a finished session does nothing.
func (s *PollingSession) Cancel() {
	s.mu.Lock()
	if s.state.IsTerminal() {
		s.mu.Unlock()
		return
	}
	s.cancelled.Store(true)
	s.endLocked(entities.PollingStateCancelled, nil)
	s.mu.Unlock()

	log.Printf("[polling][session] cancelled session_id=%s transaction_id=%s", s.ID, s.TransactionID)
	s.stopLoop()
}

func (s *PollingSession) timeOut() {
	s.mu.Lock()
	if s.state.IsTerminal() {
		s.mu.Unlock()
		return
	}
	s.endLocked(entities.PollingStateTimedOut, nil)
	s.mu.Unlock()

	log.Printf("[polling][session] timed out session_id=%s transaction_id=%s after=%s", s.ID, s.TransactionID, s.maxDuration)
	s.stopLoop()
}

func (s *PollingSession) endLocked(state entities.PollingState, err error) {
	s.state = state
	s.err = err
	s.endedAt = time.Now().UTC()
}

func (s *PollingSession) stopLoop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		if s.stopCtx != nil {
			s.stopCtx()
		}
	})
}

// Done is closed once the session loop has stopped and every status callback has
// returned.
func (s *PollingSession) Done() <-chan struct{} { return s.done }

func (s *PollingSession) State() entities.PollingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Charge returns a copy of the watched charge.
func (s *PollingSession) Charge() entities.Charge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.charge
}

// Err is the reason a session ended in error, nil otherwise.
func (s *PollingSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *PollingSession) Snapshot() PollingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := PollingSnapshot{
		SessionID:     s.ID,
		TransactionID: s.TransactionID,
		State:         s.state,
		Status:        s.charge.Status,
		Failures:      s.failures,
		StartedAt:     s.startedAt,
	}
	if !s.endedAt.IsZero() {
		ended := s.endedAt
		snap.EndedAt = &ended
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	return snap
}
