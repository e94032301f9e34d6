package usecase

import "time"

// Ticker is the cancellable scheduled task that drives a polling session.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory builds a Ticker firing every interval.
type TickerFactory func(interval time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func NewTimeTicker(interval time.Duration) Ticker {
	return &timeTicker{t: time.NewTicker(interval)}
}

func (t *timeTicker) C() <-chan time.Time { return t.t.C }

func (t *timeTicker) Stop() { t.t.Stop() }
