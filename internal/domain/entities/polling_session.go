package entities

// PollingState is the lifecycle of a status polling session.
//
//	idle --start--> polling --paid--> confirmed
//	                polling --expired|failed|cancel--> cancelled
//	                polling --max duration--> timed_out
type PollingState string

const (
	PollingStateIdle      PollingState = "idle"
	PollingStatePolling   PollingState = "polling"
	PollingStateConfirmed PollingState = "confirmed"
	PollingStateCancelled PollingState = "cancelled"
	PollingStateTimedOut  PollingState = "timed_out"
)

func (s PollingState) IsTerminal() bool {
	return s == PollingStateConfirmed || s == PollingStateCancelled || s == PollingStateTimedOut
}
