package saga

// This file contains shared saga types for the choreography pattern.
// There is no central orchestrator: each handler reacts to events and
// publishes new events, and compensation is triggered by failure events.

// FailureReason classifies why a saga step needed compensation. It travels
// on the rollback event, not the ledger record.
type FailureReason string

const (
	// ReasonTimeout marks a step that exceeded its processing budget. A step
	// that failed for any other cause, typically a rejected reservation,
	// compensates with the zero reason.
	ReasonTimeout FailureReason = "TIMEOUT"
)

func (r FailureReason) String() string {
	return string(r)
}
