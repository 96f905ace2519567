package saga

import "github.com/pkg/errors"

// MessageState tracks one in-flight message through its delivery lifecycle.
// The transport may only acknowledge a message whose outcome is settled, so
// the received -> processed -> acked order is enforced here instead of by
// convention in the consuming code.
type MessageState int

const (
	StateReceived MessageState = iota
	StateProcessed
	StateAcked
)

func (s MessageState) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateProcessed:
		return "processed"
	case StateAcked:
		return "acked"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when a lifecycle step is applied out of order.
var ErrInvalidTransition = errors.New("invalid message lifecycle transition")

// Lifecycle is the per-message state machine. It is owned by exactly one
// goroutine at a time (reader, then worker, then cleaner), so it carries no
// internal locking.
type Lifecycle struct {
	state MessageState
}

// NewLifecycle returns a lifecycle in the received state.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateReceived}
}

// State returns the current state.
func (l *Lifecycle) State() MessageState {
	return l.state
}

// MarkProcessed records that the handler settled an outcome for the message,
// successful or not. Valid only from the received state.
func (l *Lifecycle) MarkProcessed() error {
	if l.state != StateReceived {
		return errors.Wrapf(ErrInvalidTransition, "cannot process message in state %s", l.state)
	}
	l.state = StateProcessed
	return nil
}

// MarkAcked records the acknowledgment to the broker. Valid only from the
// processed state: an unprocessed message must never be acked.
func (l *Lifecycle) MarkAcked() error {
	if l.state != StateProcessed {
		return errors.Wrapf(ErrInvalidTransition, "cannot ack message in state %s", l.state)
	}
	l.state = StateAcked
	return nil
}
