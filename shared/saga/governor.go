package saga

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrBudgetExceeded is returned by Governor.Run when the unit of work did not
// finish within its budget. It is a distinct failure class from a business
// failure inside the unit of work.
var ErrBudgetExceeded = errors.New("processing budget exceeded")

// DefaultBudget bounds one message's logical unit of work.
const DefaultBudget = 1500 * time.Millisecond

// Governor wraps a handler's entire unit of work in one bounded-duration
// window. The bound covers everything the handler does for a message,
// including store transactions and downstream publishes, rather than
// individual I/O calls.
type Governor struct {
	budget time.Duration
}

// NewGovernor creates a governor with the given budget. A non-positive
// budget falls back to DefaultBudget.
func NewGovernor(budget time.Duration) *Governor {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Governor{budget: budget}
}

// Budget returns the configured budget.
func (g *Governor) Budget() time.Duration {
	return g.budget
}

// Run executes fn under the budget. When the deadline fires, the derived
// context is cancelled so in-flight store and transport calls abort, and
// ErrBudgetExceeded is returned regardless of what fn itself returned: a
// unit of work that raced past its deadline is a timeout, not a success.
func (g *Governor) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, g.budget)
	defer cancel()

	err := fn(ctx)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrBudgetExceeded
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrBudgetExceeded
	}
	return err
}

// Detach returns a context that carries the values of ctx but not its
// deadline or cancellation, bounded by the governor's own budget. The
// compensation publish after a timeout runs on a detached context, since the
// expired one would reject it.
func (g *Governor) Detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), g.budget)
}
