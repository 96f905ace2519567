package saga

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGovernorRun(t *testing.T) {
	t.Run("completes within budget", func(t *testing.T) {
		g := NewGovernor(time.Second)

		err := g.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})

		assert.NoError(t, err)
	})

	t.Run("propagates handler error", func(t *testing.T) {
		g := NewGovernor(time.Second)
		boom := errors.New("reservation rejected")

		err := g.Run(context.Background(), func(ctx context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
	})

	t.Run("deadline converts to budget exceeded", func(t *testing.T) {
		g := NewGovernor(20 * time.Millisecond)

		err := g.Run(context.Background(), func(ctx context.Context) error {
			select {
			case <-time.After(time.Second):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})

		assert.ErrorIs(t, err, ErrBudgetExceeded)
	})

	t.Run("late success is still a timeout", func(t *testing.T) {
		g := NewGovernor(10 * time.Millisecond)

		err := g.Run(context.Background(), func(ctx context.Context) error {
			time.Sleep(30 * time.Millisecond)
			return nil // raced past the deadline
		})

		assert.ErrorIs(t, err, ErrBudgetExceeded)
	})

	t.Run("zero budget falls back to default", func(t *testing.T) {
		g := NewGovernor(0)
		assert.Equal(t, DefaultBudget, g.Budget())
	})
}

func TestGovernorDetach(t *testing.T) {
	g := NewGovernor(time.Second)

	parent, cancel := context.WithCancel(context.Background())
	cancel()

	detached, stop := g.Detach(parent)
	defer stop()

	require.Error(t, parent.Err())
	assert.NoError(t, detached.Err())

	deadline, ok := detached.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(g.Budget()), deadline, 100*time.Millisecond)
}

func TestLifecycle(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		l := NewLifecycle()
		assert.Equal(t, StateReceived, l.State())

		require.NoError(t, l.MarkProcessed())
		assert.Equal(t, StateProcessed, l.State())

		require.NoError(t, l.MarkAcked())
		assert.Equal(t, StateAcked, l.State())
	})

	t.Run("ack before processing is rejected", func(t *testing.T) {
		l := NewLifecycle()
		assert.ErrorIs(t, l.MarkAcked(), ErrInvalidTransition)
		assert.Equal(t, StateReceived, l.State())
	})

	t.Run("double processing is rejected", func(t *testing.T) {
		l := NewLifecycle()
		require.NoError(t, l.MarkProcessed())
		assert.ErrorIs(t, l.MarkProcessed(), ErrInvalidTransition)
	})

	t.Run("double ack is rejected", func(t *testing.T) {
		l := NewLifecycle()
		require.NoError(t, l.MarkProcessed())
		require.NoError(t, l.MarkAcked())
		assert.ErrorIs(t, l.MarkAcked(), ErrInvalidTransition)
	})
}
