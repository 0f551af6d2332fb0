package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInterrupted = errors.New("interrupted")

func TestSubmitCancellable(t *testing.T) {
	t.Run("runs to completion without shutdown", func(t *testing.T) {
		p := New(WithWorkerCount(2))
		defer p.Shutdown()

		future, err := SubmitCancellable(p, func(ctx context.Context) (int, error) {
			total := 0
			for i := range 10 {
				if ctx.Err() != nil {
					return total, errInterrupted
				}
				total += i
			}
			return total, nil
		})
		require.NoError(t, err)

		got, err := future.Get()
		require.NoError(t, err)
		assert.Equal(t, 45, got)
	})

	t.Run("shutdown interrupts a polling task", func(t *testing.T) {
		p := New(WithWorkerCount(1))

		const plannedIterations = 200
		started := make(chan struct{})

		future, err := SubmitCancellable(p, func(ctx context.Context) (int, error) {
			close(started)
			for i := range plannedIterations {
				if ctx.Err() != nil {
					return i, errInterrupted
				}
				time.Sleep(5 * time.Millisecond)
			}
			return plannedIterations, nil
		})
		require.NoError(t, err)

		<-started
		time.Sleep(25 * time.Millisecond) // let a few iterations run
		p.Shutdown()

		iterations, err := future.Get()
		require.ErrorIs(t, err, errInterrupted)
		assert.Less(t, iterations, plannedIterations,
			"task should have stopped before its planned iteration count")
		assert.Positive(t, iterations, "task should have made some progress before shutdown")
	})

	t.Run("task ignoring the context simply finishes", func(t *testing.T) {
		p := New(WithWorkerCount(1))

		started := make(chan struct{})
		future, err := SubmitCancellable(p, func(ctx context.Context) (string, error) {
			close(started)
			time.Sleep(50 * time.Millisecond)
			return "done anyway", nil
		})
		require.NoError(t, err)

		<-started
		p.Shutdown()

		got, err := future.Get()
		require.NoError(t, err)
		assert.Equal(t, "done anyway", got)
	})

	t.Run("queued cancellable tasks still execute during drain", func(t *testing.T) {
		p := New(WithWorkerCount(1))

		started := make(chan struct{})
		_, err := SubmitCancellable(p, func(ctx context.Context) (struct{}, error) {
			close(started)
			time.Sleep(50 * time.Millisecond)
			return struct{}{}, nil
		})
		require.NoError(t, err)

		// Queued behind the sleeper; by the time it runs, shutdown is in
		// progress and its context is already cancelled.
		queued, err := SubmitCancellable(p, func(ctx context.Context) (bool, error) {
			return ctx.Err() != nil, nil
		})
		require.NoError(t, err)

		<-started
		p.Shutdown()

		sawCancel, err := queued.Get()
		require.NoError(t, err)
		assert.True(t, sawCancel, "drained task should observe the cancelled context")
	})
}
