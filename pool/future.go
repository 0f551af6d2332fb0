package pool

import (
	"context"
	"sync/atomic"
)

// Future represents the eventual result of a submitted task.
// It is the consumer half of a one-shot completion channel: the worker
// executing the task resolves it exactly once, with either a value or an
// error, and every read after that observes the same terminal result.
//
// Type parameters:
//   - R: The result type produced by the task
//
// A Future may be discarded without ever being read; the result is simply
// dropped and the worker is unaffected.
type Future[R any] struct {
	done     chan struct{}
	resolved atomic.Bool
	value    R
	err      error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// complete records the terminal result and wakes all readers.
// Only the first call wins; later calls are ignored and report false.
func (f *Future[R]) complete(value R, err error) bool {
	if !f.resolved.CompareAndSwap(false, true) {
		return false
	}
	f.value = value
	f.err = err
	close(f.done)
	return true
}

// Get blocks until the task has finished and returns its result.
// Calling Get more than once is legal and returns the cached terminal
// result each time.
//
// Returns:
//   - R: The task's value (zero value when err is non-nil)
//   - error: The task's error, a *PanicError if the task panicked, or
//     ErrBrokenPromise if the task finished without recording a result
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// GetWithContext blocks like Get but gives up when ctx is done, returning
// ctx.Err(). Giving up is purely caller-side: the task keeps running to
// completion and a later Get still returns its result.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//	value, err := future.GetWithContext(ctx)
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// TryGet returns the result without blocking. The boolean reports
// whether a terminal result was available; when it is false the value
// and error are zero and the task is still running.
func (f *Future[R]) TryGet() (R, error, bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero R
		return zero, nil, false
	}
}

// IsReady reports whether the result is available without blocking.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the result is available.
// Useful for integrating a Future into a select loop.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}
