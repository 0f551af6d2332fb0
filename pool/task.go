package pool

import (
	"context"
	"runtime"
	"time"
)

// task is the type-erased unit of work stored in the queue. The context
// is the pool's cooperative stop signal; the returned error mirrors what
// was written into the task's Future and exists for hooks and logging.
type task func(ctx context.Context) error

// erase collapses a typed submission into a uniform queue element.
// The real result travels through the Future; the queue only ever sees
// the erased closure. The deferred broken-promise write is a no-op in
// the normal path and fires only if the task unwinds without recording a
// result (the liveness guarantee for blocked consumers).
func erase[R any](p *Pool, f *Future[R], fn func(ctx context.Context) (R, error)) task {
	return func(ctx context.Context) error {
		defer func() {
			var zero R
			f.complete(zero, ErrBrokenPromise)
		}()

		value, err := runWithRecovery(ctx, p, fn)
		f.complete(value, err)
		return err
	}
}

// runWithRecovery executes a task body with panic recovery and the pool's
// retry policy. A panic is converted to a *PanicError so it can never
// crash the worker. Retries use exponential backoff; waits between
// attempts respect the pool's stop signal.
func runWithRecovery[R any](
	ctx context.Context,
	p *Pool,
	fn func(ctx context.Context) (R, error),
) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = &PanicError{Value: r, Stack: buf[:n]}
		}
	}()

	maxAttempts := max(p.maxAttempts, 1)

	for attempt := range maxAttempts {
		if attempt > 0 && p.initialDelay > 0 {
			backoffDelay := calcBackoffDelay(p.initialDelay, attempt-1)
			select {
			case <-time.After(backoffDelay):
			case <-ctx.Done():
				return value, ctx.Err()
			}
		}

		value, err = fn(ctx)
		if err == nil {
			return value, nil
		}
	}

	return value, err
}
