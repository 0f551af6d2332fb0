// Package pool provides a fixed-size worker pool with future-based task
// submission and cooperative cancellation.
//
// The primary type is Pool, a set of long-lived workers fed from one
// unbounded FIFO queue. Submissions are independently typed: the generic
// Submit function accepts any func() (R, error) and returns a Future[R]
// the caller can block on or poll, while the queue itself stores only
// type-erased units of work.
//
// # Basic Usage
//
//	p := pool.New(pool.WithWorkerCount(4))
//	defer p.Shutdown()
//
//	future, err := pool.Submit(p, func() (int, error) {
//	    return compute(), nil
//	})
//	if err != nil {
//	    return err // pool already stopped
//	}
//	value, err := future.Get()
//
// # Results and Failures
//
// Every submission resolves its Future exactly once. A task's error is
// returned verbatim from Get; a panic inside a task is recovered at the
// invocation boundary and delivered as a *PanicError, never crashing the
// worker. One task's failure has no effect on sibling tasks or on the
// pool's ability to keep processing.
//
// # Shutdown Semantics
//
// Shutdown is graceful and idempotent: it rejects new submissions
// (Submit returns ErrPoolStopped), cancels the context handed to
// cancellable tasks, lets the workers drain everything already queued,
// and joins them. Queued work is never dropped in favor of faster
// termination. WaitForAll blocks until the queue is empty and no task is
// executing, without stopping the pool.
//
// # Cooperative Cancellation
//
// SubmitCancellable hands the task a context cancelled when Shutdown
// begins. Cancellation is purely cooperative: a task that never checks
// the context simply runs to completion.
//
//	future, _ := pool.SubmitCancellable(p, func(ctx context.Context) (int, error) {
//	    for i := range items {
//	        if ctx.Err() != nil {
//	            return i, ctx.Err() // interrupted
//	        }
//	        process(items[i])
//	    }
//	    return len(items), nil
//	})
//
// # Retry Logic
//
// Tasks can be automatically retried with exponential backoff on failure:
//
//	p := pool.New(
//	    pool.WithWorkerCount(4),
//	    pool.WithRetryPolicy(3, 100*time.Millisecond), // 3 attempts, 100ms initial delay
//	)
//
// Retry delays increase exponentially: 100ms, 200ms, 400ms, etc.
//
// # Rate Limiting
//
// Control throughput to prevent overwhelming external services:
//
//	p := pool.New(
//	    pool.WithWorkerCount(10),
//	    pool.WithRateLimit(5.0, 10), // 5 tasks/sec, burst of 10
//	)
package pool
