package pool

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Pool is a fixed-size pool of long-lived workers executing independently
// typed units of work submitted from arbitrary goroutines.
//
// Tasks are queued in strict FIFO order in an unbounded queue; with more
// than one worker, completion order across workers is unordered since
// tasks take different durations. Each submission produces exactly one
// resolution of its Future.
//
// A Pool is ready for use after New and must be released with Shutdown.
// All methods are safe for concurrent use.
type Pool struct {
	queue   *taskQueue
	workers int
	logger  *slog.Logger

	maxAttempts  int
	initialDelay time.Duration
	limiter      *rate.Limiter
	onTaskStart  func()
	onTaskDone   func(err error)

	// ctx is the pool's cooperative stop signal, cancelled by Shutdown.
	// Cancellable tasks receive it and are expected to poll it; the pool
	// never preempts a running task.
	ctx    context.Context
	cancel context.CancelFunc

	group    *errgroup.Group
	stopOnce sync.Once
}

// New creates a pool and starts its workers immediately. The workers
// block on the empty queue until the first submission arrives.
//
// Default configuration: workers = detected hardware parallelism, no
// retries, no rate limit, logging disabled.
//
// Example:
//
//	p := pool.New(pool.WithWorkerCount(4))
//	defer p.Shutdown()
//
//	future, err := pool.Submit(p, func() (int, error) {
//	    return 10 + 20, nil
//	})
func New(opts ...Option) *Pool {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workerCount < 1 {
		cfg.workerCount = 1
	}

	logger := cfg.logger
	if cfg.name != "" {
		logger = logger.With(slog.String("pool", cfg.name))
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queue:        newTaskQueue(),
		workers:      cfg.workerCount,
		logger:       logger,
		maxAttempts:  cfg.maxAttempts,
		initialDelay: cfg.initialDelay,
		limiter:      cfg.rateLimiter,
		onTaskStart:  cfg.onTaskStart,
		onTaskDone:   cfg.onTaskDone,
		ctx:          ctx,
		cancel:       cancel,
		group:        new(errgroup.Group),
	}

	for i := range cfg.workerCount {
		p.group.Go(func() error {
			p.worker(i, cfg.pinWorkers)
			return nil
		})
	}

	logger.Debug("pool started", slog.Int("workers", cfg.workerCount))
	return p
}

// Submit hands fn to the pool for asynchronous execution and returns a
// Future for its result. Safe to call from any number of goroutines.
//
// Returns:
//   - *Future[R]: Handle for the eventual result (nil on error)
//   - error: ErrPoolStopped if Shutdown has been initiated; the task is
//     then never executed
//
// Example:
//
//	future, err := pool.Submit(p, func() (string, error) {
//	    return strings.ToUpper("hello"), nil
//	})
//	if err != nil {
//	    return err
//	}
//	value, err := future.Get()
func Submit[R any](p *Pool, fn func() (R, error)) (*Future[R], error) {
	return SubmitCancellable(p, func(context.Context) (R, error) {
		return fn()
	})
}

// SubmitCancellable is the Submit variant for tasks that want to observe
// shutdown. fn receives a context that is cancelled when Shutdown begins;
// a well-behaved task polls it and returns early with whatever sentinel
// it chooses. Cancellation is cooperative only: the pool never interrupts
// a task that ignores the context.
//
// Example:
//
//	future, err := pool.SubmitCancellable(p, func(ctx context.Context) (int, error) {
//	    for i := range steps {
//	        if ctx.Err() != nil {
//	            return i, ctx.Err()
//	        }
//	        work(i)
//	    }
//	    return steps, nil
//	})
func SubmitCancellable[R any](p *Pool, fn func(ctx context.Context) (R, error)) (*Future[R], error) {
	future := newFuture[R]()
	if err := p.queue.push(erase(p, future, fn)); err != nil {
		return nil, err
	}
	return future, nil
}

// Shutdown stops the pool: it rejects further submissions, cancels the
// cooperative context handed to cancellable tasks, and blocks until every
// worker has drained the remaining queue and exited. Queued work is never
// dropped; shutdown means "stop accepting, finish what is queued".
//
// Shutdown is idempotent and safe to call concurrently; every caller
// blocks until the first invocation completes.
func (p *Pool) Shutdown() {
	p.stopOnce.Do(func() {
		p.logger.Debug("pool shutting down")
		p.queue.close()
		p.cancel()
		_ = p.group.Wait()
		p.logger.Debug("pool stopped")
	})
}

// WaitForAll blocks until no task is pending or executing.
//
// The drained condition is a snapshot: WaitForAll does not fence off new
// submissions, so a task submitted concurrently right after the snapshot
// may already be queued by the time the caller resumes. Callers that need
// a hard barrier should stop submitting first.
func (p *Pool) WaitForAll() {
	p.queue.waitDrained()
}

// WorkerCount returns the number of workers the pool was built with.
func (p *Pool) WorkerCount() int {
	return p.workers
}

// PendingCount returns the number of tasks queued but not yet picked up.
func (p *Pool) PendingCount() int {
	pending, _, _ := p.queue.stats()
	return pending
}

// ActiveCount returns the number of tasks currently executing.
func (p *Pool) ActiveCount() int {
	_, active, _ := p.queue.stats()
	return active
}

// Stopped reports whether Shutdown has been initiated.
func (p *Pool) Stopped() bool {
	_, _, closed := p.queue.stats()
	return closed
}

// Context returns the pool's cooperative stop context, the same one
// handed to cancellable tasks. It is cancelled when Shutdown begins,
// which lets code outside the pool observe shutdown or derive child
// contexts tied to the pool's lifetime.
func (p *Pool) Context() context.Context {
	return p.ctx
}
