package pool

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/taskpool/taskpool/internal/cpu"
)

// Option is a functional option for configuring the pool.
type Option func(*config)

type config struct {
	workerCount  int
	maxAttempts  int
	initialDelay time.Duration
	rateLimiter  *rate.Limiter
	logger       *slog.Logger
	name         string
	pinWorkers   bool
	onTaskStart  func()
	onTaskDone   func(err error)
}

func defaultConfig() config {
	return config{
		workerCount: cpu.Parallelism(),
		maxAttempts: 1,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// WithWorkerCount sets the number of workers.
// If not specified (or given a value below 1), the pool falls back to the
// detected hardware parallelism, clamped to at least one worker.
func WithWorkerCount(count int) Option {
	return func(cfg *config) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for pool lifecycle and task-failure
// events. Logging is disabled by default. Passing nil is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithName tags every log record with a pool name, which keeps log
// streams apart when a process runs several pools.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// WithRetryPolicy sets a retry policy for task execution.
// maxAttempts specifies the maximum number of attempts for each task.
// initialDelay specifies the delay before the first retry; subsequent
// retries use exponential backoff. If not specified, no retries are
// performed. A task that panics is not retried.
func WithRetryPolicy(maxAttempts int, initialDelay time.Duration) Option {
	return func(cfg *config) {
		if maxAttempts > 0 {
			cfg.maxAttempts = maxAttempts
		}

		if initialDelay > 0 {
			cfg.initialDelay = initialDelay
		}
	}
}

// WithRateLimit sets a rate limiter for controlling task throughput.
// tasksPerSecond specifies the maximum number of tasks to start per
// second and burst the number that may start back-to-back. Useful for
// keeping a pool from overwhelming an external service. The limit is not
// enforced while the pool drains after Shutdown, so graceful termination
// stays bounded.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithCPUAffinity pins each worker to an OS thread and, on platforms that
// support it, to a CPU core. Only worthwhile for CPU-bound workloads that
// profit from cache locality.
func WithCPUAffinity() Option {
	return func(cfg *config) {
		cfg.pinWorkers = true
	}
}

// WithTaskHooks registers observer callbacks invoked by the executing
// worker immediately before and after each task. onDone receives the
// task's terminal error (nil on success). Either hook may be nil. Hooks
// must be safe for concurrent use; they run on worker goroutines.
func WithTaskHooks(onStart func(), onDone func(err error)) Option {
	return func(cfg *config) {
		cfg.onTaskStart = onStart
		cfg.onTaskDone = onDone
	}
}
