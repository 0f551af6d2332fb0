package pool

import (
	"errors"
	"log/slog"

	"github.com/taskpool/taskpool/internal/cpu"
)

// worker is the loop each pool goroutine runs: block until work or
// shutdown, dequeue, execute outside the queue lock, repeat. When the
// queue closes the loop keeps dequeuing until the queue is empty, so
// already-submitted work always completes before the worker exits.
func (p *Pool) worker(id int, pin bool) {
	logger := p.logger.With(slog.Int("worker_id", id))

	if pin {
		unpin := cpu.SetupWorkerAffinity(id)
		defer unpin()
	}

	logger.Debug("worker started")
	for {
		t, ok := p.queue.pop()
		if !ok {
			logger.Debug("worker exiting")
			return
		}
		p.runTask(logger, t)
	}
}

// runTask executes one dequeued task and releases its active slot.
// The task body runs without the queue lock held.
func (p *Pool) runTask(logger *slog.Logger, t task) {
	defer p.queue.finish()

	if p.limiter != nil {
		// A cancelled pool context (shutdown) falls through immediately:
		// the drain still executes every queued task, just unthrottled.
		_ = p.limiter.Wait(p.ctx)
	}

	if p.onTaskStart != nil {
		p.onTaskStart()
	}

	err := t(p.ctx)

	if p.onTaskDone != nil {
		p.onTaskDone(err)
	}

	if err != nil {
		var panicErr *PanicError
		if errors.As(err, &panicErr) {
			logger.Error("task panic recovered", slog.Any("panic", panicErr.Value))
		} else {
			logger.Debug("task failed", slog.Any("error", err))
		}
	}
}
