package pool

import "sync"

// taskQueue is the unbounded FIFO of pending tasks shared by every worker.
//
// One mutex guards the list, the active-task counter and the closed flag.
// Two conditions hang off it: notEmpty wakes a worker when a task arrives
// or the queue closes, drained wakes WaitForAll callers once nothing is
// pending or executing. The lock is only ever held for bookkeeping, never
// while a task body runs.
type taskQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	drained  *sync.Cond
	tasks    []task
	active   int
	closed   bool
}

func newTaskQueue() *taskQueue {
	q := &taskQueue{}
	q.notEmpty = sync.NewCond(&q.mu)
	q.drained = sync.NewCond(&q.mu)
	return q
}

// push appends t and wakes one waiting worker.
// Returns ErrPoolStopped once the queue is closed; the closed check and
// the append happen under the same lock so a submission can never slip in
// after shutdown observed the queue as settled.
func (q *taskQueue) push(t task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrPoolStopped
	}
	q.tasks = append(q.tasks, t)
	q.notEmpty.Signal()
	return nil
}

// pop blocks until a task is available or the queue is closed and empty.
// The boolean is false only when the calling worker should exit: even a
// closed queue keeps handing out tasks until it is empty, so queued work
// survives shutdown. A returned task counts as active until finish is
// called for it.
func (q *taskQueue) pop() (task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.tasks) == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if len(q.tasks) == 0 {
		return nil, false
	}

	t := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	if len(q.tasks) == 0 {
		q.tasks = nil
	}
	q.active++
	return t, true
}

// finish releases the active slot taken by pop and broadcasts drained
// once nothing is pending or executing.
func (q *taskQueue) finish() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.active--
	if len(q.tasks) == 0 && q.active == 0 {
		q.drained.Broadcast()
	}
}

// close stops the queue from accepting tasks and wakes every blocked
// worker so it can drain the remainder and exit. Idempotent.
func (q *taskQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.Broadcast()
	if len(q.tasks) == 0 && q.active == 0 {
		q.drained.Broadcast()
	}
}

// waitDrained blocks until no task is pending or executing. The condition
// is a snapshot: a submission racing in right after it is observed is
// possible and acceptable.
func (q *taskQueue) waitDrained() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.tasks) > 0 || q.active > 0 {
		q.drained.Wait()
	}
}

// stats returns one consistent snapshot of the queue counters.
func (q *taskQueue) stats() (pending, active int, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks), q.active, q.closed
}
