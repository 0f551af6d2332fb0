package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolStopped is returned by Submit and SubmitCancellable once a
	// shutdown has been initiated. The rejected task is never executed.
	ErrPoolStopped = errors.New("taskpool: pool is stopped")

	// ErrBrokenPromise resolves a Future whose task finished without ever
	// recording a result. Consumers blocked in Get receive it instead of
	// hanging forever.
	ErrBrokenPromise = errors.New("taskpool: task abandoned without a result")
)

// PanicError carries a panic recovered at the task invocation boundary.
// The panic never escapes the worker; it is delivered to the submitter
// through the task's Future instead.
type PanicError struct {
	// Value is the value the task panicked with.
	Value any
	// Stack is the stack trace captured at recovery time.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("taskpool: task panic: %v\nstack trace:\n%s", e.Value, e.Stack)
}
