package pool

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestCalcBackoffDelay(t *testing.T) {
	tests := []struct {
		name          string
		initialDelay  time.Duration
		attemptNumber int
		expected      time.Duration
	}{
		{
			name:          "first retry (attempt 0)",
			initialDelay:  100 * time.Millisecond,
			attemptNumber: 0,
			expected:      100 * time.Millisecond, // 2^0 = 1
		},
		{
			name:          "second retry (attempt 1)",
			initialDelay:  100 * time.Millisecond,
			attemptNumber: 1,
			expected:      200 * time.Millisecond, // 2^1 = 2
		},
		{
			name:          "third retry (attempt 2)",
			initialDelay:  100 * time.Millisecond,
			attemptNumber: 2,
			expected:      400 * time.Millisecond, // 2^2 = 4
		},
		{
			name:          "fourth retry (attempt 3)",
			initialDelay:  100 * time.Millisecond,
			attemptNumber: 3,
			expected:      800 * time.Millisecond, // 2^3 = 8
		},
		{
			name:          "negative attempt number",
			initialDelay:  100 * time.Millisecond,
			attemptNumber: -1,
			expected:      0,
		},
		{
			name:          "zero initial delay",
			initialDelay:  0,
			attemptNumber: 2,
			expected:      0,
		},
		{
			name:          "huge attempt number hits the cap",
			initialDelay:  time.Second,
			attemptNumber: 40,
			expected:      maxBackoffDelay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calcBackoffDelay(tt.initialDelay, tt.attemptNumber)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestRetry_SuccessAfterFailures(t *testing.T) {
	p := New(
		WithWorkerCount(1),
		WithRetryPolicy(3, time.Millisecond),
	)
	defer p.Shutdown()

	var attempts atomic.Int32
	future, err := Submit(p, func() (string, error) {
		if attempts.Add(1) < 3 {
			return "", errors.New("transient failure")
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	got, err := future.Get()
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if got != "recovered" {
		t.Errorf("expected 'recovered', got %q", got)
	}
	if n := attempts.Load(); n != 3 {
		t.Errorf("expected 3 attempts, got %d", n)
	}
}

func TestRetry_ExhaustedReturnsLastError(t *testing.T) {
	p := New(
		WithWorkerCount(1),
		WithRetryPolicy(3, time.Millisecond),
	)
	defer p.Shutdown()

	lastErr := errors.New("still failing")
	var attempts atomic.Int32
	future, err := Submit(p, func() (int, error) {
		attempts.Add(1)
		return 0, lastErr
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = future.Get()
	if !errors.Is(err, lastErr) {
		t.Errorf("expected the task's last error, got %v", err)
	}
	if n := attempts.Load(); n != 3 {
		t.Errorf("expected 3 attempts, got %d", n)
	}
}

func TestRetry_NoPolicyMeansSingleAttempt(t *testing.T) {
	p := New(WithWorkerCount(1))
	defer p.Shutdown()

	var attempts atomic.Int32
	future, err := Submit(p, func() (int, error) {
		attempts.Add(1)
		return 0, errors.New("fails once")
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, _ = future.Get()
	if n := attempts.Load(); n != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", n)
	}
}

func TestRetry_ShutdownAbortsBackoffWait(t *testing.T) {
	p := New(
		WithWorkerCount(1),
		WithRetryPolicy(5, 10*time.Second), // far longer than the test allows
	)

	started := make(chan struct{})
	var once atomic.Bool
	future, err := Submit(p, func() (int, error) {
		if once.CompareAndSwap(false, true) {
			close(started)
		}
		return 0, errors.New("push into backoff")
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	<-started

	done := make(chan struct{})
	go func() {
		p.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("shutdown blocked on a task waiting out its backoff")
	}

	if !future.IsReady() {
		t.Error("task aborted during backoff must still resolve its future")
	}
}
