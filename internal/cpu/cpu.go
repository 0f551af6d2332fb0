// Package cpu provides hardware-parallelism detection and optional
// per-worker CPU pinning for the pool's workers.
package cpu

import "runtime"

// Parallelism returns the number of tasks the host can run in parallel,
// never less than one. This is the default worker count for a pool.
func Parallelism() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}
