// Command poolbench compares serial execution of a CPU-bound workload
// against the same workload running through a worker pool, and prints a
// throughput table. The workload simulates rotating a square image by an
// arbitrary angle, one image per task.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/taskpool/taskpool/internal/cpu"
	"github.com/taskpool/taskpool/pool"
)

type runResult struct {
	Mode      string
	TotalTime time.Duration
	TasksPS   float64
	Checksum  float64
}

func main() {
	numTasks := flag.Int("tasks", 200, "number of tasks to run")
	numWorkers := flag.Int("workers", 0, "worker count (0 = hardware parallelism)")
	imageSize := flag.Int("size", 256, "side length of the simulated image in pixels")
	ciMode := flag.Bool("ci", false, "plain output without progress bar or colors")
	verbose := flag.Bool("v", false, "log pool lifecycle events")
	flag.Parse()

	workers := *numWorkers
	if workers <= 0 {
		workers = cpu.Parallelism()
	}

	printHeader(*ciMode, fmt.Sprintf("poolbench: %d tasks, %dx%d px, %d workers",
		*numTasks, *imageSize, *imageSize, workers))

	serial := runSerial(*numTasks, *imageSize)
	parallel := runPool(*numTasks, *imageSize, workers, *ciMode, *verbose)

	if math.Abs(serial.Checksum-parallel.Checksum) > 1e-6 {
		fmt.Fprintf(os.Stderr, "checksum mismatch: serial=%f pool=%f\n",
			serial.Checksum, parallel.Checksum)
		os.Exit(1)
	}

	renderResults(*ciMode, workers, serial, parallel)
}

func runSerial(numTasks, size int) runResult {
	start := time.Now()
	sum := 0.0
	for i := range numTasks {
		sum += simulateRotation(i, size, size, float64(i)*3.6)
	}
	elapsed := time.Since(start)

	return runResult{
		Mode:      "Serial",
		TotalTime: elapsed,
		TasksPS:   float64(numTasks) / elapsed.Seconds(),
		Checksum:  sum,
	}
}

func runPool(numTasks, size, workers int, ciMode, verbose bool) runResult {
	opts := []pool.Option{
		pool.WithWorkerCount(workers),
		pool.WithName("poolbench"),
	}
	if verbose {
		opts = append(opts, pool.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}

	p := pool.New(opts...)
	defer p.Shutdown()

	var bar *progressbar.ProgressBar
	if !ciMode {
		bar = makeProgressBar(numTasks)
	}

	start := time.Now()
	futures := make([]*pool.Future[float64], 0, numTasks)
	for i := range numTasks {
		f, err := pool.Submit(p, func() (float64, error) {
			return simulateRotation(i, size, size, float64(i)*3.6), nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "submit failed: %v\n", err)
			os.Exit(1)
		}
		futures = append(futures, f)
	}

	sum := 0.0
	for _, f := range futures {
		v, err := f.Get()
		if err != nil {
			fmt.Fprintf(os.Stderr, "task failed: %v\n", err)
			os.Exit(1)
		}
		sum += v
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	elapsed := time.Since(start)

	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}

	return runResult{
		Mode:      fmt.Sprintf("Pool (%d workers)", workers),
		TotalTime: elapsed,
		TasksPS:   float64(numTasks) / elapsed.Seconds(),
		Checksum:  sum,
	}
}

// simulateRotation walks every pixel of a width x height image, applies a
// rotation transform and accumulates the coordinates. Pure CPU work with
// a deterministic result per task, so serial and pooled runs can be
// checksummed against each other.
func simulateRotation(taskID, width, height int, angleDeg float64) float64 {
	rad := angleDeg * math.Pi / 180.0
	sin, cos := math.Sincos(rad)

	sum := 0.0
	for y := range height {
		for x := range width {
			rx := float64(x)*cos - float64(y)*sin
			ry := float64(x)*sin + float64(y)*cos
			sum += rx + ry
		}
	}
	return sum + float64(taskID)
}
