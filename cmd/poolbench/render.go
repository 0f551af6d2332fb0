package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
)

var (
	bold  = color.New(color.Bold)
	cyan  = color.New(color.FgCyan, color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

func printHeader(ciMode bool, title string) {
	if ciMode {
		fmt.Println(title)
		return
	}
	fmt.Println()
	colorPrintLn(cyan, strings.Repeat("=", 60))
	colorPrintLn(cyan, title)
	colorPrintLn(cyan, strings.Repeat("=", 60))
	fmt.Println()
}

func makeProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Running pool tasks"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionEnableColorCodes(true),
	)
}

func renderResults(ciMode bool, workers int, serial, parallel runResult) {
	speedup := serial.TotalTime.Seconds() / parallel.TotalTime.Seconds()

	if ciMode {
		fmt.Printf("%-20s %12s %12s\n", "mode", "total", "tasks/sec")
		for _, r := range []runResult{serial, parallel} {
			fmt.Printf("%-20s %12s %12s\n", r.Mode, r.TotalTime.Round(time.Millisecond), formatNumber(int(r.TasksPS)))
		}
		fmt.Printf("speedup: %.2fx\n", speedup)
		return
	}

	colorPrintLn(bold, "THROUGHPUT COMPARISON")
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Mode", "Total Time", "Tasks/sec", "vs Serial")

	for _, r := range []runResult{serial, parallel} {
		_ = table.Append(
			r.Mode,
			r.TotalTime.Round(time.Millisecond).String(),
			formatNumber(int(r.TasksPS)),
			vsSerial(serial.TotalTime, r.TotalTime),
		)
	}

	if err := table.Render(); err != nil {
		colorPrintLn(red, "error rendering results table:", err)
		return
	}

	fmt.Println()
	if speedup > 1.0 {
		colorPrintf(green, "Speedup: %.2fx across %d workers\n", speedup, workers)
	} else {
		colorPrintf(red, "No speedup (%.2fx): tasks may be too small for %d workers\n", speedup, workers)
	}
}

func vsSerial(serial, this time.Duration) string {
	if this == serial {
		return "baseline"
	}
	return fmt.Sprintf("%.2fx", serial.Seconds()/this.Seconds())
}

// formatNumber formats an integer with comma separators.
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	var result strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			_, _ = result.WriteString(",")
		}
		_, _ = result.WriteString(string(c))
	}
	return result.String()
}

func colorPrintLn(c *color.Color, a ...any) {
	_, _ = c.Println(a...)
}

func colorPrintf(c *color.Color, format string, a ...any) {
	_, _ = c.Printf(format, a...)
}
