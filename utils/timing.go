package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether timing statistics are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where timing statistics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// TimingStats holds timing information for different operations
type TimingStats struct {
	TotalTime       time.Duration
	DataLoadingTime time.Duration
	ModelInitTime   time.Duration
	TrainingTime    time.Duration
	EvaluationTime  time.Duration
	EpochTimes      []time.Duration

	last time.Time
}

// ObserveEpoch stores the time spent since the previous epoch (or the baseline).
func (stats *TimingStats) ObserveEpoch(epoch int, _ float64, _ int) {
	now := time.Now()
	if epoch > 0 && !stats.last.IsZero() {
		stats.EpochTimes = append(stats.EpochTimes, now.Sub(stats.last))
	}
	stats.last = now
}

func percent(part, total time.Duration) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// PrintTimingStats prints detailed timing statistics.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats, steps int) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total time: %v\n", stats.TotalTime)
	fmt.Fprintf(Output, "Steps completed: %d\n", steps)
	if steps > 0 {
		fmt.Fprintf(Output, "Average time per step: %v\n", stats.TrainingTime/time.Duration(steps))
	}
	fmt.Fprintln(Output, "\nBreakdown by operation:")
	fmt.Fprintf(Output, "  Data loading: %v (%.1f%%)\n", stats.DataLoadingTime, percent(stats.DataLoadingTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Model initialization: %v (%.1f%%)\n", stats.ModelInitTime, percent(stats.ModelInitTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Training: %v (%.1f%%)\n", stats.TrainingTime, percent(stats.TrainingTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Evaluation: %v (%.1f%%)\n", stats.EvaluationTime, percent(stats.EvaluationTime, stats.TotalTime))
	if len(stats.EpochTimes) > 0 {
		fmt.Fprintln(Output, "\nEpochs:")
		for i, d := range stats.EpochTimes {
			fmt.Fprintf(Output, "  Epoch %d: %v (%.1f%% of training)\n", i+1, d, percent(d, stats.TrainingTime))
		}
	}
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
