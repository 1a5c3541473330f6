// Package perfstat times a run against named checkpoints and reports
// elapsed wall-clock time and, through LogMemStats, snapshots of the Go
// runtime's memory counters (peak memory use is not tracked), logged through
// package plog the way the rest of this module logs (spec.md §5.2's
// supplemented observability: the original implementation's ad hoc
// eprintln timers, generalized into a reusable checkpoint logger).
// Grounded on _examples/haraldrudell-parl/plog's LogInstance and
// ptime's duration helpers.
package perfstat

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/surister/conecta/plog"
	"github.com/surister/conecta/plog/plib"
	"github.com/surister/conecta/ptime"
)

// checkpoint records one named instant relative to a Logger's start.
type checkpoint struct {
	label   string
	elapsed time.Duration
}

// Logger accumulates named checkpoints across a run and logs each one
// as it's reached. It is not safe for concurrent use: callers
// instrumenting extract's per-partition goroutines should check points
// from the coordinating goroutine, not from worker goroutines.
type Logger struct {
	log         *plog.LogInstance
	start       time.Time
	checkpoints []checkpoint
}

// New creates a Logger and starts its clock. It always logs to stderr
// (plog.NewLog's zero-argument behavior).
func New() (lg *Logger) {
	return &Logger{
		log:   plog.NewLog(),
		start: timeNow(),
	}
}

// Checkpoint records message at the current elapsed time and logs it
// immediately as "<message>: <elapsed>", formatted through
// ptime.Duration for a precision that shrinks as the run runs longer
// (full ns resolution below 10µs, whole seconds from 10s on, coarser
// units beyond 10 hours) rather than time.Duration's fixed-precision String.
func (lg *Logger) Checkpoint(message string) {
	var elapsed = timeNow().Sub(lg.start)
	lg.checkpoints = append(lg.checkpoints, checkpoint{label: message, elapsed: elapsed})
	lg.log.Info("%s: %s", message, ptime.Duration(elapsed))
}

// Elapsed returns the time since New, without recording a checkpoint.
func (lg *Logger) Elapsed() time.Duration {
	return timeNow().Sub(lg.start)
}

// Checkpoints returns every recorded checkpoint's label and elapsed
// time, in recording order.
func (lg *Logger) Checkpoints() (labels []string, elapsed []time.Duration) {
	labels = make([]string, len(lg.checkpoints))
	elapsed = make([]time.Duration, len(lg.checkpoints))
	for i, c := range lg.checkpoints {
		labels[i] = c.label
		elapsed[i] = c.elapsed
	}
	return
}

// LogMemStats logs one snapshot of the Go runtime's HeapAlloc, HeapSys,
// TotalAlloc and Sys counters via runtime.ReadMemStats, tagged with
// label. It does not track or report peak memory use.
func (lg *Logger) LogMemStats(label string) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	lg.log.Info(
		"%s: heap_alloc=%d heap_sys=%d total_alloc=%d sys=%d",
		label, stats.HeapAlloc, stats.HeapSys, stats.TotalAlloc, stats.Sys,
	)
}

// Slog returns an *slog.Logger backed by this Logger's underlying
// plog.LogInstance, via plib.CreateSlog — for callers (like the root
// package's ReadSQL) that want structured key=value attributes
// (partition counts, byte totals) alongside the free-text checkpoint
// log.
func (lg *Logger) Slog() *slog.Logger {
	return plib.CreateSlog(lg.log.Info)
}

// timeNow exists so this package has a single seam for "the current
// time" — extract and source never call time.Now directly, this is
// the one place that does.
func timeNow() time.Time {
	return time.Now()
}
