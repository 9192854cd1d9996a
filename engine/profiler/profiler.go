// package profiler tracks frame rate and memory statistics for a render
// loop and reports them through structured logging at a fixed interval.
package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Profiler accumulates per-frame timing and publishes frame and memory stats
// once per interval. Call Tick once per rendered frame.
type Profiler struct {
	log      *slog.Logger
	interval time.Duration

	frameCount     int
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// Option configures a Profiler during construction.
type Option func(*Profiler)

// WithInterval sets how often stats are logged.
//
// Parameters:
//   - d: the reporting interval (default 1s)
//
// Returns:
//   - Option: option function to apply
func WithInterval(d time.Duration) Option {
	return func(p *Profiler) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the logger stats are written to.
//
// Parameters:
//   - log: the logger (default slog.Default())
//
// Returns:
//   - Option: option function to apply
func WithLogger(log *slog.Logger) Option {
	return func(p *Profiler) {
		if log != nil {
			p.log = log
		}
	}
}

// NewProfiler creates a Profiler reporting every second to slog.Default.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler
func NewProfiler(options ...Option) *Profiler {
	p := &Profiler{
		log:      slog.Default(),
		interval: time.Second,
		lastTime: time.Now(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick records one frame and logs stats when the interval has elapsed:
// frames per second, live heap, allocation rate, GC count and pause times.
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.interval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	start := p.lastGCCount
	if gcCount-start > 256 {
		start = gcCount - 256
	}
	for i := start; i < gcCount; i++ {
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
			maxPauseUs = pause
		}
	}

	p.log.Info("frame stats",
		"fps", fps,
		"heap_mb", allocMB,
		"alloc_mb_per_s", allocRateMB,
		"gc_count", gcCount,
		"gc_max_pause_us", maxPauseUs,
		"sys_mb", sysMB,
	)

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
