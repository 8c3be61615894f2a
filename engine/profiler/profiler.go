// Package profiler logs per-interval frame statistics of the viewer loop.
package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
)

// Report is the summary of one profiling interval.
type Report struct {
	// FPS is the number of frames per second over the interval.
	FPS float64
	// AvgOpaque and AvgTransparent are the mean draw counts per frame.
	AvgOpaque, AvgTransparent float64
	// Culled and Skipped are the totals over the interval.
	Culled, Skipped int
	// Errors is the number of frames that failed to render.
	Errors int
	// HeapMB is the live heap at the end of the interval.
	HeapMB float64
	// AllocRateMB is the heap allocation rate in MB per second.
	AllocRateMB float64
	// GCCount is the cumulative number of garbage collections.
	GCCount uint32
}

// Profiler tracks frame rate, draw counts and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	errorCount     int
	opaque         int
	transparent    int
	culled         int
	skipped        int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64

	now    func() time.Time
	logf   func(format string, args ...any)
	report Report
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: variadic list of ProfilerOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logf:           log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame with the frame's draw statistics, or with the error that made the frame
// fail. Logs a summary when the update interval has elapsed.
//
// Parameters:
//   - stats: the frame's draw counts
//   - err: the frame's render error, if any
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(stats renderer.FrameStats, err error) bool {
	p.frameCount++
	if err != nil {
		p.errorCount++
	}
	p.opaque += stats.Opaque
	p.transparent += stats.Transparent
	p.culled += stats.Culled
	p.skipped += stats.Skipped

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	frames := float64(p.frameCount)
	p.report = Report{
		FPS:            frames / elapsed.Seconds(),
		AvgOpaque:      float64(p.opaque) / frames,
		AvgTransparent: float64(p.transparent) / frames,
		Culled:         p.culled,
		Skipped:        p.skipped,
		Errors:         p.errorCount,
		HeapMB:         float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:    float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:        p.memStats.NumGC,
	}

	p.logf("[Profiler] FPS: %.2f | Draws: %.1f opaque, %.1f transparent | Culled: %d | Skipped: %d | Errors: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		p.report.FPS, p.report.AvgOpaque, p.report.AvgTransparent, p.report.Culled, p.report.Skipped, p.report.Errors,
		p.report.HeapMB, p.report.AllocRateMB, p.report.GCCount)

	p.frameCount, p.errorCount = 0, 0
	p.opaque, p.transparent, p.culled, p.skipped = 0, 0, 0, 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// LastReport returns the summary logged by the most recent interval.
func (p *Profiler) LastReport() Report {
	return p.report
}
