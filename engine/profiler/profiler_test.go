package profiler

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestTickLogsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var lines []string
	p := NewProfiler(WithClock(clock.now), WithLogf(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}))

	for i := 0; i < 9; i++ {
		clock.t = clock.t.Add(100 * time.Millisecond)
		assert.False(t, p.Tick(renderer.FrameStats{Opaque: 2, Transparent: 1, Culled: 1}, nil))
	}
	clock.t = clock.t.Add(100 * time.Millisecond)
	require.True(t, p.Tick(renderer.FrameStats{Opaque: 4, Transparent: 1, Culled: 1}, errors.New("lost")))

	report := p.LastReport()
	assert.InDelta(t, 10, report.FPS, 1e-9)
	assert.InDelta(t, 2.2, report.AvgOpaque, 1e-9)
	assert.InDelta(t, 1, report.AvgTransparent, 1e-9)
	assert.Equal(t, 10, report.Culled)
	assert.Equal(t, 1, report.Errors)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[Profiler] FPS: 10.00")

	clock.t = clock.t.Add(100 * time.Millisecond)
	assert.False(t, p.Tick(renderer.FrameStats{}, nil))
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
	p = NewProfiler(WithInterval(250 * time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, p.updateInterval)
}
