package engine

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/game_object"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/profiler"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	batches  [][]camera.Event
	frames   int
	maxPolls int
	closed   bool
}

func (w *fakeWindow) PollEvents() []camera.Event {
	w.frames++
	if len(w.batches) == 0 {
		return nil
	}
	b := w.batches[0]
	w.batches = w.batches[1:]
	return b
}

func (w *fakeWindow) SetKeyDownCallback(func(uint32))            {}
func (w *fakeWindow) SetKeyUpCallback(func(uint32))              {}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool                            { return !w.closed && w.frames < w.maxPolls }
func (w *fakeWindow) Close() error                               { w.closed = true; return nil }
func (w *fakeWindow) Width() int                                 { return 640 }
func (w *fakeWindow) Height() int                                { return 480 }

type fakeRenderer struct {
	renders  int
	resizes  [][2]int
	objects  []game_object.GameObject
	lights   []light.Light
	released bool
	err      error
	onRender func()
}

func (r *fakeRenderer) Render(_ camera.Camera, objects []game_object.GameObject, lights []light.Light) (renderer.FrameStats, error) {
	r.renders++
	r.objects, r.lights = objects, lights
	if r.onRender != nil {
		r.onRender()
	}
	if r.err != nil {
		return renderer.FrameStats{}, r.err
	}
	return renderer.FrameStats{Opaque: len(objects)}, nil
}

func (r *fakeRenderer) Resize(width, height int) {
	r.resizes = append(r.resizes, [2]int{width, height})
}

func (r *fakeRenderer) Backend() renderer.Backend               { return nil }
func (r *fakeRenderer) Pipeline(string) pipeline.Pipeline       { return nil }
func (r *fakeRenderer) Pipelines() map[string]pipeline.Pipeline { return nil }
func (r *fakeRenderer) Release()                                { r.released = true }

func TestNewEngineRequiresWindowAndRenderer(t *testing.T) {
	_, err := NewEngine(WithRenderer(&fakeRenderer{}))
	assert.ErrorIs(t, err, ErrNoWindow)
	_, err = NewEngine(WithWindow(&fakeWindow{}))
	assert.ErrorIs(t, err, ErrNoRenderer)
}

func TestNewEngineDefaultsCameraToWindow(t *testing.T) {
	e, err := NewEngine(WithWindow(&fakeWindow{}), WithRenderer(&fakeRenderer{}))
	require.NoError(t, err)
	assert.Equal(t, common.NewViewportAtOrigo(640, 480), e.Camera().Viewport())
	assert.Equal(t, e.Camera().Target(), e.Orbit().Target())
}

func TestObjectsAndLights(t *testing.T) {
	obj := game_object.NewGameObject()
	e, err := NewEngine(WithWindow(&fakeWindow{}), WithRenderer(&fakeRenderer{}), WithObjects(obj))
	require.NoError(t, err)

	e.AddObject(obj)
	e.AddObject(nil)
	assert.Len(t, e.Objects(), 1)

	lights := []light.Light{light.NewLight(light.LightTypeAmbient)}
	e.SetLights(lights)
	lights[0] = nil
	assert.NotNil(t, e.Lights()[0])

	assert.True(t, e.RemoveObject(obj.ID()))
	assert.False(t, e.RemoveObject(obj.ID()))
	assert.Empty(t, e.Objects())
}

func TestFrameAppliesInputThenRenders(t *testing.T) {
	win := &fakeWindow{batches: [][]camera.Event{{
		{Kind: camera.EventResize, Viewport: common.NewViewportAtOrigo(0, 0)},
		{Kind: camera.EventResize, Viewport: common.NewViewportAtOrigo(800, 600)},
		{Kind: camera.EventMouseMotion, Button: camera.ButtonLeft, Delta: mgl32.Vec2{20, 0}},
	}}}
	r := &fakeRenderer{}
	obj := game_object.NewGameObject()
	e, err := NewEngine(WithWindow(win), WithRenderer(r), WithObjects(obj))
	require.NoError(t, err)

	start := e.Camera().Position()
	var updates int
	e.SetUpdateCallback(func(float32) { updates++ })

	stats, err := e.Frame()
	require.NoError(t, err)
	assert.Equal(t, renderer.FrameStats{Opaque: 1}, stats)
	assert.Equal(t, [][2]int{{800, 600}}, r.resizes)
	assert.Equal(t, common.NewViewportAtOrigo(800, 600), e.Camera().Viewport())
	assert.NotEqual(t, start, e.Camera().Position())
	assert.Equal(t, 1, updates)
	assert.Equal(t, []game_object.GameObject{obj}, r.objects)
}

func TestRedrawOnChangeSkipsUnchangedFrames(t *testing.T) {
	win := &fakeWindow{batches: [][]camera.Event{
		nil,
		nil,
		{{Kind: camera.EventMouseMotion, Button: camera.ButtonLeft, Delta: mgl32.Vec2{20, 0}}},
		nil,
		{{Kind: camera.EventResize, Viewport: common.NewViewportAtOrigo(0, 0)}},
		{{Kind: camera.EventResize, Viewport: common.NewViewportAtOrigo(800, 600)}},
	}}
	r := &fakeRenderer{}
	e, err := NewEngine(WithWindow(win), WithRenderer(r), WithRedrawOnChange(true))
	require.NoError(t, err)

	frame := func() {
		t.Helper()
		_, err := e.Frame()
		require.NoError(t, err)
	}

	frame()
	assert.Equal(t, 1, r.renders, "first frame is drawn")
	frame()
	assert.Equal(t, 1, r.renders)
	frame()
	assert.Equal(t, 2, r.renders, "camera moved")
	frame()
	assert.Equal(t, 2, r.renders)
	frame()
	assert.Equal(t, 2, r.renders, "zero-size resize is dropped")
	frame()
	assert.Equal(t, 3, r.renders, "resize")

	e.AddObject(game_object.NewGameObject())
	frame()
	assert.Equal(t, 4, r.renders)

	e.SetLights(nil)
	frame()
	assert.Equal(t, 5, r.renders)

	e.SetUpdateCallback(func(float32) { e.RequestRedraw() })
	frame()
	assert.Equal(t, 6, r.renders)
	e.SetUpdateCallback(nil)
	frame()
	assert.Equal(t, 6, r.renders)
}

func TestRunWithRedrawOnChangeDrawsOnce(t *testing.T) {
	win := &fakeWindow{maxPolls: 3}
	r := &fakeRenderer{}
	e, err := NewEngine(WithWindow(win), WithRenderer(r), WithRedrawOnChange(true), WithRenderFrameLimit(1000))
	require.NoError(t, err)

	require.NoError(t, e.Run())
	assert.Equal(t, 3, win.frames)
	assert.Equal(t, 1, r.renders)
}

func TestFrameReportsRenderErrorToProfiler(t *testing.T) {
	var logged int
	prof := profiler.NewProfiler(profiler.WithInterval(1), profiler.WithLogf(func(string, ...any) { logged++ }))
	r := &fakeRenderer{err: errors.New("surface lost")}
	e, err := NewEngine(WithWindow(&fakeWindow{}), WithRenderer(r), WithProfiler(prof), WithProfiling(true))
	require.NoError(t, err)

	_, err = e.Frame()
	assert.ErrorIs(t, err, r.err)
	assert.Equal(t, 1, logged)
	assert.Equal(t, 1, prof.LastReport().Errors)
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	win := &fakeWindow{maxPolls: 3}
	r := &fakeRenderer{err: errors.New("keeps going")}
	e, err := NewEngine(WithWindow(win), WithRenderer(r))
	require.NoError(t, err)

	require.NoError(t, e.Run())
	assert.Equal(t, 3, r.renders)
}

func TestQuitStopsRun(t *testing.T) {
	win := &fakeWindow{maxPolls: 100}
	r := &fakeRenderer{}
	e, err := NewEngine(WithWindow(win), WithRenderer(r))
	require.NoError(t, err)
	r.onRender = func() {
		if r.renders == 2 {
			e.Quit()
			e.Quit()
		}
	}

	require.NoError(t, e.Run())
	assert.Equal(t, 2, r.renders)
}

func TestRunRecoversFromPanic(t *testing.T) {
	win := &fakeWindow{maxPolls: 10}
	r := &fakeRenderer{onRender: func() { panic("boom") }}
	e, err := NewEngine(WithWindow(win), WithRenderer(r))
	require.NoError(t, err)

	assert.ErrorContains(t, e.Run(), "boom")
}

func TestCloseReleasesAndClosesWindow(t *testing.T) {
	win := &fakeWindow{}
	r := &fakeRenderer{}
	e, err := NewEngine(WithWindow(win), WithRenderer(r))
	require.NoError(t, err)

	require.NoError(t, e.Close())
	assert.True(t, r.released)
	assert.True(t, win.closed)
	assert.NoError(t, e.Run())
}

func TestFrameDuration(t *testing.T) {
	assert.Zero(t, frameDuration(0))
	assert.Zero(t, frameDuration(-5))
	assert.InDelta(t, 16.67e6, float64(frameDuration(60)), 1e3)
}
