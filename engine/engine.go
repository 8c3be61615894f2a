// Package engine runs the viewer's frame loop: window input drives the orbit camera, and the renderer draws the
// registered objects once per frame.
package engine

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/game_object"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/profiler"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
)

var (
	// ErrNoWindow is returned by NewEngine when no window was configured.
	ErrNoWindow = errors.New("engine has no window")

	// ErrNoRenderer is returned by NewEngine when no renderer was configured.
	ErrNoRenderer = errors.New("engine has no renderer")
)

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	camera   camera.Camera
	orbit    camera.OrbitControl

	profiler         *profiler.Profiler
	profilingEnabled bool

	updateCallback func(deltaTime float32)

	objects []game_object.GameObject
	lights  []light.Light

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time

	// redrawOnChange skips frames in which nothing changed; dirty marks a pending change.
	redrawOnChange bool
	dirty          bool
}

// idleFrameDelay is how long Run waits after a skipped frame when no frame limit is set.
const idleFrameDelay = time.Second / 120

// Engine is the main entry point of the viewer.
// It owns the frame loop tying the window, the orbit camera and the renderer together.
//
// Each frame:
//  1. the window's input is polled as one batch of camera events
//  2. resize events reconfigure the renderer surface
//  3. the orbit control consumes the batch and moves the camera
//  4. the update callback runs
//  5. the renderer draws every registered object with the current lights
//
// With WithRedrawOnChange(true), step 5 only runs on the first frame and after something changed: a resize, a camera
// move from input, AddObject, RemoveObject, SetLights or RequestRedraw.
type Engine interface {
	// Window returns the underlying window.
	Window() window.Window

	// Renderer returns the renderer, e.g. to hand its backend to material constructors.
	Renderer() renderer.Renderer

	// Camera returns the camera the frame is rendered from.
	Camera() camera.Camera

	// Orbit returns the control moving the camera from mouse input.
	Orbit() camera.OrbitControl

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetUpdateCallback registers the function called each frame after input and before rendering.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds since the previous frame
	SetUpdateCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the frame loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddObject registers an object to be drawn every frame. Adding an object twice has no effect.
	//
	// Parameters:
	//   - obj: the object to draw
	AddObject(obj game_object.GameObject)

	// RemoveObject unregisters the object with the given ID. The object's model and material stay owned by the
	// caller.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - bool: true if an object was removed
	RemoveObject(id uint64) bool

	// Objects returns a copy of the registered objects in registration order.
	Objects() []game_object.GameObject

	// SetLights replaces the lights of the frame. Materials recompose their shaders when the light set changes.
	//
	// Parameters:
	//   - lights: the lights, in binding order
	SetLights(lights []light.Light)

	// Lights returns a copy of the current lights.
	Lights() []light.Light

	// RequestRedraw marks the next frame as changed. Update and key callbacks that mutate objects, materials or the
	// camera call it when redraw-on-change is enabled.
	RequestRedraw()

	// Frame runs one iteration of the frame loop.
	//
	// Returns:
	//   - renderer.FrameStats: the draw counts of the frame, zero if the frame was skipped
	//   - error: the render error, if the frame could not be drawn
	Frame() (renderer.FrameStats, error)

	// Run runs frames until the window closes or Quit is called. Render errors are logged and the loop continues.
	//
	// Returns:
	//   - error: an error if a frame panicked
	Run() error

	// Close releases the renderer's bind groups and the backend, then closes the window. Models and materials of
	// the registered objects stay owned by the caller.
	//
	// Returns:
	//   - error: the window close error, if any
	Close() error

	// Quit stops Run after the current frame.
	// Safe to call multiple times and from any goroutine; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// A window and a renderer are required. Without WithCamera a default camera sized to the window is created, and
// without WithOrbitControl an orbit control around the camera's target.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrNoWindow or ErrNoRenderer, or the camera construction error
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		mu:          &sync.Mutex{},
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(),
		dirty:       true,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, ErrNoWindow
	}
	if e.renderer == nil {
		return nil, ErrNoRenderer
	}
	if e.camera == nil {
		cam, err := camera.NewCamera(camera.WithViewport(viewportOf(e.window)))
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		e.camera = cam
	}
	if e.orbit == nil {
		e.orbit = camera.NewOrbitControl(e.camera)
	}
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Orbit() camera.OrbitControl {
	return e.orbit
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetUpdateCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.updateCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddObject(obj game_object.GameObject) {
	if obj == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if slices.ContainsFunc(e.objects, func(o game_object.GameObject) bool { return o.ID() == obj.ID() }) {
		return
	}
	e.objects = append(e.objects, obj)
	e.dirty = true
}

func (e *engine) RemoveObject(id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := slices.IndexFunc(e.objects, func(o game_object.GameObject) bool { return o.ID() == id })
	if i < 0 {
		return false
	}
	e.objects = slices.Delete(e.objects, i, i+1)
	e.dirty = true
	return true
}

func (e *engine) Objects() []game_object.GameObject {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.objects)
}

func (e *engine) SetLights(lights []light.Light) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lights = slices.Clone(lights)
	e.dirty = true
}

func (e *engine) Lights() []light.Light {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.lights)
}

func (e *engine) RequestRedraw() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dirty = true
}

func (e *engine) Frame() (renderer.FrameStats, error) {
	stats, _, err := e.frame()
	return stats, err
}

// frame runs one loop iteration and reports whether the renderer was called.
func (e *engine) frame() (renderer.FrameStats, bool, error) {
	now := time.Now()
	var dt float32
	if !e.lastFrame.IsZero() {
		dt = float32(now.Sub(e.lastFrame).Seconds())
	}
	e.lastFrame = now

	events := e.window.PollEvents()
	var changed bool
	for i := range events {
		ev := &events[i]
		if ev.Kind != camera.EventResize {
			continue
		}
		// a minimized window reports a zero framebuffer; keep the previous surface and viewport
		if ev.Viewport.Width == 0 || ev.Viewport.Height == 0 {
			ev.Handled = true
			continue
		}
		e.renderer.Resize(int(ev.Viewport.Width), int(ev.Viewport.Height))
		changed = true
	}
	moved, err := e.orbit.HandleEvents(events)
	if err != nil {
		log.Printf("[Engine] camera: %v", err)
	}
	changed = changed || moved

	e.mu.Lock()
	update := e.updateCallback
	e.mu.Unlock()
	if update != nil {
		update(dt)
	}

	e.mu.Lock()
	if e.redrawOnChange && !e.dirty && !changed {
		e.mu.Unlock()
		return renderer.FrameStats{}, false, nil
	}
	e.dirty = false
	objects := slices.Clone(e.objects)
	lights := slices.Clone(e.lights)
	profiling := e.profilingEnabled
	e.mu.Unlock()

	stats, err := e.renderer.Render(e.camera, objects, lights)
	if profiling && e.profiler != nil {
		e.profiler.Tick(stats, err)
	}
	return stats, true, err
}

func (e *engine) Run() (err error) {
	// Recover from panics inside a frame to report them instead of crashing the process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame loop recovered from panic: %v", r)
			err = fmt.Errorf("engine: frame panicked: %v", r)
			e.signalQuit()
		}
	}()

	for e.window.IsRunning() {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}

		start := time.Now()
		_, rendered, ferr := e.frame()
		if ferr != nil {
			log.Printf("[Engine] %v", ferr)
		}

		e.mu.Lock()
		limit := e.renderFrameLimit
		e.mu.Unlock()
		if !rendered && limit == 0 {
			time.Sleep(idleFrameDelay)
		}
		if limit > 0 {
			if remaining := limit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	return nil
}

func (e *engine) Close() error {
	e.signalQuit()
	e.renderer.Release()
	if b := e.renderer.Backend(); b != nil {
		b.Release()
	}
	return e.window.Close()
}

// Quit signals Run to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel. Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
