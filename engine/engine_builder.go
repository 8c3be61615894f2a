package engine

import (
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/game_object"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/profiler"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window the engine polls for input.
//
// Parameters:
//   - w: an opened Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer drawing each frame.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCamera sets the camera the frame is rendered from.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(cam camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = cam
	}
}

// WithOrbitControl sets the control that moves the camera. It must drive the camera set with WithCamera.
//
// Parameters:
//   - oc: the orbit control
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithOrbitControl(oc camera.OrbitControl) EngineBuilderOption {
	return func(e *engine) {
		e.orbit = oc
	}
}

// WithObjects registers objects during engine construction.
//
// Parameters:
//   - objects: the objects to draw
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) EngineBuilderOption {
	return func(e *engine) {
		e.objects = append(e.objects, objects...)
	}
}

// WithLights sets the initial lights.
//
// Parameters:
//   - lights: the lights, in binding order
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLights(lights ...light.Light) EngineBuilderOption {
	return func(e *engine) {
		e.lights = append(e.lights, lights...)
	}
}

// WithRedrawOnChange renders only the first frame and frames in which something changed, instead of every frame.
//
// Parameters:
//   - enabled: if true, unchanged frames are skipped
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRedrawOnChange(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.redrawOnChange = enabled
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}
