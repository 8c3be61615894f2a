package engine

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/config"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
)

// NewViewer opens a window and a WebGPU renderer configured by cfg and returns the engine driving them.
// Options are applied after the configured ones, so they can replace the camera, orbit control or profiler.
//
// Parameters:
//   - cfg: a validated configuration
//   - options: additional engine options
//
// Returns:
//   - Engine: the engine
//   - error: an error if the window, the GPU device or the camera could not be created
func NewViewer(cfg config.Config, options ...EngineBuilderOption) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return nil, err
	}

	presentMode := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		presentMode = renderer.PresentModeVSync
	}
	c := cfg.Renderer.ClearColor
	backend, err := renderer.NewWGPURendererBackend(win.SurfaceDescriptor(), win.Width(), win.Height(),
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.SoftwareRenderer),
		renderer.WithClearColor(c[0], c[1], c[2], c[3]),
	)
	if err != nil {
		_ = win.Close()
		return nil, err
	}
	r := renderer.NewRenderer(backend, renderer.WithFrustumCulling(cfg.Renderer.FrustumCulling))

	// the framebuffer may be larger than the requested window size
	cam, err := camera.NewCamera(append(cfg.CameraOptions(), camera.WithViewport(viewportOf(win)))...)
	if err != nil {
		backend.Release()
		_ = win.Close()
		return nil, fmt.Errorf("engine: %w", err)
	}

	return NewEngine(append([]EngineBuilderOption{
		WithWindow(win),
		WithRenderer(r),
		WithCamera(cam),
		WithOrbitControl(camera.NewOrbitControl(cam, cfg.OrbitOptions()...)),
		WithProfiling(cfg.Window.Profiling),
		WithRedrawOnChange(cfg.Window.RedrawOnChange),
	}, options...)...)
}

func viewportOf(w window.Window) common.Viewport {
	return common.NewViewportAtOrigo(uint32(max(w.Width(), 1)), uint32(max(w.Height(), 1)))
}
