package renderer

import (
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPipeline pre-registers a single Pipeline in the renderer's pipeline cache under its key. The pipeline must
// already have been registered with the backend.
//
// Parameters:
//   - p: the Pipeline to cache
//
// Returns:
//   - RendererBuilderOption: a function that applies the pipeline option to a renderer
func WithPipeline(p pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.pipelineCache[p.PipelineKey()] = p
	}
}

// WithFrustumCulling enables or disables skipping objects whose bounding sphere lies outside the view frustum.
// Culling is enabled by default.
//
// Parameters:
//   - enabled: true to cull
//
// Returns:
//   - RendererBuilderOption: a function that applies the culling option to a renderer
func WithFrustumCulling(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.frustumCulling = enabled
	}
}

// WGPUBackendOption is a functional option applied to the WebGPU backend via NewWGPURendererBackend.
type WGPUBackendOption func(*wgpuRendererBackendImpl)

// WithPresentMode sets how frames are presented. Defaults to PresentModeVSync.
//
// Parameters:
//   - mode: the desired PresentMode
//
// Returns:
//   - WGPUBackendOption: a function that applies the present mode option to the backend
func WithPresentMode(mode PresentMode) WGPUBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		switch mode {
		case PresentModeUncapped:
			b.presentMode = wgpu.PresentModeImmediate
		default:
			b.presentMode = wgpu.PresentModeFifo
		}
	}
}

// WithMSAA sets the multisample count of the color and depth targets. Defaults to MSAA4x.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - WGPUBackendOption: a function that applies the MSAA option to the backend
func WithMSAA(count MSAASampleCount) WGPUBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		b.sampleCount = max(count, MSAAOff)
	}
}

// WithForceSoftwareRenderer requests the fallback (software) adapter.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - WGPUBackendOption: a function that applies the adapter option to the backend
func WithForceSoftwareRenderer(force bool) WGPUBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		b.forceFallbackAdapter = force
	}
}

// WithClearColor sets the color the frame is cleared to.
//
// Parameters:
//   - r, g, b, a: the clear color components in [0, 1]
//
// Returns:
//   - WGPUBackendOption: a function that applies the clear color option to the backend
func WithClearColor(r, g, b, a float64) WGPUBackendOption {
	return func(be *wgpuRendererBackendImpl) {
		be.clearColor = wgpu.Color{R: r, G: g, B: b, A: a}
	}
}
