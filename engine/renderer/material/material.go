// Package material defines the Material contract the renderer draws with, the fixed-function RenderStates a
// material declares and the engine's concrete materials.
package material

import (
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
)

// MaterialType classifies a material for draw ordering.
type MaterialType int

const (
	// MaterialTypeOpaque materials are drawn first, front to back, so hidden fragments fail the depth test early.
	MaterialTypeOpaque MaterialType = iota

	// MaterialTypeTransparent materials are drawn after every opaque object, back to front.
	MaterialTypeTransparent
)

func (t MaterialType) String() string {
	if t == MaterialTypeTransparent {
		return "transparent"
	}
	return "opaque"
}

// Material is a shading algorithm the renderer can draw with without knowing its concrete type.
//
// The renderer composes the material's fragment stage with the shared vertex stage, binds the camera matrices and
// then lets the material bind everything else. Materials are immutable after construction apart from the GPU
// resources they reference.
type Material interface {
	// FragmentShader generates the fragment stage for the given lights.
	//
	// Parameters:
	//   - lights: the frame's lights, in binding order
	//
	// Returns:
	//   - shader.FragmentShader: the WGSL source and the vertex attributes it reads
	FragmentShader(lights []light.Light) shader.FragmentShader

	// UseUniforms binds every uniform and texture the fragment stage reads. It only performs binding calls and may
	// be called once per draw.
	//
	// Parameters:
	//   - program: the program composed from FragmentShader(lights)
	//   - cam: the camera being rendered from
	//   - lights: the same lights given to FragmentShader
	UseUniforms(program shader.Program, cam camera.Camera, lights []light.Light)

	// RenderStates returns the pipeline state applied before every draw with this material.
	RenderStates() RenderStates

	// MaterialType returns the draw-order classification.
	MaterialType() MaterialType
}
