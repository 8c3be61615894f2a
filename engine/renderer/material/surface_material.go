package material

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed assets/surface_material.wgsl
var surfaceMaterialSource string

// surfaceMaterial is the implementation of the SurfaceMaterial interface.
type surfaceMaterial struct {
	name          string
	baseColor     mgl32.Vec4
	lightingModel light.LightingModel
}

// SurfaceMaterial shades a mesh surface with a uniform base color lit by the frame's lights.
// A base color with alpha below one makes the material transparent.
type SurfaceMaterial interface {
	Material

	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo RGBA color of the material.
	//
	// Returns:
	//   - mgl32.Vec4: the base color as RGBA values
	BaseColor() mgl32.Vec4

	// LightingModel returns the lighting model used to shade the surface.
	LightingModel() light.LightingModel
}

var _ SurfaceMaterial = &surfaceMaterial{}

// NewSurfaceMaterial creates a new SurfaceMaterial instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - SurfaceMaterial: a new SurfaceMaterial instance
func NewSurfaceMaterial(options ...MaterialBuilderOption) SurfaceMaterial {
	m := &surfaceMaterial{
		baseColor:     mgl32.Vec4{1, 1, 1, 1},
		lightingModel: light.LightingModelBlinn,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *surfaceMaterial) Name() string {
	return m.name
}

func (m *surfaceMaterial) BaseColor() mgl32.Vec4 {
	return m.baseColor
}

func (m *surfaceMaterial) LightingModel() light.LightingModel {
	return m.lightingModel
}

func (m *surfaceMaterial) FragmentShader(lights []light.Light) shader.FragmentShader {
	return shader.FragmentShader{
		Source:     light.ShaderSource(lights, m.lightingModel) + surfaceMaterialSource,
		Attributes: shader.FragmentAttributes{Position: true, Normal: true},
	}
}

func (m *surfaceMaterial) UseUniforms(program shader.Program, cam camera.Camera, lights []light.Light) {
	light.UseUniforms(program, lights)
	program.UseUniform("cameraPosition", cam.Position())
	program.UseUniform("baseColor", m.baseColor)
}

func (m *surfaceMaterial) RenderStates() RenderStates {
	states := DefaultRenderStates()
	states.Cull = CullBack
	if m.MaterialType() == MaterialTypeTransparent {
		states.Blend = BlendTransparency
		states.WriteMask = WriteMaskColor
	}
	return states
}

func (m *surfaceMaterial) MaterialType() MaterialType {
	if m.baseColor.W() < 1 {
		return MaterialTypeTransparent
	}
	return MaterialTypeOpaque
}
