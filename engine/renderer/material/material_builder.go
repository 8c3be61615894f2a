package material

import (
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialBuilderOption is a function that configures a surface material instance during construction.
type MaterialBuilderOption func(*surfaceMaterial)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *surfaceMaterial) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the albedo RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color mgl32.Vec4) MaterialBuilderOption {
	return func(m *surfaceMaterial) {
		m.baseColor = color
	}
}

// WithLightingModel is an option builder that sets the lighting model of the material.
//
// Parameters:
//   - model: the lighting model
//
// Returns:
//   - MaterialBuilderOption: a function that applies the lighting model option to a material
func WithLightingModel(model light.LightingModel) MaterialBuilderOption {
	return func(m *surfaceMaterial) {
		m.lightingModel = model
	}
}
