package light

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient represents light reaching every surface equally, with no position or direction.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance by the constant, linear and quadratic attenuation terms.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Attenuates with both distance and angle from the cone axis, controlled by inner and outer cone angles.
	LightTypeSpot
)

// String returns the lower-case name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return fmt.Sprintf("LightType(%d)", int(t))
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType   LightType
	position    mgl32.Vec3
	direction   mgl32.Vec3
	color       mgl32.Vec3
	intensity   float32
	attenuation mgl32.Vec3 // constant, linear, quadratic
	innerCone   float32    // stored as cos(angle in radians)
	outerCone   float32    // stored as cos(angle in radians)
}

// Light defines the interface for a light source handed to materials.
//
// All light types (ambient, directional, point, spot) share this interface; type-specific properties return
// their stored values even when the light type does not use them. A light contributes to a program through the
// WGSL function returned by ShaderSource and the uniforms bound by UseUniforms, both keyed by the light's index
// in the frame's light list.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient and directional lights.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Direction returns the normalized direction the light travels in.
	// For spot lights this is the cone axis.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized direction
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// Attenuation returns the constant, linear and quadratic distance attenuation terms.
	// The light is divided by constant + linear*d + quadratic*d*d at distance d.
	//
	// Returns:
	//   - mgl32.Vec3: the terms as (constant, linear, quadratic)
	Attenuation() mgl32.Vec3

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	// Fragments within this angle receive full intensity.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	// Fragments outside this angle receive no light from the spot.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// SetPosition sets the world-space position of the light.
	SetPosition(position mgl32.Vec3)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - direction: the direction (will be normalized)
	SetDirection(direction mgl32.Vec3)

	// SetColor sets the RGB color of the light.
	SetColor(color mgl32.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetAttenuation sets the distance attenuation terms.
	//
	// Parameters:
	//   - constant, linear, quadratic: the attenuation terms
	SetAttenuation(constant, linear, quadratic float32)

	// SetSpotCone sets the inner and outer cone half-angles for spot lights.
	// Angles are specified in degrees and stored internally as cosines.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	// ShaderSource returns the WGSL function calculate_lighting_<index> computing this light's contribution, and the
	// @oxy:uniform declarations of the uniforms it reads.
	//
	// Parameters:
	//   - index: the light's position in the light list
	//
	// Returns:
	//   - string: the WGSL source
	ShaderSource(index int) string

	// UseUniforms binds the light's uniforms for the given index.
	//
	// Parameters:
	//   - program: the program to bind to
	//   - index: the light's position in the light list
	UseUniforms(program shader.Program, index int)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:   lightType,
		direction:   mgl32.Vec3{0, -1, 0},
		color:       mgl32.Vec3{1, 1, 1},
		intensity:   1.0,
		attenuation: mgl32.Vec3{1, 0, 0},
		innerCone:   0.9063, // cos(25°)
		outerCone:   0.8192, // cos(35°)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Attenuation() mgl32.Vec3 {
	return l.attenuation
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.position = position
}

func (l *lightImpl) SetDirection(direction mgl32.Vec3) {
	l.direction = normalize(direction)
}

func (l *lightImpl) SetColor(color mgl32.Vec3) {
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetAttenuation(constant, linear, quadratic float32) {
	l.attenuation = mgl32.Vec3{constant, linear, quadratic}
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.innerCone = cosDeg(innerDeg)
	l.outerCone = cosDeg(outerDeg)
}

func (l *lightImpl) ShaderSource(index int) string {
	return renderLightSource(l.lightType, index)
}

func (l *lightImpl) UseUniforms(program shader.Program, index int) {
	program.UseUniform(UniformName(index, "color"), l.color)
	program.UseUniform(UniformName(index, "intensity"), l.intensity)
	switch l.lightType {
	case LightTypeDirectional:
		program.UseUniform(UniformName(index, "direction"), l.direction)
	case LightTypePoint:
		program.UseUniform(UniformName(index, "position"), l.position)
		program.UseUniform(UniformName(index, "attenuation"), l.attenuation)
	case LightTypeSpot:
		program.UseUniform(UniformName(index, "position"), l.position)
		program.UseUniform(UniformName(index, "direction"), l.direction)
		program.UseUniform(UniformName(index, "attenuation"), l.attenuation)
		program.UseUniform(UniformName(index, "cutoff"), l.outerCone)
		program.UseUniform(UniformName(index, "inner_cutoff"), l.innerCone)
	}
}

// UniformName returns the uniform name of a light property, e.g. UniformName(0, "color") is "light0_color".
//
// Parameters:
//   - index: the light's position in the light list
//   - property: color, intensity, direction, position, attenuation, cutoff or inner_cutoff
//
// Returns:
//   - string: the uniform name
func UniformName(index int, property string) string {
	return fmt.Sprintf("light%d_%s", index, property)
}
