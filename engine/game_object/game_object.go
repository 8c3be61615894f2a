package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-view/engine/model"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// nextID hands out object IDs when none is given.
var nextID atomic.Uint64

type gameObject struct {
	id       uint64
	enabled  atomic.Bool
	mdl      model.Model
	material material.Material

	position mgl32.Vec3
	rotation mgl32.Vec3 // Euler angles in degrees, applied x then y then z
	scale    mgl32.Vec3
}

// GameObject is a drawable: a Model drawn with a Material under a position, rotation and scale transform.
// The renderer reads it every frame; it is not safe for concurrent mutation while a frame renders.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Material returns the Material the object is drawn with, or nil if not set.
	Material() material.Material

	// Position returns the world-space translation.
	Position() mgl32.Vec3

	// Rotation returns the Euler rotation in degrees.
	Rotation() mgl32.Vec3

	// Scale returns the per-axis scale.
	Scale() mgl32.Vec3

	// ModelMatrix returns translation * rotation * scale.
	//
	// Returns:
	//   - mgl32.Mat4: the model-to-world matrix
	ModelMatrix() mgl32.Mat4

	// WorldCenter returns the center of the model's bounding box in world space, or Position without a model.
	WorldCenter() mgl32.Vec3

	// WorldRadius returns a radius around WorldCenter that encloses the transformed model.
	WorldRadius() float32

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetMaterial assigns the Material the object is drawn with.
	//
	// Parameters:
	//   - m: the Material
	SetMaterial(m material.Material)

	// SetPosition sets the world-space translation.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles in degrees
	SetRotation(rx, ry, rz float32)

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject with an identity transform, configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		id:    nextID.Add(1),
		scale: mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	return g.material
}

func (g *gameObject) Position() mgl32.Vec3 {
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	return g.rotation
}

func (g *gameObject) Scale() mgl32.Vec3 {
	return g.scale
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	rotation := mgl32.HomogRotate3DZ(mgl32.DegToRad(g.rotation[2])).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(g.rotation[1]))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(g.rotation[0])))
	return mgl32.Translate3D(g.position[0], g.position[1], g.position[2]).
		Mul4(rotation).
		Mul4(mgl32.Scale3D(g.scale[0], g.scale[1], g.scale[2]))
}

func (g *gameObject) WorldCenter() mgl32.Vec3 {
	if g.mdl == nil {
		return g.position
	}
	return mgl32.TransformCoordinate(g.mdl.Bounds().Center(), g.ModelMatrix())
}

func (g *gameObject) WorldRadius() float32 {
	if g.mdl == nil {
		return 0
	}
	s := max(abs(g.scale[0]), abs(g.scale[1]), abs(g.scale[2]))
	return g.mdl.Bounds().Radius() * s
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.material = m
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.rotation = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.scale = mgl32.Vec3{sx, sy, sz}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
