package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	projection Projection
	viewport   common.Viewport

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
	frustum              common.Frustum
}

// Camera is the viewpoint used for rendering: a view (position, target, up), a projection and a viewport.
//
// Every setter validates its input before committing anything; a rejected update leaves the camera exactly as it was.
// Because of that a Camera always has a non-degenerate view basis and a usable projection.
// A Camera is owned by one goroutine at a time and is not safe for concurrent mutation.
type Camera interface {
	// Position returns the eye position in world space.
	Position() mgl32.Vec3

	// Target returns the point the camera looks at.
	Target() mgl32.Vec3

	// Up returns the stored (unit length) up vector. It is not necessarily orthogonal to the view direction.
	Up() mgl32.Vec3

	// ViewDirection returns the unit vector from position towards target.
	//
	// Returns:
	//   - mgl32.Vec3: normalize(target - position)
	ViewDirection() mgl32.Vec3

	// RightDirection returns the unit vector pointing to the right of the view.
	//
	// Returns:
	//   - mgl32.Vec3: normalize(viewDirection x up)
	RightDirection() mgl32.Vec3

	// UpDirection returns the up vector orthogonalized against the view direction.
	//
	// Returns:
	//   - mgl32.Vec3: normalize(right x viewDirection)
	UpDirection() mgl32.Vec3

	// DistanceToTarget returns |target - position|. Always > 0.
	DistanceToTarget() float32

	// Projection returns the current projection, either Perspective or Orthographic.
	Projection() Projection

	// Viewport returns the current viewport.
	Viewport() common.Viewport

	// ViewMatrix returns the world-to-view matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the view-to-clip matrix for the current projection and viewport aspect.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	ViewProjectionMatrix() mgl32.Mat4

	// Frustum returns the world-space frustum of the current view-projection.
	Frustum() common.Frustum

	// SetView replaces position, target and up atomically.
	//
	// Parameters:
	//   - position: the new eye position
	//   - target: the new look-at point
	//   - up: the new up vector, need not be unit length
	//
	// Returns:
	//   - error: ErrInvalidView if the inputs are non-finite, position equals target,
	//     up is zero or the view direction is parallel to up
	SetView(position, target, up mgl32.Vec3) error

	// SetPerspectiveProjection switches to (or updates) a perspective projection.
	//
	// Parameters:
	//   - fieldOfView: vertical field of view in radians, in (0, pi)
	//   - near: near plane distance, > 0
	//   - far: far plane distance, > near
	//
	// Returns:
	//   - error: ErrInvalidProjection if any parameter is out of range
	SetPerspectiveProjection(fieldOfView, near, far float32) error

	// SetOrthographicProjection switches to (or updates) an orthographic projection.
	//
	// Parameters:
	//   - width, height: the extent of the view volume, > 0
	//   - depth: the far plane distance, > 0
	//
	// Returns:
	//   - error: ErrInvalidProjection if any parameter is out of range
	SetOrthographicProjection(width, height, depth float32) error

	// SetViewport replaces the viewport. The projection matrix is recomputed for the new aspect ratio.
	SetViewport(viewport common.Viewport)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera. Without options the camera sits at (0, 0, 5) looking at the
// origin with +Y up, uses a 45 degree perspective projection and a 1x1 viewport.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
//   - error: ErrInvalidView or ErrInvalidProjection if the configured state is unusable
func NewCamera(options ...CameraBuilderOption) (Camera, error) {
	c := &cameraImpl{
		position:   mgl32.Vec3{0, 0, 5},
		target:     mgl32.Vec3{0, 0, 0},
		up:         mgl32.Vec3{0, 1, 0},
		projection: Perspective{FieldOfView: mgl32.DegToRad(45), Near: 0.1, Far: 100},
		viewport:   common.NewViewportAtOrigo(1, 1),
	}
	for _, option := range options {
		option(c)
	}
	if err := validateView(c.position, c.target, c.up); err != nil {
		return nil, err
	}
	if err := c.projection.validate(); err != nil {
		return nil, err
	}
	c.up = c.up.Normalize()
	c.updateMatrices()
	return c, nil
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) ViewDirection() mgl32.Vec3 {
	return c.target.Sub(c.position).Normalize()
}

func (c *cameraImpl) RightDirection() mgl32.Vec3 {
	return c.ViewDirection().Cross(c.up).Normalize()
}

func (c *cameraImpl) UpDirection() mgl32.Vec3 {
	dir := c.ViewDirection()
	return dir.Cross(c.up).Normalize().Cross(dir).Normalize()
}

func (c *cameraImpl) DistanceToTarget() float32 {
	return c.target.Sub(c.position).Len()
}

func (c *cameraImpl) Projection() Projection {
	return c.projection
}

func (c *cameraImpl) Viewport() common.Viewport {
	return c.viewport
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	return c.frustum
}

func (c *cameraImpl) SetView(position, target, up mgl32.Vec3) error {
	if err := validateView(position, target, up); err != nil {
		return err
	}
	c.position = position
	c.target = target
	c.up = up.Normalize()
	c.updateMatrices()
	return nil
}

func (c *cameraImpl) SetPerspectiveProjection(fieldOfView, near, far float32) error {
	return c.setProjection(Perspective{FieldOfView: fieldOfView, Near: near, Far: far})
}

func (c *cameraImpl) SetOrthographicProjection(width, height, depth float32) error {
	return c.setProjection(Orthographic{Width: width, Height: height, Depth: depth})
}

func (c *cameraImpl) SetViewport(viewport common.Viewport) {
	c.viewport = viewport
	c.updateMatrices()
}

// setProjection validates and commits a projection.
func (c *cameraImpl) setProjection(p Projection) error {
	if err := p.validate(); err != nil {
		return err
	}
	c.projection = p
	c.updateMatrices()
	return nil
}

// updateMatrices recomputes the view, projection and view-projection matrices and the frustum.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)
	c.projectionMatrix = c.projection.Matrix(c.viewport.Aspect())
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.frustum = common.ExtractFrustumFromMatrix(c.viewProjectionMatrix)
}

// validateView checks that position, target and up describe a non-degenerate view basis.
//
// Parameters:
//   - position: candidate eye position
//   - target: candidate look-at point
//   - up: candidate up vector
//
// Returns:
//   - error: nil if the view is usable, otherwise an error wrapping ErrInvalidView
func validateView(position, target, up mgl32.Vec3) error {
	if !common.IsFinite(position) || !common.IsFinite(target) || !common.IsFinite(up) {
		return fmt.Errorf("%w: non-finite component", ErrInvalidView)
	}
	dir := target.Sub(position)
	if dir.Len() < common.Epsilon {
		return fmt.Errorf("%w: position and target coincide at %v", ErrInvalidView, position)
	}
	if up.Len() < common.Epsilon {
		return fmt.Errorf("%w: up vector has zero length", ErrInvalidView)
	}
	if dir.Normalize().Cross(up.Normalize()).Len() < common.Epsilon {
		return fmt.Errorf("%w: view direction %v is parallel to up %v", ErrInvalidView, dir, up)
	}
	return nil
}
