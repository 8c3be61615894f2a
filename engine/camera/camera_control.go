package camera

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// gimbalLimit is the largest |direction . up| a fixed-up rotation will commit. 0.999 is roughly 2.5 degrees from parallel.
const gimbalLimit = 0.999

type cameraControlImpl struct {
	camera Camera
}

// CameraControl is the navigation algebra applied on top of a Camera.
//
// Each operation computes the next view from the current camera state and its inputs, then commits it through a single
// validated Camera setter. If that setter rejects the result the error is returned and the camera keeps its previous
// state. Nothing accumulates between calls.
type CameraControl interface {
	// Camera returns the wrapped camera.
	Camera() Camera

	// Position forwards to Camera.Position.
	Position() mgl32.Vec3

	// Target forwards to Camera.Target.
	Target() mgl32.Vec3

	// Up forwards to Camera.Up.
	Up() mgl32.Vec3

	// ViewDirection forwards to Camera.ViewDirection.
	ViewDirection() mgl32.Vec3

	// RightDirection forwards to Camera.RightDirection.
	RightDirection() mgl32.Vec3

	// Projection forwards to Camera.Projection.
	Projection() Projection

	// Viewport forwards to Camera.Viewport.
	Viewport() common.Viewport

	// SetViewport forwards to Camera.SetViewport.
	SetViewport(viewport common.Viewport)

	// Translate moves position and target by delta. The view direction, the distance to target and up are unchanged.
	//
	// Parameters:
	//   - delta: world-space translation
	//
	// Returns:
	//   - error: ErrInvalidView if the translated view is not finite
	Translate(delta mgl32.Vec3) error

	// RotateAround orbits the camera around point by x to the left and y upwards, keeping the distance to point.
	// The committed up vector is recomputed from the rotated basis, so repeated calls may drift the roll.
	//
	// Parameters:
	//   - point: the pivot
	//   - x: displacement along the left direction
	//   - y: displacement along the up direction
	//
	// Returns:
	//   - error: ErrInvalidView if the rotated basis is degenerate
	RotateAround(point mgl32.Vec3, x, y float32) error

	// RotateAroundWithFixedUp orbits like RotateAround but commits the original up vector.
	// The call is a silent no-op when the view direction is, before or after the rotation, within
	// about 2.5 degrees of parallel to up.
	//
	// Parameters:
	//   - point: the pivot
	//   - x: displacement along the left direction
	//   - y: displacement along the up direction
	//
	// Returns:
	//   - error: ErrInvalidView if point coincides with the camera position or the result is rejected by SetView
	RotateAroundWithFixedUp(point mgl32.Vec3, x, y float32) error

	// Pan translates the camera in the plane orthogonal to the view direction.
	//
	// Parameters:
	//   - x: displacement along the left direction
	//   - y: displacement along the up direction
	//
	// Returns:
	//   - error: the error of the underlying Translate
	Pan(x, y float32) error

	// ZoomTowards zooms relative to point.
	// For an orthographic camera the view height changes by delta times the distance to point, clamped to
	// [minimum, maximum], and the width follows to keep the aspect ratio. For a perspective camera the camera moves
	// along the view direction to sit at clamp((delta+1) * distance, minimum, maximum) from point.
	//
	// Parameters:
	//   - point: the zoom focus
	//   - delta: relative zoom amount, negative zooms in
	//   - minimum: lower bound of the resulting height or distance
	//   - maximum: upper bound of the resulting height or distance
	//
	// Returns:
	//   - error: ErrInvalidZoomRange if minimum > maximum, or the setter's validation error
	ZoomTowards(point mgl32.Vec3, delta, minimum, maximum float32) error
}

var _ CameraControl = &cameraControlImpl{}

// NewCameraControl wraps cam in a CameraControl. The control holds a reference; mutations are visible through cam.
//
// Parameters:
//   - cam: the camera to control
//
// Returns:
//   - CameraControl: the control
func NewCameraControl(cam Camera) CameraControl {
	return &cameraControlImpl{camera: cam}
}

func (cc *cameraControlImpl) Camera() Camera {
	return cc.camera
}

func (cc *cameraControlImpl) Position() mgl32.Vec3 {
	return cc.camera.Position()
}

func (cc *cameraControlImpl) Target() mgl32.Vec3 {
	return cc.camera.Target()
}

func (cc *cameraControlImpl) Up() mgl32.Vec3 {
	return cc.camera.Up()
}

func (cc *cameraControlImpl) ViewDirection() mgl32.Vec3 {
	return cc.camera.ViewDirection()
}

func (cc *cameraControlImpl) RightDirection() mgl32.Vec3 {
	return cc.camera.RightDirection()
}

func (cc *cameraControlImpl) Projection() Projection {
	return cc.camera.Projection()
}

func (cc *cameraControlImpl) Viewport() common.Viewport {
	return cc.camera.Viewport()
}

func (cc *cameraControlImpl) SetViewport(viewport common.Viewport) {
	cc.camera.SetViewport(viewport)
}

func (cc *cameraControlImpl) Translate(delta mgl32.Vec3) error {
	return cc.camera.SetView(cc.camera.Position().Add(delta), cc.camera.Target().Add(delta), cc.camera.Up())
}

func (cc *cameraControlImpl) RotateAround(point mgl32.Vec3, x, y float32) error {
	o, err := cc.orbit(point, x, y)
	if err != nil {
		return err
	}
	return cc.camera.SetView(o.position, cc.camera.Target(), o.up)
}

func (cc *cameraControlImpl) RotateAroundWithFixedUp(point mgl32.Vec3, x, y float32) error {
	up := cc.camera.Up()
	toPoint := point.Sub(cc.camera.Position())
	if toPoint.Len() < common.Epsilon {
		return fmt.Errorf("%w: rotation pivot coincides with camera position", ErrInvalidView)
	}
	if abs(toPoint.Normalize().Dot(up)) >= gimbalLimit {
		return nil
	}
	o, err := cc.orbit(point, x, y)
	if err != nil {
		return err
	}
	if abs(o.direction.Dot(up)) >= gimbalLimit {
		return nil
	}
	return cc.camera.SetView(o.position, cc.camera.Target(), up)
}

func (cc *cameraControlImpl) Pan(x, y float32) error {
	right := cc.camera.RightDirection()
	up := right.Cross(cc.camera.ViewDirection())
	return cc.Translate(right.Mul(-x).Add(up.Mul(y)))
}

func (cc *cameraControlImpl) ZoomTowards(point mgl32.Vec3, delta, minimum, maximum float32) error {
	if minimum > maximum {
		return fmt.Errorf("%w: minimum %v greater than maximum %v", ErrInvalidZoomRange, minimum, maximum)
	}
	distance := point.Sub(cc.camera.Position()).Len()

	switch p := cc.camera.Projection().(type) {
	case Orthographic:
		height := common.Clamp(p.Height-delta*distance, minimum, maximum)
		width := height * p.Width / p.Height
		return cc.camera.SetOrthographicProjection(width, height, p.Depth)
	default:
		zoom := common.Clamp((delta+1)*distance, minimum, maximum)
		position := point.Sub(cc.camera.ViewDirection().Mul(zoom))
		return cc.camera.SetView(position, cc.camera.Target(), cc.camera.Up())
	}
}

// orbitResult is the candidate view produced by orbit before it is committed.
type orbitResult struct {
	position  mgl32.Vec3
	direction mgl32.Vec3
	up        mgl32.Vec3
}

// orbit computes the displaced camera position shared by both rotate variants.
//
// Parameters:
//   - point: the pivot
//   - x: displacement along the left direction
//   - y: displacement along the up direction
//
// Returns:
//   - orbitResult: the new position (at the original distance from point), the new unit direction to point and the
//     recomputed up vector (unit length, or zero when the basis is singular)
//   - error: ErrInvalidView if point coincides with the camera position
func (cc *cameraControlImpl) orbit(point mgl32.Vec3, x, y float32) (orbitResult, error) {
	position := cc.camera.Position()
	toPoint := point.Sub(position)
	distance := toPoint.Len()
	if distance < common.Epsilon {
		return orbitResult{}, fmt.Errorf("%w: rotation pivot coincides with camera position", ErrInvalidView)
	}

	dir := toPoint.Mul(1 / distance)
	right := dir.Cross(cc.camera.Up())
	up := right.Cross(dir)

	displaced := position.Sub(right.Mul(x)).Add(up.Mul(y))
	toPoint = point.Sub(displaced)
	if toPoint.Len() < common.Epsilon {
		return orbitResult{}, fmt.Errorf("%w: rotation moved the camera onto the pivot", ErrInvalidView)
	}
	newDir := toPoint.Normalize()

	var newUp mgl32.Vec3
	if up.Len() >= common.Epsilon {
		newUp = up.Normalize()
	}
	return orbitResult{
		position:  point.Sub(newDir.Mul(distance)),
		direction: newDir,
		up:        newUp,
	}, nil
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
