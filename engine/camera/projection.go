package camera

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection is the tagged union of the projection modes a Camera supports.
// The only implementations are Perspective and Orthographic; use a type switch to branch on the mode.
type Projection interface {
	// Matrix builds the projection matrix for the given viewport aspect ratio.
	//
	// Parameters:
	//   - aspect: viewport width / height
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix mapping depth to [0, 1]
	Matrix(aspect float32) mgl32.Mat4

	validate() error
}

// Perspective is a perspective projection.
type Perspective struct {
	// FieldOfView is the vertical field of view in radians.
	FieldOfView float32
	// Near is the distance to the near clipping plane.
	Near float32
	// Far is the distance to the far clipping plane.
	Far float32
}

// Orthographic is an orthographic projection with a view volume centered on the view axis.
type Orthographic struct {
	// Width and Height are the extent of the view volume in world units.
	Width, Height float32
	// Depth is the distance from the camera to the far plane.
	Depth float32
}

var (
	_ Projection = Perspective{}
	_ Projection = Orthographic{}
)

func (p Perspective) Matrix(aspect float32) mgl32.Mat4 {
	return common.Perspective(p.FieldOfView, aspect, p.Near, p.Far)
}

func (p Perspective) validate() error {
	if !finite(p.FieldOfView, p.Near, p.Far) {
		return fmt.Errorf("%w: non-finite perspective parameters", ErrInvalidProjection)
	}
	if p.FieldOfView <= 0 || p.FieldOfView >= math.Pi {
		return fmt.Errorf("%w: field of view %v outside (0, pi)", ErrInvalidProjection, p.FieldOfView)
	}
	if p.Near <= 0 || p.Far <= p.Near {
		return fmt.Errorf("%w: require 0 < near < far, got near=%v far=%v", ErrInvalidProjection, p.Near, p.Far)
	}
	return nil
}

func (o Orthographic) Matrix(_ float32) mgl32.Mat4 {
	return common.Orthographic(o.Width, o.Height, o.Depth)
}

func (o Orthographic) validate() error {
	if !finite(o.Width, o.Height, o.Depth) {
		return fmt.Errorf("%w: non-finite orthographic parameters", ErrInvalidProjection)
	}
	if o.Width <= 0 || o.Height <= 0 || o.Depth <= 0 {
		return fmt.Errorf("%w: orthographic extent must be positive, got %vx%vx%v", ErrInvalidProjection, o.Width, o.Height, o.Depth)
	}
	return nil
}

func finite(values ...float32) bool {
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
