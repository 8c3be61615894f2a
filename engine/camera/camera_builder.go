package camera

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption configures a camera during NewCamera. The resulting state is validated once all options have run.
type CameraBuilderOption func(*cameraImpl)

// WithView sets the camera's position, target and up vector.
//
// Parameters:
//   - position: the eye position
//   - target: the look-at point
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's view
func WithView(position, target, up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
		c.target = target
		c.up = up
	}
}

// WithPerspective sets a perspective projection.
//
// Parameters:
//   - fieldOfView: vertical field of view in radians
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection
func WithPerspective(fieldOfView, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = Perspective{FieldOfView: fieldOfView, Near: near, Far: far}
	}
}

// WithOrthographic sets an orthographic projection.
//
// Parameters:
//   - width, height: extent of the view volume
//   - depth: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection
func WithOrthographic(width, height, depth float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = Orthographic{Width: width, Height: height, Depth: depth}
	}
}

// WithViewport sets the camera's viewport.
//
// Parameters:
//   - viewport: the viewport rectangle
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport
func WithViewport(viewport common.Viewport) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewport = viewport
	}
}
