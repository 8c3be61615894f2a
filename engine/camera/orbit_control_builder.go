package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControlOption is a functional option for configuring an OrbitControl.
type OrbitControlOption func(*orbitControlImpl)

// WithOrbitTarget sets the orbit pivot.
//
// Parameters:
//   - target: world-space pivot point
//
// Returns:
//   - OrbitControlOption: functional option to set the pivot
func WithOrbitTarget(target mgl32.Vec3) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.target = target
	}
}

// WithDistanceBounds sets the zoom bounds.
//
// Parameters:
//   - minDistance: closest allowed distance (or smallest orthographic height)
//   - maxDistance: farthest allowed distance (or largest orthographic height)
//
// Returns:
//   - OrbitControlOption: functional option to set the zoom bounds
func WithDistanceBounds(minDistance, maxDistance float32) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.minDistance = minDistance
		oc.maxDistance = maxDistance
	}
}

// WithRotateSpeed sets the rotation factor applied to mouse drag deltas (scaled by the distance to the pivot).
//
// Parameters:
//   - speed: rotation factor
//
// Returns:
//   - OrbitControlOption: functional option to set the rotate speed
func WithRotateSpeed(speed float32) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.rotateSpeed = speed
	}
}

// WithPanSpeed sets the pan factor applied to mouse drag deltas (scaled by the distance to the pivot).
//
// Parameters:
//   - speed: pan factor
//
// Returns:
//   - OrbitControlOption: functional option to set the pan speed
func WithPanSpeed(speed float32) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.panSpeed = speed
	}
}

// WithZoomSpeed sets the zoom factor applied to wheel deltas.
//
// Parameters:
//   - speed: zoom factor, 0.1 zooms by 10% per wheel step
//
// Returns:
//   - OrbitControlOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) OrbitControlOption {
	return func(oc *orbitControlImpl) {
		oc.zoomSpeed = speed
	}
}
