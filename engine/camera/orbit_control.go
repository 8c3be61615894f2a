package camera

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitControlImpl is the implementation of OrbitControl.
// It keeps no orientation state of its own; every event is translated into a CameraControl operation.
type orbitControlImpl struct {
	control CameraControl

	// target is the orbit pivot and zoom focus.
	target mgl32.Vec3

	// Zoom bounds for the distance from target (perspective) or the view height (orthographic).
	minDistance float32
	maxDistance float32

	// rotateSpeed and panSpeed are multiplied by the distance to target, so drags feel the same at every zoom level.
	rotateSpeed float32
	panSpeed    float32
	zoomSpeed   float32
}

// OrbitControl drives a camera from mouse input: left drag orbits around the target with a fixed up vector,
// right or middle drag pans, the wheel zooms towards the target and resize events update the viewport.
type OrbitControl interface {
	// Control returns the CameraControl the orbit control issues its operations through.
	Control() CameraControl

	// Target returns the orbit pivot.
	Target() mgl32.Vec3

	// SetTarget sets the orbit pivot. The camera itself is not moved.
	//
	// Parameters:
	//   - target: the new pivot
	SetTarget(target mgl32.Vec3)

	// MinDistance returns the lower zoom bound.
	MinDistance() float32

	// MaxDistance returns the upper zoom bound.
	MaxDistance() float32

	// HandleEvents applies a frame's event batch to the camera. Events already marked Handled are skipped;
	// events the control acts on are marked Handled.
	//
	// Parameters:
	//   - events: the frame's events
	//
	// Returns:
	//   - bool: true if the camera changed, so the frame needs to be redrawn
	//   - error: the first camera validation error; events after it are left unhandled
	HandleEvents(events []Event) (bool, error)
}

var _ OrbitControl = &orbitControlImpl{}

// NewOrbitControl creates an OrbitControl for cam. The pivot defaults to the camera's current target.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the control
//
// Returns:
//   - OrbitControl: the newly created control
func NewOrbitControl(cam Camera, options ...OrbitControlOption) OrbitControl {
	oc := &orbitControlImpl{
		control:     NewCameraControl(cam),
		target:      cam.Target(),
		minDistance: 1.0,
		maxDistance: 100.0,
		rotateSpeed: 0.01,
		panSpeed:    0.001,
		zoomSpeed:   0.1,
	}
	for _, option := range options {
		option(oc)
	}
	return oc
}

func (oc *orbitControlImpl) Control() CameraControl {
	return oc.control
}

func (oc *orbitControlImpl) Target() mgl32.Vec3 {
	return oc.target
}

func (oc *orbitControlImpl) SetTarget(target mgl32.Vec3) {
	oc.target = target
}

func (oc *orbitControlImpl) MinDistance() float32 {
	return oc.minDistance
}

func (oc *orbitControlImpl) MaxDistance() float32 {
	return oc.maxDistance
}

func (oc *orbitControlImpl) HandleEvents(events []Event) (bool, error) {
	changed := false
	for i := range events {
		e := &events[i]
		if e.Handled {
			continue
		}

		before := oc.snapshot()
		handled, err := oc.handle(e)
		if err != nil {
			return changed, err
		}
		if handled {
			e.Handled = true
			if oc.snapshot() != before {
				changed = true
			}
		}
	}
	return changed, nil
}

// handle applies a single event.
//
// Parameters:
//   - e: the event
//
// Returns:
//   - bool: true if the event is one the control acts on
//   - error: the camera validation error, if any
func (oc *orbitControlImpl) handle(e *Event) (bool, error) {
	switch e.Kind {
	case EventMouseMotion:
		if e.Delta.Len() == 0 {
			return false, nil
		}
		distance := oc.target.Sub(oc.control.Position()).Len()
		switch e.Button {
		case ButtonLeft:
			speed := oc.rotateSpeed*distance + 0.001
			return true, oc.control.RotateAroundWithFixedUp(oc.target, speed*e.Delta[0], speed*e.Delta[1])
		case ButtonRight, ButtonMiddle:
			speed := oc.panSpeed * distance
			before := oc.control.Position()
			if err := oc.control.Pan(speed*e.Delta[0], speed*e.Delta[1]); err != nil {
				return true, err
			}
			// the pivot travels with the camera
			oc.target = oc.target.Add(oc.control.Position().Sub(before))
			return true, nil
		}
	case EventMouseWheel:
		if e.Delta[1] == 0 {
			return false, nil
		}
		return true, oc.control.ZoomTowards(oc.target, -e.Delta[1]*oc.zoomSpeed, oc.minDistance, oc.maxDistance)
	case EventResize:
		oc.control.SetViewport(e.Viewport)
		return true, nil
	}
	return false, nil
}

// cameraSnapshot is the comparable part of the camera state used to detect changes.
type cameraSnapshot struct {
	position, target, up mgl32.Vec3
	projection           Projection
	viewport             common.Viewport
}

func (oc *orbitControlImpl) snapshot() cameraSnapshot {
	return cameraSnapshot{
		position:   oc.control.Position(),
		target:     oc.control.Target(),
		up:         oc.control.Up(),
		projection: oc.control.Projection(),
		viewport:   oc.control.Viewport(),
	}
}
