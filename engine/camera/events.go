package camera

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// EventKind identifies the type of an input Event.
type EventKind int

const (
	// EventMouseMotion is a cursor move. Delta holds the movement in pixels since the previous event.
	EventMouseMotion EventKind = iota

	// EventMouseWheel is a scroll. Delta[1] holds the vertical scroll amount, positive away from the user.
	EventMouseWheel

	// EventMousePress is a mouse button press at Position.
	EventMousePress

	// EventMouseRelease is a mouse button release at Position.
	EventMouseRelease

	// EventResize is a change of the render target size. Viewport holds the new rectangle.
	EventResize
)

// MouseButton identifies the mouse button held during (or changed by) an Event.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Event is one input event of a per-frame batch produced by the window layer.
type Event struct {
	Kind     EventKind
	Button   MouseButton
	Position mgl32.Vec2
	Delta    mgl32.Vec2
	Viewport common.Viewport

	// Handled is set by a consumer that acted on the event so later consumers can skip it.
	Handled bool
}
