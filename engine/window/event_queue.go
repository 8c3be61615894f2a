package window

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// eventQueue collects the input of one frame as camera events. Platform callbacks push into it and the frame
// loop drains it once per frame.
type eventQueue struct {
	mu     sync.Mutex
	events []camera.Event

	// cursor is the last cursor position; hasCursor is false until the first move.
	cursor    mgl32.Vec2
	hasCursor bool
	// held is the button of the current drag, ButtonNone when no button is down.
	held camera.MouseButton
}

func (q *eventQueue) press(button camera.MouseButton, x, y float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.held == camera.ButtonNone {
		q.held = button
	}
	q.events = append(q.events, camera.Event{Kind: camera.EventMousePress, Button: button, Position: mgl32.Vec2{float32(x), float32(y)}})
}

func (q *eventQueue) release(button camera.MouseButton, x, y float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.held == button {
		q.held = camera.ButtonNone
	}
	q.events = append(q.events, camera.Event{Kind: camera.EventMouseRelease, Button: button, Position: mgl32.Vec2{float32(x), float32(y)}})
}

// move records a cursor move. Moves without a held button only update the cursor; consecutive drag moves with
// the same button are merged into one event.
func (q *eventQueue) move(x, y float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	pos := mgl32.Vec2{float32(x), float32(y)}
	delta := pos.Sub(q.cursor)
	first := !q.hasCursor
	q.cursor, q.hasCursor = pos, true
	if first || q.held == camera.ButtonNone {
		return
	}
	if n := len(q.events); n > 0 {
		last := &q.events[n-1]
		if last.Kind == camera.EventMouseMotion && last.Button == q.held {
			last.Position = pos
			last.Delta = last.Delta.Add(delta)
			return
		}
	}
	q.events = append(q.events, camera.Event{Kind: camera.EventMouseMotion, Button: q.held, Position: pos, Delta: delta})
}

func (q *eventQueue) scroll(yoff float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, camera.Event{Kind: camera.EventMouseWheel, Position: q.cursor, Delta: mgl32.Vec2{0, float32(yoff)}})
}

// resize records a framebuffer size change, replacing an earlier resize of the same frame.
func (q *eventQueue) resize(width, height int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e := camera.Event{Kind: camera.EventResize, Viewport: common.NewViewportAtOrigo(uint32(max(width, 0)), uint32(max(height, 0)))}
	for i := range q.events {
		if q.events[i].Kind == camera.EventResize {
			q.events = append(q.events[:i], q.events[i+1:]...)
			break
		}
	}
	q.events = append(q.events, e)
}

// drain returns the events collected since the previous drain.
func (q *eventQueue) drain() []camera.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}
