package platform

import "github.com/chibidesk/chibi/internal/model"

// Compositor creates sprite windows on the current window system.
type Compositor interface {
	// Spawn creates a window for the given instance and returns a handle to it.
	Spawn(inst model.SpriteInstance) (SpriteWindow, error)

	// Close releases the compositor and any windows still open.
	Close() error
}

// SpriteWindow is a handle to one live sprite window.
type SpriteWindow interface {
	// Show makes the window visible again after a Hide.
	Show() error

	// Hide unmaps the window so pointer input passes through to the desktop.
	Hide() error

	// Move repositions the window to absolute screen coordinates.
	Move(x, y int) error

	// SetLayer re-pins the window to a different compositor layer.
	SetLayer(layer model.Layer) error

	// SetFlag pushes a click-through or drag flag change to the window so
	// it can adjust its input handling.
	SetFlag(flag string, value bool) error

	// Close destroys the window. Events() is closed afterwards.
	Close() error

	// Events delivers input and lifecycle events from the window.
	// The channel is closed when the window is gone.
	Events() <-chan Event
}

// EventKind discriminates window events.
type EventKind int

const (
	// EventHoverEnter fires when the pointer enters the sprite.
	EventHoverEnter EventKind = iota
	// EventMoved fires when a drag finishes, carrying the new position.
	EventMoved
	// EventClosed fires when the window died outside our control.
	EventClosed
)

// Event is a single window event. X and Y are only set for EventMoved.
type Event struct {
	Kind EventKind
	X, Y int
}
