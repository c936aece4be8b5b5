package core

// ButtonState is the per-frame phase of the pointer button.
type ButtonState int

const (
	ButtonUp ButtonState = iota
	ButtonPress
	ButtonDown
	ButtonRelease
)

// String returns a human-readable name for the state.
func (s ButtonState) String() string {
	switch s {
	case ButtonUp:
		return "Up"
	case ButtonPress:
		return "Press"
	case ButtonDown:
		return "Down"
	case ButtonRelease:
		return "Release"
	default:
		return "Unknown"
	}
}

// PointerSample is a raw observation from the input device, in canvas
// pixels.
type PointerSample struct {
	X, Y int
	Down bool
}

// Pointer is the input snapshot handed to one simulation frame.
type Pointer struct {
	X, Y  int
	State ButtonState
}

// Pressed reports whether the button went down this frame.
func (p Pointer) Pressed() bool {
	return p.State == ButtonPress
}

// PointerTracker turns samples arriving between frames into one Pointer per
// frame. A press that is released before the next frame is still reported
// as a press.
type PointerTracker struct {
	x, y    int
	down    bool
	pending bool
	state   ButtonState
}

// Observe records a sample. It may be called any number of times per frame.
func (t *PointerTracker) Observe(s PointerSample) {
	t.x, t.y = s.X, s.Y
	if s.Down && !t.down {
		t.pending = true
	}
	t.down = s.Down
}

// Frame advances the button state machine and returns the snapshot for the
// next frame.
func (t *PointerTracker) Frame() Pointer {
	pressed := t.down || t.pending
	switch t.state {
	case ButtonUp, ButtonRelease:
		if pressed {
			t.state = ButtonPress
		} else {
			t.state = ButtonUp
		}
	case ButtonDown, ButtonPress:
		switch {
		case t.pending:
			// Released and pressed again between frames.
			t.state = ButtonPress
		case t.down:
			t.state = ButtonDown
		default:
			t.state = ButtonRelease
		}
	}
	t.pending = false
	return Pointer{X: t.x, Y: t.y, State: t.state}
}

// Reset forgets all button history.
func (t *PointerTracker) Reset() {
	*t = PointerTracker{x: t.x, y: t.y}
}
