package engine

import "github.com/vovakirdan/mio-arcade/internal/mio"

// EventKind identifies a notification for the audio and UI collaborators.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventPlaying
	EventFrameUpdate
	EventWon
	EventLost
	EventEnded
	EventSound
	EventScreenEffect
)

var eventNames = [...]string{
	"loaded", "playing", "frameupdate", "won", "lost", "ended", "sound", "screeneffect",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name. Unknown names are left unchanged.
func (k *EventKind) UnmarshalText(b []byte) error {
	for i, name := range eventNames {
		if name == string(b) {
			*k = EventKind(i)
			return nil
		}
	}
	return nil
}

// Event is one notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind `json:"kind"`
	Session  uint64    `json:"session,omitempty"`
	Frame    int       `json:"frame"`
	EndFrame int       `json:"end_frame,omitempty"`
	Object   int       `json:"object,omitempty"`
	Sound    string    `json:"sound,omitempty"`
	Effect   string    `json:"effect,omitempty"`
}

func (e *Engine) emit(ev Event) {
	ev.Frame = e.frame
	e.events = append(e.events, ev)
}

func (e *Engine) emitSound(i int, s mio.SoundEffect) {
	e.emit(Event{Kind: EventSound, Object: i, Sound: s.Name()})
}

// Drain returns the events raised since the previous call.
func (e *Engine) Drain() []Event {
	out := e.events
	e.events = nil
	return out
}
