package trace

import (
	"github.com/vovakirdan/mio-arcade/internal/engine"
)

// Recorder writes a frame for every FrameUpdate a player publishes. Events
// seen since the previous update are attached to the frame.
type Recorder struct {
	w       *Writer
	player  *engine.Player
	session uint64
	pending []engine.Event
	err     error
}

// Record subscribes a recorder to the current session of p.
func Record(w *Writer, p *engine.Player) *Recorder {
	r := &Recorder{w: w, player: p, session: p.Session()}
	p.Listen(r.handle)
	return r
}

func (r *Recorder) handle(ev engine.Event) {
	if ev.Session != r.session || r.err != nil {
		return
	}
	if ev.Kind != engine.EventFrameUpdate {
		r.pending = append(r.pending, ev)
		return
	}
	e := r.player.Engine()
	if e == nil {
		return
	}
	r.err = r.w.WriteFrame(Frame{Snapshot: e.Snapshot(), Events: r.pending})
	r.pending = nil
}

// Err returns the first write error.
func (r *Recorder) Err() error { return r.err }
