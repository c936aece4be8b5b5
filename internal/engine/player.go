package engine

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

// sessions hands out session ids unique within the process, so events of
// concurrent players can be told apart.
var sessions atomic.Uint64

// Listener receives every event raised by a Player.
type Listener func(Event)

// Player drives an Engine from an external clock. Every Load starts a new
// session; ticks carrying an older session id are ignored, which is how a
// pending frame callback is cancelled.
type Player struct {
	cfg       Config
	log       *log.Logger
	session   uint64
	engine    *Engine
	elapsed   time.Duration
	paused    bool
	listeners []Listener
}

// NewPlayer creates an idle player.
func NewPlayer(cfg Config) *Player {
	cfg = cfg.withDefaults()
	return &Player{cfg: cfg, log: cfg.Logger}
}

// Listen registers l for all future events.
func (p *Player) Listen(l Listener) {
	p.listeners = append(p.listeners, l)
}

func (p *Player) publish(events ...Event) {
	for _, ev := range events {
		ev.Session = p.session
		for _, l := range p.listeners {
			l(ev)
		}
	}
}

// Load starts a new session on script and returns its id.
func (p *Player) Load(script *mio.GameScript) uint64 {
	p.session = sessions.Add(1)
	p.engine = New(script, p.cfg)
	p.elapsed = 0
	p.paused = false
	p.log.Debug("game loaded", "name", script.Name, "length", script.Length, "session", p.session)
	p.publish(Event{Kind: EventLoaded}, Event{Kind: EventPlaying})
	return p.session
}

// Reseed sets the RNG seed used by the next Load.
func (p *Player) Reseed(seed int64) {
	p.cfg.Seed = seed
}

// Stop abandons the current session.
func (p *Player) Stop() {
	p.session = sessions.Add(1)
	p.engine = nil
}

// Session returns the live session id.
func (p *Player) Session() uint64 { return p.session }

// Engine returns the running engine, or nil when stopped.
func (p *Player) Engine() *Engine { return p.engine }

// Paused reports whether the game has ended and the clock is held.
func (p *Player) Paused() bool { return p.paused }

// Tick feeds one clock delta. At most one frame is simulated per tick, and
// only once the accumulated time has passed the current frame's deadline.
// It reports whether a frame was simulated.
func (p *Player) Tick(id uint64, delta time.Duration, ptr core.Pointer) bool {
	if id != p.session || p.engine == nil {
		return false
	}
	e := p.engine

	if p.ended() {
		if !p.paused {
			p.publish(Event{Kind: EventEnded, Frame: e.Frame()})
		}
		p.paused = true
		return false
	}
	p.paused = false

	p.elapsed += min(max(delta, 0), p.cfg.MaxFrameDelta)
	frameDelay := time.Second / time.Duration(p.cfg.FrameRate)
	if p.elapsed <= time.Duration(e.Frame())*frameDelay {
		return false
	}

	e.Step(ptr)
	end, _ := e.EndFrame()
	p.publish(e.Drain()...)
	p.publish(Event{Kind: EventFrameUpdate, Frame: e.Frame(), EndFrame: end})
	return true
}

// ended reports whether the game is over: past the timer for timed games,
// or on a 240-frame boundary after a boss game concluded.
func (p *Player) ended() bool {
	if p.cfg.Infinite {
		return false
	}
	e := p.engine
	if end, timed := e.EndFrame(); timed {
		return e.Frame() > end
	}
	return e.Concluded() && e.Frame()%BossEndInterval == 0
}
