package engine

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mio-arcade/internal/collision"
	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

// Engine is the runtime of one decoded game. It is not safe for concurrent
// use; the player drives it from a single goroutine.
type Engine struct {
	script *mio.GameScript
	cfg    Config
	rng    *rand.Rand
	log    *log.Logger

	objects [mio.ObjectCount]*Object
	status  mio.GameCondition
	frame   int
	frozen  bool
	raster  *collision.Raster
	events  []Event
}

// New builds the runtime state of script and places every object at its
// starting position.
func New(script *mio.GameScript, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		script: script,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		log:    cfg.Logger,
		status: mio.ConditionNotYetWon,
		raster: collision.NewRaster(CanvasWidth, CanvasHeight),
	}

	var r collision.Rasterizer
	switch {
	case cfg.Rasterizer != nil:
		r = cfg.Rasterizer
	case script.Sprites != nil:
		r = script.Sprites
	}

	for i, def := range script.Objects {
		if def == nil {
			continue
		}
		e.objects[i] = e.newObject(i, def, r)
	}
	e.placeAtStart()
	return e
}

func (e *Engine) newObject(i int, def *mio.ObjectDefinition, r collision.Rasterizer) *Object {
	o := &Object{
		Index:      i,
		Def:        def,
		Size:       def.Size,
		Travel:     []*Travel{{Kind: TravelStop}},
		Switch:     mio.SwitchIsOff,
		NextSwitch: mio.SwitchIsOff,
		masks:      collision.Set{},
	}
	for a, art := range def.Art {
		if art == nil {
			continue
		}
		if r != nil {
			o.masks.Build(r, art.Bank, def.Size, i)
		}
		frames := make([]*collision.Mask, 0, len(art.Bank))
		for _, id := range art.Bank {
			frames = append(frames, o.masks[id])
		}
		o.boxes[a] = collision.Bounds(def.Size, frames...)
	}

	start := def.Program.Start
	o.Art = ArtState{
		Index:     start.Art,
		FrameID:   -1,
		Style:     start.Style,
		Speed:     start.Speed,
		Countdown: framesFor(start.Speed),
	}
	if art := e.art(o, start.Art); art != nil {
		o.Art.FrameID = art.Bank[0]
	} else if a, ok := firstArt(def); ok {
		e.log.Warn("start art inactive", "object", i, "art", start.Art, "fallback", a)
		o.Art.Index = a
		o.Art.FrameID = def.Art[a].Bank[0]
	} else {
		e.log.Warn("object has no art", "object", i)
	}
	return o
}

func firstArt(def *mio.ObjectDefinition) (int, bool) {
	for a, art := range def.Art {
		if art != nil {
			return a, true
		}
	}
	return 0, false
}

// art returns art a of o, or nil when it is out of range or inactive.
func (e *Engine) art(o *Object, a int) *mio.ArtDefinition {
	if a < 0 || a >= len(o.Def.Art) {
		return nil
	}
	return o.Def.Art[a]
}

// object returns slot i, or nil when it is out of range, inactive or not yet
// placed.
func (e *Engine) object(i int) *Object {
	if i < 0 || i >= len(e.objects) {
		return nil
	}
	o := e.objects[i]
	if o == nil || !o.Placed {
		return nil
	}
	return o
}

// Step advances the simulation by exactly one frame using the pointer
// snapshot p.
func (e *Engine) Step(p core.Pointer) {
	old := e.status
	if !e.frozen {
		fired := e.evaluate(p)
		e.apply(fired)
		e.animate()
		e.move()
		e.settleSwitches()
		e.resolveWin(old)
		e.checkTimeout()
	}
	e.compose()
	e.frame++
}

// compose redraws the collision raster with later slots on top. The save's
// layer table cannot be located, so slot order stands in for it.
func (e *Engine) compose() {
	e.raster.Clear()
	for i, o := range e.objects {
		if o == nil || !o.Placed {
			continue
		}
		e.raster.Draw(o.sprite(), i)
	}
}

// Frame returns the number of frames simulated so far.
func (e *Engine) Frame() int { return e.frame }

// Status returns the win status.
func (e *Engine) Status() mio.GameCondition { return e.status }

// Concluded reports whether the game has settled on a win or loss.
func (e *Engine) Concluded() bool {
	return e.status == mio.ConditionHasBeenWon || e.status == mio.ConditionHasBeenLost
}

// Frozen reports whether a freeze effect stopped the simulation.
func (e *Engine) Frozen() bool { return e.frozen }

// Script returns the game being simulated.
func (e *Engine) Script() *mio.GameScript { return e.script }

// Raster returns the collision raster composed at the end of the last frame.
func (e *Engine) Raster() *collision.Raster { return e.raster }

// Object returns the runtime state of slot i, or nil for an empty slot.
func (e *Engine) Object(i int) *Object {
	if i < 0 || i >= len(e.objects) {
		return nil
	}
	return e.objects[i]
}

// EndFrame returns the frame the timer runs out on. Boss games have none.
func (e *Engine) EndFrame() (int, bool) {
	switch e.script.Length {
	case mio.LengthShort:
		return 32 * QuarterFrames / 2, true
	case mio.LengthLong:
		return 64 * QuarterFrames / 2, true
	default:
		return 0, false
	}
}

// ObjectFrame is what a renderer needs to draw one object.
type ObjectFrame struct {
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    int     `json:"size"`
	FrameID int     `json:"frame_id"`
	Art     int     `json:"art"`
	Switch  string  `json:"switch"`
	Travel  string  `json:"travel"`
}

// Snapshot is the resolved state of one frame in primitive types.
type Snapshot struct {
	Frame   int           `json:"frame"`
	Status  string        `json:"status"`
	Frozen  bool          `json:"frozen,omitempty"`
	Objects []ObjectFrame `json:"objects"`
}

// Snapshot returns the drawable state of every placed object in layer order.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{Frame: e.frame, Status: e.status.String(), Frozen: e.frozen}
	for i, o := range e.objects {
		if o == nil || !o.Placed {
			continue
		}
		s.Objects = append(s.Objects, ObjectFrame{
			Index:   i,
			X:       o.Position.X,
			Y:       o.Position.Y,
			Size:    o.Size,
			FrameID: o.Art.FrameID,
			Art:     o.Art.Index,
			Switch:  o.Switch.String(),
			Travel:  o.steady().Kind.String(),
		})
	}
	return s
}
