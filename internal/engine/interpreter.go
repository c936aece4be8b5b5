package engine

import (
	"github.com/vovakirdan/mio-arcade/internal/collision"
	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

// firing is an action collected during evaluation, applied afterwards on
// behalf of object.
type firing struct {
	object int
	action mio.Action
}

// evaluate runs every trigger of every instruction against the state at the
// start of the frame and collects the actions of the instructions that fire.
func (e *Engine) evaluate(p core.Pointer) []firing {
	var fired []firing
	for i, o := range e.objects {
		if o == nil {
			continue
		}
		for k, ins := range o.Def.Program.Instructions {
			if ins == nil || !e.fires(o, k, ins, p) {
				continue
			}
			for _, a := range ins.Actions {
				if a != nil {
					fired = append(fired, firing{object: i, action: a})
				}
			}
		}
	}
	return fired
}

// fires evaluates all triggers of instruction k without short-circuiting, so
// that every contact latch sees this frame.
func (e *Engine) fires(o *Object, k int, ins *mio.Instruction, p core.Pointer) bool {
	all := true
	for t, trigger := range ins.Triggers {
		if trigger == nil {
			continue
		}
		if !e.triggered(o, k, t, trigger, p) {
			all = false
		}
	}
	return all
}

func (e *Engine) triggered(o *Object, k, t int, trigger mio.Trigger, p core.Pointer) bool {
	switch tr := trigger.(type) {
	case mio.TapAnywhere:
		return p.Pressed()
	case mio.TapThisObject:
		return e.tapped(o, p)
	case mio.TimeExact:
		return e.frame == e.exactFrame(tr.When)
	case mio.TimeRandom:
		return e.randomTime(o, k, t, tr)
	case mio.Contact:
		return e.contact(o, k, t, tr)
	case mio.SwitchTrigger:
		other := e.Object(tr.Index)
		return other != nil && switchMatches(tr.When, other.Switch)
	case mio.SpecificArt:
		return o.Art.Index == tr.Index
	case mio.FinishesPlaying:
		return o.Art.Finished
	case mio.GameConditionTrigger:
		return conditionMatches(tr.When, e.status)
	default:
		e.log.Warn("unhandled trigger", "object", o.Index, "trigger", mio.TriggerName(trigger))
		return false
	}
}

// tapped reads the raster of the previous frame: the object is tapped when it
// is the topmost visible owner under a fresh press.
func (e *Engine) tapped(o *Object, p core.Pointer) bool {
	if !p.Pressed() {
		return false
	}
	owner, ok := e.raster.OwnerAt(p.X, p.Y)
	return ok && owner == o.Index
}

// resolveTime replaces the End marker with the last tick of the game.
func (e *Engine) resolveTime(t mio.Time) int {
	if t != mio.TimeEnd {
		return int(t)
	}
	if e.script.Length == mio.LengthLong {
		return 64
	}
	return 32
}

// exactFrame maps a half-second tick to its frame. Odd ticks land eight
// frames into a fifteen-frame block.
func (e *Engine) exactFrame(t mio.Time) int {
	w := e.resolveTime(t)
	if w%2 == 0 {
		return (w / 2) * QuarterFrames
	}
	return (w/2)*QuarterFrames + 8
}

// tickAt returns the tick that frame f starts, if any.
func tickAt(f int) (int, bool) {
	switch f % QuarterFrames {
	case 0:
		return (f / QuarterFrames) * 2, true
	case 8:
		return ((f-1)/QuarterFrames)*2 + 1, true
	default:
		return 0, false
	}
}

// randomTime draws uniformly among the ticks remaining in the window and
// fires when the draw lands on the current one. It fires at most once.
func (e *Engine) randomTime(o *Object, k, t int, tr mio.TimeRandom) bool {
	if o.fired[k][t] {
		return false
	}
	tick, ok := tickAt(e.frame)
	if !ok {
		return false
	}
	lo := max(e.resolveTime(tr.Start), tick)
	n := e.resolveTime(tr.End) + 1 - lo
	if n <= 0 {
		return false
	}
	if lo+e.rng.Intn(n) != tick {
		return false
	}
	o.fired[k][t] = true
	return true
}

// contact tests o against a location or another object. Touch contacts are
// edge-triggered through a per-trigger latch; overlaps are level-triggered.
func (e *Engine) contact(o *Object, k, t int, c mio.Contact) bool {
	collided := false
	if o.Placed {
		self := o.sprite()
		if c.Location {
			a := area(c.Area)
			collided = collision.Touching(self, collision.NewRegion(a.Min.X, a.Min.Y, a.Max.X, a.Max.Y))
		} else if other := e.object(c.Index); other != nil {
			collided = collision.Touching(self, other.sprite())
		}
	}

	if c.Kind == mio.ContactOverlap {
		return collided
	}
	if !collided {
		o.touching[k][t] = false
		return false
	}
	if o.touching[k][t] {
		return false
	}
	o.touching[k][t] = true
	return true
}

// switchMatches treats the Turns states as already being in the new state.
func switchMatches(when, state mio.SwitchWhen) bool {
	switch when {
	case mio.SwitchIsOn:
		return state == mio.SwitchIsOn || state == mio.SwitchTurnsOn
	case mio.SwitchIsOff:
		return state == mio.SwitchIsOff || state == mio.SwitchTurnsOff
	default:
		return when == state
	}
}

func conditionMatches(c, status mio.GameCondition) bool {
	won := status == mio.ConditionWin || status == mio.ConditionHasBeenWon
	lost := status == mio.ConditionLoss || status == mio.ConditionHasBeenLost
	switch c {
	case mio.ConditionWin:
		return status == mio.ConditionWin
	case mio.ConditionLoss:
		return status == mio.ConditionLoss
	case mio.ConditionHasBeenWon:
		return won
	case mio.ConditionHasBeenLost:
		return lost
	case mio.ConditionNotYetWon:
		return !won
	case mio.ConditionNotYetLost:
		return !lost
	default:
		return false
	}
}
