package engine

import (
	"math"

	"github.com/vovakirdan/mio-arcade/internal/collision"
	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

var canvasCentre = core.V(CanvasWidth/2, CanvasHeight/2)

// positionInArea picks an integer centre that keeps a sprite of size inside
// area. An axis too narrow for the sprite uses its midpoint.
func (e *Engine) positionInArea(a core.Area, size int) core.Vec {
	h := float64(size) / 2
	return core.Vec{
		X: e.randomAxis(a.Min.X, a.Max.X, h),
		Y: e.randomAxis(a.Min.Y, a.Max.Y, h),
	}
}

func (e *Engine) randomAxis(lo, hi, h float64) float64 {
	from, to := lo+h, hi-h
	if from > to {
		return (lo + hi) / 2
	}
	return math.Floor(from + (to-from)*e.rng.Float64())
}

// touchingOther returns the last placed object whose mask touches o.
func (e *Engine) touchingOther(o *Object) (int, bool) {
	found, hit := 0, false
	self := o.sprite()
	for j, other := range e.objects {
		if j == o.Index || other == nil || !other.Placed {
			continue
		}
		if collision.Touching(self, other.sprite()) {
			found, hit = j, true
		}
	}
	return found, hit
}

// jumpInto places o inside area. With OverlapAvoid it retries up to
// attempts times to find a spot clear of other objects and otherwise keeps
// the last attempt, so the object always ends up placed.
func (e *Engine) jumpInto(o *Object, a core.Area, overlap mio.Overlap, attempts int) {
	if overlap != mio.OverlapAvoid {
		o.Position = e.positionInArea(a, o.Size)
		o.Placed = true
		return
	}
	for n := 0; n < max(attempts, 1); n++ {
		o.Position = e.positionInArea(a, o.Size)
		o.Placed = true
		if _, hit := e.touchingOther(o); !hit {
			return
		}
	}
	e.log.Debug("no free position found", "object", o.Index, "attempts", attempts)
}

// placeAtStart resolves every start location. Attachments are resolved
// iteratively, at most AttachRetryLimit+1 passes, since anchors may
// themselves be attached. Chains that never resolve (cycles or inactive
// anchors) fall back to the encoded coordinates.
func (e *Engine) placeAtStart() {
	for _, o := range e.objects {
		if o == nil {
			continue
		}
		switch loc := o.Def.Program.Start.Location.(type) {
		case mio.StartAtPosition:
			o.Position = vec(loc.Position)
			o.Placed = true
		case mio.StartInArea:
			e.jumpInto(o, o.fitArea(area(loc.Area), o.Art.Index), loc.Overlap, e.cfg.StartJumpAttempts)
		case mio.StartAttached:
			o.Travel = []*Travel{{Kind: TravelAttachTo, Index: loc.Index, Offset: vec(loc.Offset)}}
		default:
			e.log.Warn("unknown start location, using canvas centre", "object", o.Index)
			o.Position = canvasCentre
			o.Placed = true
		}
	}

	for pass := 0; pass <= e.cfg.AttachRetryLimit && e.unplaced(); pass++ {
		for _, o := range e.objects {
			if o == nil || o.Placed {
				continue
			}
			e.attach(o, o.Travel[0])
		}
	}

	for _, o := range e.objects {
		if o == nil || o.Placed {
			continue
		}
		loc, _ := o.Def.Program.Start.Location.(mio.StartAttached)
		e.log.Warn("attachment unresolved, using encoded position",
			"object", o.Index, "anchor", loc.Index)
		o.Position = vec(loc.Position)
		o.Placed = true
	}
}

func (e *Engine) unplaced() bool {
	for _, o := range e.objects {
		if o != nil && !o.Placed {
			return true
		}
	}
	return false
}
