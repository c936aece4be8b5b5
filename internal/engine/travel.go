package engine

import (
	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

// pushTravel appends the queue entries produced by a travel action.
func (e *Engine) pushTravel(o *Object, action mio.TravelAction) {
	switch a := action.(type) {
	case mio.GoStraight:
		o.push(e.goStraight(o, a))
	case mio.Stop:
		o.push(&Travel{Kind: TravelStop})
	case mio.JumpToPosition:
		o.push(&Travel{Kind: TravelJumpToPosition, Position: vec(a.Position)}, &Travel{Kind: TravelStop})
	case mio.JumpToArea:
		o.push(&Travel{
			Kind:    TravelJumpToArea,
			Area:    o.fitArea(area(a.Area), o.Art.Index),
			Overlap: a.Overlap,
		}, &Travel{Kind: TravelStop})
	case mio.JumpToObject:
		o.push(&Travel{Kind: TravelAttachTo, Index: a.Index, Offset: vec(a.Offset)})
	case mio.Roam:
		o.push(e.roamTravel(o, a))
	case mio.Swap:
		o.push(&Travel{Kind: TravelSwap, Index: a.Index}, &Travel{Kind: TravelStop})
		if other := e.Object(a.Index); other != nil {
			other.push(&Travel{Kind: TravelStop})
		}
	case mio.Target:
		o.push(&Travel{
			Kind:   TravelGoToObject,
			Index:  a.Index,
			Offset: vec(a.Offset),
			Speed:  velocityFor(a.Speed),
		})
	}
}

func (e *Engine) goStraight(o *Object, a mio.GoStraight) *Travel {
	t := &Travel{Speed: velocityFor(a.Speed)}

	switch a.From.Kind {
	case mio.FromPosition:
		from := vec(a.From.Position)
		t.From = &from
	case mio.FromObject:
		if other := e.object(a.From.Index); other != nil {
			from := other.Position.Add(vec(a.From.Offset))
			t.From = &from
		} else {
			e.log.Debug("go straight origin missing", "object", o.Index, "origin", a.From.Index)
		}
	}

	switch a.Direction.Kind {
	case mio.DirectionRandom:
		t.Kind = TravelGoStraight
		t.Velocity = velocityOf(e.randomCompass(), t.Speed)
	case mio.DirectionSpecific:
		t.Kind = TravelGoStraight
		t.Velocity = velocityOf(a.Direction.Compass, t.Speed)
	default:
		t.Kind = TravelGoToPoint
		t.Position = vec(a.Direction.Position)
	}
	return t
}

func (e *Engine) randomCompass() mio.Compass {
	return compasses[e.rng.Intn(len(compasses))]
}

// move resolves every travel queue. One-shot entries run wherever they sit
// in the queue; steady entries only run when last. Attachments are resolved
// again once everything else has moved.
func (e *Engine) move() {
	for _, o := range e.objects {
		if o == nil {
			continue
		}
		last := len(o.Travel) - 1
		for n, t := range o.Travel {
			if n < last && !t.Kind.oneShot() {
				continue
			}
			e.travel(o, t)
		}
		o.Travel = []*Travel{o.steady()}
	}

	for _, o := range e.objects {
		if o == nil {
			continue
		}
		if t := o.Travel[0]; t.Kind == TravelAttachTo {
			e.attach(o, t)
		}
	}
}

func (e *Engine) travel(o *Object, t *Travel) {
	switch t.Kind {
	case TravelJumpToPosition:
		o.Position = t.Position
		o.Placed = true
	case TravelJumpToArea:
		e.jumpInto(o, t.Area, t.Overlap, e.cfg.JumpAttempts)
	case TravelSwap:
		other := e.object(t.Index)
		if other == nil || !o.Placed {
			return
		}
		o.Position, other.Position = other.Position, o.Position
	case TravelGoStraight:
		e.consumeOrigin(o, t)
		o.Position = o.Position.Add(t.Velocity)
	case TravelGoToPoint:
		e.consumeOrigin(o, t)
		moveToward(o, t.Position, t.Speed)
	case TravelGoToObject:
		if other := e.object(t.Index); other != nil {
			moveToward(o, other.Position.Add(t.Offset), t.Speed)
		}
	case TravelAttachTo:
		e.attach(o, t)
	case TravelRoam:
		e.roam(o, t)
	}
}

func (e *Engine) consumeOrigin(o *Object, t *Travel) {
	if t.From == nil {
		return
	}
	o.Position = *t.From
	o.Placed = true
	t.From = nil
}

// attach follows the anchor at its current position. A missing anchor leaves
// the object where it is.
func (e *Engine) attach(o *Object, t *Travel) bool {
	anchor := e.object(t.Index)
	if anchor == nil {
		return false
	}
	o.Position = anchor.Position.Add(t.Offset)
	o.Placed = true
	return true
}

// moveToward steps o toward target at speed without overshooting on either
// axis and returns the velocity used.
func moveToward(o *Object, target core.Vec, speed float64) core.Vec {
	v := target.Sub(o.Position).Unit().Scale(speed)
	o.Position = core.Vec{
		X: stepCoordinate(o.Position.X, target.X, v.X),
		Y: stepCoordinate(o.Position.Y, target.Y, v.Y),
	}
	return v
}

func stepCoordinate(x, target, v float64) float64 {
	if abs(x-target) > abs(v) {
		return x + v
	}
	return target
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
