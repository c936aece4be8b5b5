package engine

import (
	"math"
	"strconv"

	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

// roamTravel builds a roam entry. The area is inset so that it bounds the
// object's centre. Insect, reflect and bounce inherit velocity from the
// previous steady travel where the device does.
func (e *Engine) roamTravel(o *Object, a mio.Roam) *Travel {
	speed := velocityFor(a.Speed)
	ar := area(a.Area)
	h := o.half()
	ar.Min.X += h
	ar.Min.Y += h
	ar.Max.X -= h
	ar.Max.Y -= h

	t := &Travel{
		Kind:    TravelRoam,
		Roam:    a.Kind,
		Area:    o.fitArea(ar, o.Art.Index),
		Speed:   speed,
		Overlap: a.Overlap,
	}
	prev := o.steady()

	switch a.Kind {
	case mio.RoamInsect:
		t.Velocity = velocityOf(e.randomCompass(), speed)
		if prev.Kind == TravelRoam && prev.Roam == mio.RoamInsect {
			t.Velocity = prev.Velocity
		}
	case mio.RoamReflect:
		angle := e.rng.Float64() * 2 * math.Pi
		t.Velocity = core.V(speed*math.Cos(angle), speed*math.Sin(angle))
		if prev.Kind == TravelGoStraight && prev.Velocity.Len() > 0 {
			t.Velocity = prev.Velocity.Unit().Scale(speed)
		}
	case mio.RoamBounce:
		t.Acceleration = speed / 16
		t.Velocity = e.bounceStart(o, t, prev)
	}
	return t
}

// bounceStart returns the initial velocity of a bounce. A fresh bounce gets
// the upward speed needed to rise back to the top of the area; the sign of
// the horizontal component reproduces the device, where "left" moves right.
func (e *Engine) bounceStart(o *Object, t *Travel, prev *Travel) core.Vec {
	ar, speed := t.Area, t.Speed
	p := o.Position

	v := core.Vec{}
	if p.Y > ar.Min.Y {
		v.Y = -math.Sqrt(2 * t.Acceleration * (p.Y - ar.Min.Y))
	}
	if (p.X < ar.Min.X || p.X > ar.Max.X) && p.Y < ar.Max.Y && ar.Max.X > ar.Min.X {
		v.Y = 0
	}
	if e.rng.Intn(2) == 0 {
		v.X = speed / 2
	} else {
		v.X -= speed / 2
	}

	switch {
	case prev.Kind == TravelGoStraight:
		v = prev.Velocity
	case prev.Kind == TravelGoToPoint:
		d := prev.Position.Sub(p).Unit()
		v = core.V(d.X*speed/2, d.Y*speed)
	case prev.Kind == TravelRoam && (prev.Roam == mio.RoamBounce || prev.Roam == mio.RoamReflect):
		v = prev.Velocity
	case prev.Kind == TravelGoToObject:
		if other := e.object(prev.Index); other != nil {
			v = other.Position.Sub(p).Unit().Scale(speed)
		}
	}
	return v
}

func (e *Engine) roam(o *Object, t *Travel) {
	switch t.Roam {
	case mio.RoamWiggle:
		e.wiggle(o, t)
	case mio.RoamInsect:
		e.insect(o, t)
	case mio.RoamReflect:
		e.reflect(o, t)
	case mio.RoamBounce:
		e.bounce(o, t)
	}
}

// wiggle takes one random compass step while inside the area and heads for
// its centre otherwise. A collapsed area is widened by half the sprite so
// the object can settle on the remaining axis.
func (e *Engine) wiggle(o *Object, t *Travel) {
	inside := t.Area.Contains(o.Position)
	if !inside && t.Area.Inverted() {
		inside = t.Area.Grow(o.half()).Contains(o.Position)
	}
	if !inside {
		moveToward(o, t.Area.Centre(), t.Speed)
		return
	}

	choices := compasses[:]
	if t.Overlap == mio.OverlapAvoid {
		if free := e.freeSteps(o, t.Speed); len(free) > 0 {
			choices = free
		}
	}
	c := choices[e.rng.Intn(len(choices))]
	o.Position = o.Position.Add(velocityOf(c, t.Speed))
}

// freeSteps returns the headings whose step does not touch another object.
func (e *Engine) freeSteps(o *Object, speed float64) []mio.Compass {
	origin := o.Position
	var free []mio.Compass
	for _, c := range compasses {
		o.Position = origin.Add(velocityOf(c, speed))
		if _, hit := e.touchingOther(o); !hit {
			free = append(free, c)
		}
	}
	o.Position = origin
	return free
}

func (e *Engine) insect(o *Object, t *Travel) {
	if !t.Area.Contains(o.Position) {
		t.Velocity = velocityOf(e.randomCompass(), t.Speed)
		moveToward(o, t.Area.Centre(), t.Speed)
		return
	}
	if e.rng.Float64() < insectTurnProbability {
		t.Velocity = velocityOf(e.randomCompass(), t.Speed)
	}
	o.Position = o.Position.Add(t.Velocity)
}

func (e *Engine) reflect(o *Object, t *Travel) {
	p := &o.Position
	v := &t.Velocity
	ar := t.Area

	if t.Overlap == mio.OverlapAvoid {
		if j, hit := e.touchingOther(o); hit {
			q := e.objects[j].Position
			if p.X < q.X {
				v.X = -abs(v.X)
			}
			if p.X > q.X {
				v.X = abs(v.X)
			}
			if p.Y < q.Y {
				v.Y = -abs(v.Y)
			}
			if p.Y > q.Y {
				v.Y = abs(v.Y)
			}
		}
	}

	// A regular area keeps one step of slack so that overshooting an edge
	// reflects instead of steering back to the centre.
	reach := ar
	if !ar.Inverted() {
		reach = ar.Grow(t.Speed + 1)
	}
	if !inExtendedArea(*p, reach) {
		t.Velocity = moveToward(o, ar.Centre(), t.Speed)
		return
	}

	if math.Floor(p.X) > ar.Max.X {
		v.X = -abs(v.X)
	}
	if p.X < ar.Min.X {
		v.X = abs(v.X)
	}
	if math.Floor(p.Y) > ar.Max.Y {
		v.Y = -abs(v.Y)
	}
	if p.Y < ar.Min.Y {
		v.Y = abs(v.Y)
	}

	// Areas smaller than the object collapse to one axis.
	if p.X >= ar.Max.X && p.X <= ar.Min.X {
		v.X = 0
		v.Y = signedSpeed(v.Y, t.Speed)
	}
	if p.Y >= ar.Max.Y && p.Y <= ar.Min.Y {
		v.Y = 0
		v.X = signedSpeed(v.X, t.Speed)
	}
	*p = p.Add(*v)
}

func signedSpeed(v, speed float64) float64 {
	if v > 0 {
		return speed
	}
	return -speed
}

// inExtendedArea is Contains for regular areas. A collapsed axis only
// matches its midpoint, compared to two decimals.
func inExtendedArea(p core.Vec, a core.Area) bool {
	switch {
	case a.Min.X <= a.Max.X && a.Min.Y <= a.Max.Y:
		return a.Contains(p)
	case a.Min.X > a.Max.X:
		return sameCentimal(p.X, (a.Min.X+a.Max.X)/2) && p.Y >= a.Min.Y && p.Y <= a.Max.Y
	default:
		return p.X >= a.Min.X && p.X <= a.Max.X && sameCentimal(p.Y, (a.Min.Y+a.Max.Y)/2)
	}
}

func sameCentimal(a, b float64) bool {
	return strconv.FormatFloat(a, 'f', 2, 64) == strconv.FormatFloat(b, 'f', 2, 64)
}

// bounce applies gravity inside the area and bounces off its sides. The
// formulas keep the device's behavior, including the upward kick on landing
// on another object computed from the full area height.
func (e *Engine) bounce(o *Object, t *Travel) {
	p := &o.Position
	v := &t.Velocity
	ar := t.Area

	if t.Overlap == mio.OverlapAvoid {
		if j, hit := e.touchingOther(o); hit {
			q := e.objects[j].Position
			if abs(p.X-q.X) > abs(p.Y-q.Y) {
				if p.X < q.X {
					v.X = -abs(v.X)
				}
				if p.X > q.X {
					v.X = abs(v.X)
				}
			} else {
				if p.Y < q.Y {
					v.Y = 0
					if p.Y > ar.Min.Y {
						v.Y = -math.Sqrt(2 * t.Acceleration * (ar.Max.Y - ar.Min.Y))
					}
				}
				if p.Y > q.Y {
					v.Y = 0
				}
			}
		}
	}

	switch {
	case p.Y < ar.Min.Y:
		v.Y += abs(t.Acceleration)
	case p.Y <= ar.Max.Y:
		v.Y += t.Acceleration
	case math.Floor(p.Y) > ar.Max.Y:
		v.Y = 0
		if p.Y > ar.Min.Y {
			v.Y = -math.Sqrt(2 * t.Acceleration * (p.Y - ar.Min.Y))
		}
	}

	if math.Floor(p.X) > ar.Max.X {
		v.X = -abs(v.X)
	} else if math.Floor(p.X) < ar.Min.X {
		v.X = abs(v.X)
	}

	if ar.Min.X >= ar.Max.X {
		centre := (ar.Min.X + ar.Max.X) / 2
		h := t.Speed / 2
		if p.X > centre {
			h = -h
		}
		p.X = stepCoordinate(p.X, centre, h)
	} else {
		p.X += v.X
	}
	p.Y += v.Y
}
