package engine

import (
	"math"

	"github.com/vovakirdan/mio-arcade/internal/collision"
	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

// TravelKind is the movement mode of one travel queue entry.
type TravelKind int

const (
	TravelStop TravelKind = iota
	TravelGoStraight
	TravelGoToPoint
	TravelGoToObject
	TravelRoam
	TravelAttachTo
	TravelJumpToPosition
	TravelJumpToArea
	TravelSwap
)

var travelNames = [...]string{
	"Stop", "GoStraight", "GoToPoint", "GoToObject", "Roam",
	"AttachTo", "JumpToPosition", "JumpToArea", "Swap",
}

func (k TravelKind) String() string {
	if int(k) < len(travelNames) {
		return travelNames[k]
	}
	return "Unknown"
}

// oneShot reports whether an entry runs even when it is not the last one in
// the queue.
func (k TravelKind) oneShot() bool {
	switch k {
	case TravelJumpToPosition, TravelJumpToArea, TravelSwap, TravelAttachTo:
		return true
	}
	return false
}

// Travel is one entry of an object's travel queue. Entries are mutated in
// place while they stay in the queue.
type Travel struct {
	Kind TravelKind

	Velocity     core.Vec
	From         *core.Vec // Pending origin, consumed on first move
	Position     core.Vec  // GoToPoint target or JumpToPosition destination
	Index        int       // Referenced object
	Offset       core.Vec
	Speed        float64
	Area         core.Area
	Overlap      mio.Overlap
	Roam         mio.RoamKind
	Acceleration float64
}

// ArtState is the playback state of the object's current art.
type ArtState struct {
	Index     int
	Animation int
	FrameID   int // Bank frame shown, -1 when the object has no art
	Style     mio.AnimationStyle
	Speed     mio.Speed
	Countdown int
	Finished  bool
}

// Object is the runtime state of one populated slot.
type Object struct {
	Index    int
	Def      *mio.ObjectDefinition
	Position core.Vec
	Placed   bool
	Size     int
	Art      ArtState
	Travel   []*Travel

	Switch     mio.SwitchWhen
	NextSwitch mio.SwitchWhen

	touching [mio.InstructionCount][mio.TriggerCount]bool
	fired    [mio.InstructionCount][mio.TriggerCount]bool

	masks collision.Set
	boxes [mio.ArtCount]collision.Box
}

func (o *Object) half() float64 {
	return float64(o.Size) / 2
}

// steady returns the last travel entry.
func (o *Object) steady() *Travel {
	return o.Travel[len(o.Travel)-1]
}

func (o *Object) push(t ...*Travel) {
	o.Travel = append(o.Travel, t...)
}

// sprite returns the collision shape of the current frame.
func (o *Object) sprite() collision.Sprite {
	return collision.Sprite{
		Mask: o.masks[o.Art.FrameID],
		X:    o.Position.X,
		Y:    o.Position.Y,
		Size: o.Size,
	}
}

// box returns the visible box of art a, or the full sprite for missing art.
func (o *Object) box(a int) collision.Box {
	if a < 0 || a >= len(o.boxes) || o.Def.Art[a] == nil {
		return collision.Box{MaxX: o.Size, MaxY: o.Size}
	}
	return o.boxes[a]
}

// fitArea shifts area so that the visible part of art a, rather than the
// whole sprite square, is kept inside it.
func (o *Object) fitArea(area core.Area, a int) core.Area {
	b := o.box(a)
	size := float64(o.Size)
	area.Min.X -= float64(b.MinX)
	area.Min.Y -= float64(b.MinY)
	area.Max.X += size - float64(b.MaxX)
	area.Max.Y += size - float64(b.MaxY)
	return area
}

func vec(p mio.Point) core.Vec {
	return core.Vec{X: float64(p.X), Y: float64(p.Y)}
}

func area(a mio.Area) core.Area {
	return core.Area{Min: vec(a.Min), Max: vec(a.Max)}
}

// velocityOf returns the unit heading of c scaled to speed.
func velocityOf(c mio.Compass, speed float64) core.Vec {
	diagonal := speed / math.Sqrt2
	switch c {
	case mio.North:
		return core.V(0, -speed)
	case mio.NorthEast:
		return core.V(diagonal, -diagonal)
	case mio.East:
		return core.V(speed, 0)
	case mio.SouthEast:
		return core.V(diagonal, diagonal)
	case mio.South:
		return core.V(0, speed)
	case mio.SouthWest:
		return core.V(-diagonal, diagonal)
	case mio.West:
		return core.V(-speed, 0)
	default:
		return core.V(-diagonal, -diagonal)
	}
}

var compasses = [...]mio.Compass{
	mio.North, mio.NorthEast, mio.East, mio.SouthEast,
	mio.South, mio.SouthWest, mio.West, mio.NorthWest,
}

// velocityFor maps a speed step to pixels per frame.
func velocityFor(s mio.Speed) float64 {
	switch s {
	case mio.SpeedSlowest:
		return 0.5
	case mio.SpeedSlow:
		return 1
	case mio.SpeedNormal:
		return 1.5
	case mio.SpeedFast:
		return 3
	default:
		return 6
	}
}

// framesFor maps a speed step to frames per animation image.
func framesFor(s mio.Speed) int {
	switch s {
	case mio.SpeedSlowest:
		return 60
	case mio.SpeedSlow:
		return 30
	case mio.SpeedNormal:
		return 15
	case mio.SpeedFast:
		return 8
	default:
		return 4
	}
}
