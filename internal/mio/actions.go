package mio

import "fmt"

// Action is one effect of an instruction.
type Action interface {
	actionName() string
}

// TravelAction is implemented by every action that replaces the object's
// movement.
type TravelAction interface {
	Action
	travel()
}

// FromKind selects where a GoStraight starts.
type FromKind uint8

const (
	FromCurrent FromKind = iota
	FromPosition
	FromObject
)

// From is the origin of a GoStraight travel.
type From struct {
	Kind     FromKind
	Position Point
	Index    int
	Offset   Point
}

// DirectionKind selects how a GoStraight direction is chosen.
type DirectionKind uint8

const (
	DirectionRandom DirectionKind = iota
	DirectionLocation
	DirectionSpecific
)

// Compass is one of the eight fixed headings, clockwise from north.
type Compass uint8

const (
	North Compass = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var compassNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (c Compass) String() string {
	if int(c) < len(compassNames) {
		return compassNames[c]
	}
	return "?"
}

// Direction is the heading of a GoStraight travel.
type Direction struct {
	Kind     DirectionKind
	Position Point
	Compass  Compass
}

// GoStraight moves at constant velocity, optionally from another origin.
type GoStraight struct {
	From      From
	Direction Direction
	Speed     Speed
}

// Stop halts the object.
type Stop struct{}

// JumpToPosition teleports the object.
type JumpToPosition struct {
	Position Point
}

// JumpToArea teleports the object to a random point in Area.
type JumpToArea struct {
	Area    Area
	Overlap Overlap
}

// JumpToObject attaches the object to another one.
type JumpToObject struct {
	Index  int
	Offset Point
}

// Swap exchanges positions with another object.
type Swap struct {
	Index int
}

// RoamKind is the sub-mode of a Roam travel.
type RoamKind uint8

const (
	RoamWiggle RoamKind = iota
	RoamInsect
	RoamReflect
	RoamBounce
)

func (r RoamKind) String() string {
	switch r {
	case RoamWiggle:
		return "Wiggle"
	case RoamInsect:
		return "Insect"
	case RoamReflect:
		return "Reflect"
	default:
		return "Bounce"
	}
}

// Roam keeps the object moving inside Area.
type Roam struct {
	Kind    RoamKind
	Area    Area
	Overlap Overlap
	Speed   Speed
}

// Target follows another object at Offset.
type Target struct {
	Index  int
	Offset Point
	Speed  Speed
}

// SetSwitch asks for the object's switch to flip.
type SetSwitch struct {
	To Switch
}

// Lose ends the game as lost.
type Lose struct{}

// ChangeArt restarts playback with another art bank.
type ChangeArt struct {
	Index int
	Style AnimationStyle
	Speed Speed
}

// StopPlaying freezes the current animation.
type StopPlaying struct{}

// SoundEffect plays one of the built-in sounds.
type SoundEffect struct {
	Effect int
}

// Name returns the sound's identifier, or "" when out of range.
func (s SoundEffect) Name() string {
	if s.Effect >= 0 && s.Effect < len(soundNames) {
		return soundNames[s.Effect]
	}
	return ""
}

// ScreenEffectKind is a whole-screen effect.
type ScreenEffectKind uint8

const (
	EffectFlash ScreenEffectKind = iota
	EffectShake
	EffectConfetti
	EffectFreeze
)

func (e ScreenEffectKind) String() string {
	switch e {
	case EffectFlash:
		return "Flash"
	case EffectShake:
		return "Shake"
	case EffectConfetti:
		return "Confetti"
	default:
		return "Freeze"
	}
}

// ScreenEffect applies a whole-screen effect.
type ScreenEffect struct {
	Effect ScreenEffectKind
}

func (GoStraight) actionName() string     { return "GoStraight" }
func (Stop) actionName() string           { return "Stop" }
func (JumpToPosition) actionName() string { return "JumpToPosition" }
func (JumpToArea) actionName() string     { return "JumpToArea" }
func (JumpToObject) actionName() string   { return "JumpToObject" }
func (Swap) actionName() string           { return "Swap" }
func (Roam) actionName() string           { return "Roam" }
func (Target) actionName() string         { return "Target" }
func (SetSwitch) actionName() string      { return "Switch" }
func (Lose) actionName() string           { return "Lose" }
func (ChangeArt) actionName() string      { return "ChangeArt" }
func (StopPlaying) actionName() string    { return "StopPlaying" }
func (SoundEffect) actionName() string    { return "SoundEffect" }
func (ScreenEffect) actionName() string   { return "ScreenEffect" }

func (GoStraight) travel()     {}
func (Stop) travel()           {}
func (JumpToPosition) travel() {}
func (JumpToArea) travel()     {}
func (JumpToObject) travel()   {}
func (Swap) travel()           {}
func (Roam) travel()           {}
func (Target) travel()         {}

// ActionName returns the variant name of a, or "None" for a nil action.
func ActionName(a Action) string {
	if a == nil {
		return "None"
	}
	return a.actionName()
}

type actionDecoder struct {
	mask, value byte
	decode      func(r record) (Action, error)
}

// actionTable is checked in order; the first matching entry wins.
var actionTable = []actionDecoder{
	{0xFF, 0x01, decodeGoStraight},
	{0xFF, 0x11, func(record) (Action, error) { return Stop{}, nil }},
	{0xFF, 0x21, decodeJump},
	{0xFF, 0x31, func(r record) (Action, error) { return Swap{Index: lo(r.at(1))}, nil }},
	{0xFF, 0x41, decodeRoam},
	{0xFF, 0x51, decodeTarget},
	{0xFF, 0x02, func(record) (Action, error) { return SetSwitch{To: SwitchOn}, nil }},
	{0xFF, 0x12, func(record) (Action, error) { return SetSwitch{To: SwitchOff}, nil }},
	{0x0F, 0x03, func(record) (Action, error) { return Lose{}, nil }},
	{0xFF, 0x04, decodeChangeArt},
	{0xFF, 0x14, func(record) (Action, error) { return StopPlaying{}, nil }},
	{0x0F, 0x05, func(r record) (Action, error) {
		return SoundEffect{Effect: hi(r.at(0))*8 + hi(r.at(1))}, nil
	}},
	{0xFF, 0x06, func(record) (Action, error) { return ScreenEffect{Effect: EffectFlash}, nil }},
	{0xFF, 0x16, func(record) (Action, error) { return ScreenEffect{Effect: EffectShake}, nil }},
	{0xFF, 0x26, func(record) (Action, error) { return ScreenEffect{Effect: EffectConfetti}, nil }},
	{0xFF, 0x36, func(record) (Action, error) { return ScreenEffect{Effect: EffectFreeze}, nil }},
}

func decodeAction(r record) (Action, error) {
	tag := r.at(0)
	for _, d := range actionTable {
		if tag&d.mask == d.value {
			return d.decode(r)
		}
	}
	if tag == 0 {
		return nil, nil
	}
	return nil, errUnknownTag
}

// speedFromDigit maps 0-3 to Slowest..Fast; anything else is Fastest.
func speedFromDigit(d int) Speed {
	if d >= 0 && d < int(SpeedFastest) {
		return Speed(d)
	}
	return SpeedFastest
}

// styleFromDigit maps 0 to Hold and 1 to PlayOnce; anything else loops.
func styleFromDigit(d int) AnimationStyle {
	switch d {
	case 0:
		return StyleHold
	case 1:
		return StylePlayOnce
	default:
		return StyleLoop
	}
}

func commonPosition(r record, o int) Point {
	return commonPositionLayout.Decode(r.window(o, 4))
}

func decodeGoStraight(r record) (Action, error) {
	g := GoStraight{Speed: speedFromDigit(int(r.at(7) >> 6))}
	if r.at(8) == 1 {
		g.Speed = SpeedFastest
	}

	position := goStraightPositionLayout.Decode(r.window(2, 3))
	b1 := r.at(1)
	switch {
	case lo(b1) == 0:
		g.From = From{Kind: FromCurrent}
	case lo(b1) == 1:
		g.From = From{Kind: FromPosition, Position: position}
	case b1&0x05 == 0x05:
		g.From = From{Kind: FromObject, Index: hi(b1), Offset: position.Sub(canvasCentre)}
	default:
		return nil, fmt.Errorf("unknown origin 0x%02X", b1)
	}

	b4 := r.at(4)
	switch {
	case b4 == 0x10:
		g.Direction = Direction{Kind: DirectionRandom}
	case b4&0x20 != 0:
		g.Direction = Direction{Kind: DirectionLocation, Position: commonPosition(r, 4)}
	default:
		heading := int(r.at(7)%0x40) / 4
		if heading > int(NorthWest) {
			return nil, fmt.Errorf("unknown heading %d", heading)
		}
		g.Direction = Direction{Kind: DirectionSpecific, Compass: Compass(heading)}
	}
	return g, nil
}

func decodeJump(r record) (Action, error) {
	// Only bits 0 and 4 of the mode byte are significant.
	mode := r.at(1) & 0x11
	position := commonPosition(r, 2)
	switch {
	case mode == 0:
		return JumpToPosition{Position: position}, nil
	case lo(mode) == 1:
		return JumpToObject{
			Index:  int(r.at(2)>>2) & 0x0F,
			Offset: position.Sub(canvasCentre),
		}, nil
	default:
		j := JumpToArea{
			Area:    Area{Min: position, Max: jumpAreaMaxLayout.Decode(r.window(5, 3))},
			Overlap: OverlapAvoid,
		}
		if hi(r.at(1)) == 1 {
			j.Overlap = OverlapAnywhere
		}
		return j, nil
	}
}

func decodeRoam(r record) (Action, error) {
	b1 := r.at(1)
	roam := Roam{
		Kind: RoamKind(b1 % 4),
		Area: Area{
			Min: roamAreaMinLayout.Decode(r.window(1, 4)),
			Max: roamAreaMaxLayout.Decode(r.window(4, 3)),
		},
		Overlap: OverlapAnywhere,
		Speed:   speedFromDigit(int(r.at(6)>>7) + int(r.at(7)&0x01)*2),
	}
	if b1&0x08 != 0 {
		roam.Overlap = OverlapAvoid
	}
	return roam, nil
}

func decodeTarget(r record) (Action, error) {
	position := targetPositionLayout.Decode(r.window(1, 3))
	return Target{
		Index:  lo(r.at(1)),
		Offset: position.Sub(canvasCentre),
		Speed:  speedFromDigit(int(r.at(4) & 0x07)),
	}, nil
}

func decodeChangeArt(r record) (Action, error) {
	return ChangeArt{
		Index: hi(r.at(1)),
		Style: styleFromDigit(hi(r.at(2))),
		Speed: speedFromDigit(hi(r.at(3))),
	}, nil
}
