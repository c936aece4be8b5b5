// Package mio decodes the fixed-layout save file of a microgame into a
// structured GameScript. Decoding never fails: unknown tags become warnings
// and the affected record is left empty.
package mio

import "fmt"

// Format-wide record counts.
const (
	ObjectCount       = 15
	ArtCount          = 4
	InstructionCount  = 6
	TriggerCount      = 6
	ActionCount       = 6
	WinConditionCount = 6
	SwitchCount       = 6
)

// Canvas dimensions in device pixels.
const (
	CanvasWidth  = 192
	CanvasHeight = 128
)

// Point is an integer position in canvas pixels.
type Point struct {
	X, Y int
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Area is an inclusive min/max pair of points.
type Area struct {
	Min, Max Point
}

// canvasCentre is the origin used by every object-relative offset.
var canvasCentre = Point{X: CanvasWidth / 2, Y: CanvasHeight / 2}

// Length is the duration class of a game.
type Length uint8

const (
	LengthShort Length = iota
	LengthLong
	LengthBoss
)

func (l Length) String() string {
	switch l {
	case LengthShort:
		return "Short"
	case LengthLong:
		return "Long"
	case LengthBoss:
		return "Boss"
	default:
		return "Unknown"
	}
}

// Switch is the on/off state a win condition or switch action refers to.
type Switch uint8

const (
	SwitchOn Switch = iota
	SwitchOff
)

func (s Switch) String() string {
	if s == SwitchOn {
		return "On"
	}
	return "Off"
}

// AnimationStyle controls how an art bank is played back.
type AnimationStyle uint8

const (
	StyleHold AnimationStyle = iota
	StylePlayOnce
	StyleLoop
)

func (s AnimationStyle) String() string {
	switch s {
	case StyleHold:
		return "Hold"
	case StylePlayOnce:
		return "PlayOnce"
	default:
		return "Loop"
	}
}

// Speed is the five-step speed scale shared by animation and travel.
type Speed uint8

const (
	SpeedSlowest Speed = iota
	SpeedSlow
	SpeedNormal
	SpeedFast
	SpeedFastest
)

func (s Speed) String() string {
	switch s {
	case SpeedSlowest:
		return "Slowest"
	case SpeedSlow:
		return "Slow"
	case SpeedNormal:
		return "Normal"
	case SpeedFast:
		return "Fast"
	default:
		return "Fastest"
	}
}

// Overlap is the placement policy for random positions.
type Overlap uint8

const (
	OverlapAnywhere Overlap = iota
	OverlapAvoid
)

func (o Overlap) String() string {
	if o == OverlapAvoid {
		return "TryNotToOverlap"
	}
	return "Anywhere"
}

// Warning records a record that could not be decoded.
type Warning struct {
	Offset  int
	Tag     byte
	Record  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at 0x%04X (tag 0x%02X): %s", w.Record, w.Offset, w.Tag, w.Message)
}

// GameScript is the decoded content of one save file.
type GameScript struct {
	Name          string
	Length        Length
	Objects       [ObjectCount]*ObjectDefinition
	WinConditions [WinConditionCount]WinConditionGroup
	Sprites       *SpriteSheet
	Warnings      []Warning
}

// ActiveObjects returns the indices of every populated object slot.
func (g *GameScript) ActiveObjects() []int {
	var out []int
	for i, o := range g.Objects {
		if o != nil {
			out = append(out, i)
		}
	}
	return out
}

// WinConditionGroup is a conjunction of switch requirements.
type WinConditionGroup struct {
	Requirements []SwitchRequirement
}

// SwitchRequirement asks for object Index to be in State.
type SwitchRequirement struct {
	Index int
	State Switch
}

// ObjectDefinition is one populated object slot.
type ObjectDefinition struct {
	Name    string
	Size    int
	Art     [ArtCount]*ArtDefinition
	Program AssemblyProgram
}

// ArtDefinition is one animation bank.
type ArtDefinition struct {
	Name string
	Bank []int
}

// AssemblyProgram is the script attached to an object.
type AssemblyProgram struct {
	Start        StartInstruction
	Instructions [InstructionCount]*Instruction
}

// StartInstruction selects the initial art and location.
type StartInstruction struct {
	Art      int
	Style    AnimationStyle
	Speed    Speed
	Location StartLocation
}

// StartLocation is one of StartAtPosition, StartInArea or StartAttached.
// A nil StartLocation means the location byte was not recognized.
type StartLocation interface {
	startLocation()
}

// StartAtPosition places the object at a fixed point.
type StartAtPosition struct {
	Position Point
}

// StartInArea places the object randomly inside Area.
type StartInArea struct {
	Area    Area
	Overlap Overlap
}

// StartAttached follows another object at Offset from its centre.
type StartAttached struct {
	Index    int
	Offset   Point
	Position Point
}

func (StartAtPosition) startLocation() {}
func (StartInArea) startLocation()     {}
func (StartAttached) startLocation()   {}

// Instruction fires its actions when every populated trigger matches.
type Instruction struct {
	Triggers [TriggerCount]Trigger
	Actions  [ActionCount]Action
}
