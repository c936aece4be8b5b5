package mio

import "fmt"

// Time is a timer value in eighth-second ticks. TimeEnd stands for the
// game's last tick and is resolved against the game length at runtime.
type Time int

// TimeEnd is the sentinel for "end of game".
const TimeEnd Time = -1

func (t Time) String() string {
	if t == TimeEnd {
		return "End"
	}
	return fmt.Sprintf("%d", int(t))
}

// Trigger is one condition of an instruction.
type Trigger interface {
	triggerName() string
}

// TapThisObject matches when the pointer is pressed on the object's pixels.
type TapThisObject struct{}

// TapAnywhere matches when the pointer is pressed.
type TapAnywhere struct{}

// TimeExact matches on a single tick.
type TimeExact struct {
	When Time
}

// TimeRandom matches on one randomly chosen tick inside [Start, End].
type TimeRandom struct {
	Start, End Time
}

// ContactKind separates edge-triggered Touch from level-triggered Overlap.
type ContactKind uint8

const (
	ContactTouch ContactKind = iota
	ContactOverlap
)

func (c ContactKind) String() string {
	if c == ContactOverlap {
		return "Overlap"
	}
	return "Touch"
}

// Contact matches while the object's mask meets a location or another
// object. When Location is true Area is used, otherwise Index.
type Contact struct {
	Kind     ContactKind
	Location bool
	Area     Area
	Index    int
}

// SwitchWhen is a switch state as observed by triggers and the runtime.
type SwitchWhen uint8

const (
	SwitchTurnsOn SwitchWhen = iota
	SwitchIsOn
	SwitchTurnsOff
	SwitchIsOff
)

func (s SwitchWhen) String() string {
	switch s {
	case SwitchTurnsOn:
		return "TurnsOn"
	case SwitchIsOn:
		return "IsOn"
	case SwitchTurnsOff:
		return "TurnsOff"
	case SwitchIsOff:
		return "IsOff"
	default:
		return "Unknown"
	}
}

// SwitchTrigger matches another object's switch state.
type SwitchTrigger struct {
	Index int
	When  SwitchWhen
}

// SpecificArt matches while the object shows art Index.
type SpecificArt struct {
	Index int
}

// FinishesPlaying matches on the frame a PlayOnce animation ends.
type FinishesPlaying struct{}

// GameCondition is a win/loss state as observed by triggers.
type GameCondition uint8

const (
	ConditionWin GameCondition = iota
	ConditionLoss
	ConditionHasBeenWon
	ConditionHasBeenLost
	ConditionNotYetWon
	ConditionNotYetLost
)

func (c GameCondition) String() string {
	switch c {
	case ConditionWin:
		return "Win"
	case ConditionLoss:
		return "Loss"
	case ConditionHasBeenWon:
		return "HasBeenWon"
	case ConditionHasBeenLost:
		return "HasBeenLost"
	case ConditionNotYetWon:
		return "NotYetWon"
	case ConditionNotYetLost:
		return "NotYetLost"
	default:
		return "Unknown"
	}
}

// GameConditionTrigger matches the game's win status.
type GameConditionTrigger struct {
	When GameCondition
}

func (TapThisObject) triggerName() string        { return "TapThisObject" }
func (TapAnywhere) triggerName() string          { return "TapAnywhere" }
func (TimeExact) triggerName() string            { return "TimeExact" }
func (TimeRandom) triggerName() string           { return "TimeRandom" }
func (Contact) triggerName() string              { return "Contact" }
func (SwitchTrigger) triggerName() string        { return "Switch" }
func (SpecificArt) triggerName() string          { return "SpecificArt" }
func (FinishesPlaying) triggerName() string      { return "FinishesPlaying" }
func (GameConditionTrigger) triggerName() string { return "GameCondition" }

// TriggerName returns the variant name of t, or "None" for a nil trigger.
func TriggerName(t Trigger) string {
	if t == nil {
		return "None"
	}
	return t.triggerName()
}

// triggerDecoder maps tags matching (tag & mask) == value to a constructor.
type triggerDecoder struct {
	mask, value byte
	decode      func(r record) (Trigger, error)
}

// triggerTable is checked in order; the first matching entry wins.
var triggerTable = []triggerDecoder{
	{0x1F, 0x01, func(record) (Trigger, error) { return TapThisObject{}, nil }},
	{0x1F, 0x11, func(record) (Trigger, error) { return TapAnywhere{}, nil }},
	{0xFF, 0x02, decodeTimeExact},
	{0xFF, 0x12, decodeTimeRandom},
	{0x0F, 0x03, decodeContact},
	{0x0F, 0x04, decodeSwitchTrigger},
	{0xFF, 0x05, func(r record) (Trigger, error) { return SpecificArt{Index: hi(r.at(1))}, nil }},
	{0xFF, 0x15, func(record) (Trigger, error) { return FinishesPlaying{}, nil }},
	{0x0F, 0x06, decodeGameCondition},
}

func decodeTrigger(r record) (Trigger, error) {
	tag := r.at(0)
	for _, d := range triggerTable {
		if tag&d.mask == d.value {
			return d.decode(r)
		}
	}
	if tag == 0 {
		return nil, nil
	}
	return nil, errUnknownTag
}

// timeAt reads the split timer value starting at byte o.
func timeAt(r record, o int) Time {
	return Time(hi(r.at(o)) + lo(r.at(o+1))*16)
}

func decodeTimeExact(r record) (Trigger, error) {
	if r.at(2) == 0x14 {
		return TimeExact{When: TimeEnd}, nil
	}
	return TimeExact{When: timeAt(r, 1)}, nil
}

func decodeTimeRandom(r record) (Trigger, error) {
	t := TimeRandom{Start: timeAt(r, 1), End: timeAt(r, 2)}
	if lo(r.at(3)) == 0x02 {
		t.End = TimeEnd
	}
	return t, nil
}

// overlapTags are the full tag values that select level-triggered contact.
var overlapTags = map[byte]bool{0x13: true, 0x53: true, 0x93: true, 0xD3: true}

func decodeContact(r record) (Trigger, error) {
	tag := r.at(0)
	c := Contact{Kind: ContactTouch}
	if overlapTags[tag] {
		c.Kind = ContactOverlap
	}
	if r.at(6)&0x04 != 0 {
		c.Location = true
		c.Area = Area{
			Min: contactAreaMinLayout.Decode(r.window(1, 3)),
			Max: contactAreaMaxLayout.Decode(r.window(3, 4)),
		}
		return c, nil
	}
	c.Index = int(tag>>6) + int(r.at(1)%4)*4
	return c, nil
}

// decodeSwitchTrigger keeps an unknown state along with the error. Such a
// trigger never matches, so its instruction stays inert.
func decodeSwitchTrigger(r record) (Trigger, error) {
	when := r.at(2)
	t := SwitchTrigger{Index: hi(r.at(1)), When: SwitchWhen(when)}
	if when > byte(SwitchIsOff) {
		return t, fmt.Errorf("unknown switch state 0x%02X", when)
	}
	return t, nil
}

// decodeGameCondition keeps an unknown condition along with the error, as
// decodeSwitchTrigger does.
func decodeGameCondition(r record) (Trigger, error) {
	when := hi(r.at(0))
	t := GameConditionTrigger{When: GameCondition(when)}
	if when > int(ConditionNotYetLost) {
		return t, fmt.Errorf("unknown game condition %d", when)
	}
	return t, nil
}
