package mio

import (
	"errors"
	"fmt"
)

// SaveSize is the size of a complete save buffer.
const SaveSize = 0x10000

// Fixed offsets and strides of the save layout.
const (
	gameNameOffset = 0x1C
	gameNameLength = 20
	lengthOffset   = 0xE605
	winTableOffset = 0xE5B9

	objectBase       = 0xB100
	objectStride     = 0x88
	objectSizeByte   = 4
	objectActiveByte = 5
	objectNameOffset = 6
	objectNameLength = 18

	artBase       = 0x19
	artStride     = 0x1C
	artNameOffset = 6
	artNameLength = 18

	assemblyBase     = 0xBBB9
	assemblyStride   = 720
	assemblyActive   = 0x04
	instructionBase  = 72
	instructionSize  = 120
	triggerSize      = 8
	actionBase       = 48
	actionSize       = 12
	startLocationTag = 12
)

var errUnknownTag = errors.New("unknown tag")

// record is a view of the save buffer starting at offset.
type record struct {
	data   []byte
	offset int
}

func (r record) at(i int) byte {
	return byteAt(r.data, r.offset+i)
}

func (r record) window(i, n int) []byte {
	return window(r.data, r.offset+i, n)
}

func byteAt(data []byte, i int) byte {
	if i < 0 || i >= len(data) {
		return 0
	}
	return data[i]
}

// window copies n bytes from offset, padding past the end with zeros.
func window(data []byte, offset, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byteAt(data, offset+i)
	}
	return out
}

func hi(b byte) int { return int(b >> 4) }
func lo(b byte) int { return int(b & 0x0F) }

// ObjectOffset returns the record offset of object slot i.
func ObjectOffset(i int) int { return objectBase + i*objectStride }

// AssemblyOffset returns the program offset of object slot i.
func AssemblyOffset(i int) int { return assemblyBase + i*assemblyStride }

// InstructionOffset returns the offset of instruction k of object i.
func InstructionOffset(i, k int) int {
	return AssemblyOffset(i) + instructionBase + k*instructionSize
}

// TriggerOffset returns the offset of trigger slot t of instruction k of object i.
func TriggerOffset(i, k, t int) int { return InstructionOffset(i, k) + t*triggerSize }

// ActionOffset returns the offset of action slot a of instruction k of object i.
func ActionOffset(i, k, a int) int {
	return InstructionOffset(i, k) + actionBase + a*actionSize
}

// WinConditionOffset returns the byte of requirement s of group c.
func WinConditionOffset(c, s int) int { return winTableOffset + c*SwitchCount + s }

// decoder accumulates warnings while walking one buffer.
type decoder struct {
	data     []byte
	warnings []Warning
}

func (d *decoder) warn(offset int, record string, err error) {
	d.warnings = append(d.warnings, Warning{
		Offset:  offset,
		Tag:     byteAt(d.data, offset),
		Record:  record,
		Message: err.Error(),
	})
}

// Decode walks the fixed layout of data. Short or garbage buffers still
// decode: missing bytes read as zero and unknown tags become warnings.
func Decode(data []byte) *GameScript {
	d := &decoder{data: data}
	script := &GameScript{
		Name:    decodeName(data, gameNameOffset, gameNameLength),
		Length:  decodeLength(byteAt(data, lengthOffset)),
		Sprites: newSpriteSheet(data),
	}

	for c := range script.WinConditions {
		script.WinConditions[c] = d.winConditionGroup(c)
	}
	for i := range script.Objects {
		script.Objects[i] = d.object(i)
	}

	script.Warnings = d.warnings
	return script
}

func decodeLength(b byte) Length {
	switch lo(b) {
	case 0:
		return LengthShort
	case 1:
		return LengthLong
	default:
		return LengthBoss
	}
}

func (d *decoder) winConditionGroup(c int) WinConditionGroup {
	var g WinConditionGroup
	for s := 0; s < SwitchCount; s++ {
		b := byteAt(d.data, WinConditionOffset(c, s))
		var state Switch
		switch lo(b) {
		case 1:
			state = SwitchOn
		case 2:
			state = SwitchOff
		default:
			continue
		}
		g.Requirements = append(g.Requirements, SwitchRequirement{Index: hi(b), State: state})
	}
	return g
}

// object decodes slot i. Slots whose object or program is inactive are nil.
func (d *decoder) object(i int) *ObjectDefinition {
	r := record{data: d.data, offset: ObjectOffset(i)}
	if r.at(objectActiveByte) != 0x01 {
		return nil
	}
	asm := record{data: d.data, offset: AssemblyOffset(i)}
	if asm.at(0) != assemblyActive {
		return nil
	}

	obj := &ObjectDefinition{
		Name: decodeName(d.data, r.offset+objectNameOffset, objectNameLength),
		Size: d.size(r),
	}
	for j := range obj.Art {
		obj.Art[j] = decodeArt(record{data: d.data, offset: r.offset + artBase + j*artStride})
	}

	obj.Program.Start = d.start(asm)
	for k := range obj.Program.Instructions {
		obj.Program.Instructions[k] = d.instruction(i, k)
	}
	return obj
}

// maxSizeByte selects the largest sprite, 64px.
const maxSizeByte = 3

// size reads the sprite edge length. Bytes past the largest size are
// clamped to it.
func (d *decoder) size(r record) int {
	b := r.at(objectSizeByte)
	if b > maxSizeByte {
		d.warn(r.offset+objectSizeByte, "object size", fmt.Errorf("unknown size 0x%02X, using 64", b))
		b = maxSizeByte
	}
	return 16 * (int(b) + 1)
}

func decodeArt(r record) *ArtDefinition {
	kind, count := r.at(0), int(r.at(1))
	if kind > 4 || count == 0 {
		return nil
	}
	art := &ArtDefinition{
		Name: decodeName(r.data, r.offset+artNameOffset, artNameLength),
		Bank: make([]int, count),
	}
	for b := range art.Bank {
		art.Bank[b] = int(r.at(2 + b))
	}
	return art
}

func (d *decoder) start(r record) StartInstruction {
	position := startPositionLayout.Decode(r.window(14, 8))
	s := StartInstruction{
		Art:   hi(r.at(1)),
		Style: styleFromDigit(hi(r.at(2))),
		Speed: speedFromDigit(hi(r.at(3))),
	}

	tag := r.at(startLocationTag)
	switch {
	case tag == 0x07:
		s.Location = StartAtPosition{Position: position}
	case tag == 0x87:
		area := StartInArea{
			Area:    Area{Min: position, Max: startAreaMaxLayout.Decode(r.window(16, 4))},
			Overlap: OverlapAnywhere,
		}
		if r.at(13) == 0x04 {
			area.Overlap = OverlapAvoid
		}
		s.Location = area
	case tag&0x10 != 0:
		s.Location = StartAttached{
			Index:    int(r.at(13)>>5) + int(r.at(14)%2)*8,
			Offset:   position.Sub(canvasCentre),
			Position: position,
		}
	default:
		d.warn(r.offset+startLocationTag, "start location", errors.New("unknown start location"))
	}
	return s
}

// instruction decodes instruction k of object i. An instruction without
// a first trigger is inactive.
func (d *decoder) instruction(i, k int) *Instruction {
	ins := &Instruction{}
	for t := range ins.Triggers {
		offset := TriggerOffset(i, k, t)
		trigger, err := decodeTrigger(record{data: d.data, offset: offset})
		if err != nil {
			d.warn(offset, "trigger", err)
		}
		if t == 0 && trigger == nil {
			return nil
		}
		ins.Triggers[t] = trigger
	}
	for a := range ins.Actions {
		offset := ActionOffset(i, k, a)
		action, err := decodeAction(record{data: d.data, offset: offset})
		if err != nil {
			d.warn(offset, "action", err)
		}
		ins.Actions[a] = action
	}
	return ins
}
