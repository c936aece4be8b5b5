package engine

import (
	"image"
	"image/color"
	"testing"

	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

// solid rasterizes every frame as a fully opaque square.
type solid struct{}

func (solid) Rasterize(frame, size, owner int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	tag := uint8(owner)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, color.RGBA{R: tag, G: tag, B: tag, A: 255})
		}
	}
	return img
}

var (
	press = core.Pointer{State: core.ButtonPress}
	idle  = core.Pointer{}
)

func at(x, y int) mio.StartLocation {
	return mio.StartAtPosition{Position: mio.Point{X: x, Y: y}}
}

// object defines a 16px object with a single-frame art at start.
func object(start mio.StartLocation, ins ...*mio.Instruction) *mio.ObjectDefinition {
	def := &mio.ObjectDefinition{Size: 16}
	def.Art[0] = &mio.ArtDefinition{Bank: []int{0}}
	def.Program.Start = mio.StartInstruction{Location: start}
	copy(def.Program.Instructions[:], ins)
	return def
}

// rule builds an instruction with one trigger.
func rule(trigger mio.Trigger, actions ...mio.Action) *mio.Instruction {
	return rules([]mio.Trigger{trigger}, actions...)
}

func rules(triggers []mio.Trigger, actions ...mio.Action) *mio.Instruction {
	ins := &mio.Instruction{}
	copy(ins.Triggers[:], triggers)
	copy(ins.Actions[:], actions)
	return ins
}

type builder struct {
	t      *testing.T
	script *mio.GameScript
}

func newScript(t *testing.T, length mio.Length) *builder {
	return &builder{t: t, script: &mio.GameScript{Length: length}}
}

func (b *builder) set(i int, def *mio.ObjectDefinition) *builder {
	b.script.Objects[i] = def
	return b
}

func (b *builder) win(group int, reqs ...mio.SwitchRequirement) *builder {
	b.script.WinConditions[group].Requirements = reqs
	return b
}

func (b *builder) engine(seed int64) *Engine {
	b.t.Helper()
	return New(b.script, Config{Seed: seed, Rasterizer: solid{}})
}

func countSounds(events []Event, name string) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == EventSound && ev.Sound == name {
			n++
		}
	}
	return n
}
