package core

import (
	"image"
	"image/color"
	"testing"
)

func TestVecUnit(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec
		expected Vec
	}{
		{"horizontal", V(5, 0), V(1, 0)},
		{"vertical", V(0, -3), V(0, -1)},
		{"pythagorean", V(3, 4), V(0.6, 0.8)},
		{"zero stays zero", V(0, 0), V(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.Unit(); got != tc.expected {
				t.Errorf("Unit() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestAreaContains(t *testing.T) {
	a := Area{Min: V(0, 0), Max: V(10, 20)}
	tests := []struct {
		name     string
		p        Vec
		expected bool
	}{
		{"inside", V(5, 5), true},
		{"min corner", V(0, 0), true},
		{"max corner", V(10, 20), true},
		{"left", V(-0.5, 5), false},
		{"below", V(5, 20.1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%+v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}

	if a.Centre() != V(5, 10) {
		t.Errorf("Centre() = %+v, expected (5, 10)", a.Centre())
	}
	if !(Area{Min: V(10, 0), Max: V(4, 8)}).Inverted() {
		t.Error("expected area with min x past max x to be inverted")
	}
	if g := a.Grow(2); g.Min != V(-2, -2) || g.Max != V(12, 22) {
		t.Errorf("Grow(2) = %+v", g)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("Clamp returned a value outside the range")
	}
	if ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF should clamp to max")
	}
}

func TestPointerTracker(t *testing.T) {
	var tr PointerTracker

	steps := []struct {
		name     string
		samples  []PointerSample
		expected ButtonState
	}{
		{"idle", nil, ButtonUp},
		{"press", []PointerSample{{X: 4, Y: 5, Down: true}}, ButtonPress},
		{"held", nil, ButtonDown},
		{"release", []PointerSample{{X: 4, Y: 5}}, ButtonRelease},
		{"up", nil, ButtonUp},
		{"click between frames", []PointerSample{{X: 9, Y: 1, Down: true}, {X: 9, Y: 1}}, ButtonPress},
		{"after click", nil, ButtonRelease},
	}

	for _, step := range steps {
		for _, s := range step.samples {
			tr.Observe(s)
		}
		p := tr.Frame()
		if p.State != step.expected {
			t.Fatalf("%s: state = %v, expected %v", step.name, p.State, step.expected)
		}
	}

	tr.Observe(PointerSample{X: 1, Y: 1, Down: true})
	tr.Frame()
	tr.Observe(PointerSample{X: 1, Y: 1})
	tr.Observe(PointerSample{X: 2, Y: 3, Down: true})
	if p := tr.Frame(); !p.Pressed() || p.X != 2 || p.Y != 3 {
		t.Errorf("expected re-press at (2, 3), got %+v", p)
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, Cell{Rune: 'X'})
	if s.Get(5, 5).Rune != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5).Rune)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, Cell{Rune: 'A'})
	s.Set(100, 0, Cell{Rune: 'A'})
	if s.Get(-1, 0).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}

	s.Clear()
	if s.Get(5, 5).Rune != ' ' {
		t.Error("Clear should reset cells")
	}
}

func TestScreenDrawImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{G: 255, A: 255})
	img.SetRGBA(1, 2, color.RGBA{B: 255, A: 255})

	s := NewScreen(4, 4)
	s.DrawImage(1, 1, img)

	c := s.Get(1, 1)
	if c.Rune != HalfBlock || c.Fg != (Color{R: 255}) || c.Bg != (Color{G: 255}) {
		t.Errorf("unexpected top-left cell %+v", c)
	}
	if c := s.Get(2, 2); c.Fg != (Color{B: 255}) || c.Bg != Black {
		t.Errorf("expected odd last row to have black lower half, got %+v", c)
	}
	if s.Get(0, 0).Rune != ' ' {
		t.Error("expected cells outside the image to stay blank")
	}
}

func TestScreenText(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "WIN", Color{R: 1})
	if got := s.String(); got != "    WIN    " {
		t.Errorf("String() = %q", got)
	}
	if s.Get(4, 0).Fg != (Color{R: 1}) {
		t.Error("expected text color to be applied")
	}
	if (Color{R: 255, G: 16, B: 1}).Hex() != "#ff1001" {
		t.Error("unexpected hex formatting")
	}
}
