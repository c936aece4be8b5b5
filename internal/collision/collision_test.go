package collision

import (
	"image"
	"image/color"
	"testing"
)

// square returns a size x size raster with the inner box opaque.
func square(size int, box Box) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := box.MinY; y < box.MaxY; y++ {
		for x := box.MinX; x < box.MaxX; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	return img
}

func TestMaskBounds(t *testing.T) {
	full := NewMask(square(16, Box{MaxX: 16, MaxY: 16}), 0)
	inner := NewMask(square(16, Box{MinX: 4, MinY: 2, MaxX: 10, MaxY: 7}), 0)
	empty := NewMask(square(16, Box{}), 0)

	if got := Bounds(16, inner); got != (Box{MinX: 4, MinY: 2, MaxX: 10, MaxY: 7}) {
		t.Errorf("expected tight box, got %+v", got)
	}
	if got := Bounds(16, empty); got != (Box{MaxX: 16, MaxY: 16}) {
		t.Errorf("expected full box for empty mask, got %+v", got)
	}
	if got := Bounds(16, inner, full); got != (Box{MaxX: 16, MaxY: 16}) {
		t.Errorf("expected union box, got %+v", got)
	}
	if inner.Visible(-1, 3) || inner.Visible(16, 3) {
		t.Error("expected pixels outside the mask to be invisible")
	}
}

func TestTouchingSprites(t *testing.T) {
	solid := NewMask(square(16, Box{MaxX: 16, MaxY: 16}), 0)
	dot := NewMask(square(16, Box{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}), 1)

	tests := []struct {
		name string
		a, b Shape
		want bool
	}{
		{"overlapping", Sprite{solid, 50, 50, 16}, Sprite{solid, 60, 50, 16}, true},
		{"adjacent", Sprite{solid, 50, 50, 16}, Sprite{solid, 66, 50, 16}, false},
		{"fractional overlap", Sprite{solid, 50.5, 50, 16}, Sprite{solid, 65.9, 50, 16}, true},
		{"transparent pixels", Sprite{dot, 50, 50, 16}, Sprite{solid, 60, 50, 16}, false},
		{"missing mask", Sprite{nil, 50, 50, 16}, Sprite{solid, 50, 50, 16}, false},
		{"sprite in region", Sprite{solid, 50, 50, 16}, NewRegion(55, 0, 100, 100), true},
		{"sprite beside region", Sprite{solid, 50, 50, 16}, NewRegion(58, 0, 100, 100), false},
		{"degenerate line", Sprite{solid, 50, 50, 16}, NewRegion(50, 0, 50, 128), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Touching(tt.a, tt.b); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRasterOwner(t *testing.T) {
	solid := NewMask(square(16, Box{MaxX: 16, MaxY: 16}), 0)
	r := NewRaster(192, 128)
	r.Draw(Sprite{solid, 20, 20, 16}, 3)
	r.Draw(Sprite{solid, 28, 20, 16}, 7)

	if owner, ok := r.OwnerAt(14, 20); !ok || owner != 3 {
		t.Errorf("expected owner 3, got %d %v", owner, ok)
	}
	if owner, ok := r.OwnerAt(24, 20); !ok || owner != 7 {
		t.Errorf("expected later draw on top, got %d %v", owner, ok)
	}
	if _, ok := r.OwnerAt(100, 100); ok {
		t.Error("expected empty pixel")
	}
	if _, ok := r.OwnerAt(-1, 500); ok {
		t.Error("expected out of range pixel to be empty")
	}

	r.Clear()
	if _, ok := r.OwnerAt(20, 20); ok {
		t.Error("expected cleared raster")
	}
}
