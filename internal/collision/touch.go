package collision

import "math"

// Rect is a canvas rectangle in continuous coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Shape is anything that occupies canvas pixels.
type Shape interface {
	Bounds() Rect
	// Visible reports whether canvas pixel (x, y) belongs to the shape.
	Visible(x, y int) bool
}

// Sprite is a mask placed with its centre at (X, Y).
type Sprite struct {
	Mask *Mask
	X, Y float64
	Size int
}

// Bounds returns the square covered by the sprite.
func (s Sprite) Bounds() Rect {
	half := float64(s.Size) / 2
	return Rect{MinX: s.X - half, MinY: s.Y - half, MaxX: s.X + half, MaxY: s.Y + half}
}

// Visible maps a canvas pixel into mask space relative to the floored centre.
func (s Sprite) Visible(x, y int) bool {
	px, py := s.pixel(x, y)
	return s.Mask.Visible(px, py)
}

func (s Sprite) pixel(x, y int) (int, int) {
	half := s.Size / 2
	return x - int(math.Floor(s.X)) + half, y - int(math.Floor(s.Y)) + half
}

// Region is a fully visible rectangle.
type Region struct {
	Rect Rect
}

// NewRegion builds a region from corner points. A zero-width or zero-height
// axis is widened by one pixel so that lines can still be touched.
func NewRegion(minX, minY, maxX, maxY float64) Region {
	if maxX == minX {
		maxX++
	}
	if maxY == minY {
		maxY++
	}
	return Region{Rect: Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}}
}

// Bounds returns the region rectangle.
func (r Region) Bounds() Rect { return r.Rect }

// Visible is true everywhere; callers only ask inside the common area.
func (r Region) Visible(int, int) bool { return true }

// Common returns the integer pixel range shared by a and b. The maximum is
// exclusive; an empty result has max <= min on some axis.
func Common(a, b Rect) Box {
	return Box{
		MinX: int(math.Floor(math.Max(a.MinX, b.MinX))),
		MinY: int(math.Floor(math.Max(a.MinY, b.MinY))),
		MaxX: int(math.Floor(math.Min(a.MaxX, b.MaxX))),
		MaxY: int(math.Floor(math.Min(a.MaxY, b.MaxY))),
	}
}

// Touching reports whether some pixel of the common area is visible in both
// shapes.
func Touching(a, b Shape) bool {
	common := Common(a.Bounds(), b.Bounds())
	for y := common.MinY; y < common.MaxY; y++ {
		for x := common.MinX; x < common.MaxX; x++ {
			if a.Visible(x, y) && b.Visible(x, y) {
				return true
			}
		}
	}
	return false
}
