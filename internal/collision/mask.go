// Package collision builds per-frame visibility masks from tagged sprite
// rasters and answers pixel-accurate contact queries between sprites and
// areas.
package collision

import (
	"image"
)

// Rasterizer produces the collision raster of one sprite frame: a size x size
// image whose color channels carry owner and whose alpha marks visibility.
type Rasterizer interface {
	Rasterize(frame, size, owner int) *image.RGBA
}

// Mask is the reduced form of a tagged sprite raster.
type Mask struct {
	Size  int
	Owner int
	alpha []uint8
}

// NewMask keeps the owner tag and alpha channel of img. The image is
// assumed square; a nil image yields a fully transparent mask.
func NewMask(img *image.RGBA, owner int) *Mask {
	if img == nil {
		return &Mask{Owner: owner}
	}
	b := img.Bounds()
	size := b.Dx()
	m := &Mask{Size: size, Owner: owner, alpha: make([]uint8, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			off := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			if off+3 < len(img.Pix) {
				m.alpha[y*size+x] = img.Pix[off+3]
			}
		}
	}
	return m
}

// Visible reports whether pixel (x, y) of the mask is opaque. Pixels
// outside the mask are not visible.
func (m *Mask) Visible(x, y int) bool {
	if m == nil || x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return false
	}
	return m.alpha[y*m.Size+x] != 0
}

// Set maps a bank frame id to its mask.
type Set map[int]*Mask

// Build rasterizes every frame id of bank that is not already present.
func (s Set) Build(r Rasterizer, bank []int, size, owner int) {
	for _, frame := range bank {
		if _, ok := s[frame]; ok {
			continue
		}
		s[frame] = NewMask(r.Rasterize(frame, size, owner), owner)
	}
}

// Box is a pixel rectangle with exclusive Max.
type Box struct {
	MinX, MinY, MaxX, MaxY int
}

// Bounds returns the tight box of visible pixels across masks. When no
// pixel is visible the full size x size canvas is returned.
func Bounds(size int, masks ...*Mask) Box {
	box := Box{MinX: size, MinY: size}
	found := false
	for _, m := range masks {
		if m == nil {
			continue
		}
		for y := 0; y < m.Size; y++ {
			for x := 0; x < m.Size; x++ {
				if !m.Visible(x, y) {
					continue
				}
				found = true
				box.MinX = min(box.MinX, x)
				box.MinY = min(box.MinY, y)
				box.MaxX = max(box.MaxX, x+1)
				box.MaxY = max(box.MaxY, y+1)
			}
		}
	}
	if !found {
		return Box{MaxX: size, MaxY: size}
	}
	return box
}
