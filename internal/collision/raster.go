package collision

import (
	"image"
	"image/color"
	"math"
)

// Raster is the composite collision image of one frame. Each opaque pixel
// carries the index of the topmost object drawn over it.
type Raster struct {
	img *image.RGBA
}

// NewRaster returns a cleared raster of the given canvas size.
func NewRaster(width, height int) *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Clear makes every pixel transparent.
func (r *Raster) Clear() {
	clear(r.img.Pix)
}

// Draw stamps the visible pixels of s, tagged with owner, over whatever was
// drawn before. The sprite's top-left corner lands on the floored position.
func (r *Raster) Draw(s Sprite, owner int) {
	if s.Mask == nil {
		return
	}
	half := float64(s.Size) / 2
	left := int(math.Floor(s.X - half))
	top := int(math.Floor(s.Y - half))
	tag := color.RGBA{R: uint8(owner), G: uint8(owner), B: uint8(owner), A: 255}
	b := r.img.Bounds()
	for y := 0; y < s.Mask.Size; y++ {
		for x := 0; x < s.Mask.Size; x++ {
			cx, cy := left+x, top+y
			if !s.Mask.Visible(x, y) || !image.Pt(cx, cy).In(b) {
				continue
			}
			r.img.SetRGBA(cx, cy, tag)
		}
	}
}

// OwnerAt returns the object tagged at canvas pixel (x, y), if any.
func (r *Raster) OwnerAt(x, y int) (int, bool) {
	if !image.Pt(x, y).In(r.img.Bounds()) {
		return 0, false
	}
	c := r.img.RGBAAt(x, y)
	if c.A != 255 {
		return 0, false
	}
	return int(c.R), true
}

// Image exposes the underlying raster.
func (r *Raster) Image() *image.RGBA { return r.img }
