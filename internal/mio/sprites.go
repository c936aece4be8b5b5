package mio

import (
	"image"
	"image/color"
)

// Pixel bank location. Pixels are packed two per byte, low nibble first.
const (
	pixelBankStart = 0x3104
	pixelBankEnd   = 0xB103
)

const (
	gridSide       = 8
	pixelsPerGrid  = gridSide * gridSide
	gridsPerFrame  = 4
	transparentIdx = 0
)

// Palette is the device's fixed 16-color palette. Index 0 is transparent.
var Palette = [16]color.RGBA{
	{0, 0, 0, 0},
	{0, 0, 0, 255},
	{255, 222, 156, 255},
	{255, 173, 49, 255},
	{198, 74, 0, 255},
	{255, 0, 0, 255},
	{206, 107, 239, 255},
	{16, 198, 206, 255},
	{41, 107, 198, 255},
	{8, 148, 82, 255},
	{115, 214, 57, 255},
	{255, 255, 90, 255},
	{123, 123, 123, 255},
	{198, 198, 198, 255},
	{255, 255, 255, 255},
	{74, 156, 173, 255},
}

// SpriteSheet holds the unpacked palette indices of the shared pixel bank.
type SpriteSheet struct {
	pixels []uint8
}

func newSpriteSheet(data []byte) *SpriteSheet {
	n := pixelBankEnd - pixelBankStart + 1
	s := &SpriteSheet{pixels: make([]uint8, 0, n*2)}
	for i := pixelBankStart; i <= pixelBankEnd; i++ {
		b := byteAt(data, i)
		s.pixels = append(s.pixels, b&0x0F, b>>4)
	}
	return s
}

// PaletteIndex returns the palette index of pixel (x, y) of a size x size
// frame starting at bank slot frame. Out of range reads are transparent.
func (s *SpriteSheet) PaletteIndex(frame, size, x, y int) uint8 {
	if s == nil || size < gridSide || x < 0 || y < 0 || x >= size || y >= size {
		return transparentIdx
	}
	perRow := size / gridSide
	grid := (y/gridSide)*perRow + x/gridSide
	index := frame*gridsPerFrame*pixelsPerGrid + grid*pixelsPerGrid + (y%gridSide)*gridSide + x%gridSide
	if index < 0 || index >= len(s.pixels) {
		return transparentIdx
	}
	return s.pixels[index]
}

// Image renders a frame in palette colors.
func (s *SpriteSheet) Image(frame, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, Palette[s.PaletteIndex(frame, size, x, y)&0x0F])
		}
	}
	return img
}

// Rasterize renders a frame as a collision raster: the color channels
// carry owner and alpha marks visible pixels.
func (s *SpriteSheet) Rasterize(frame, size, owner int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	tag := uint8(owner)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			a := Palette[s.PaletteIndex(frame, size, x, y)&0x0F].A
			img.SetRGBA(x, y, color.RGBA{R: tag, G: tag, B: tag, A: a})
		}
	}
	return img
}
