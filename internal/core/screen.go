package core

import (
	"image"
	"strings"
)

// Cell is one terminal character with its colors.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// blank is the content of a cleared cell.
var blank = Cell{Rune: ' '}

// HalfBlock is the glyph used to pack two canvas pixels into one cell: the
// foreground paints the upper pixel and the background the lower one.
const HalfBlock = '▀'

// Screen is a 2D cell buffer. It decouples drawing from the terminal: the
// player paints pixels and text here and the platform turns cells into
// styled output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.allocate()
}

// Clear resets every cell to a blank space.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// Set places a cell at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// Get returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y) in color fg.
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, fg Color) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, Cell{Rune: r, Fg: fg, Bg: s.Get(x+i, y).Bg})
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, fg Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text, fg)
}

// DrawImage paints img with its top-left pixel at cell (x, y). Every cell
// covers one pixel column and two pixel rows.
func (s *Screen) DrawImage(x, y int, img *image.RGBA) {
	b := img.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py += 2 {
		row := y + (py-b.Min.Y)/2
		for px := b.Min.X; px < b.Max.X; px++ {
			top := ColorOf(img.RGBAAt(px, py))
			bottom := Black
			if py+1 < b.Max.Y {
				bottom = ColorOf(img.RGBAAt(px, py+1))
			}
			s.Set(x+px-b.Min.X, row, Cell{Rune: HalfBlock, Fg: top, Bg: bottom})
		}
	}
}

// String converts the screen buffer to plain text without colors.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}
