package tui

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/engine"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

// backdrop fills canvas pixels no sprite covers.
var backdrop = mio.Palette[14]

// pausedTint is blended over the canvas once a game has ended.
var pausedTint = color.NRGBA{136, 136, 136, 68}

type spriteKey struct {
	frame, size int
}

// Canvas paints snapshots of one game onto a fixed-size pixel image.
// Sprite frames are rendered from the sheet once and reused.
type Canvas struct {
	sheet   *mio.SpriteSheet
	sprites map[spriteKey]*image.RGBA
	img     *image.RGBA
}

// NewCanvas creates a canvas for the sprites of script.
func NewCanvas(script *mio.GameScript) *Canvas {
	return &Canvas{
		sheet:   script.Sprites,
		sprites: make(map[spriteKey]*image.RGBA),
		img:     image.NewRGBA(image.Rect(0, 0, engine.CanvasWidth, engine.CanvasHeight)),
	}
}

func (c *Canvas) sprite(frame, size int) *image.RGBA {
	k := spriteKey{frame, size}
	img, ok := c.sprites[k]
	if !ok {
		img = c.sheet.Image(frame, size)
		c.sprites[k] = img
	}
	return img
}

// Paint draws s in layer order and returns the canvas image. A frozen game
// is drawn inverted and a paused one dimmed.
func (c *Canvas) Paint(s engine.Snapshot, paused bool) *image.RGBA {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(backdrop), image.Point{}, draw.Src)
	for _, o := range s.Objects {
		if o.FrameID < 0 {
			continue
		}
		half := float64(o.Size) / 2
		at := image.Pt(int(math.Floor(o.X-half)), int(math.Floor(o.Y-half)))
		r := image.Rectangle{Min: at, Max: at.Add(image.Pt(o.Size, o.Size))}
		draw.Draw(c.img, r, c.sprite(o.FrameID, o.Size), image.Point{}, draw.Over)
	}
	if s.Frozen {
		invert(c.img)
	}
	if paused {
		tint(c.img, pausedTint)
	}
	return c.img
}

// tint blends c over the whole image.
func tint(img *image.RGBA, c color.Color) {
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Over)
}

func invert(img *image.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i] = 255 - img.Pix[i]
		img.Pix[i+1] = 255 - img.Pix[i+1]
		img.Pix[i+2] = 255 - img.Pix[i+2]
	}
}

// Viewport places the canvas on a terminal. Each cell shows one pixel
// column and two pixel rows of the scaled image.
type Viewport struct {
	X, Y          int // Top-left cell
	Width, Height int // Scaled size in pixels
}

// Fit returns the largest viewport with the canvas aspect ratio that fits
// cols x rows cells, centered.
func Fit(cols, rows int) Viewport {
	cols, rows = max(cols, 1), max(rows, 1)
	w, h := cols, rows*2
	if w*engine.CanvasHeight > h*engine.CanvasWidth {
		w = h * engine.CanvasWidth / engine.CanvasHeight
	} else {
		h = w * engine.CanvasHeight / engine.CanvasWidth
	}
	w, h = max(w, 1), max(h, 2)
	return Viewport{
		X:      (cols - w) / 2,
		Y:      (rows - (h+1)/2) / 2,
		Width:  w,
		Height: h,
	}
}

// ToCanvas maps the cell under the mouse to a canvas pixel. It reports
// false when the cell is outside the viewport.
func (v Viewport) ToCanvas(cellX, cellY int) (x, y int, ok bool) {
	px, py := cellX-v.X, (cellY-v.Y)*2
	if px < 0 || py < 0 || px >= v.Width || py >= v.Height {
		return 0, 0, false
	}
	return px * engine.CanvasWidth / v.Width, py * engine.CanvasHeight / v.Height, true
}

// ToCell maps a canvas pixel to the cell that shows it.
func (v Viewport) ToCell(x, y int) (cellX, cellY int) {
	return v.X + x*v.Width/engine.CanvasWidth, v.Y + y*v.Height/engine.CanvasHeight/2
}

// Draw scales img into the viewport of screen.
func (v Viewport) Draw(screen *core.Screen, img *image.RGBA) {
	scaled := image.NewRGBA(image.Rect(0, 0, v.Width, v.Height))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	screen.DrawImage(v.X, v.Y, scaled)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(r *lipgloss.Renderer, s *core.Screen) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.Get(x, y)
			run.Reset()
			for x < s.Width() {
				cell := s.Get(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			style := r.NewStyle().
				Foreground(lipgloss.Color(start.Fg.Hex())).
				Background(lipgloss.Color(start.Bg.Hex()))
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
