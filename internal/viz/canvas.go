package viz

import (
	"math"
	"strings"

	"github.com/san-kum/efield/internal/geometry"
)

const brailleBase = 0x2800

// Braille dots, 2 columns by 4 rows per cell:
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type cell struct{ col, row int }

// Canvas is a Braille dot canvas with an overlay of single-cell glyphs.
// Sub-pixel size is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	overlay       map[cell]string
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h), overlay: map[cell]string{}}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

func (c *Canvas) locate(x, y int) (cell, bool) {
	if x < 0 || y < 0 {
		return cell{}, false
	}
	at := cell{col: x / 2, row: y / 4}
	if at.col >= c.Width || at.row >= c.Height {
		return cell{}, false
	}
	return at, true
}

// Set lights the dot at sub-pixel (x, y).
func (c *Canvas) Set(x, y int) {
	if at, ok := c.locate(x, y); ok {
		c.Grid[at.row][at.col] |= pixelMap[y%4][x%2]
	}
}

func (c *Canvas) Unset(x, y int) {
	if at, ok := c.locate(x, y); ok {
		c.Grid[at.row][at.col] &^= pixelMap[y%4][x%2]
	}
}

// IsSet reports whether the dot at sub-pixel (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	at, ok := c.locate(x, y)
	return ok && c.Grid[at.row][at.col]&pixelMap[y%4][x%2] != 0
}

// Mark places a glyph over the cell containing sub-pixel (x, y). The glyph
// must render one column wide.
func (c *Canvas) Mark(x, y int, glyph string) {
	if at, ok := c.locate(x, y); ok {
		c.overlay[at] = glyph
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
	clear(c.overlay)
}

// DrawLine draws a line using Bresenham's algorithm. Lines longer than the
// canvas diagonal are clipped to it first.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	if !c.clip(&x0, &y0, &x1, &y1) {
		return
	}
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// clip trims the segment to the canvas with Liang-Barsky. It reports false
// when nothing is visible.
func (c *Canvas) clip(x0, y0, x1, y1 *int) bool {
	fx0, fy0 := float64(*x0), float64(*y0)
	dx, dy := float64(*x1)-fx0, float64(*y1)-fy0
	maxX, maxY := float64(c.SubWidth()-1), float64(c.SubHeight()-1)

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, fx0},
		{dx, maxX - fx0},
		{-dy, fy0},
		{dy, maxY - fy0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return false
		}
	}
	*x0, *y0 = int(math.Round(fx0+t0*dx)), int(math.Round(fy0+t0*dy))
	*x1, *y1 = int(math.Round(fx0+t1*dx)), int(math.Round(fy0+t1*dy))
	return true
}

func (c *Canvas) String() string {
	var b strings.Builder
	for r, row := range c.Grid {
		for col, ch := range row {
			if g, ok := c.overlay[cell{col: col, row: r}]; ok {
				b.WriteString(g)
				continue
			}
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world coordinates onto a canvas. World y grows downward,
// matching screen rows.
type Viewport struct {
	World  geometry.Bounds
	canvas *Canvas
	scale  float64
	offX   float64
	offY   float64
}

// NewViewport fits world into the canvas, keeping the aspect ratio.
func NewViewport(c *Canvas, world geometry.Bounds) *Viewport {
	v := &Viewport{World: world, canvas: c}
	w, h := world.Width(), world.Height()
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	sx := float64(c.SubWidth()-1) / w
	sy := float64(c.SubHeight()-1) / h
	v.scale = math.Min(sx, sy)
	v.offX = (float64(c.SubWidth()-1) - w*v.scale) / 2
	v.offY = (float64(c.SubHeight()-1) - h*v.scale) / 2
	return v
}

// ToCanvas returns the sub-pixel for p. ok is false for non-finite input.
func (v *Viewport) ToCanvas(p geometry.Vec) (x, y int, ok bool) {
	if !p.IsFinite() {
		return 0, 0, false
	}
	fx := v.offX + (p.X-v.World.Min.X)*v.scale
	fy := v.offY + (p.Y-v.World.Min.Y)*v.scale
	const limit = 1 << 24
	if math.Abs(fx) > limit || math.Abs(fy) > limit {
		return 0, 0, false
	}
	return int(math.Round(fx)), int(math.Round(fy)), true
}

// ToWorld is the inverse of ToCanvas.
func (v *Viewport) ToWorld(x, y int) geometry.Vec {
	return geometry.V(
		v.World.Min.X+(float64(x)-v.offX)/v.scale,
		v.World.Min.Y+(float64(y)-v.offY)/v.scale,
	)
}

// CellToWorld returns the world point at the centre of a character cell.
func (v *Viewport) CellToWorld(col, row int) geometry.Vec {
	return v.ToWorld(col*2+1, row*4+2)
}

func (v *Viewport) Line(a, b geometry.Vec) {
	x0, y0, ok0 := v.ToCanvas(a)
	x1, y1, ok1 := v.ToCanvas(b)
	if ok0 && ok1 {
		v.canvas.DrawLine(x0, y0, x1, y1)
	}
}

func (v *Viewport) Dot(p geometry.Vec) {
	if x, y, ok := v.ToCanvas(p); ok {
		v.canvas.Set(x, y)
	}
}

func (v *Viewport) Mark(p geometry.Vec, glyph string) {
	if x, y, ok := v.ToCanvas(p); ok {
		v.canvas.Mark(x, y, glyph)
	}
}
