package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/geometry"
	"github.com/san-kum/efield/internal/scene"
)

// Layer is everything drawn for one frame.
type Layer struct {
	Grid        scene.Grid
	Charges     []field.Charge
	Editing     int
	Lines       []field.ChargeLines
	ArrowLength float64
}

// Draw clears the viewport's canvas and plots the grid, field lines, arrow
// ticks and charges, in that order.
func Draw(vp *Viewport, l Layer, st Styles) {
	vp.canvas.Clear()
	drawGrid(vp, l.Grid)

	for _, cl := range l.Lines {
		for _, p := range cl.Paths {
			drawPath(vp, p)
			for _, s := range p.ArrowSegments(l.ArrowLength) {
				vp.Line(s.From, s.To)
			}
		}
	}

	for i, c := range l.Charges {
		vp.Mark(c.Pos(), st.ChargeGlyph(c.Magnitude, i == l.Editing))
	}
}

func drawGrid(vp *Viewport, g scene.Grid) {
	if g.Spacing <= 0 {
		return
	}
	w := vp.World
	x0 := math.Ceil(w.Min.X/g.Spacing) * g.Spacing
	y0 := math.Ceil(w.Min.Y/g.Spacing) * g.Spacing
	half := g.Thickness / 2
	for x := x0; x <= w.Max.X; x += g.Spacing {
		for y := y0; y <= w.Max.Y; y += g.Spacing {
			vp.Dot(geometry.V(x+half, y+half))
		}
	}
}

// drawPath joins distinct vertices, skipping runs that stay inside one dot.
func drawPath(vp *Viewport, p *field.Path) {
	var px, py int
	have := false
	for _, q := range p.Polyline() {
		x, y, ok := vp.ToCanvas(q)
		switch {
		case !ok:
			have = false
			continue
		case !have:
			vp.canvas.Set(x, y)
		case x == px && y == py:
			continue
		default:
			vp.canvas.DrawLine(px, py, x, y)
		}
		px, py, have = x, y, true
	}
}

// Render prints the canvas with dots in the line style. Overlay glyphs keep
// their own styling.
func (c *Canvas) Render(dots lipgloss.Style) string {
	var b, run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(dots.Render(run.String()))
			run.Reset()
		}
	}
	for r, row := range c.Grid {
		for col, ch := range row {
			if g, ok := c.overlay[cell{col: col, row: r}]; ok {
				flush()
				b.WriteString(g)
				continue
			}
			run.WriteRune(ch)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}
