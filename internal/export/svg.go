package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/render"
	"github.com/san-kum/efield/internal/scene"
)

const (
	chargeRadius    = 10.0
	fieldLineWidth  = 3.0
	arrowLineWidth  = 2.0
	editStrokeWidth = 2.0
)

// SVGOptions sizes the drawing in world units. Editing is the highlighted
// charge index, or -1.
type SVGOptions struct {
	Width, Height float64
	Grid          scene.Grid
	Editing       int
	Background    string
	Ink           string
}

func DefaultSVGOptions(width, height float64, grid scene.Grid) SVGOptions {
	return SVGOptions{
		Width:      width,
		Height:     height,
		Grid:       grid,
		Editing:    -1,
		Background: "#ffffff",
		Ink:        "#000000",
	}
}

func chargeFill(m float64) string {
	switch {
	case m > 0:
		return "red"
	case m < 0:
		return "blue"
	default:
		return "gray"
	}
}

// FrameToSVG draws gridlines, field lines, arrows and charges in page
// coordinates, y growing downward.
func FrameToSVG(f *render.Frame, opts SVGOptions) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background))

	if g := opts.Grid; g.Spacing > 0 {
		sb.WriteString(fmt.Sprintf(`<g fill="%s">`+"\n", opts.Ink))
		for x := 0.0; x < opts.Width; x += g.Spacing {
			sb.WriteString(fmt.Sprintf(`<rect x="%g" y="0" width="%g" height="%g"/>`+"\n", x, g.Thickness, opts.Height))
		}
		for y := 0.0; y < opts.Height; y += g.Spacing {
			sb.WriteString(fmt.Sprintf(`<rect x="0" y="%g" width="%g" height="%g"/>`+"\n", y, opts.Width, g.Thickness))
		}
		sb.WriteString("</g>\n")
	}

	if f != nil {
		sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-width="%g">`+"\n", opts.Ink, fieldLineWidth))
		for _, cl := range f.Lines {
			for _, p := range cl.Paths {
				writePath(&sb, p)
			}
		}
		sb.WriteString("</g>\n")

		sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="%g">`+"\n", opts.Ink, arrowLineWidth))
		for _, cl := range f.Lines {
			for _, p := range cl.Paths {
				for _, s := range p.ArrowSegments(f.Params.ArrowLength) {
					sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
						s.From.X, s.From.Y, s.To.X, s.To.Y))
				}
			}
		}
		sb.WriteString("</g>\n")

		for i, c := range f.Charges {
			stroke := ""
			if i == opts.Editing {
				stroke = fmt.Sprintf(` stroke="%s" stroke-width="%g"`, opts.Ink, editStrokeWidth)
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%g" cy="%g" r="%g" fill="%s"%s/>`+"\n",
				c.X, c.Y, chargeRadius, chargeFill(c.Magnitude), stroke))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writePath(sb *strings.Builder, p *field.Path) {
	pts := p.Polyline()
	if len(pts) < 2 {
		return
	}
	sb.WriteString(`<path d="M`)
	for i, v := range pts {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.2f,%.2f", v.X, v.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.2f,%.2f", v.X, v.Y))
		}
	}
	sb.WriteString(`"/>` + "\n")
}

func WriteSVG(w io.Writer, f *render.Frame, opts SVGOptions) error {
	_, err := io.WriteString(w, FrameToSVG(f, opts))
	return err
}
