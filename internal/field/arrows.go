package field

import (
	"math"

	"github.com/san-kum/efield/internal/geometry"
)

// arrowSpread is the angle between each arrowhead tick and the line.
const arrowSpread = math.Pi / 4

// ArrowTicks returns the two strokes of the arrowhead for m.
func ArrowTicks(m ArrowMarker, length float64) [2]geometry.Segment {
	return geometry.ArrowTips(m.Position, m.Direction, length, arrowSpread)
}

// ArrowSegments returns the arrowhead strokes of every marker on the path.
func (p *Path) ArrowSegments(length float64) []geometry.Segment {
	out := make([]geometry.Segment, 0, 2*len(p.Arrows))
	for _, m := range p.Arrows {
		ticks := ArrowTicks(m, length)
		out = append(out, ticks[0], ticks[1])
	}
	return out
}
