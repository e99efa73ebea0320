package geometry

import "math"

// Segment is a straight stroke between two points.
type Segment struct {
	From, To Vec
}

func (s Segment) Length() float64 {
	return s.From.Dist(s.To)
}

// ArrowTips returns the two tick strokes of an arrowhead drawn at pos.
// The ticks open away from dir by ±spread, so an arrow placed on a line
// travelling along dir points forward along it.
func ArrowTips(pos, dir Vec, length, spread float64) [2]Segment {
	theta := dir.Neg().Angle()
	return [2]Segment{
		{From: pos, To: pos.Add(Polar(length, theta+spread))},
		{From: pos, To: pos.Add(Polar(length, theta-spread))},
	}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec
}

// EmptyBounds returns a box that any Extend call will replace.
func EmptyBounds() Bounds {
	return Bounds{
		Min: Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

func (b Bounds) Extend(p Vec) Bounds {
	return Bounds{
		Min: Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Pad grows the box by frac of its size on every side. Degenerate axes
// are widened to one unit first.
func (b Bounds) Pad(frac float64) Bounds {
	w := b.Max.X - b.Min.X
	h := b.Max.Y - b.Min.Y
	if w == 0 {
		w = 1
		b.Min.X -= 0.5
		b.Max.X += 0.5
	}
	if h == 0 {
		h = 1
		b.Min.Y -= 0.5
		b.Max.Y += 0.5
	}
	return Bounds{
		Min: Vec{X: b.Min.X - w*frac, Y: b.Min.Y - h*frac},
		Max: Vec{X: b.Max.X + w*frac, Y: b.Max.Y + h*frac},
	}
}

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }
