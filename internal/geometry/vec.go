package geometry

import "math"

// Vec is a point or displacement in the field plane.
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// Polar returns the vector of length r at angle theta (radians).
func Polar(r, theta float64) Vec {
	return Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

func (v Vec) Add(w Vec) Vec { return Vec{X: v.X + w.X, Y: v.Y + w.Y} }

func (v Vec) Sub(w Vec) Vec { return Vec{X: v.X - w.X, Y: v.Y - w.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{X: v.X * s, Y: v.Y * s} }

func (v Vec) Neg() Vec { return Vec{X: -v.X, Y: -v.Y} }

// Norm returns the Euclidean length.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Dist returns the Euclidean distance between v and w.
func (v Vec) Dist(w Vec) float64 {
	return v.Sub(w).Norm()
}

// Angle returns the direction of v in radians, in (-π, π].
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// WithLength rescales v to the given length. A zero vector stays zero.
func (v Vec) WithLength(length float64) Vec {
	n := v.Norm()
	if n == 0 {
		return Vec{}
	}
	return v.Scale(length / n)
}

// RotateAbout rotates p by theta radians around center.
func RotateAbout(p, center Vec, theta float64) Vec {
	sin, cos := math.Sincos(theta)
	d := p.Sub(center)
	return Vec{
		X: center.X + d.X*cos - d.Y*sin,
		Y: center.Y + d.X*sin + d.Y*cos,
	}
}
