package field

import (
	"math"

	"github.com/san-kum/efield/internal/geometry"
)

// Field is the superposed Coulomb field of a fixed set of charges.
type Field struct {
	charges []Charge
	params  Params
}

// NewField copies charges so later edits by the caller do not leak into a
// trace in progress.
func NewField(charges []Charge, params Params) *Field {
	cs := make([]Charge, len(charges))
	copy(cs, charges)
	return &Field{charges: cs, params: params}
}

func (f *Field) Params() Params { return f.params }

// StepAt returns the direction of the force on the test charge at p, scaled
// to the step size. With checkAbort set, any charge closer than the abort
// threshold ends the trace.
func (f *Field) StepAt(p geometry.Vec, checkAbort bool) Step {
	var fx, fy float64
	q1 := f.params.TestCharge

	for _, c := range f.charges {
		q2 := c.Magnitude
		if q2 == 0 {
			continue
		}

		dx := p.X - c.X
		dy := p.Y - c.Y
		r := math.Sqrt(dx*dx + dy*dy)

		if checkAbort && r < f.params.AbortThreshold {
			return Step{Aborted: true, Reason: TerminationAbsorbed}
		}
		// Sitting exactly on a charge: its direction is undefined.
		if r == 0 {
			continue
		}

		mag := q1 * q2 / (r * r)
		fx += mag * dx / r
		fy += mag * dy / r
	}

	norm := math.Sqrt(fx*fx + fy*fy)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return Step{Aborted: true, Reason: TerminationZeroField}
	}

	v := geometry.V(fx, fy).WithLength(f.params.StepSize)
	return Step{X: v.X, Y: v.Y}
}
