package field

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/efield/internal/geometry"
	"golang.org/x/sync/errgroup"
)

// ChargeLines holds the lines emitted by one source charge.
type ChargeLines struct {
	Index  int
	Charge Charge
	Paths  []*Path
}

// MaxLinesPerCharge caps the lines a single charge may emit.
const MaxLinesPerCharge = 1 << 16

// LineCount is the number of lines a charge emits: magnitude*perUnit rounded
// down, at most MaxLinesPerCharge. Non-positive and non-finite products give
// zero.
func LineCount(magnitude, perUnit float64) int {
	n := math.Floor(magnitude * perUnit)
	switch {
	case !(n > 0) || math.IsInf(n, 0):
		return 0
	case n > MaxLinesPerCharge:
		return MaxLinesPerCharge
	}
	return int(n)
}

// Seeds spaces n starting points evenly on the unit circle around c.
func Seeds(c Charge, n int) []geometry.Vec {
	if n <= 0 {
		return nil
	}
	inc := 2 * math.Pi / float64(n)
	seeds := make([]geometry.Vec, n)
	for i := range seeds {
		seeds[i] = c.Pos().Add(geometry.Polar(1, float64(i)*inc))
	}
	return seeds
}

// Plan traces every line of every positive charge, in charge order.
func Plan(charges []Charge, params Params) []ChargeLines {
	f := NewField(charges, params)
	out := make([]ChargeLines, 0, len(charges))

	for i, c := range charges {
		n := LineCount(c.Magnitude, params.LinesPerUnitCharge)
		if n == 0 {
			continue
		}
		cl := ChargeLines{Index: i, Charge: c, Paths: make([]*Path, 0, n)}
		for _, s := range Seeds(c, n) {
			cl.Paths = append(cl.Paths, f.Trace(s))
		}
		out = append(out, cl)
	}

	return out
}

// PlanContext produces the same lines as Plan, tracing up to workers lines
// at once. workers <= 0 leaves the parallelism unbounded.
func PlanContext(ctx context.Context, charges []Charge, params Params, workers int) ([]ChargeLines, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	for i, c := range charges {
		if !c.IsValid() {
			return nil, fmt.Errorf("charge %d: %w", i, ErrInvalidCharge)
		}
	}

	f := NewField(charges, params)
	out := make([]ChargeLines, 0, len(charges))
	for i, c := range charges {
		n := LineCount(c.Magnitude, params.LinesPerUnitCharge)
		if n == 0 {
			continue
		}
		out = append(out, ChargeLines{Index: i, Charge: c, Paths: make([]*Path, n)})
	}

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for li := range out {
		cl := &out[li]
		for si, seed := range Seeds(cl.Charge, len(cl.Paths)) {
			g.Go(func() error {
				p, err := f.TraceContext(gctx, seed)
				if err != nil {
					return err
				}
				cl.Paths[si] = p
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountLines returns the total number of paths across all charges.
func CountLines(lines []ChargeLines) int {
	n := 0
	for _, cl := range lines {
		n += len(cl.Paths)
	}
	return n
}
