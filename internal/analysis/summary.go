package analysis

import (
	"sort"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/geometry"
)

// LineStats describes one traced line.
type LineStats struct {
	Line        int
	Iterations  int
	Length      float64
	Arrows      int
	Termination field.Termination
	End         geometry.Vec
}

type ChargeSummary struct {
	Index          int
	Charge         field.Charge
	Lines          []LineStats
	MeanIterations float64
	MeanLength     float64
	Terminations   map[field.Termination]int
}

type Summary struct {
	Charges         []ChargeSummary
	Lines           int
	TotalIterations int
	Arrows          int
	Terminations    map[field.Termination]int
}

func statsFor(i int, p *field.Path) LineStats {
	return LineStats{
		Line:        i,
		Iterations:  p.Iterations,
		Length:      p.Length(),
		Arrows:      len(p.Arrows),
		Termination: p.Termination,
		End:         p.End(),
	}
}

// Summarize gathers statistics for every source charge and the whole set.
func Summarize(lines []field.ChargeLines) Summary {
	s := Summary{Terminations: map[field.Termination]int{}}

	for _, cl := range lines {
		cs := ChargeSummary{
			Index:        cl.Index,
			Charge:       cl.Charge,
			Lines:        make([]LineStats, 0, len(cl.Paths)),
			Terminations: map[field.Termination]int{},
		}
		iters, length := 0, 0.0
		for i, p := range cl.Paths {
			ls := statsFor(i, p)
			cs.Lines = append(cs.Lines, ls)
			cs.Terminations[ls.Termination]++
			s.Terminations[ls.Termination]++
			iters += ls.Iterations
			length += ls.Length
			s.Arrows += ls.Arrows
		}
		if n := len(cl.Paths); n > 0 {
			cs.MeanIterations = float64(iters) / float64(n)
			cs.MeanLength = length / float64(n)
		}
		s.Lines += len(cl.Paths)
		s.TotalIterations += iters
		s.Charges = append(s.Charges, cs)
	}
	return s
}

// TerminationKinds returns the recorded terminations sorted by kind.
func (s Summary) TerminationKinds() []field.Termination {
	kinds := make([]field.Termination, 0, len(s.Terminations))
	for k := range s.Terminations {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// IterationSeries lists the iteration count of every line in charge order.
func IterationSeries(lines []field.ChargeLines) []float64 {
	var out []float64
	for _, cl := range lines {
		for _, p := range cl.Paths {
			out = append(out, float64(p.Iterations))
		}
	}
	return out
}

// Extent is the bounding box of all traced points and the charges.
func Extent(lines []field.ChargeLines, charges []field.Charge) geometry.Bounds {
	b := geometry.EmptyBounds()
	for _, c := range charges {
		b = b.Extend(c.Pos())
	}
	for _, cl := range lines {
		for _, p := range cl.Paths {
			for _, v := range p.Points {
				b = b.Extend(v)
			}
		}
	}
	return b
}

// ViewBounds grows world to cover every charge. A grown box is padded by
// pad of its size so edge charges are not clipped; otherwise world is
// returned unchanged.
func ViewBounds(world geometry.Bounds, charges []field.Charge, pad float64) geometry.Bounds {
	ext := Extent(nil, charges)
	if ext.Empty() {
		return world
	}
	fit := world.Extend(ext.Min).Extend(ext.Max)
	if fit == world {
		return world
	}
	return fit.Pad(pad)
}
