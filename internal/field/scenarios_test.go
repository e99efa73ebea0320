package field

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/efield/internal/geometry"
)

// nearestDistance returns how far p is from the closest vertex of path.
func nearestDistance(p geometry.Vec, path *Path) float64 {
	best := math.Inf(1)
	for _, q := range path.Points {
		if d := p.Dist(q); d < best {
			best = d
		}
	}
	return best
}

var _ = Describe("Field line planning", func() {
	var params Params

	BeforeEach(func() {
		params = DefaultParams()
	})

	Context("with a single unit source", func() {
		BeforeEach(func() {
			params.MaxIterations = 1000
		})

		It("traces six lines seeded at 60 degree steps", func() {
			lines := Plan([]Charge{{X: 0, Y: 0, Magnitude: 1}}, params)

			Expect(lines).To(HaveLen(1))
			Expect(lines[0].Paths).To(HaveLen(6))
			for k, p := range lines[0].Paths {
				angle := float64(k) * math.Pi / 3
				Expect(p.Points[0].X).To(BeNumerically("~", math.Cos(angle), 1e-9))
				Expect(p.Points[0].Y).To(BeNumerically("~", math.Sin(angle), 1e-9))
				Expect(p.Iterations).To(Equal(1000))
				Expect(p.Termination).To(Equal(TerminationMaxIterations))
			}
		})

		DescribeTable("emits floor(m*6) lines",
			func(m float64, want int) {
				lines := Plan([]Charge{{Magnitude: m}}, params)
				Expect(CountLines(lines)).To(Equal(want))
			},
			Entry("unit", 1.0, 6),
			Entry("double", 2.0, 12),
			Entry("half", 0.5, 3),
			Entry("fractional", 1.3, 7),
			Entry("tiny", 0.1, 0),
		)
	})

	Context("with a source and a sink", func() {
		var lines []ChargeLines
		sink := geometry.V(100, 0)

		BeforeEach(func() {
			lines = Plan([]Charge{{X: 0, Y: 0, Magnitude: 1}, {X: 100, Y: 0, Magnitude: -1}}, params)
		})

		It("sends the lines aimed at the sink into it", func() {
			Expect(lines).To(HaveLen(1))
			paths := lines[0].Paths
			Expect(paths).To(HaveLen(6))

			for _, k := range []int{0, 1, 5} {
				p := paths[k]
				Expect(p.Termination).To(Equal(TerminationAbsorbed), "line %d", k)
				Expect(p.End().Dist(sink)).To(BeNumerically("<", params.AbortThreshold), "line %d", k)
				Expect(p.Iterations).To(BeNumerically("<", params.MaxIterations/2), "line %d", k)
			}
		})

		It("keeps every step at length ds", func() {
			for _, p := range lines[0].Paths {
				for i := 0; i+1 < len(p.Points); i += 2 {
					Expect(p.Points[i].Dist(p.Points[i+1])).To(BeNumerically("~", params.StepSize, 1e-9))
				}
			}
		})

		It("places arrows only at positive multiples of the interval", func() {
			for _, p := range lines[0].Paths {
				Expect(p.Iterations).To(BeNumerically("<=", params.MaxIterations))
				for _, a := range p.Arrows {
					Expect(a.Iteration).To(BeNumerically(">", 0))
					Expect(a.Iteration % params.ArrowInterval).To(Equal(0))
				}
				Expect(p.Iterations).To(BeNumerically(">", 0))
				Expect(p.Arrows).To(HaveLen((p.Iterations - 1) / params.ArrowInterval))
			}
		})
	})

	Context("with only a zero charge", func() {
		It("traces nothing", func() {
			Expect(Plan([]Charge{{X: 0, Y: 0, Magnitude: 0}}, params)).To(BeEmpty())
		})
	})

	Context("with equal and opposite charges", func() {
		It("is symmetric under a half turn about the midpoint", func() {
			pos := geometry.V(-100, 0)
			neg := geometry.V(100, 0)
			mid := geometry.V(0, 0)
			lines := Plan([]Charge{{X: pos.X, Y: pos.Y, Magnitude: 1}, {X: neg.X, Y: neg.Y, Magnitude: -1}}, params)
			paths := lines[0].Paths

			// A half turn maps the line leaving at angle a onto the one leaving at -a.
			for _, k := range []int{0, 1, 5} {
				mirror := paths[(6-k)%6]
				checked := 0
				for _, q := range paths[k].Polyline() {
					r := geometry.RotateAbout(q, mid, math.Pi)
					if r.Dist(pos) < 15 || r.Dist(neg) < 15 {
						continue
					}
					Expect(nearestDistance(r, mirror)).To(BeNumerically("<", 6), "line %d at %v", k, r)
					checked++
				}
				Expect(checked).To(BeNumerically(">", 50))
			}
		})
	})
})
