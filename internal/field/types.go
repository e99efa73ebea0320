package field

import (
	"math"

	"github.com/san-kum/efield/internal/geometry"
)

const (
	DefaultStepSize           = 1.0
	DefaultMaxIterations      = 10000
	DefaultArrowInterval      = 200
	DefaultTestCharge         = 0.01
	DefaultAbortThreshold     = 10.0
	DefaultLinesPerUnitCharge = 6.0
	DefaultArrowLength        = 20.0
)

// Charge is a point charge. Positive charges are sources, negative ones sinks,
// and zero charges exert no force.
type Charge struct {
	X         float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y         float64 `json:"y" yaml:"y" mapstructure:"y"`
	Magnitude float64 `json:"charge" yaml:"charge" mapstructure:"charge"`
}

func (c Charge) Pos() geometry.Vec { return geometry.V(c.X, c.Y) }

func (c Charge) IsValid() bool {
	return c.Pos().IsFinite() && !math.IsNaN(c.Magnitude) && !math.IsInf(c.Magnitude, 0)
}

// Termination records why a trace stopped.
type Termination int

const (
	TerminationNone Termination = iota
	// TerminationMaxIterations: the iteration cap was reached.
	TerminationMaxIterations
	// TerminationAbsorbed: the line came within the abort threshold of a charge.
	TerminationAbsorbed
	// TerminationZeroField: the net field cancelled or was not finite.
	TerminationZeroField
	// TerminationEscaped: the line left the escape radius around its seed.
	TerminationEscaped
	// TerminationCanceled: the context was canceled mid-trace.
	TerminationCanceled
)

func (t Termination) String() string {
	switch t {
	case TerminationMaxIterations:
		return "max-iterations"
	case TerminationAbsorbed:
		return "absorbed"
	case TerminationZeroField:
		return "zero-field"
	case TerminationEscaped:
		return "escaped"
	case TerminationCanceled:
		return "canceled"
	default:
		return "none"
	}
}

// Step is the field direction at a point, scaled to the step size.
type Step struct {
	X, Y    float64
	Aborted bool
	Reason  Termination
}

func (s Step) Vec() geometry.Vec { return geometry.V(s.X, s.Y) }

// ArrowMarker is a point on a line where a direction arrow is drawn.
type ArrowMarker struct {
	Position  geometry.Vec
	Direction geometry.Vec
	Iteration int
}

// Path is one traced field line. Points holds the pre-step and post-step
// position of every completed iteration, so consecutive pairs are segments.
type Path struct {
	Start       geometry.Vec
	Points      []geometry.Vec
	Arrows      []ArrowMarker
	Iterations  int
	Termination Termination
}

// End returns the last position reached, or the start for an empty path.
func (p *Path) End() geometry.Vec {
	if len(p.Points) == 0 {
		return p.Start
	}
	return p.Points[len(p.Points)-1]
}

// Length returns the distance travelled along the path.
func (p *Path) Length() float64 {
	total := 0.0
	for i := 0; i+1 < len(p.Points); i += 2 {
		total += p.Points[i].Dist(p.Points[i+1])
	}
	return total
}

// Polyline returns the path as distinct vertices, dropping the duplicated
// joints between segments.
func (p *Path) Polyline() []geometry.Vec {
	if len(p.Points) == 0 {
		return nil
	}
	out := make([]geometry.Vec, 0, len(p.Points)/2+1)
	out = append(out, p.Points[0])
	for i := 1; i < len(p.Points); i += 2 {
		out = append(out, p.Points[i])
	}
	return out
}

// Params configures one render cycle. The zero value is not usable; start
// from DefaultParams.
type Params struct {
	StepSize           float64 `yaml:"ds" mapstructure:"ds"`
	MaxIterations      int     `yaml:"max_iterations" mapstructure:"max_iterations"`
	ArrowInterval      int     `yaml:"arrow_increment" mapstructure:"arrow_increment"`
	TestCharge         float64 `yaml:"test_charge" mapstructure:"test_charge"`
	AbortThreshold     float64 `yaml:"abort_threshold" mapstructure:"abort_threshold"`
	LinesPerUnitCharge float64 `yaml:"lines_per_unit_charge" mapstructure:"lines_per_unit_charge"`
	ArrowLength        float64 `yaml:"arrow_length" mapstructure:"arrow_length"`
	// EscapeRadius stops a line once it is this far from its seed. Zero disables it.
	EscapeRadius float64 `yaml:"escape_radius" mapstructure:"escape_radius"`
}

func DefaultParams() Params {
	return Params{
		StepSize:           DefaultStepSize,
		MaxIterations:      DefaultMaxIterations,
		ArrowInterval:      DefaultArrowInterval,
		TestCharge:         DefaultTestCharge,
		AbortThreshold:     DefaultAbortThreshold,
		LinesPerUnitCharge: DefaultLinesPerUnitCharge,
		ArrowLength:        DefaultArrowLength,
	}
}

// Validate reports the first parameter outside its valid range.
func (p Params) Validate() error {
	switch {
	case !(p.StepSize > 0) || math.IsInf(p.StepSize, 0):
		return &ParamError{Name: "ds", Value: p.StepSize, Rule: "must be positive and finite"}
	case p.MaxIterations < 0:
		return &ParamError{Name: "max_iterations", Value: float64(p.MaxIterations), Rule: "must not be negative"}
	case p.ArrowInterval < 0:
		return &ParamError{Name: "arrow_increment", Value: float64(p.ArrowInterval), Rule: "must not be negative"}
	case p.TestCharge == 0 || math.IsNaN(p.TestCharge) || math.IsInf(p.TestCharge, 0):
		return &ParamError{Name: "test_charge", Value: p.TestCharge, Rule: "must be nonzero and finite"}
	case !(p.AbortThreshold >= 0) || math.IsInf(p.AbortThreshold, 0):
		return &ParamError{Name: "abort_threshold", Value: p.AbortThreshold, Rule: "must not be negative"}
	case !(p.LinesPerUnitCharge >= 0) || math.IsInf(p.LinesPerUnitCharge, 0):
		return &ParamError{Name: "lines_per_unit_charge", Value: p.LinesPerUnitCharge, Rule: "must not be negative"}
	case !(p.ArrowLength >= 0):
		return &ParamError{Name: "arrow_length", Value: p.ArrowLength, Rule: "must not be negative"}
	case !(p.EscapeRadius >= 0):
		return &ParamError{Name: "escape_radius", Value: p.EscapeRadius, Rule: "must not be negative"}
	}
	return nil
}
