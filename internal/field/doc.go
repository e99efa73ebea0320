// Package field traces electric field lines of 2D point charges.
//
// The package is the numerical core of efield:
//
//   - [Field.StepAt]: net field direction at a point, scaled to the step size
//   - [Field.Trace]: fixed-step integration of one field line from a seed
//   - [ArrowTicks]: arrowhead strokes for markers recorded along a line
//   - [Plan]: seeds and traces every line emitted by the positive charges
//
// # Example
//
//	params := field.DefaultParams()
//	charges := []field.Charge{{X: 0, Y: 0, Magnitude: 1}, {X: 100, Y: 0, Magnitude: -1}}
//	lines := field.Plan(charges, params)
//
// # Termination
//
// A trace stops when it comes within AbortThreshold of any charge (after it
// has left its own seed region), when the net field cancels, or when
// MaxIterations is reached. None of these are errors; the reason is recorded
// on the returned [Path].
//
// # Thread Safety
//
// A [Field] is read-only after construction and may be shared between
// goroutines. [PlanContext] traces lines in parallel.
package field
