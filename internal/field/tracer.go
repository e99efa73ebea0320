package field

import (
	"context"

	"github.com/san-kum/efield/internal/geometry"
)

const (
	// cancelCheckInterval is how many iterations pass between context checks.
	cancelCheckInterval = 1024
	// maxPreallocPoints caps the initial path buffer for very large iteration limits.
	maxPreallocPoints = 8192
)

// Trace follows the field line through start until a termination condition
// of Params holds. It never fails.
func (f *Field) Trace(start geometry.Vec) *Path {
	p, _ := f.trace(context.Background(), start, false)
	return p
}

// TraceContext is Trace with cancellation. A canceled trace returns the
// partial path together with the context error.
func (f *Field) TraceContext(ctx context.Context, start geometry.Vec) (*Path, error) {
	return f.trace(ctx, start, true)
}

func (f *Field) trace(ctx context.Context, start geometry.Vec, cancelable bool) (*Path, error) {
	maxIter := f.params.MaxIterations
	interval := f.params.ArrowInterval
	threshold := f.params.AbortThreshold
	escape := f.params.EscapeRadius

	capacity := maxPreallocPoints
	if maxIter < maxPreallocPoints/2 {
		capacity = 2 * maxIter
	}

	path := &Path{
		Start:       start,
		Points:      make([]geometry.Vec, 0, capacity),
		Termination: TerminationMaxIterations,
	}

	pos := start
	for i := 0; i < maxIter; i++ {
		if cancelable && i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				path.Termination = TerminationCanceled
				return path, err
			}
		}

		fromStart := pos.Dist(start)
		if escape > 0 && fromStart > escape {
			path.Termination = TerminationEscaped
			break
		}

		step := f.StepAt(pos, fromStart > threshold)
		if step.Aborted {
			path.Termination = step.Reason
			break
		}

		next := pos.Add(step.Vec())
		path.Points = append(path.Points, pos, next)
		pos = next
		path.Iterations++

		if interval > 0 && i != 0 && i%interval == 0 {
			path.Arrows = append(path.Arrows, ArrowMarker{
				Position:  pos,
				Direction: step.Vec(),
				Iteration: i,
			})
		}
	}

	return path, nil
}
