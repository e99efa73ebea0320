// Package analysis summarizes traced field lines.
//
//   - [Summarize]: per-charge and overall line statistics
//   - [IterationSeries]: iterations per line, in charge order, for plotting
//   - [Extent]: bounding box of every traced point
//   - [ViewBounds]: the world area grown to cover every charge
//
// # Example
//
//	lines := field.Plan(charges, params)
//	s := analysis.Summarize(lines)
//	fmt.Println(s.Lines, s.Terminations[field.TerminationAbsorbed])
package analysis
