// Package chart computes the slice geometry of donut and pie charts.
//
// A chart is described by an [Input]: an ordered mapping or sequence of
// labeled values. [Build] filters that input, partitions the full circle
// among the remaining values and returns one [Slice] per value, each
// carrying its angles, fill color and an SVG path description.
//
// # Conventions
//
// Angles are in degrees and grow clockwise in SVG screen coordinates
// (y points down). The first slice starts at [Options.Origin], which
// defaults to -90 (12 o'clock). Outer arcs are traversed clockwise; in
// donut mode the inner arc runs counter-clockwise so the ring never
// self-intersects.
//
// Values that are zero, negative, NaN or infinite never produce a slice.
// An input with no positive value yields an empty slice list, not an error.
//
// # Usage
//
//	in := chart.Input{Data: chart.NewMap(
//	    chart.Entry{Label: "North", Value: 120},
//	    chart.Entry{Label: "South", Value: 80},
//	)}
//	for _, s := range chart.Build(in, chart.DefaultOptions()) {
//	    fmt.Println(s.Label, s.SweepAngle, s.PathData)
//	}
//
// Build and [ArcPath] are pure functions and safe for concurrent use.
package chart
