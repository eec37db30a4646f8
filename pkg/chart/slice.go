package chart

import "math"

// Defaults taken by [DefaultOptions].
const (
	DefaultOuterRadius = 90.0
	DefaultThickness   = 40.0
	DefaultOrigin      = -90.0 // 12 o'clock
	DefaultMargin      = 10.0
)

// Slice is one angular wedge of a chart. Slices are plain values; a new
// list is built whenever the input or geometry changes.
type Slice struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	StartAngle float64 `json:"start_angle"`
	SweepAngle float64 `json:"sweep_angle"`
	Color      string  `json:"color"`
	PathData   string  `json:"path"`
}

// Options controls chart geometry.
type Options struct {
	Donut       bool
	OuterRadius float64
	Thickness   float64 // ring thickness, ignored unless Donut
	Origin      float64 // start angle of the first slice in degrees
	CenterX     float64
	CenterY     float64
	Colors      ColorPolicy
}

// DefaultOptions returns a donut with a 90px outer radius, a 40px ring,
// the first slice at 12 o'clock and the center at (100, 100).
func DefaultOptions() Options {
	c := DefaultOuterRadius + DefaultMargin
	return Options{
		Donut:       true,
		OuterRadius: DefaultOuterRadius,
		Thickness:   DefaultThickness,
		Origin:      DefaultOrigin,
		CenterX:     c,
		CenterY:     c,
		Colors:      PolicyPalette,
	}
}

// InnerRadius returns the radius of the donut hole: 0 for pies, otherwise
// outer - thickness clamped to [0, outer].
func InnerRadius(donut bool, outer, thickness float64) float64 {
	if !donut {
		return 0
	}
	r := outer - thickness
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	if r > outer {
		return outer
	}
	return r
}

// InnerRadius returns the inner radius implied by o.
func (o Options) InnerRadius() float64 {
	return InnerRadius(o.Donut, o.OuterRadius, o.Thickness)
}

// Build lays out in as an ordered list of slices.
//
// Entries whose value is not a positive finite number are dropped, keeping
// the relative order of the rest. Each remaining entry sweeps value/total*360
// degrees, accumulated left to right from o.Origin; input order is the only
// ordering, equal values are never reordered. Build returns nil when no
// entry has a positive value.
func Build(in Input, o Options) []Slice {
	entries := positive(in.Entries())
	if len(entries) == 0 {
		return nil
	}

	// Sum relative to the largest value so the total stays finite.
	peak := 0.0
	for _, e := range entries {
		peak = math.Max(peak, e.Value)
	}
	total := 0.0
	for _, e := range entries {
		total += e.Value / peak
	}
	if total <= 0 || math.IsInf(total, 0) {
		return nil
	}

	inner := o.InnerRadius()
	slices := make([]Slice, 0, len(entries))
	current := o.Origin
	for i, e := range entries {
		sweep := e.Value / peak / total * 360
		slices = append(slices, Slice{
			Label:      e.Label,
			Value:      e.Value,
			StartAngle: current,
			SweepAngle: sweep,
			Color:      o.Colors.Color(i, e.Label),
			PathData:   ArcPath(current, sweep, o.OuterRadius, inner, o.CenterX, o.CenterY),
		})
		current += sweep
	}
	return slices
}

// Total returns the sum of slice values.
func Total(slices []Slice) float64 {
	var t float64
	for _, s := range slices {
		t += s.Value
	}
	return t
}

// Find returns the first slice labeled label.
func Find(slices []Slice, label string) (Slice, bool) {
	for _, s := range slices {
		if s.Label == label {
			return s, true
		}
	}
	return Slice{}, false
}

func positive(entries []Entry) []Entry {
	out := entries[:0]
	for _, e := range entries {
		if e.Value > 0 && !math.IsInf(e.Value, 1) {
			out = append(out, e)
		}
	}
	return out
}
