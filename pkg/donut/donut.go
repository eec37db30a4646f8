// Package donut provides the chart component that ties slice layout to
// interaction state.
//
// A [Chart] owns its parameters, the slice list built from them and an
// [interact.State]. Every call to [Chart.SetParams] rebuilds the full slice
// list before informing the interaction state, so readers never observe a
// partial list.
package donut

import (
	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/interact"
)

const (
	// TitleBand is the height reserved below the circle for the title.
	TitleBand = 20.0

	// DefaultSize is the default width and height attribute of the SVG.
	DefaultSize = "300"
)

// Params are the inputs of a chart.
//
// The zero value is a pie with default radius starting at 3 o'clock; use
// DefaultParams for the donut defaults.
type Params struct {
	Data   *chart.Map    // ordered label -> value, wins over Items
	Items  []chart.Entry // ordered pairs, duplicates allowed
	Labels []string      // restricts layout when non-nil

	IsDonut     bool
	Thickness   *float64 // ring thickness, 40 when nil
	OuterRadius float64  // 90 when zero
	Origin      float64  // degrees of the first slice start
	Colors      chart.ColorPolicy

	Title      string
	InnerTitle string
	Width      string
	Height     string
}

// DefaultParams returns a donut starting at 12 o'clock.
func DefaultParams() Params {
	return Params{IsDonut: true, Origin: chart.DefaultOrigin}
}

// Input returns the chart input described by p.
func (p Params) Input() chart.Input {
	return chart.Input{Data: p.Data, Items: p.Items, Labels: p.Labels}
}

// Options returns the slice geometry described by p.
func (p Params) Options() chart.Options {
	r := p.radius()
	thickness := chart.DefaultThickness
	if p.Thickness != nil {
		thickness = *p.Thickness
	}
	c := r + chart.DefaultMargin
	return chart.Options{
		Donut:       p.IsDonut,
		OuterRadius: r,
		Thickness:   thickness,
		Origin:      p.Origin,
		CenterX:     c,
		CenterY:     c,
		Colors:      p.Colors,
	}
}

func (p Params) radius() float64 {
	if p.OuterRadius > 0 {
		return p.OuterRadius
	}
	return chart.DefaultOuterRadius
}

// Chart is a donut or pie chart component.
type Chart struct {
	params Params
	opts   chart.Options
	slices []chart.Slice
	state  *interact.State
}

// New builds a chart from p. Selection events go to collab.
func New(p Params, collab interact.Collaborators) *Chart {
	c := &Chart{state: interact.New(nil, p.IsDonut, collab)}
	c.SetParams(p)
	return c
}

// SetParams replaces the parameters and rebuilds the slices.
func (c *Chart) SetParams(p Params) {
	c.params = p
	c.opts = p.Options()
	c.slices = chart.Build(p.Input(), c.opts)
	c.state.SetInnerTitle(p.InnerTitle)
	c.state.SetSlices(c.slices, p.IsDonut)
}

// Params returns the current parameters.
func (c *Chart) Params() Params { return c.params }

// Options returns the geometry the slices were built with.
func (c *Chart) Options() chart.Options { return c.opts }

// Slices returns the current slice list.
func (c *Chart) Slices() []chart.Slice { return c.slices }

// State returns the interaction state.
func (c *Chart) State() *interact.State { return c.state }

// Total returns the sum of all slice values.
func (c *Chart) Total() float64 { return chart.Total(c.slices) }

// IsDonut reports whether the chart has a center region.
func (c *Chart) IsDonut() bool { return c.params.IsDonut }

// OuterRadius returns the circle radius.
func (c *Chart) OuterRadius() float64 { return c.opts.OuterRadius }

// InnerRadius returns the hole radius; 0 for pies.
func (c *Chart) InnerRadius() float64 { return c.opts.InnerRadius() }

// Center returns the chart center in viewBox coordinates.
func (c *Chart) Center() (x, y float64) { return c.opts.CenterX, c.opts.CenterY }

// ViewBox returns the width and height of the SVG viewBox: the circle plus
// margins, and a title band below it.
func (c *Chart) ViewBox() (w, h float64) {
	w = 2*c.opts.OuterRadius + 2*chart.DefaultMargin
	return w, w + TitleBand
}

// Size returns the width and height attributes of the SVG element.
func (c *Chart) Size() (w, h string) {
	w, h = c.params.Width, c.params.Height
	if w == "" {
		w = DefaultSize
	}
	if h == "" {
		h = DefaultSize
	}
	return w, h
}

// InnerTitle returns the center title, defaulting to "Total".
func (c *Chart) InnerTitle() string {
	if c.params.InnerTitle == "" {
		return interact.DefaultInnerTitle
	}
	return c.params.InnerTitle
}
