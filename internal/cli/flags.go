package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/errors"
)

// chartFlags are the chart parameters shared by every command that builds a
// chart. Flags left unset fall back to the [chart] config section.
type chartFlags struct {
	pie        bool
	thickness  float64
	radius     float64
	origin     float64
	colors     string
	title      string
	innerTitle string
	width      string
	height     string
	labels     string
}

func (f *chartFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.pie, "pie", false, "render a pie instead of a donut")
	fs.Float64Var(&f.thickness, "thickness", chart.DefaultThickness, "ring thickness of donuts")
	fs.Float64Var(&f.radius, "radius", chart.DefaultOuterRadius, "outer radius")
	fs.Float64Var(&f.origin, "origin", chart.DefaultOrigin, "start angle of the first slice in degrees (-90 is 12 o'clock)")
	fs.StringVar(&f.colors, "colors", "palette", "color policy: palette (default), hash")
	fs.StringVar(&f.title, "title", "", "title shown below the chart")
	fs.StringVar(&f.innerTitle, "inner-title", "", "center label of donuts (default \"Total\")")
	fs.StringVar(&f.width, "width", "", "width attribute of the SVG element (default \"300\")")
	fs.StringVar(&f.height, "height", "", "height attribute of the SVG element (default \"300\")")
	fs.StringVar(&f.labels, "labels", "", "only lay out these labels, in data order (comma-separated)")
}

// params overlays the flags the user set on base.
func (f *chartFlags) params(cmd *cobra.Command, base donut.Params) (donut.Params, error) {
	p := base
	changed := cmd.Flags().Changed

	if changed("pie") {
		p.IsDonut = !f.pie
	}
	if changed("thickness") {
		if f.thickness < 0 {
			return p, errors.New(errors.ErrCodeInvalidOption, "thickness must not be negative, got %v", f.thickness)
		}
		t := f.thickness
		p.Thickness = &t
	}
	if changed("radius") {
		if f.radius <= 0 {
			return p, errors.New(errors.ErrCodeInvalidOption, "radius must be positive, got %v", f.radius)
		}
		p.OuterRadius = f.radius
	}
	if changed("origin") {
		p.Origin = f.origin
	}
	if changed("colors") {
		policy, err := chart.ParseColorPolicy(f.colors)
		if err != nil {
			return p, errors.Wrap(errors.ErrCodeInvalidColorPolicy, err, "invalid --colors")
		}
		p.Colors = policy
	}
	if changed("title") {
		p.Title = f.title
	}
	if changed("inner-title") {
		p.InnerTitle = f.innerTitle
	}
	if changed("width") {
		p.Width = f.width
	}
	if changed("height") {
		p.Height = f.height
	}
	if changed("labels") {
		// An explicit empty list restricts the chart to nothing.
		labels := splitList(f.labels)
		if labels == nil {
			labels = []string{}
		}
		p.Labels = labels
	}
	return p, nil
}
