package sink

import (
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/render"
)

// DefaultScale is the PNG scale factor when none is given.
const DefaultScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders c as PNG via SVG conversion. Requires librsvg.
func RenderPNG(c *donut.Chart, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPNG(RenderSVG(c, r.svgOpts...), r.scale)
}
