// Package render converts rendered charts between output formats.
//
// Charts are always drawn as SVG first (see the [sink] subpackage). The
// [ToPDF] and [ToPNG] functions convert that SVG with the external
// rsvg-convert tool from librsvg:
//
//	svg := sink.RenderSVG(c)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// Install librsvg with "brew install librsvg" (macOS) or
// "apt install librsvg2-bin" (Debian, Ubuntu).
//
// [sink]: github.com/matzehuels/donut/pkg/render/sink
package render
