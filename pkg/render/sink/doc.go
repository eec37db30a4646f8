// Package sink renders a [donut.Chart] into output formats.
//
// # Overview
//
// A "sink" turns the chart's slices, frame and interaction state into a
// final artifact:
//
//   - SVG: the chart markup, optionally linked and hover-styled
//   - JSON: slice geometry and frame for external renderers
//   - PNG and PDF: SVG converted with rsvg-convert
//
// # SVG Output
//
// [RenderSVG] emits one <path class="donut-slice"> per slice, a
// <g class="donut-center"> in donut mode only, and a
// <g class="donut-tooltip"> only while the chart's tooltip is visible:
//
//	svg := sink.RenderSVG(c,
//	    sink.WithLinks(""),
//	    sink.WithInteraction(),
//	)
//
// # SVG Options
//
//   - [WithLinks]: wrap slices and the center in links to the selection routes
//   - [WithInteraction]: add hover CSS
//   - [WithID]: set the root element id (derived from the slices otherwise)
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render SVG first and convert it via
// [render.ToPDF] and [render.ToPNG]. Both require librsvg.
//
// [donut.Chart]: github.com/matzehuels/donut/pkg/donut.Chart
// [render.ToPDF]: github.com/matzehuels/donut/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/donut/pkg/render.ToPNG
package sink
