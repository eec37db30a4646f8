package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/donut"
)

const sliceInteractionCSS = `
    .donut-slice { transition: opacity 0.2s ease; cursor: pointer; }
    .donut-chart:hover .donut-slice { opacity: 0.75; }
    .donut-chart .donut-slice:hover, .donut-slice.active { opacity: 1; stroke: #fff; stroke-width: 2; }
    .donut-center { cursor: pointer; }
    .donut-tooltip rect { fill: #333; opacity: 0.9; }
    .donut-tooltip text { fill: #fff; }`

// idNamespace seeds the derived chart ids.
var idNamespace = uuid.MustParse("5f0c2b8e-6d3a-4f61-9a57-2c1d0e7b9f43")

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	links       bool
	linkBase    string
	interaction bool
	id          string
}

// WithLinks wraps each slice in a link to base+"/select/slice/{label}" and
// the center in a link to base+"/select/center".
func WithLinks(base string) SVGOption {
	return func(r *svgRenderer) { r.links, r.linkBase = true, base }
}

// WithInteraction embeds hover CSS.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interaction = true } }

// WithID sets the id of the root element.
func WithID(id string) SVGOption { return func(r *svgRenderer) { r.id = id } }

// RenderSVG renders c as an SVG document.
func RenderSVG(c *donut.Chart, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.id == "" {
		r.id = ChartID(c)
	}

	vw, vh := c.ViewBox()
	w, h := c.Size()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" id="%s" class="donut-chart">`+"\n",
		num(vw), num(vh), EscapeXML(w), EscapeXML(h), EscapeXML(r.id))

	if r.interaction {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", sliceInteractionCSS)
	}

	r.renderSlices(&buf, c)
	if c.IsDonut() {
		r.renderCenter(&buf, c)
	}
	renderTitle(&buf, c)
	renderTooltip(&buf, c)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// ChartID derives a stable element id from the chart geometry, so equal
// charts render byte-identical SVG.
func ChartID(c *donut.Chart) string {
	var key bytes.Buffer
	for _, s := range c.Slices() {
		key.WriteString(s.Label)
		key.WriteByte(0)
		key.WriteString(s.PathData)
		key.WriteByte(0)
	}
	return "donut-" + uuid.NewSHA1(idNamespace, key.Bytes()).String()
}

func (r *svgRenderer) renderSlices(buf *bytes.Buffer, c *donut.Chart) {
	hovered := ""
	if st := c.State(); st.Tooltip().Visible {
		hovered = st.Hovered()
	}

	buf.WriteString(`  <g class="donut-slices">` + "\n")
	for _, s := range c.Slices() {
		class := "donut-slice"
		if s.Label == hovered {
			class += " active"
		}
		buf.WriteString("    ")
		r.wrapLink(buf, r.sliceHref(s.Label), func() {
			fmt.Fprintf(buf, `<path class="%s" d="%s" fill="%s" data-label="%s"><title>%s: %s</title></path>`,
				class, s.PathData, EscapeXML(s.Color), EscapeXML(s.Label),
				EscapeXML(s.Label), chart.FormatValue(s.Value))
		})
		buf.WriteByte('\n')
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderCenter(buf *bytes.Buffer, c *donut.Chart) {
	cx, cy := c.Center()
	buf.WriteString(`  <g class="donut-center">`)
	r.wrapLink(buf, r.centerHref(), func() {
		fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s" fill="transparent"/>`,
			num(cx), num(cy), num(c.InnerRadius()))
		fmt.Fprintf(buf, `<text class="donut-inner-title" x="%s" y="%s" text-anchor="middle" font-size="10">%s</text>`,
			num(cx), num(cy-4), EscapeXML(c.InnerTitle()))
		fmt.Fprintf(buf, `<text class="donut-total" x="%s" y="%s" text-anchor="middle" font-size="14" font-weight="bold">%s</text>`,
			num(cx), num(cy+12), chart.FormatValue(c.Total()))
	})
	buf.WriteString("</g>\n")
}

func renderTitle(buf *bytes.Buffer, c *donut.Chart) {
	title := c.Params().Title
	if title == "" {
		return
	}
	vw, vh := c.ViewBox()
	fmt.Fprintf(buf, `  <text class="donut-title" x="%s" y="%s" text-anchor="middle" font-size="12">%s</text>`+"\n",
		num(vw/2), num(vh-donut.TitleBand/2+4), EscapeXML(title))
}

func renderTooltip(buf *bytes.Buffer, c *donut.Chart) {
	tip := c.State().Tooltip()
	if !tip.Visible {
		return
	}
	vw, _ := c.ViewBox()
	text := tip.Label + ": " + tip.Value
	width := float64(len([]rune(text)))*6 + 12
	fmt.Fprintf(buf, `  <g class="donut-tooltip" transform="translate(%s, 4)" pointer-events="none">`, num(vw/2))
	fmt.Fprintf(buf, `<rect x="%s" y="0" width="%s" height="18" rx="4"/>`, num(-width/2), num(width))
	fmt.Fprintf(buf, `<text x="0" y="13" text-anchor="middle" font-size="10"><tspan class="donut-tooltip-label">%s</tspan>: <tspan class="donut-tooltip-value">%s</tspan></text>`,
		EscapeXML(tip.Label), EscapeXML(tip.Value))
	buf.WriteString("</g>\n")
}

func (r *svgRenderer) sliceHref(label string) string {
	if !r.links {
		return ""
	}
	return r.linkBase + "/select/slice/" + url.PathEscape(label)
}

func (r *svgRenderer) centerHref() string {
	if !r.links {
		return ""
	}
	return r.linkBase + "/select/center"
}

func (r *svgRenderer) wrapLink(buf *bytes.Buffer, href string, fn func()) {
	if href == "" {
		fn()
		return
	}
	fmt.Fprintf(buf, `<a href="%s">`, EscapeXML(href))
	fn()
	buf.WriteString("</a>")
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
