package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/interact"
)

func regions() *chart.Map {
	return chart.NewMap(
		chart.Entry{Label: "North", Value: 120},
		chart.Entry{Label: "South", Value: 80},
		chart.Entry{Label: "East", Value: 140},
		chart.Entry{Label: "West", Value: 60},
	)
}

func newChart(t *testing.T, mutate func(*donut.Params)) *donut.Chart {
	t.Helper()
	p := donut.DefaultParams()
	p.Data = regions()
	if mutate != nil {
		mutate(&p)
	}
	return donut.New(p, interact.Collaborators{})
}

func TestRenderSVGStructure(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*donut.Params)
		wantSlices int
		wantCenter bool
	}{
		{"donut", nil, 4, true},
		{"pie", func(p *donut.Params) { p.IsDonut = false }, 4, false},
		{"empty donut", func(p *donut.Params) { p.Data = chart.NewMap() }, 0, true},
		{"restricted", func(p *donut.Params) { p.Labels = []string{"East", "West"} }, 2, true},
		{"restricted to nothing", func(p *donut.Params) { p.Labels = []string{} }, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(newChart(t, tt.mutate)))

			if !strings.Contains(svg, `viewBox="0 0 200 220" width="300" height="300"`) {
				t.Errorf("missing default frame:\n%s", svg)
			}
			if got := strings.Count(svg, `<path class="donut-slice`); got != tt.wantSlices {
				t.Errorf("slice paths = %d, want %d", got, tt.wantSlices)
			}
			if got := strings.Contains(svg, `class="donut-center"`); got != tt.wantCenter {
				t.Errorf("center present = %v, want %v", got, tt.wantCenter)
			}
			if strings.Contains(svg, "donut-tooltip") {
				t.Error("tooltip should be hidden while idle")
			}
		})
	}
}

func TestRenderSVGSliceAttributes(t *testing.T) {
	c := newChart(t, nil)
	svg := string(RenderSVG(c))

	for _, s := range c.Slices() {
		want := `d="` + s.PathData + `" fill="` + s.Color + `" data-label="` + s.Label + `"`
		if !strings.Contains(svg, want) {
			t.Errorf("missing slice attributes %s", want)
		}
	}
	if !strings.Contains(svg, "<title>North: 120</title>") {
		t.Error("missing slice title")
	}
	if !strings.Contains(svg, `<text class="donut-total" x="100" y="112"`) || !strings.Contains(svg, ">400</text>") {
		t.Errorf("missing center total:\n%s", svg)
	}
}

func TestRenderSVGTooltip(t *testing.T) {
	t.Run("slice hover", func(t *testing.T) {
		c := newChart(t, nil)
		c.State().SliceHover("East")
		svg := string(RenderSVG(c))

		if !strings.Contains(svg, `class="donut-tooltip"`) {
			t.Fatal("tooltip should be visible")
		}
		if !strings.Contains(svg, `<tspan class="donut-tooltip-label">East</tspan>: <tspan class="donut-tooltip-value">140</tspan>`) {
			t.Errorf("unexpected tooltip:\n%s", svg)
		}
		if strings.Count(svg, `class="donut-slice active"`) != 1 {
			t.Error("exactly one slice should be active")
		}
	})

	t.Run("center hover", func(t *testing.T) {
		c := newChart(t, func(p *donut.Params) { p.InnerTitle = "Revenue" })
		c.State().CenterHover()
		svg := string(RenderSVG(c))

		if !strings.Contains(svg, `<tspan class="donut-tooltip-label">Revenue</tspan>: <tspan class="donut-tooltip-value">400</tspan>`) {
			t.Errorf("unexpected tooltip:\n%s", svg)
		}
		if strings.Contains(svg, "active") {
			t.Error("no slice should be active on center hover")
		}
	})

	t.Run("leave", func(t *testing.T) {
		c := newChart(t, nil)
		c.State().SliceHover("East")
		c.State().PointerLeave()
		if strings.Contains(string(RenderSVG(c)), "donut-tooltip") {
			t.Error("tooltip should be hidden after leave")
		}
	})
}

func TestRenderSVGLinks(t *testing.T) {
	c := newChart(t, func(p *donut.Params) {
		p.Data = chart.NewMap(chart.Entry{Label: "In Progress", Value: 3}, chart.Entry{Label: "Done", Value: 1})
	})

	plain := string(RenderSVG(c))
	if strings.Contains(plain, "<a ") {
		t.Error("links should be off by default")
	}

	svg := string(RenderSVG(c, WithLinks("/charts/1")))
	for _, want := range []string{
		`<a href="/charts/1/select/slice/In%20Progress">`,
		`<a href="/charts/1/select/slice/Done">`,
		`<a href="/charts/1/select/center">`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s", want)
		}
	}

	pie := newChart(t, func(p *donut.Params) { p.IsDonut = false })
	if strings.Contains(string(RenderSVG(pie, WithLinks(""))), "/select/center") {
		t.Error("pie should not link the center")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	c := newChart(t, func(p *donut.Params) { p.Title = "Sales & Returns" })

	svg := string(RenderSVG(c, WithInteraction(), WithID("main")))
	if !strings.Contains(svg, "<style>") {
		t.Error("WithInteraction should embed CSS")
	}
	if !strings.Contains(svg, `id="main"`) {
		t.Error("WithID should set the root id")
	}
	if !strings.Contains(svg, `class="donut-title" x="100" y="214"`) || !strings.Contains(svg, ">Sales &amp; Returns</text>") {
		t.Errorf("missing escaped title:\n%s", svg)
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	c := newChart(t, func(p *donut.Params) {
		p.Data = chart.NewMap(chart.Entry{Label: `<R&D>`, Value: 1})
	})
	svg := string(RenderSVG(c))
	if !strings.Contains(svg, `data-label="&lt;R&amp;D&gt;"`) {
		t.Errorf("label not escaped:\n%s", svg)
	}
	if strings.Contains(svg, "<R&D>") {
		t.Error("raw label leaked into markup")
	}
}

func TestChartIDDeterministic(t *testing.T) {
	a := RenderSVG(newChart(t, nil))
	b := RenderSVG(newChart(t, nil))
	if string(a) != string(b) {
		t.Error("equal charts should render identical SVG")
	}

	id1 := ChartID(newChart(t, nil))
	id2 := ChartID(newChart(t, func(p *donut.Params) { p.IsDonut = false }))
	if id1 == id2 {
		t.Error("different geometry should produce different ids")
	}
	if !strings.HasPrefix(id1, "donut-") {
		t.Errorf("ChartID = %q, want donut- prefix", id1)
	}
}
