package sink

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/donut"
)

func TestRenderJSON(t *testing.T) {
	c := newChart(t, nil)
	c.State().SliceHover("North")

	data, err := RenderJSON(c)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.ViewBox != [4]float64{0, 0, 200, 220} {
		t.Errorf("ViewBox = %v, want [0 0 200 220]", out.ViewBox)
	}
	if out.Width != "300" || out.Height != "300" {
		t.Errorf("size = %sx%s, want 300x300", out.Width, out.Height)
	}
	if !out.Donut || out.InnerRadius != 50 || out.OuterRadius != 90 {
		t.Errorf("radii = %v/%v donut=%v, want 90/50 donut", out.OuterRadius, out.InnerRadius, out.Donut)
	}
	if out.Total != 400 {
		t.Errorf("Total = %v, want 400", out.Total)
	}
	if out.InnerTitle != "Total" {
		t.Errorf("InnerTitle = %q, want Total", out.InnerTitle)
	}
	if len(out.Slices) != 4 {
		t.Fatalf("Slices = %d, want 4", len(out.Slices))
	}
	sum := 0.0
	for _, s := range out.Slices {
		sum += s.SweepAngle
	}
	if math.Abs(sum-360) > 1e-9 {
		t.Errorf("sweep sum = %v, want 360", sum)
	}
	if out.Mode != "hovering-slice" || !out.Tooltip.Visible || out.Tooltip.Label != "North" || out.Tooltip.Value != "120" {
		t.Errorf("state = %s %+v", out.Mode, out.Tooltip)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	c := newChart(t, func(p *donut.Params) {
		p.IsDonut = false
		p.Data = chart.NewMap()
	})
	data, err := RenderJSON(c)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["slices"]) != "[]" {
		t.Errorf("slices = %s, want []", raw["slices"])
	}
	if _, ok := raw["inner_title"]; ok {
		t.Error("pie should omit inner_title")
	}
}
