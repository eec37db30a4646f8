package sink

import (
	"encoding/json"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/interact"
)

type jsonOutput struct {
	ID          string           `json:"id"`
	ViewBox     [4]float64       `json:"view_box"`
	Width       string           `json:"width"`
	Height      string           `json:"height"`
	Donut       bool             `json:"donut"`
	OuterRadius float64          `json:"outer_radius"`
	InnerRadius float64          `json:"inner_radius"`
	CenterX     float64          `json:"center_x"`
	CenterY     float64          `json:"center_y"`
	Total       float64          `json:"total"`
	Title       string           `json:"title,omitempty"`
	InnerTitle  string           `json:"inner_title,omitempty"`
	Slices      []chart.Slice    `json:"slices"`
	Mode        string           `json:"mode"`
	Tooltip     interact.Tooltip `json:"tooltip"`
}

// RenderJSON exports the chart frame, slice geometry and interaction state
// as a pretty-printed JSON document. The slice list is never null.
func RenderJSON(c *donut.Chart) ([]byte, error) {
	vw, vh := c.ViewBox()
	w, h := c.Size()
	cx, cy := c.Center()

	slices := c.Slices()
	if slices == nil {
		slices = []chart.Slice{}
	}

	out := jsonOutput{
		ID:          ChartID(c),
		ViewBox:     [4]float64{0, 0, vw, vh},
		Width:       w,
		Height:      h,
		Donut:       c.IsDonut(),
		OuterRadius: c.OuterRadius(),
		InnerRadius: c.InnerRadius(),
		CenterX:     cx,
		CenterY:     cy,
		Total:       c.Total(),
		Title:       c.Params().Title,
		Slices:      slices,
		Mode:        c.State().Mode().String(),
		Tooltip:     c.State().Tooltip(),
	}
	if c.IsDonut() {
		out.InnerTitle = c.InnerTitle()
	}
	return json.MarshalIndent(out, "", "  ")
}
