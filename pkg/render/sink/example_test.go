package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/interact"
	"github.com/matzehuels/donut/pkg/render/sink"
)

func ExampleRenderSVG() {
	p := donut.DefaultParams()
	p.Items = []chart.Entry{{Label: "Completed", Value: 30}, {Label: "Remaining", Value: 10}}
	c := donut.New(p, interact.Collaborators{})

	svg := string(sink.RenderSVG(c, sink.WithLinks("")))
	fmt.Println(strings.Count(svg, `class="donut-slice"`))
	fmt.Println(strings.Contains(svg, `href="/select/slice/Completed"`))
	// Output:
	// 2
	// true
}
