package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/interact"
	"github.com/matzehuels/donut/pkg/observability"
	"github.com/matzehuels/donut/pkg/pipeline"
)

const barWidth = 48

var (
	exploreActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	exploreNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	exploreDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	exploreTipStyle    = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("236")).Padding(0, 1)
)

// exploreCommand opens the terminal chart explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Hover and select slices in the terminal",
		Long: `Explore a chart in the terminal.

Move between slices with the arrow keys to show their tooltip, press c to
hover the center of a donut, and enter to select. Selections are listed
when the explorer exits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.params(cmd, c.cfg().Params())
			if err != nil {
				return err
			}
			p, err = pipeline.Load(args[0], p)
			if err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), p)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, p donut.Params) error {
	m := newExploreModel(ctx, donut.New(p, interact.Collaborators{}))
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	fm, ok := final.(exploreModel)
	if !ok || len(fm.log.entries) == 0 {
		printDetail("No selection made")
		return nil
	}
	for _, e := range fm.log.entries {
		printInfo("Selected %s", StyleHighlight.Render(e))
	}
	return nil
}

// selectionLog collects collaborator calls. It is shared by every copy of
// the model.
type selectionLog struct {
	entries []string
}

// exploreModel is the bubbletea model of the explorer. The cursor walks the
// slices, then the center of donuts; -1 means nothing is hovered.
type exploreModel struct {
	ctx    context.Context
	chart  *donut.Chart
	cursor int
	log    *selectionLog
}

func newExploreModel(ctx context.Context, ch *donut.Chart) exploreModel {
	sel := &selectionLog{}
	ch.State().SetCollaborators(interact.Collaborators{
		SliceSelected:  func(label string) { sel.entries = append(sel.entries, label) },
		CenterSelected: func() { sel.entries = append(sel.entries, ch.InnerTitle()) },
	})
	return exploreModel{ctx: ctx, chart: ch, cursor: -1, log: sel}
}

// targets is the number of hoverable regions.
func (m exploreModel) targets() int {
	n := len(m.chart.Slices())
	if m.chart.IsDonut() {
		n++
	}
	return n
}

func (m exploreModel) onCenter() bool {
	return m.chart.IsDonut() && m.cursor == len(m.chart.Slices())
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	hooks := observability.Interaction()
	st := m.chart.State()

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "right", "down", "l", "j", "tab":
		if n := m.targets(); n > 0 {
			m.cursor = (m.cursor + 1) % n
			m.hover()
		}
	case "left", "up", "h", "k", "shift+tab":
		if n := m.targets(); n > 0 {
			if m.cursor < 0 {
				m.cursor = n - 1
			} else {
				m.cursor = (m.cursor - 1 + n) % n
			}
			m.hover()
		}
	case "c":
		if m.chart.IsDonut() {
			m.cursor = len(m.chart.Slices())
			m.hover()
		}
	case "esc", "backspace":
		m.cursor = -1
		st.PointerLeave()
		hooks.OnLeave(m.ctx)
	case "enter", " ":
		switch {
		case m.onCenter():
			st.CenterClick()
			hooks.OnSelect(m.ctx, "center", "")
		case m.cursor >= 0:
			label := m.chart.Slices()[m.cursor].Label
			st.SliceClick(label)
			hooks.OnSelect(m.ctx, "slice", label)
		}
	}
	return m, nil
}

func (m exploreModel) hover() {
	st := m.chart.State()
	if m.onCenter() {
		st.CenterHover()
		observability.Interaction().OnHover(m.ctx, "center", "")
		return
	}
	label := m.chart.Slices()[m.cursor].Label
	st.SliceHover(label)
	observability.Interaction().OnHover(m.ctx, "slice", label)
}

func (m exploreModel) View() string {
	var b strings.Builder

	title := m.chart.Params().Title
	if title == "" {
		title = "Chart"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render("←/→ hover  c center  esc leave  ⏎ select  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.bar())
	b.WriteString("\n\n")

	for i, s := range m.chart.Slices() {
		cursor := "  "
		style := exploreNormalStyle
		if i == m.cursor {
			cursor, style = "▸ ", exploreActiveStyle
		}
		line := fmt.Sprintf("%-24s %10s", s.Label, chart.FormatValue(s.Value))
		b.WriteString(cursor + swatch(s.Color) + " " + style.Render(line) + "\n")
	}
	if m.chart.IsDonut() {
		cursor, style := "  ", exploreDimStyle
		if m.onCenter() {
			cursor, style = "▸ ", exploreActiveStyle
		}
		line := fmt.Sprintf("%-24s %10s", "("+m.chart.InnerTitle()+")", chart.FormatValue(m.chart.Total()))
		b.WriteString(cursor + "  " + style.Render(line) + "\n")
	}
	if len(m.chart.Slices()) == 0 {
		b.WriteString(exploreDimStyle.Render("  no slices") + "\n")
	}

	b.WriteString("\n")
	if tip := m.chart.State().Tooltip(); tip.Visible {
		b.WriteString(exploreTipStyle.Render(tip.Label + ": " + tip.Value))
	} else {
		b.WriteString(exploreDimStyle.Render(m.chart.State().Mode().String()))
	}
	b.WriteString("\n")

	if n := len(m.log.entries); n > 0 {
		b.WriteString(exploreDimStyle.Render(fmt.Sprintf("selected %s (%d total)", m.log.entries[n-1], n)))
		b.WriteString("\n")
	}
	return b.String()
}

// bar draws the slices as a proportional strip, the hovered one raised.
func (m exploreModel) bar() string {
	slices := m.chart.Slices()
	total := m.chart.Total()
	if total <= 0 {
		return exploreDimStyle.Render(strings.Repeat("░", barWidth))
	}

	var b strings.Builder
	used := 0
	for i, s := range slices {
		w := int(math.Round(s.SweepAngle / 360 * barWidth))
		if i == len(slices)-1 {
			w = barWidth - used
		}
		if w <= 0 {
			continue
		}
		used += w

		glyph := "▆"
		if m.chart.State().Mode() == interact.HoveringSlice && m.chart.State().Hovered() == s.Label {
			glyph = "█"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(strings.Repeat(glyph, w)))
	}
	return b.String()
}
