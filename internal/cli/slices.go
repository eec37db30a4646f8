package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/interact"
	"github.com/matzehuels/donut/pkg/pipeline"
)

// slicesCommand prints the computed slice geometry.
func (c *CLI) slicesCommand() *cobra.Command {
	var (
		asJSON   bool
		showPath bool
		flags    chartFlags
	)

	cmd := &cobra.Command{
		Use:   "slices [file]",
		Short: "Print the slice table of a chart",
		Long: `Print the slices a chart lays out for a data file: label, value, share
of the total, start and sweep angle, and fill color. Entries with values
that are not positive are dropped.`,
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
			ch := donut.New(p, interact.Collaborators{})
			c.Logger.Debug("built slices", "file", args[0], "slices", len(ch.Slices()))

			if asJSON {
				return writeSlicesJSON(ch.Slices())
			}
			writeLine(slicesTable(ch, showPath))
			printChartStats(len(ch.Slices()), chart.FormatValue(ch.Total()), ch.IsDonut(), false)
			if hidden := hiddenLabels(ch); len(hidden) > 0 {
				printDetail("not shown: %s", strings.Join(hidden, ", "))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print slices as JSON")
	cmd.Flags().BoolVar(&showPath, "paths", false, "include SVG path data")

	return cmd
}

func writeSlicesJSON(slices []chart.Slice) error {
	if slices == nil {
		slices = []chart.Slice{}
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(slices)
}

// hiddenLabels lists the labels of the data file that have no slice, either
// because of --labels or because their value is not positive.
func hiddenLabels(ch *donut.Chart) []string {
	var hidden []string
	for _, label := range ch.Params().Input().AllLabels() {
		if _, ok := chart.Find(ch.Slices(), label); !ok {
			hidden = append(hidden, label)
		}
	}
	return hidden
}

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

// slicesTable renders the slice list as a bordered table.
func slicesTable(ch *donut.Chart, showPath bool) string {
	total := ch.Total()
	headers := []string{"", "Label", "Value", "Share", "Start", "Sweep", "Color"}
	if showPath {
		headers = append(headers, "Path")
	}

	rows := make([][]string, 0, len(ch.Slices()))
	for _, s := range ch.Slices() {
		row := []string{
			swatch(s.Color),
			s.Label,
			chart.FormatValue(s.Value),
			share(s.Value, total),
			degrees(s.StartAngle),
			degrees(s.SweepAngle),
			s.Color,
		}
		if showPath {
			row = append(row, s.PathData)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader.Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 2, 3, 4, 5:
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			case 6, 7:
				return base.Foreground(colorDim)
			}
			return base
		})
	return t.Render()
}

func share(v, total float64) string {
	if total <= 0 {
		return "0%"
	}
	return strconv.FormatFloat(v/total*100, 'f', 1, 64) + "%"
}

func degrees(v float64) string {
	return fmt.Sprintf("%.1f°", v)
}
