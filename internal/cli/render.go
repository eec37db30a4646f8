package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/errors"
	"github.com/matzehuels/donut/pkg/pipeline"
	"github.com/matzehuels/donut/pkg/render"
)

// defaultBase names outputs of charts read from stdin.
const defaultBase = "chart"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		flags      chartFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart to SVG, PNG, PDF or JSON",
		Long: `Render a chart from a data file.

The file holds labeled values as JSON, TOML or YAML, in one of three shapes:
an object mapping labels to values, a list of {"label", "value"} items, or a
document with "data", "items" and "labels" keys. Use "-" to read JSON from
stdin.

Slices follow data order clockwise from --origin. Results are cached
locally; use --refresh to re-render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = pipeline.ParseFormats(formatsStr)
			if len(opts.Formats) == 0 {
				opts.Formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if output == "-" && len(opts.Formats) > 1 {
				return errors.New(errors.ErrCodeInvalidOption, "--output - needs a single --format")
			}
			params, err := flags.params(cmd, c.cfg().Params())
			if err != nil {
				return err
			}
			opts.Params = params
			opts.DataFile = args[0]
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.Links, "links", false, "link slices and center to selection routes")
	cmd.Flags().StringVar(&opts.LinkBase, "link-base", "", "URL prefix of selection links")
	cmd.Flags().BoolVar(&opts.Interaction, "interactive", false, "embed hover styles in the SVG")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	paths := outputPaths(opts.Formats, opts.DataFile, output)
	for _, format := range opts.Formats {
		if samePath(paths[format], opts.DataFile) {
			return errors.New(errors.ErrCodeInvalidOption, "output would overwrite the input file %s", opts.DataFile)
		}
	}

	if needsRSVG(opts.Formats) && !render.Available() {
		printWarning("rsvg-convert not found; PNG and PDF output will fail")
	}

	runner, err := c.newRunner(ctx, noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Rendered chart")

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	if output == "-" {
		return nil
	}

	ch := result.Chart
	printSuccess("Chart rendered")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printChartStats(len(ch.Slices()), chart.FormatValue(ch.Total()), ch.IsDonut(), result.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Explore", appName+" explore "+opts.DataFile)
	return nil
}

func needsRSVG(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			return true
		}
	}
	return false
}

// outputPaths maps each format to its output file. A single format with an
// explicit output is written there; otherwise output (or the input name)
// is a base path extended with the format. A derived path that would
// replace the input gets a ".chart" infix instead.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		path := base + "." + f
		if samePath(path, input) {
			path = base + ".chart." + f
		}
		paths[f] = path
	}
	return paths
}

// samePath reports whether a and b name the same file. Stdin and stdout
// never collide.
func samePath(a, b string) bool {
	if a == "-" || b == "-" || a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// basePath strips a known format extension from output, or derives the
// base from input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return defaultBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
