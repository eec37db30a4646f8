package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/donut/pkg/cache"
	"github.com/matzehuels/donut/pkg/errors"
	"github.com/matzehuels/donut/pkg/interact"
	"github.com/matzehuels/donut/pkg/observability"
	"github.com/matzehuels/donut/pkg/pipeline"
	"github.com/matzehuels/donut/pkg/server"
)

// serveKeyPrefix separates server artifacts from CLI renders in shared
// caches.
const serveKeyPrefix = "serve:"

// serveCommand serves a chart as an interactive page.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		sliceURL  string
		centerURL string
		noCache   bool
		flags     chartFlags
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a chart as an interactive web page",
		Long: `Serve a chart over HTTP.

The page shows a tooltip when a slice or the center of a donut is hovered.
Clicking a slice redirects to --slice-url and clicking the center redirects
to --center-url. The chart is also available as /chart.svg, /chart.png,
/chart.pdf and /chart.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg().Server
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Addr
			}
			if !cmd.Flags().Changed("slice-url") {
				sliceURL = cfg.SliceURL
			}
			if !cmd.Flags().Changed("center-url") {
				centerURL = cfg.CenterURL
			}
			for _, u := range []string{sliceURL, centerURL} {
				if err := errors.ValidateRedirect(u); err != nil {
					return err
				}
			}

			p, err := flags.params(cmd, c.cfg().Params())
			if err != nil {
				return err
			}
			p, err = pipeline.Load(args[0], p)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache, cache.NewScopedKeyer(nil, serveKeyPrefix))
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			ch := runner.Build(cmd.Context(), p, interact.Collaborators{})
			srv := server.New(ch, server.Options{
				SliceURL:  sliceURL,
				CenterURL: centerURL,
				Runner:    runner,
				Logger:    c.Logger,
			})
			return c.runServe(cmd.Context(), srv, addr, sliceURL, centerURL)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().StringVar(&sliceURL, "slice-url", "", "redirect target of slice clicks (default /counter)")
	cmd.Flags().StringVar(&centerURL, "center-url", "", "redirect target of center clicks (default /weather)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, srv *server.Server, addr, sliceURL, centerURL string) error {
	observability.SetInteractionHooks(observability.NewLogHooks(c.Logger))
	defer observability.Reset()

	printSuccess("Serving chart")
	printKeyValue("Address", StyleLink.Render("http://"+addr))
	printKeyValue("Slice URL", sliceURL)
	printKeyValue("Center URL", centerURL)
	printNewline()
	return srv.ListenAndServe(ctx, addr)
}
