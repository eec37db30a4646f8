package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/donut/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The persistent --verbose flag switches the logger to debug level and
// --config selects the config file. Both are applied before any subcommand
// runs, and the logger is attached to the command context.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "Donut renders donut and pie charts",
		Long: `Donut turns labeled values into donut and pie charts.

Data is read from JSON, TOML or YAML files. Charts are rendered to SVG, PNG,
PDF or JSON, explored in the terminal, or served as an interactive page.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if _, err := c.loadConfig(); err != nil {
				return err
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/donut/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.slicesCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
