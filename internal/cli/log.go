// Package cli implements the donut command-line interface.
//
// The CLI reads chart data files, lays out their slices and writes the
// result as SVG, PNG, PDF or JSON. It can also print the slice geometry,
// explore the chart interactively in the terminal and serve it over HTTP.
// Commands are built with cobra; logging uses charmbracelet/log.
//
// # Commands
//
//   - render: Generate SVG, PNG, PDF or JSON from a data file
//   - slices: Print the computed slice table
//   - explore: Hover and select slices in a terminal UI
//   - serve: Serve the chart as an interactive web page
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to commands and library code.
//
// # Configuration
//
// Chart, cache and server defaults come from the TOML file selected with
// --config, or ~/.config/donut/config.toml. Flags override the file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with "HH:MM:SS.ms"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the duration of an operation when it completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered chart (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a copy of ctx carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
