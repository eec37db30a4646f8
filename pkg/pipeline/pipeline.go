// Package pipeline provides the load → build → render pipeline for charts.
//
// This package is shared by the CLI and the HTTP server so both render
// charts the same way and share one artifact cache.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read chart data from a JSON, TOML or YAML file (optional)
//  2. Build: Lay out the slices of a [donut.Chart]
//  3. Render: Produce SVG, PNG, PDF or JSON artifacts
//
// Rendered artifacts are cached by the hash of the slice list plus the
// render settings, so repeated renders of unchanged data never touch
// rsvg-convert.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DataFile: "sales.toml",
//	    Params:   donut.DefaultParams(),
//	    Formats:  []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [donut.Chart]: github.com/matzehuels/donut/pkg/donut.Chart
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/donut/pkg/cache"
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/errors"
	"github.com/matzehuels/donut/pkg/render/sink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// Options configures one pipeline run.
type Options struct {
	// DataFile, when set, replaces the data sources of Params with the
	// contents of the file. A label restriction already set on Params is
	// kept.
	DataFile string

	// Params describes the chart.
	Params donut.Params

	// Render options
	Formats     []string
	Links       bool
	LinkBase    string
	Interaction bool
	Scale       float64 // PNG scale, sink.DefaultScale when zero

	// Refresh bypasses cached artifacts and overwrites them.
	Refresh bool

	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the built chart.
	Chart *donut.Chart

	// SlicesHash is the content hash of the slice list.
	SlicesHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entries    int
	Slices     int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // every artifact came from the cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list. An empty string means
// SVG only.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateForRender applies render defaults and validates the options.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "scale must be positive, got %v", o.Scale)
	}
	if o.Params.OuterRadius < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "radius must be positive, got %v", o.Params.OuterRadius)
	}
	if o.Links && o.LinkBase != "" {
		if err := errors.ValidateRedirect(o.LinkBase); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats)
}

// SVGOptions returns the sink options described by o.
func (o *Options) SVGOptions() []sink.SVGOption {
	var opts []sink.SVGOption
	if o.Links {
		opts = append(opts, sink.WithLinks(o.LinkBase))
	}
	if o.Interaction {
		opts = append(opts, sink.WithInteraction())
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for rendering c as format.
func (o *Options) ArtifactKeyOpts(c *donut.Chart, format string) cache.ArtifactKeyOpts {
	w, h := c.Size()
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Donut:       c.IsDonut(),
		OuterRadius: c.OuterRadius(),
		InnerRadius: c.InnerRadius(),
		Title:       c.Params().Title,
		InnerTitle:  c.InnerTitle(),
		Width:       w,
		Height:      h,
	}
	if format == FormatJSON {
		return k
	}
	k.Links, k.LinkBase, k.Interaction = o.Links, o.LinkBase, o.Interaction
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
