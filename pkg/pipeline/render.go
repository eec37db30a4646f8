package pipeline

import (
	"fmt"

	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/render/sink"
)

// Render generates c in every requested format without caching.
func Render(c *donut.Chart, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(c, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates c in a single format.
func RenderFormat(c *donut.Chart, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(c, opts.SVGOptions()...)
	case FormatPNG:
		data, err = sink.RenderPNG(c, sink.WithPNGSVGOptions(opts.SVGOptions()...), sink.WithScale(opts.Scale))
	case FormatPDF:
		data, err = sink.RenderPDF(c, sink.WithPDFSVGOptions(opts.SVGOptions()...))
	case FormatJSON:
		data, err = sink.RenderJSON(c)
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
