// Package pkg provides the libraries behind the donut chart tool.
//
// # Overview
//
// Donut turns ordered label/value data into donut and pie charts. The pkg
// directory is organized into these areas:
//
//  1. [chart] - Slice geometry: ordered input, angles, SVG path data, colors
//  2. [interact] - Hover and selection state machine
//  3. [donut] - The chart component tying geometry to interaction state
//  4. [io] - JSON, TOML and YAML data import, JSON export
//  5. [render] - SVG, JSON, PNG and PDF output
//  6. [pipeline] - Orchestration (load → build → render) with caching
//  7. [cache], [config], [server], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	data file (JSON / TOML / YAML)
//	         ↓
//	   [io.ImportFile]
//	         ↓
//	   chart.Input ──→ [chart.Build] ──→ []chart.Slice
//	                                         ↓
//	                           [donut.Chart] + [interact.State]
//	                                         ↓
//	                      [render/sink] ──→ SVG / JSON / PNG / PDF
//
// The [pipeline.Runner] wraps build and render with the artifact [cache];
// [server] drives the interaction state from HTTP pointer routes.
//
// # Quick Start
//
//	p := donut.DefaultParams()
//	p.Data = chart.NewMap(
//	    chart.Entry{Label: "North", Value: 120},
//	    chart.Entry{Label: "South", Value: 80},
//	)
//	c := donut.New(p, interact.Collaborators{})
//	svg := sink.RenderSVG(c)
//
// [chart]: github.com/matzehuels/donut/pkg/chart
// [interact]: github.com/matzehuels/donut/pkg/interact
// [donut]: github.com/matzehuels/donut/pkg/donut
// [io]: github.com/matzehuels/donut/pkg/io
// [render]: github.com/matzehuels/donut/pkg/render
// [pipeline]: github.com/matzehuels/donut/pkg/pipeline
// [cache]: github.com/matzehuels/donut/pkg/cache
// [config]: github.com/matzehuels/donut/pkg/config
// [server]: github.com/matzehuels/donut/pkg/server
// [observability]: github.com/matzehuels/donut/pkg/observability
// [io.ImportFile]: github.com/matzehuels/donut/pkg/io#ImportFile
// [chart.Build]: github.com/matzehuels/donut/pkg/chart#Build
// [donut.Chart]: github.com/matzehuels/donut/pkg/donut#Chart
// [interact.State]: github.com/matzehuels/donut/pkg/interact#State
// [render/sink]: github.com/matzehuels/donut/pkg/render/sink
// [pipeline.Runner]: github.com/matzehuels/donut/pkg/pipeline#Runner
package pkg
