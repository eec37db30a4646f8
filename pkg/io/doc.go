// Package io imports chart data from JSON, TOML and YAML documents.
//
// # Document Shapes
//
// Every format accepts the same three shapes. A plain mapping is read as
// the dictionary-like source, in document order:
//
//	{"North": 120, "South": 80, "East": 140, "West": 60}
//
// A sequence of pairs is read as the item source (duplicates allowed):
//
//	[{"label": "Completed", "value": 30}, {"label": "Blocked", "value": 5}]
//
// A document combines both with an optional label restriction:
//
//	{
//	  "data":   {"North": 120, "South": 80},
//	  "items":  [{"label": "Other", "value": 5}],
//	  "labels": ["North"]
//	}
//
// When a document carries both data and items, data wins at layout time,
// exactly as for a [chart.Input] built in code.
//
// In TOML the same document is written with a [data] table, [[items]]
// array of tables and a top-level labels array; key order of [data] is
// taken from the document. YAML mappings keep their order as well.
//
// # Validation
//
// Labels must pass [errors.ValidateLabel] and values must be numbers.
// Values themselves are not range checked: zero, negative and non-finite
// values are valid input and are dropped later by [chart.Build].
//
// [chart.Input]: github.com/matzehuels/donut/pkg/chart.Input
// [chart.Build]: github.com/matzehuels/donut/pkg/chart.Build
// [errors.ValidateLabel]: github.com/matzehuels/donut/pkg/errors.ValidateLabel
package io
