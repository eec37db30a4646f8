package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/donut/pkg/chart"
)

type exportDocument struct {
	Data   *chart.Map    `json:"data,omitempty"`
	Items  []chart.Entry `json:"items,omitempty"`
	Labels *[]string     `json:"labels,omitempty"`
}

// WriteJSON encodes chart input as a JSON document and writes it to w.
// Empty sources are omitted. A non-nil label restriction is always written,
// even when empty, so the output re-imports with [ReadJSON] unchanged.
func WriteJSON(in chart.Input, w io.Writer) error {
	doc := exportDocument{Data: in.Data, Items: in.Items}
	if in.Labels != nil {
		doc.Labels = &in.Labels
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ExportJSON writes chart input as JSON to the file at path.
func ExportJSON(in chart.Input, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(in, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
