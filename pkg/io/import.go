package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/errors"
)

// Supported input formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// document keys recognized in every format.
const (
	keyData   = "data"
	keyItems  = "items"
	keyLabels = "labels"
)

// FormatFromPath returns the input format implied by the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported data file %q (want .json, .toml, .yaml or .yml)", path)
	}
}

// Read decodes chart input in the given format from r.
func Read(r io.Reader, format string) (chart.Input, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return chart.Input{}, errors.New(errors.ErrCodeInvalidFormat, "unknown input format: %s", format)
	}
}

// ImportFile reads chart input from path, choosing the decoder by extension.
// The path "-" reads JSON from stdin.
func ImportFile(path string) (chart.Input, error) {
	if path == "-" {
		return ReadJSON(os.Stdin)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return chart.Input{}, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return chart.Input{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return chart.Input{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	in, err := Read(f, format)
	if err != nil {
		return chart.Input{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// jsonDocument is the combined JSON document shape.
type jsonDocument struct {
	Data   *chart.Map    `json:"data"`
	Items  []chart.Entry `json:"items"`
	Labels []string      `json:"labels"`
}

// ReadJSON decodes chart input from a JSON object, array or document.
func ReadJSON(r io.Reader) (chart.Input, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return chart.Input{}, fmt.Errorf("read: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return chart.Input{}, nil
	}

	var in chart.Input
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &in.Items); err != nil {
			return chart.Input{}, decodeError(err)
		}
	case '{':
		if isJSONDocument(raw) {
			var doc jsonDocument
			if err := json.Unmarshal(raw, &doc); err != nil {
				return chart.Input{}, decodeError(err)
			}
			in = chart.Input{Data: doc.Data, Items: doc.Items, Labels: doc.Labels}
		} else {
			in.Data = &chart.Map{}
			if err := json.Unmarshal(raw, in.Data); err != nil {
				return chart.Input{}, decodeError(err)
			}
		}
	default:
		return chart.Input{}, errors.New(errors.ErrCodeInvalidInput, "chart data must be a JSON object or array")
	}

	if err := validate(in); err != nil {
		return chart.Input{}, err
	}
	return in, nil
}

// isJSONDocument reports whether an object uses the document shape: at
// least one document key whose value is not a plain number.
func isJSONDocument(raw []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	for _, k := range []string{keyData, keyItems, keyLabels} {
		v, ok := fields[k]
		if !ok {
			continue
		}
		if c := bytes.TrimSpace(v); len(c) > 0 && (c[0] == '{' || c[0] == '[') {
			return true
		}
	}
	return false
}

func decodeError(err error) error {
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode chart data")
}

// validate checks every label of in.
func validate(in chart.Input) error {
	for _, e := range in.Data.Entries() {
		if err := errors.ValidateLabel(e.Label); err != nil {
			return err
		}
	}
	for i, e := range in.Items {
		if err := errors.ValidateLabel(e.Label); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLabel, err, "item %d", i)
		}
	}
	return nil
}
