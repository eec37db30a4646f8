package io

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/errors"
)

// ReadTOML decodes chart input from TOML. A document without data, items
// or labels keys is read as a plain top-level table of numbers.
func ReadTOML(r io.Reader) (chart.Input, error) {
	var raw map[string]any
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return chart.Input{}, decodeError(err)
	}

	_, hasData := raw[keyData]
	_, hasItems := raw[keyItems]
	_, hasLabels := raw[keyLabels]

	var in chart.Input
	switch {
	case hasData || hasItems || hasLabels:
		if hasData {
			table, ok := raw[keyData].(map[string]any)
			if !ok {
				return chart.Input{}, errors.New(errors.ErrCodeInvalidInput, "data must be a table")
			}
			if in.Data, err = orderedTable(md, []string{keyData}, table); err != nil {
				return chart.Input{}, err
			}
		}
		if hasItems {
			if in.Items, err = tomlItems(raw[keyItems]); err != nil {
				return chart.Input{}, err
			}
		}
		if hasLabels {
			if in.Labels, err = tomlStrings(raw[keyLabels]); err != nil {
				return chart.Input{}, err
			}
		}
	case len(raw) > 0:
		if in.Data, err = orderedTable(md, nil, raw); err != nil {
			return chart.Input{}, err
		}
	}

	if err := validate(in); err != nil {
		return chart.Input{}, err
	}
	return in, nil
}

// orderedTable builds a map from table, ordering labels as they appear
// under prefix in the decoded document.
func orderedTable(md toml.MetaData, prefix []string, table map[string]any) (*chart.Map, error) {
	m := &chart.Map{}
	for _, key := range md.Keys() {
		if len(key) != len(prefix)+1 || !hasPrefix(key, prefix) {
			continue
		}
		label := key[len(prefix)]
		v, ok := table[label]
		if !ok {
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "value for %q: not a number", label)
		}
		m.Set(label, f)
	}
	return m, nil
}

func hasPrefix(key toml.Key, prefix []string) bool {
	for i, p := range prefix {
		if key[i] != p {
			return false
		}
	}
	return true
}

func tomlItems(v any) ([]chart.Entry, error) {
	tables, ok := v.([]map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "items must be an array of tables")
	}
	items := make([]chart.Entry, 0, len(tables))
	for i, t := range tables {
		label, _ := t["label"].(string)
		value, ok := toFloat(t["value"])
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "item %d: value must be a number", i)
		}
		items = append(items, chart.Entry{Label: label, Value: value})
	}
	return items, nil
}

func tomlStrings(v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "labels must be an array of strings")
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "labels must be strings, got %v", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
