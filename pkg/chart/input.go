package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Entry is a single labeled value.
type Entry struct {
	Label string  `json:"label" toml:"label" yaml:"label"`
	Value float64 `json:"value" toml:"value" yaml:"value"`
}

// Map is an insertion-ordered mapping from label to value.
// Setting an existing label replaces its value but keeps its position.
// The zero value is an empty map ready to use.
type Map struct {
	keys   []string
	values map[string]float64
}

// NewMap returns a map holding entries in order. Later duplicates
// overwrite earlier ones.
func NewMap(entries ...Entry) *Map {
	m := &Map{}
	for _, e := range entries {
		m.Set(e.Label, e.Value)
	}
	return m
}

// Set stores value under label.
func (m *Map) Set(label string, value float64) {
	if m.values == nil {
		m.values = make(map[string]float64)
	}
	if _, ok := m.values[label]; !ok {
		m.keys = append(m.keys, label)
	}
	m.values[label] = value
}

// Get returns the value stored under label.
func (m *Map) Get(label string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m.values[label]
	return v, ok
}

// Len returns the number of labels.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Labels returns the labels in insertion order.
func (m *Map) Labels() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Entries returns the entries in insertion order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.keys))
	for i, k := range m.keys {
		out[i] = Entry{Label: k, Value: m.values[k]}
	}
	return out
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("value for %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the order of its keys.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("chart data must be a JSON object, got %v", tok)
	}

	*m = Map{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		v, err := strconv.ParseFloat(string(bytes.TrimSpace(raw)), 64)
		if err != nil {
			return fmt.Errorf("value for %q: not a number: %s", key, raw)
		}
		m.Set(key, v)
	}
	_, err = dec.Token()
	return err
}

// Input is the data a chart is built from.
//
// Data takes precedence over Items when both are set. Labels, when
// non-nil, restricts layout to the listed labels; an empty non-nil
// slice therefore hides everything.
type Input struct {
	Data   *Map
	Items  []Entry
	Labels []string
}

// Entries returns the entries that participate in layout, in order,
// after the label restriction and before value filtering.
func (in Input) Entries() []Entry {
	var src []Entry
	switch {
	case in.Data != nil:
		src = in.Data.Entries()
	case in.Items != nil:
		src = append([]Entry(nil), in.Items...)
	}
	if in.Labels == nil {
		return src
	}

	allowed := make(map[string]struct{}, len(in.Labels))
	for _, l := range in.Labels {
		allowed[l] = struct{}{}
	}
	out := src[:0]
	for _, e := range src {
		if _, ok := allowed[e.Label]; ok {
			out = append(out, e)
		}
	}
	return out
}

// AllLabels returns every label of the active source, ignoring the
// label restriction.
func (in Input) AllLabels() []string {
	if in.Data != nil {
		return in.Data.Labels()
	}
	labels := make([]string, len(in.Items))
	for i, e := range in.Items {
		labels[i] = e.Label
	}
	return labels
}
