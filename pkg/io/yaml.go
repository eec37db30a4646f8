package io

import (
	stderrors "errors"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/errors"
)

// ReadYAML decodes chart input from YAML. Mapping order is kept.
func ReadYAML(r io.Reader) (chart.Input, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return chart.Input{}, nil
		}
		return chart.Input{}, decodeError(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return chart.Input{}, nil
	}

	var (
		in  chart.Input
		err error
	)
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		in.Items, err = yamlItems(root)
	case yaml.MappingNode:
		if isYAMLDocument(root) {
			in, err = yamlDocument(root)
		} else {
			in.Data, err = yamlMap(root)
		}
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "line %d: chart data must be a mapping or sequence", root.Line)
	}
	if err != nil {
		return chart.Input{}, err
	}

	if err := validate(in); err != nil {
		return chart.Input{}, err
	}
	return in, nil
}

func isYAMLDocument(n *yaml.Node) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case keyData, keyItems, keyLabels:
			if k := n.Content[i+1].Kind; k == yaml.MappingNode || k == yaml.SequenceNode {
				return true
			}
		}
	}
	return false
}

func yamlDocument(n *yaml.Node) (chart.Input, error) {
	var (
		in  chart.Input
		err error
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case keyData:
			in.Data, err = yamlMap(val)
		case keyItems:
			in.Items, err = yamlItems(val)
		case keyLabels:
			in.Labels = []string{}
			err = val.Decode(&in.Labels)
		}
		if err != nil {
			return chart.Input{}, decodeError(err)
		}
	}
	return in, nil
}

func yamlMap(n *yaml.Node) (*chart.Map, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: data must be a mapping", n.Line)
	}
	m := &chart.Map{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		v, err := yamlNumber(val)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "value for %q", key.Value)
		}
		m.Set(key.Value, v)
	}
	return m, nil
}

func yamlItems(n *yaml.Node) ([]chart.Entry, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: items must be a sequence", n.Line)
	}
	items := make([]chart.Entry, 0, len(n.Content))
	for _, item := range n.Content {
		var e chart.Entry
		if err := item.Decode(&e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d", item.Line)
		}
		items = append(items, e)
	}
	return items, nil
}

func yamlNumber(n *yaml.Node) (float64, error) {
	if n.Kind != yaml.ScalarNode {
		return 0, errors.New(errors.ErrCodeInvalidInput, "line %d: not a number", n.Line)
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return 0, err
		}
		return v, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "line %d: not a number: %s", n.Line, strconv.Quote(n.Value))
	}
}
