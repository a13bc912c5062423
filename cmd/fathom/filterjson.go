package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"fathom/internal/document"
	"fathom/internal/filter"
)

// Filter descriptions are JSON trees, decoded here in the CLI only; the
// engine itself has no wire format. A leaf is
//
//	{"field": "price", "op": "<", "value": 10}
//
// and composites are {"and": [...]} or {"or": [...]}.

type filterNode struct {
	And   []json.RawMessage `json:"and"`
	Or    []json.RawMessage `json:"or"`
	Field string            `json:"field"`
	Op    string            `json:"op"`
	Value json.RawMessage   `json:"value"`
}

var errAmbiguousFilter = errors.New(`filter node must have exactly one of "and", "or", or "field"`)

func decodeFilter(raw []byte) (filter.Filter, error) {
	var node filterNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}

	forms := 0
	if node.And != nil {
		forms++
	}
	if node.Or != nil {
		forms++
	}
	if node.Field != "" {
		forms++
	}
	if forms != 1 {
		return nil, errAmbiguousFilter
	}

	switch {
	case node.And != nil:
		children, err := decodeChildren(node.And)
		if err != nil {
			return nil, err
		}
		return filter.And(children...), nil
	case node.Or != nil:
		children, err := decodeChildren(node.Or)
		if err != nil {
			return nil, err
		}
		return filter.Or(children...), nil
	default:
		return decodeLeaf(node)
	}
}

func decodeChildren(raws []json.RawMessage) ([]filter.Filter, error) {
	if len(raws) == 0 {
		return nil, errors.New("composite filter needs at least one child")
	}
	children := make([]filter.Filter, len(raws))
	for i, raw := range raws {
		child, err := decodeFilter(raw)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}

func decodeLeaf(node filterNode) (filter.Filter, error) {
	path, err := document.ParsePath(node.Field)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", node.Field, err)
	}
	op, err := filter.ParseOperator(node.Op)
	if err != nil {
		return nil, err
	}

	var decoded any
	if len(node.Value) > 0 {
		if err := json.Unmarshal(node.Value, &decoded); err != nil {
			return nil, fmt.Errorf("value for %q: %w", node.Field, err)
		}
	}
	value, ok := document.FromGo(decoded)
	if !ok {
		return nil, fmt.Errorf("value for %q has no comparison representation", node.Field)
	}

	return filter.NewFieldFilter(path, op, value), nil
}
