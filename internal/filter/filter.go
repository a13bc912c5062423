// Package filter implements the query filter tree and its rewrite into
// disjunctive normal form (DNF).
//
// A filter is either a field filter (one comparison against one field) or a
// composite combining children under AND or OR. Composites nest arbitrarily;
// the DNF engine in dnf.go rewrites any tree into an OR of AND-clauses so
// the planner can map every clause to index lookups without further boolean
// reasoning.
//
// Filters are immutable values. Every rewrite builds new trees and leaves
// its input untouched, so filters may be shared freely across goroutines.
package filter

import (
	"strings"

	"fathom/internal/document"
)

// Filter is the interface for all filter tree nodes.
// The marker method prevents external types from implementing Filter.
type Filter interface {
	filter()
	// String returns a human-readable representation of the filter.
	String() string
}

// FieldFilter is a single field comparison, the leaf of a filter tree.
// It is never mutated after construction.
type FieldFilter struct {
	Path  document.FieldPath
	Op    Operator
	Value document.Value
}

// NewFieldFilter builds a field filter. Construction is always valid; value
// semantics (e.g. "in" wanting a list) are enforced at match time, not here.
func NewFieldFilter(path document.FieldPath, op Operator, value document.Value) *FieldFilter {
	return &FieldFilter{Path: path, Op: op, Value: value}
}

func (*FieldFilter) filter() {}

func (f *FieldFilter) String() string {
	return f.Path.String() + f.Op.String() + f.Value.String()
}

// CompositeKind selects the boolean combinator of a composite filter.
type CompositeKind int

const (
	// Conjunction combines children with AND.
	Conjunction CompositeKind = iota
	// Disjunction combines children with OR.
	Disjunction
)

func (k CompositeKind) String() string {
	if k == Conjunction {
		return "AND"
	}
	return "OR"
}

// CompositeFilter combines an ordered list of child filters under one
// CompositeKind. Child order is semantically irrelevant (AND and OR commute)
// but is preserved exactly: equality is order-sensitive and the DNF engine's
// output ordering depends on it.
//
// Contract: Filters is non-empty. The engine does not validate this; a
// zero-child composite is a construction-layer bug with undefined behavior.
type CompositeFilter struct {
	Kind    CompositeKind
	Filters []Filter
}

// And builds a Conjunction of the given filters.
func And(filters ...Filter) *CompositeFilter {
	return &CompositeFilter{Kind: Conjunction, Filters: filters}
}

// Or builds a Disjunction of the given filters.
func Or(filters ...Filter) *CompositeFilter {
	return &CompositeFilter{Kind: Disjunction, Filters: filters}
}

func (*CompositeFilter) filter() {}

func (c *CompositeFilter) String() string {
	parts := make([]string, len(c.Filters))
	for i, f := range c.Filters {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, " "+c.Kind.String()+" ") + ")"
}

// IsConjunction reports whether the composite combines with AND.
func (c *CompositeFilter) IsConjunction() bool { return c.Kind == Conjunction }

// IsDisjunction reports whether the composite combines with OR.
func (c *CompositeFilter) IsDisjunction() bool { return c.Kind == Disjunction }

// IsFlat reports whether every child is a field filter.
func (c *CompositeFilter) IsFlat() bool {
	for _, f := range c.Filters {
		if _, ok := f.(*CompositeFilter); ok {
			return false
		}
	}
	return true
}

// IsFlatConjunction reports whether the composite is a flat AND.
func (c *CompositeFilter) IsFlatConjunction() bool {
	return c.IsConjunction() && c.IsFlat()
}

// IsFlatDisjunction reports whether the composite is a flat OR.
func (c *CompositeFilter) IsFlatDisjunction() bool {
	return c.IsDisjunction() && c.IsFlat()
}

// Equal reports structural equality of two filter trees: same variant, then
// path/operator/value for field filters, or kind plus children pairwise in
// order for composites. Two composites holding the same children in a
// different order are NOT equal even though they mean the same thing; the
// DNF transforms preserve operand order under this equality.
func Equal(a, b Filter) bool {
	switch af := a.(type) {
	case *FieldFilter:
		bf, ok := b.(*FieldFilter)
		return ok && af.Path.Equal(bf.Path) && af.Op == bf.Op && af.Value.Equal(bf.Value)
	case *CompositeFilter:
		bf, ok := b.(*CompositeFilter)
		if !ok || af.Kind != bf.Kind || len(af.Filters) != len(bf.Filters) {
			return false
		}
		for i := range af.Filters {
			if !Equal(af.Filters[i], bf.Filters[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
