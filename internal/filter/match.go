package filter

import "fathom/internal/document"

// Runtime evaluation of filters against documents. The executor uses this
// both as the verification pass over index candidates and as the fallback
// when a predicate has no index support.

// Matches evaluates a filter tree against a document: a conjunction matches
// when every child does, a disjunction when any child does.
func Matches(f Filter, doc document.Document) bool {
	switch ff := f.(type) {
	case *FieldFilter:
		return ff.Matches(doc)
	case *CompositeFilter:
		if ff.IsConjunction() {
			for _, child := range ff.Filters {
				if !Matches(child, doc) {
					return false
				}
			}
			return true
		}
		for _, child := range ff.Filters {
			if Matches(child, doc) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Matches reports whether the document satisfies this field comparison.
// A missing field never matches, regardless of operator.
func (f *FieldFilter) Matches(doc document.Document) bool {
	got, ok := doc.Get(f.Path)
	if !ok {
		return false
	}

	switch f.Op {
	case OpEqual:
		return got.Equal(f.Value)
	case OpNotEqual:
		return !got.Equal(f.Value)
	case OpLessThan:
		return sameKind(got, f.Value) && got.Compare(f.Value) < 0
	case OpLessThanOrEqual:
		return sameKind(got, f.Value) && got.Compare(f.Value) <= 0
	case OpGreaterThan:
		return sameKind(got, f.Value) && got.Compare(f.Value) > 0
	case OpGreaterThanOrEqual:
		return sameKind(got, f.Value) && got.Compare(f.Value) >= 0
	case OpIn:
		return listContains(f.Value, got)
	case OpNotIn:
		return f.Value.Kind() == document.KindList && !listContains(f.Value, got)
	case OpArrayContains:
		return listContains(got, f.Value)
	case OpArrayContainsAny:
		if got.Kind() != document.KindList || f.Value.Kind() != document.KindList {
			return false
		}
		for _, want := range f.Value.ListValue() {
			if listContains(got, want) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// sameKind gates range comparisons: ordering across kinds exists for index
// layout but is not meaningful as a query result.
func sameKind(a, b document.Value) bool {
	return a.Kind() == b.Kind()
}

// listContains reports whether list is a list value with an element equal
// to elem.
func listContains(list, elem document.Value) bool {
	if list.Kind() != document.KindList {
		return false
	}
	for _, e := range list.ListValue() {
		if e.Equal(elem) {
			return true
		}
	}
	return false
}
