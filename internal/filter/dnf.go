package filter

// DNF (disjunctive normal form) rewriting.
//
// The planner wants every query as a top-level OR of AND-clauses so each
// clause can be resolved against indexes on its own. Three rewrites get an
// arbitrary tree there:
//
//   - association flattens same-kind nesting and collapses single children,
//   - distribution expands AND over OR per the boolean distributive law,
//   - ComputeDNF drives both bottom-up over the whole tree.
//
// All three are pure: they build fresh trees and never touch their inputs.
// Child ordering is deterministic and part of the contract (see Equal);
// callers and tests rely on it. Output size is exponential in the worst case
// (ANDs over many ORs) and no guard is applied here; callers in constrained
// settings bound their inputs before normalizing.

// ApplyAssociation rewrites f into an equivalent, canonically flat shape: no
// composite has a direct child of its own kind, and no composite has exactly
// one child. Children are associated first, then same-kind children are
// replaced in place by their own children, then a lone survivor replaces its
// parent (which can cascade upward). Field filters are returned unchanged.
func ApplyAssociation(f Filter) Filter {
	cf, ok := f.(*CompositeFilter)
	if !ok {
		return f
	}

	children := make([]Filter, 0, len(cf.Filters))
	for _, child := range cf.Filters {
		flat := ApplyAssociation(child)
		if sub, ok := flat.(*CompositeFilter); ok && sub.Kind == cf.Kind {
			children = append(children, sub.Filters...)
		} else {
			children = append(children, flat)
		}
	}

	if len(children) == 1 {
		return children[0]
	}
	return &CompositeFilter{Kind: cf.Kind, Filters: children}
}

// ApplyDistribution combines f1 and f2 under AND, distributing over any OR
// operand:
//
//	X AND (Y1 OR ... OR Yn)  =>  (X AND Y1) OR ... OR (X AND Yn)
//	(X1 OR ... OR Xn) AND Y  =>  (X1 AND Y) OR ... OR (Xn AND Y)
//
// When neither operand is a disjunction, the result is one conjunction whose
// children are f1's conjunctive children (f1 itself when not an AND)
// followed by f2's, so AND-combining flattens instead of nesting.
//
// Operand order carries through to the output: f1 contributes before f2, and
// when both operands are disjunctions, f1's children drive the expansion.
// The result may contain nested disjunctions; ComputeDNF associates them
// away afterward.
func ApplyDistribution(f1, f2 Filter) Filter {
	if d, ok := f1.(*CompositeFilter); ok && d.IsDisjunction() {
		terms := make([]Filter, len(d.Filters))
		for i, child := range d.Filters {
			terms[i] = ApplyDistribution(child, f2)
		}
		return &CompositeFilter{Kind: Disjunction, Filters: terms}
	}

	if d, ok := f2.(*CompositeFilter); ok && d.IsDisjunction() {
		terms := make([]Filter, len(d.Filters))
		for i, child := range d.Filters {
			terms[i] = ApplyDistribution(f1, child)
		}
		return &CompositeFilter{Kind: Disjunction, Filters: terms}
	}

	left := conjunctiveChildren(f1)
	merged := make([]Filter, 0, len(left)+1)
	merged = append(merged, left...)
	merged = append(merged, conjunctiveChildren(f2)...)
	return &CompositeFilter{Kind: Conjunction, Filters: merged}
}

// conjunctiveChildren returns f's children when f is a conjunction,
// otherwise f alone.
func conjunctiveChildren(f Filter) []Filter {
	if c, ok := f.(*CompositeFilter); ok && c.IsConjunction() {
		return c.Filters
	}
	return []Filter{f}
}

// ComputeDNF rewrites f into disjunctive normal form. The result is a field
// filter, a flat conjunction, or a disjunction whose children are each a
// field filter or a flat conjunction.
func ComputeDNF(f Filter) Filter {
	if _, ok := f.(*FieldFilter); ok {
		return f
	}

	flat := ApplyAssociation(f)
	cf, ok := flat.(*CompositeFilter)
	if !ok {
		// Single-child collapse reached a leaf.
		return flat
	}
	if cf.IsFlat() {
		return cf
	}

	normalized := make([]Filter, len(cf.Filters))
	for i, child := range cf.Filters {
		normalized[i] = ComputeDNF(child)
	}

	if cf.IsDisjunction() {
		// Recursion may have produced disjunction children; hoist them.
		return ApplyAssociation(&CompositeFilter{Kind: Disjunction, Filters: normalized})
	}

	// Conjunction: fold children left to right through distribution.
	acc := normalized[0]
	for _, next := range normalized[1:] {
		acc = ApplyDistribution(acc, next)
	}
	return ApplyAssociation(acc)
}

// DNFTransform normalizes f and returns its DNF terms in order: the children
// of the top-level disjunction, or the single normalized filter when the
// result is not a disjunction. Every term is a field filter or a flat
// conjunction, ready for per-term planning.
func DNFTransform(f Filter) []Filter {
	dnf := ComputeDNF(f)
	if cf, ok := dnf.(*CompositeFilter); ok && cf.IsDisjunction() {
		terms := make([]Filter, len(cf.Filters))
		copy(terms, cf.Filters)
		return terms
	}
	return []Filter{dnf}
}
