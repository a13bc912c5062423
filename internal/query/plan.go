package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fathom/internal/document"
	"fathom/internal/filter"
	"fathom/internal/index"
)

// ErrNotATerm is returned when a DNF term is neither a field filter nor a
// flat conjunction. It indicates a broken normalization contract upstream.
var ErrNotATerm = errors.New("not a DNF term")

// QueryPlan describes how a filter will be executed.
type QueryPlan struct {
	QueryID        uuid.UUID  // identifies the plan in logs
	Filter         string     // original filter expression
	TotalDocuments int        // documents in the collection
	TermPlans      []TermPlan // one per DNF term, in term order
}

// TermPlan describes the execution plan for a single DNF term.
type TermPlan struct {
	TermExpr      string     // string representation of the term
	Steps         []PlanStep // index resolution steps, in application order
	Runtime       []string   // predicates left to runtime filtering
	Skipped       bool       // term is known to produce no matches
	SkipReason    string
	EstimatedScan int // candidate documents this term will examine
}

// PlanStep describes one index consultation while resolving a term.
type PlanStep struct {
	Index     string // indexed field path, or "runtime"
	Predicate string // the comparison being resolved
	Before    int    // candidate count before this step
	After     int    // candidate count after this step
	Action    string // "indexed", "runtime", "skipped"
	Reason    string
}

// Explain returns the execution plan for a filter without running it.
func (e *Engine) Explain(ctx context.Context, f filter.Filter) (*QueryPlan, error) {
	plan := &QueryPlan{
		QueryID:        uuid.New(),
		Filter:         f.String(),
		TotalDocuments: e.col.Len(),
	}

	terms := filter.DNFTransform(f)
	for _, term := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := e.resolveTerm(term)
		if err != nil {
			return nil, err
		}
		plan.TermPlans = append(plan.TermPlans, res.termPlan(term))
	}

	e.logger.Debug("explained query",
		"query_id", plan.QueryID, "terms", len(plan.TermPlans))
	return plan, nil
}

// termResolution is the outcome of mapping one term onto the indexes.
type termResolution struct {
	candidates []uint64   // narrowed posting list; meaningful when narrowed
	narrowed   bool       // at least one predicate was answered by an index
	steps      []PlanStep
	runtime    []string   // predicate strings needing runtime evaluation
	skipped    bool       // an index proved the term can match nothing
	skipReason string
	total      int
}

func (r *termResolution) termPlan(term filter.Filter) TermPlan {
	tp := TermPlan{
		TermExpr:   term.String(),
		Steps:      r.steps,
		Runtime:    r.runtime,
		Skipped:    r.skipped,
		SkipReason: r.skipReason,
	}
	switch {
	case r.skipped:
		tp.EstimatedScan = 0
	case r.narrowed:
		tp.EstimatedScan = len(r.candidates)
	default:
		tp.EstimatedScan = r.total
	}
	return tp
}

// scanSet returns the candidate positions the executor must examine.
func (r *termResolution) scanSet() []uint64 {
	if r.skipped {
		return nil
	}
	if r.narrowed {
		return r.candidates
	}
	all := make([]uint64, r.total)
	for i := range all {
		all[i] = uint64(i)
	}
	return all
}

// termFieldFilters unpacks a DNF term into its field comparisons.
func termFieldFilters(term filter.Filter) ([]*filter.FieldFilter, error) {
	switch t := term.(type) {
	case *filter.FieldFilter:
		return []*filter.FieldFilter{t}, nil
	case *filter.CompositeFilter:
		if !t.IsFlatConjunction() {
			return nil, fmt.Errorf("%w: %s", ErrNotATerm, term)
		}
		ffs := make([]*filter.FieldFilter, len(t.Filters))
		for i, child := range t.Filters {
			ffs[i] = child.(*filter.FieldFilter)
		}
		return ffs, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotATerm, term)
	}
}

// resolveTerm maps one DNF term onto the collection's indexes.
func (e *Engine) resolveTerm(term filter.Filter) (*termResolution, error) {
	ffs, err := termFieldFilters(term)
	if err != nil {
		return nil, err
	}

	res := &termResolution{total: e.col.Len()}
	for _, ff := range ffs {
		e.resolveFieldFilter(res, ff)
		if res.skipped {
			break
		}
	}
	return res, nil
}

// resolveFieldFilter applies one comparison to the resolution state.
func (e *Engine) resolveFieldFilter(res *termResolution, ff *filter.FieldFilter) {
	before := res.total
	if res.narrowed {
		before = len(res.candidates)
	}
	step := PlanStep{
		Index:     ff.Path.String(),
		Predicate: ff.String(),
		Before:    before,
	}

	if !indexableOperator(ff.Op) {
		step.Index = "runtime"
		step.After = before
		step.Action = "runtime"
		step.Reason = "operator not indexable"
		res.steps = append(res.steps, step)
		res.runtime = append(res.runtime, ff.String())
		return
	}

	fi, err := e.col.Indexes.Open(ff.Path)
	if errors.Is(err, index.ErrIndexNotFound) {
		step.Index = "runtime"
		step.After = before
		step.Action = "runtime"
		step.Reason = "no index on field"
		res.steps = append(res.steps, step)
		res.runtime = append(res.runtime, ff.String())
		return
	}

	postings, definitive := lookupPostings(fi, ff)
	if !definitive {
		step.Index = "runtime"
		step.After = before
		step.Action = "runtime"
		step.Reason = "predicate shape not indexable"
		res.steps = append(res.steps, step)
		res.runtime = append(res.runtime, ff.String())
		return
	}

	if res.narrowed {
		res.candidates = index.Intersect(res.candidates, postings)
	} else {
		res.candidates = postings
		res.narrowed = true
	}
	step.After = len(res.candidates)
	step.Action = "indexed"
	step.Reason = "indexed"
	res.steps = append(res.steps, step)

	if len(res.candidates) == 0 {
		res.skipped = true
		res.skipReason = fmt.Sprintf("no match (%s)", ff)
	}
}

// indexableOperator reports whether the planner can answer an operator from
// a field index. Negations and array membership need the document itself.
func indexableOperator(op filter.Operator) bool {
	switch op {
	case filter.OpEqual, filter.OpIn,
		filter.OpLessThan, filter.OpLessThanOrEqual,
		filter.OpGreaterThan, filter.OpGreaterThanOrEqual:
		return true
	default:
		return false
	}
}

// lookupPostings answers an indexable comparison from the index. The second
// result is false when the predicate's value shape prevents an index answer
// (e.g. "in" without a list value).
func lookupPostings(fi *index.FieldIndex, ff *filter.FieldFilter) ([]uint64, bool) {
	switch ff.Op {
	case filter.OpEqual:
		postings, _ := fi.Lookup(ff.Value)
		return postings, true
	case filter.OpIn:
		if ff.Value.Kind() != document.KindList {
			return nil, false
		}
		var result []uint64
		for _, elem := range ff.Value.ListValue() {
			if postings, ok := fi.Lookup(elem); ok {
				result = index.Union(result, postings)
			}
		}
		return result, true
	case filter.OpLessThan:
		return fi.LookupLess(ff.Value, false), true
	case filter.OpLessThanOrEqual:
		return fi.LookupLess(ff.Value, true), true
	case filter.OpGreaterThan:
		return fi.LookupGreater(ff.Value, false), true
	case filter.OpGreaterThanOrEqual:
		return fi.LookupGreater(ff.Value, true), true
	default:
		return nil, false
	}
}

// String renders the plan in a compact explain format.
func (p *QueryPlan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "query %s over %d documents\n", p.Filter, p.TotalDocuments)
	for i, tp := range p.TermPlans {
		fmt.Fprintf(&b, "term %d: %s\n", i, tp.TermExpr)
		if tp.Skipped {
			fmt.Fprintf(&b, "  skipped: %s\n", tp.SkipReason)
			continue
		}
		for _, s := range tp.Steps {
			fmt.Fprintf(&b, "  [%s] %s: %d -> %d (%s)\n",
				s.Index, s.Predicate, s.Before, s.After, s.Action)
		}
		if len(tp.Runtime) > 0 {
			fmt.Fprintf(&b, "  runtime: %s\n", strings.Join(tp.Runtime, " AND "))
		}
		fmt.Fprintf(&b, "  estimated scan: %d\n", tp.EstimatedScan)
	}
	return b.String()
}
