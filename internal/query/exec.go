package query

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fathom/internal/document"
	"fathom/internal/filter"
	"fathom/internal/index"
)

// cancelCheckInterval is how many candidates a term scan examines between
// context checks.
const cancelCheckInterval = 1024

// Execute runs a filter and returns the matching documents in position
// order. Terms of the DNF are scanned concurrently; each candidate is
// verified against its full term, which covers both runtime-only predicates
// and the indexed ones.
func (e *Engine) Execute(ctx context.Context, f filter.Filter) ([]document.Document, error) {
	queryID := uuid.New()
	terms := filter.DNFTransform(f)

	resolutions := make([]*termResolution, len(terms))
	for i, term := range terms {
		res, err := e.resolveTerm(term)
		if err != nil {
			return nil, err
		}
		resolutions[i] = res
	}

	matched := make([][]uint64, len(terms))
	g, gctx := errgroup.WithContext(ctx)
	for i, term := range terms {
		g.Go(func() error {
			positions, err := e.scanTerm(gctx, term, resolutions[i])
			if err != nil {
				return err
			}
			matched[i] = positions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Unioning term results deduplicates positions and restores position order.
	var positions []uint64
	for _, m := range matched {
		positions = index.Union(positions, m)
	}

	docs := make([]document.Document, len(positions))
	for i, pos := range positions {
		docs[i] = e.col.At(pos)
	}

	e.logger.Debug("query executed",
		"query_id", queryID, "terms", len(terms), "matches", len(docs))
	return docs, nil
}

// scanTerm verifies a term's candidates and returns matching positions in
// sorted order.
func (e *Engine) scanTerm(ctx context.Context, term filter.Filter, res *termResolution) ([]uint64, error) {
	var matches []uint64
	for i, pos := range res.scanSet() {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if filter.Matches(term, e.col.At(pos)) {
			matches = append(matches, pos)
		}
	}
	return matches, nil
}
