// Package query plans and executes filters against a collection.
//
// A filter is first normalized to DNF, then each term (one AND-clause) is
// resolved independently: field comparisons the indexes can answer narrow a
// posting list, everything else becomes a runtime filter over the surviving
// candidates. Term results are unioned and deduplicated. No boolean
// reasoning happens here beyond that union; the DNF contract guarantees
// each term is a field filter or a flat conjunction.
package query

import (
	"log/slog"

	"fathom/internal/logging"
	"fathom/internal/store"
)

// Engine executes queries against one collection.
type Engine struct {
	col    *store.Collection
	logger *slog.Logger
}

// New creates an engine for the collection.
func New(col *store.Collection, logger *slog.Logger) *Engine {
	return &Engine{
		col:    col,
		logger: logging.Scope(logger, "query"),
	}
}
