// Package store holds document collections and their snapshot persistence.
package store

import (
	"log/slog"

	"github.com/google/uuid"

	"fathom/internal/document"
	"fathom/internal/index"
	"fathom/internal/logging"
)

// Collection is an append-only set of documents plus the field indexes
// built over them. Inserts are not safe for concurrent use; reads are, so
// the query engine may scan terms in parallel.
type Collection struct {
	ID      uuid.UUID
	Name    string
	docs    []document.Document
	Indexes *index.Manager
	logger  *slog.Logger
}

// NewCollection creates an empty collection with a fresh ID.
func NewCollection(name string, logger *slog.Logger) *Collection {
	return &Collection{
		ID:      uuid.New(),
		Name:    name,
		Indexes: index.NewManager(logger),
		logger:  logging.Scope(logger, "store"),
	}
}

// Insert appends a document and feeds it to any existing indexes. The
// assigned position is returned.
func (c *Collection) Insert(fields map[string]any) uint64 {
	pos := uint64(len(c.docs))
	doc := document.New(pos, fields)
	c.docs = append(c.docs, doc)
	c.Indexes.AddDocument(doc)
	return pos
}

// Len returns the number of documents.
func (c *Collection) Len() int { return len(c.docs) }

// At returns the document at a position.
func (c *Collection) At(pos uint64) document.Document { return c.docs[pos] }

// Documents returns the backing slice in position order. Callers must treat
// it as read-only.
func (c *Collection) Documents() []document.Document { return c.docs }

// BuildIndexes creates and populates indexes for the given field paths.
func (c *Collection) BuildIndexes(paths []document.FieldPath) {
	c.Indexes.Build(c.docs, paths)
	c.logger.Info("indexes ready", "collection", c.Name, "fields", len(paths))
}
