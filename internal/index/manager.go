package index

import (
	"errors"
	"log/slog"

	"fathom/internal/document"
	"fathom/internal/logging"
)

// ErrIndexNotFound is returned when no index exists for a field path.
// The planner treats it as "fall back to runtime filtering", never as a
// query failure.
var ErrIndexNotFound = errors.New("index not found")

// Manager owns the field indexes of one collection.
type Manager struct {
	indexes map[string]*FieldIndex
	logger  *slog.Logger
}

// NewManager creates an empty index manager.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		indexes: make(map[string]*FieldIndex),
		logger:  logging.Scope(logger, "index"),
	}
}

// Open returns the index for a field path, or ErrIndexNotFound.
func (m *Manager) Open(path document.FieldPath) (*FieldIndex, error) {
	fi, ok := m.indexes[path.String()]
	if !ok {
		return nil, ErrIndexNotFound
	}
	return fi, nil
}

// Paths returns the field paths that currently have an index.
func (m *Manager) Paths() []document.FieldPath {
	paths := make([]document.FieldPath, 0, len(m.indexes))
	for _, fi := range m.indexes {
		paths = append(paths, fi.path)
	}
	return paths
}

// Index ensures an index exists for path and returns it.
func (m *Manager) Index(path document.FieldPath) *FieldIndex {
	key := path.String()
	fi, ok := m.indexes[key]
	if !ok {
		fi = NewFieldIndex(path)
		m.indexes[key] = fi
	}
	return fi
}

// AddDocument feeds one document into every index. Documents missing the
// indexed field simply produce no entry.
func (m *Manager) AddDocument(doc document.Document) {
	for _, fi := range m.indexes {
		if value, ok := doc.Get(fi.path); ok {
			fi.Add(value, doc.Position)
		}
	}
}

// Build creates fresh indexes for the given paths and populates them from
// docs. Docs must be in position order. Indexes on other paths are left
// alone, so Build may run after inserts without double-counting.
func (m *Manager) Build(docs []document.Document, paths []document.FieldPath) {
	built := make([]*FieldIndex, 0, len(paths))
	for _, path := range paths {
		fi := NewFieldIndex(path)
		m.indexes[path.String()] = fi
		built = append(built, fi)
	}
	for _, doc := range docs {
		for _, fi := range built {
			if value, ok := doc.Get(fi.path); ok {
				fi.Add(value, doc.Position)
			}
		}
	}
	m.logger.Debug("indexes built", "fields", len(paths), "documents", len(docs))
}
