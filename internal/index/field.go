// Package index provides in-memory per-field indexes mapping values to
// posting lists of document positions. The query planner resolves the field
// filters of each DNF term against these indexes; anything the indexes
// cannot answer falls back to runtime filtering.
package index

import (
	"github.com/google/btree"

	"fathom/internal/document"
)

// btreeDegree is the branching factor for index entry trees.
const btreeDegree = 16

// entry is one distinct value of an indexed field plus the sorted positions
// of the documents holding it.
type entry struct {
	value    document.Value
	postings []uint64
}

// FieldIndex indexes one field path. Entries are ordered by
// document.Value.Compare, which makes exact lookups and range scans both
// O(log n) to locate.
type FieldIndex struct {
	path document.FieldPath
	tree *btree.BTreeG[*entry]
}

// NewFieldIndex creates an empty index for the given field path.
func NewFieldIndex(path document.FieldPath) *FieldIndex {
	return &FieldIndex{
		path: path,
		tree: btree.NewG(btreeDegree, func(a, b *entry) bool {
			return a.value.Compare(b.value) < 0
		}),
	}
}

// Path returns the indexed field path.
func (fi *FieldIndex) Path() document.FieldPath { return fi.path }

// Add records that the document at pos holds value in the indexed field.
// Positions must be added in non-decreasing order so posting lists stay
// sorted; the collection's append-only insert order guarantees this.
func (fi *FieldIndex) Add(value document.Value, pos uint64) {
	probe := &entry{value: value}
	if existing, ok := fi.tree.Get(probe); ok {
		existing.postings = append(existing.postings, pos)
		return
	}
	probe.postings = []uint64{pos}
	fi.tree.ReplaceOrInsert(probe)
}

// Lookup returns the posting list for an exact value. The returned slice is
// shared with the index and must not be mutated.
func (fi *FieldIndex) Lookup(value document.Value) ([]uint64, bool) {
	e, ok := fi.tree.Get(&entry{value: value})
	if !ok {
		return nil, false
	}
	return e.postings, true
}

// LookupGreater returns the union of postings for values above pivot,
// including pivot itself when orEqual is set. Cross-kind entries are
// excluded: range semantics only exist within one value kind.
func (fi *FieldIndex) LookupGreater(pivot document.Value, orEqual bool) []uint64 {
	var result []uint64
	fi.tree.AscendGreaterOrEqual(&entry{value: pivot}, func(e *entry) bool {
		if e.value.Kind() != pivot.Kind() {
			return false
		}
		if !orEqual && e.value.Equal(pivot) {
			return true
		}
		result = Union(result, e.postings)
		return true
	})
	return result
}

// LookupLess returns the union of postings for values below pivot, including
// pivot itself when orEqual is set. Cross-kind entries are excluded.
func (fi *FieldIndex) LookupLess(pivot document.Value, orEqual bool) []uint64 {
	var result []uint64
	fi.tree.AscendLessThan(&entry{value: pivot}, func(e *entry) bool {
		if e.value.Kind() != pivot.Kind() {
			return true
		}
		result = Union(result, e.postings)
		return true
	})
	if orEqual {
		if postings, ok := fi.Lookup(pivot); ok {
			result = Union(result, postings)
		}
	}
	return result
}

// Len returns the number of distinct indexed values.
func (fi *FieldIndex) Len() int { return fi.tree.Len() }
