// Package document defines the value model queries run against: typed
// comparison values, dotted field paths, and position-stamped documents.
package document

// Document is one record in a collection. Position is the insertion index
// within its collection; posting lists and result ordering are built on it.
// Fields holds the decoded JSON object and is treated as read-only.
type Document struct {
	Position uint64
	Fields   map[string]any
}

// New returns a document at the given position.
func New(position uint64, fields map[string]any) Document {
	return Document{Position: position, Fields: fields}
}

// Get resolves a field path against the document, descending through nested
// objects. The second result is false when any segment is missing, a
// non-object intervenes, or the final value has no Value representation.
func (d Document) Get(path FieldPath) (Value, bool) {
	var current any = d.Fields
	for _, seg := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return Value{}, false
		}
		current, ok = obj[seg]
		if !ok {
			return Value{}, false
		}
	}
	return FromGo(current)
}
