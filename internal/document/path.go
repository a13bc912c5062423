package document

import (
	"errors"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath    = errors.New("empty field path")
	ErrEmptySegment = errors.New("empty field path segment")
)

// FieldPath addresses a field inside a document. Segments are applied left
// to right through nested objects: ["user", "name"] reads doc["user"]["name"].
// A FieldPath is never empty.
type FieldPath []string

// ParsePath parses a dotted field path like "user.address.city".
func ParsePath(s string) (FieldPath, error) {
	if s == "" {
		return nil, ErrEmptyPath
	}
	segments := strings.Split(s, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, ErrEmptySegment
		}
	}
	return FieldPath(segments), nil
}

// MustParsePath is ParsePath for static paths; it panics on error.
func MustParsePath(s string) FieldPath {
	p, err := ParsePath(s)
	if err != nil {
		panic("document: " + err.Error() + ": " + s)
	}
	return p
}

func (p FieldPath) String() string {
	return strings.Join(p, ".")
}

// Equal reports whether both paths have the same segments in the same order.
func (p FieldPath) Equal(other FieldPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
