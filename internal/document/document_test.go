package document

import (
	"errors"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		input    string
		segments int
		wantErr  error
	}{
		{"name", 1, nil},
		{"user.address.city", 3, nil},
		{"", 0, ErrEmptyPath},
		{"a..b", 0, ErrEmptySegment},
		{".a", 0, ErrEmptySegment},
		{"a.", 0, ErrEmptySegment},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePath(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParsePath(%q) err = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) error: %v", tt.input, err)
			}
			if len(p) != tt.segments {
				t.Errorf("segments = %d, want %d", len(p), tt.segments)
			}
			if p.String() != tt.input {
				t.Errorf("String() = %q, want %q", p.String(), tt.input)
			}
		})
	}
}

func TestPathEqual(t *testing.T) {
	if !MustParsePath("a.b").Equal(MustParsePath("a.b")) {
		t.Error("identical paths should be equal")
	}
	if MustParsePath("a.b").Equal(MustParsePath("a.c")) {
		t.Error("different paths should not be equal")
	}
	if MustParsePath("a").Equal(MustParsePath("a.b")) {
		t.Error("prefix should not equal longer path")
	}
}

func TestDocumentGet(t *testing.T) {
	doc := New(7, map[string]any{
		"name": "anvil",
		"detail": map[string]any{
			"weight": 100.0,
			"origin": map[string]any{"country": "NO"},
		},
		"tags": []any{"heavy"},
	})

	tests := []struct {
		path   string
		want   Value
		wantOK bool
	}{
		{"name", StringValue("anvil"), true},
		{"detail.weight", Number(100), true},
		{"detail.origin.country", StringValue("NO"), true},
		{"tags", List(StringValue("heavy")), true},
		{"missing", Value{}, false},
		{"detail.missing", Value{}, false},
		{"name.sub", Value{}, false}, // descending through a scalar
		{"detail", Value{}, false},   // objects are not values
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := doc.Get(MustParsePath(tt.path))
			if ok != tt.wantOK {
				t.Fatalf("Get(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Get(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}
