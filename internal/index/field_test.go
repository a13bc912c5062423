package index

import (
	"slices"
	"testing"

	"fathom/internal/document"
)

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b []uint64
		want []uint64
	}{
		{"overlap", []uint64{1, 3, 5, 7}, []uint64{3, 4, 5}, []uint64{3, 5}},
		{"disjoint", []uint64{1, 2}, []uint64{3, 4}, nil},
		{"empty side", nil, []uint64{1}, nil},
		{"identical", []uint64{2, 4}, []uint64{2, 4}, []uint64{2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersect(tt.a, tt.b); !slices.Equal(got, tt.want) {
				t.Errorf("Intersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b []uint64
		want []uint64
	}{
		{"interleaved", []uint64{1, 4}, []uint64{2, 3, 4}, []uint64{1, 2, 3, 4}},
		{"empty side", nil, []uint64{5}, []uint64{5}},
		{"duplicates collapse", []uint64{1, 2}, []uint64{2}, []uint64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Union(tt.a, tt.b); !slices.Equal(got, tt.want) {
				t.Errorf("Union(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func buildPriceIndex(t *testing.T) *FieldIndex {
	t.Helper()
	fi := NewFieldIndex(document.MustParsePath("price"))
	// Positions are added in insertion order; values repeat.
	fi.Add(document.Number(10), 0)
	fi.Add(document.Number(5), 1)
	fi.Add(document.Number(10), 2)
	fi.Add(document.Number(20), 3)
	fi.Add(document.StringValue("n/a"), 4)
	return fi
}

func TestFieldIndexLookup(t *testing.T) {
	fi := buildPriceIndex(t)

	postings, ok := fi.Lookup(document.Number(10))
	if !ok || !slices.Equal(postings, []uint64{0, 2}) {
		t.Errorf("Lookup(10) = %v, %v; want [0 2], true", postings, ok)
	}
	if _, ok := fi.Lookup(document.Number(11)); ok {
		t.Error("Lookup(11) should miss")
	}
	if fi.Len() != 4 {
		t.Errorf("Len = %d, want 4", fi.Len())
	}
}

func TestFieldIndexRange(t *testing.T) {
	fi := buildPriceIndex(t)

	tests := []struct {
		name    string
		lookup  func() []uint64
		want    []uint64
	}{
		{"greater", func() []uint64 { return fi.LookupGreater(document.Number(10), false) }, []uint64{3}},
		{"greater or equal", func() []uint64 { return fi.LookupGreater(document.Number(10), true) }, []uint64{0, 2, 3}},
		{"less", func() []uint64 { return fi.LookupLess(document.Number(10), false) }, []uint64{1}},
		{"less or equal", func() []uint64 { return fi.LookupLess(document.Number(10), true) }, []uint64{0, 1, 2}},
		{"greater than all", func() []uint64 { return fi.LookupGreater(document.Number(20), false) }, nil},
		{"less than all", func() []uint64 { return fi.LookupLess(document.Number(5), false) }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lookup(); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldIndexRangeExcludesOtherKinds(t *testing.T) {
	fi := buildPriceIndex(t)
	// The string entry sorts above all numbers but must not leak into a
	// numeric range scan.
	got := fi.LookupGreater(document.Number(0), true)
	if slices.Contains(got, 4) {
		t.Errorf("numeric range scan returned string entry position: %v", got)
	}
}

func TestManager(t *testing.T) {
	docs := []document.Document{
		document.New(0, map[string]any{"name": "a", "price": 1.0}),
		document.New(1, map[string]any{"name": "b"}),
		document.New(2, map[string]any{"price": 2.0}),
	}

	m := NewManager(nil)
	m.Build(docs, []document.FieldPath{
		document.MustParsePath("name"),
		document.MustParsePath("price"),
	})

	fi, err := m.Open(document.MustParsePath("name"))
	if err != nil {
		t.Fatalf("Open(name) error: %v", err)
	}
	postings, ok := fi.Lookup(document.StringValue("b"))
	if !ok || !slices.Equal(postings, []uint64{1}) {
		t.Errorf("Lookup(b) = %v, %v; want [1], true", postings, ok)
	}

	if _, err := m.Open(document.MustParsePath("missing")); err != ErrIndexNotFound {
		t.Errorf("Open(missing) = %v, want ErrIndexNotFound", err)
	}
}
