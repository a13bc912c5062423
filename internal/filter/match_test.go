package filter

import (
	"testing"

	"fathom/internal/document"
)

func testDoc() document.Document {
	return document.New(0, map[string]any{
		"name":  "widget",
		"price": 9.5,
		"stock": float64(0),
		"tags":  []any{"sale", "new"},
		"dims": map[string]any{
			"height": 12.0,
		},
	})
}

func TestFieldFilterMatches(t *testing.T) {
	doc := testDoc()

	tests := []struct {
		name  string
		path  string
		op    Operator
		value document.Value
		want  bool
	}{
		{"equal hit", "name", OpEqual, document.StringValue("widget"), true},
		{"equal miss", "name", OpEqual, document.StringValue("gadget"), false},
		{"not equal", "name", OpNotEqual, document.StringValue("gadget"), true},
		{"not equal miss", "name", OpNotEqual, document.StringValue("widget"), false},
		{"less than", "price", OpLessThan, document.Number(10), true},
		{"less than miss", "price", OpLessThan, document.Number(9.5), false},
		{"less or equal boundary", "price", OpLessThanOrEqual, document.Number(9.5), true},
		{"greater than", "price", OpGreaterThan, document.Number(9), true},
		{"greater or equal boundary", "price", OpGreaterThanOrEqual, document.Number(9.5), true},
		{"range across kinds never matches", "name", OpLessThan, document.Number(10), false},
		{"nested path", "dims.height", OpEqual, document.Number(12), true},
		{"missing field", "color", OpEqual, document.StringValue("red"), false},
		{"missing field not equal", "color", OpNotEqual, document.StringValue("red"), false},
		{"in", "name", OpIn, document.List(document.StringValue("widget"), document.StringValue("gadget")), true},
		{"in miss", "name", OpIn, document.List(document.StringValue("gadget")), false},
		{"not in", "name", OpNotIn, document.List(document.StringValue("gadget")), true},
		{"not in miss", "name", OpNotIn, document.List(document.StringValue("widget")), false},
		{"array contains", "tags", OpArrayContains, document.StringValue("sale"), true},
		{"array contains miss", "tags", OpArrayContains, document.StringValue("used"), false},
		{"array contains any", "tags", OpArrayContainsAny, document.List(document.StringValue("used"), document.StringValue("new")), true},
		{"array contains any miss", "tags", OpArrayContainsAny, document.List(document.StringValue("used")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFieldFilter(document.MustParsePath(tt.path), tt.op, tt.value)
			if got := f.Matches(doc); got != tt.want {
				t.Errorf("%s: Matches = %v, want %v", f, got, tt.want)
			}
		})
	}
}

func TestMatchesComposite(t *testing.T) {
	doc := testDoc()

	cheap := NewFieldFilter(document.MustParsePath("price"), OpLessThan, document.Number(10))
	named := NewFieldFilter(document.MustParsePath("name"), OpEqual, document.StringValue("widget"))
	other := NewFieldFilter(document.MustParsePath("name"), OpEqual, document.StringValue("gadget"))

	if !Matches(And(cheap, named), doc) {
		t.Error("conjunction of matching children should match")
	}
	if Matches(And(cheap, other), doc) {
		t.Error("conjunction with a failing child should not match")
	}
	if !Matches(Or(other, named), doc) {
		t.Error("disjunction with one matching child should match")
	}
	if Matches(Or(other, other), doc) {
		t.Error("disjunction with no matching child should not match")
	}

	// Matching agrees with the DNF rewrite.
	tree := And(cheap, Or(named, other))
	dnf := ComputeDNF(tree)
	if Matches(tree, doc) != Matches(dnf, doc) {
		t.Errorf("DNF changed matching semantics for %s", tree)
	}
}
