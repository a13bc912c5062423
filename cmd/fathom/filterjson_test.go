package main

import (
	"testing"

	"fathom/internal/document"
	"fathom/internal/filter"
)

func TestDecodeFilterLeaf(t *testing.T) {
	f, err := decodeFilter([]byte(`{"field":"price","op":"<","value":10}`))
	if err != nil {
		t.Fatalf("decodeFilter error: %v", err)
	}
	want := filter.NewFieldFilter(document.MustParsePath("price"), filter.OpLessThan, document.Number(10))
	if !filter.Equal(f, want) {
		t.Errorf("got %s, want %s", f, want)
	}
}

func TestDecodeFilterComposite(t *testing.T) {
	raw := []byte(`{"and":[
		{"field":"name","op":"==","value":"rope"},
		{"or":[
			{"field":"price","op":"<=","value":5},
			{"field":"tags","op":"array-contains","value":"sale"}
		]}
	]}`)
	f, err := decodeFilter(raw)
	if err != nil {
		t.Fatalf("decodeFilter error: %v", err)
	}

	want := filter.And(
		filter.NewFieldFilter(document.MustParsePath("name"), filter.OpEqual, document.StringValue("rope")),
		filter.Or(
			filter.NewFieldFilter(document.MustParsePath("price"), filter.OpLessThanOrEqual, document.Number(5)),
			filter.NewFieldFilter(document.MustParsePath("tags"), filter.OpArrayContains, document.StringValue("sale")),
		),
	)
	if !filter.Equal(f, want) {
		t.Errorf("got %s, want %s", f, want)
	}
}

func TestDecodeFilterNullValue(t *testing.T) {
	f, err := decodeFilter([]byte(`{"field":"deleted_at","op":"==","value":null}`))
	if err != nil {
		t.Fatalf("decodeFilter error: %v", err)
	}
	want := filter.NewFieldFilter(document.MustParsePath("deleted_at"), filter.OpEqual, document.Null())
	if !filter.Equal(f, want) {
		t.Errorf("got %s, want %s", f, want)
	}
}

func TestDecodeFilterRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty node", `{}`},
		{"both and and field", `{"and":[],"field":"x","op":"==","value":1}`},
		{"empty composite", `{"or":[]}`},
		{"unknown operator", `{"field":"x","op":"~=","value":1}`},
		{"bad path", `{"field":"a..b","op":"==","value":1}`},
		{"object value", `{"field":"x","op":"==","value":{"nested":1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeFilter([]byte(tt.raw)); err == nil {
				t.Errorf("decodeFilter(%s) should fail", tt.raw)
			}
		})
	}
}
