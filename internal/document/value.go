package document

import (
	"strconv"
	"strings"
)

// ValueKind identifies the type of a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindList
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is an immutable typed comparison value. Filters carry Values on
// their leaves and indexes order their entries by Value.Compare, so the two
// must agree on ordering.
type Value struct {
	kind ValueKind
	b    bool
	num  float64
	str  string
	list []Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// List returns a list Value holding the given elements.
func List(elems ...Value) Value {
	list := make([]Value, len(elems))
	copy(list, elems)
	return Value{kind: KindList, list: list}
}

// Kind returns the value's type tag.
func (v Value) Kind() ValueKind { return v.kind }

// BoolValue returns the boolean payload. Only meaningful for KindBool.
func (v Value) BoolValue() bool { return v.b }

// NumberValue returns the numeric payload. Only meaningful for KindNumber.
func (v Value) NumberValue() float64 { return v.num }

// StringPayload returns the string payload. Only meaningful for KindString.
func (v Value) StringPayload() string { return v.str }

// ListValue returns the element slice. Callers must not mutate it.
func (v Value) ListValue() []Value { return v.list }

// Equal reports structural equality: same kind and same payload, with lists
// compared element-wise in order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare returns -1, 0, or 1. Values of different kinds order by kind rank
// (null < bool < number < string < list); values of the same kind order by
// payload. This is the ordering field indexes are built on.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		if v.b == other.b {
			return 0
		}
		if !v.b {
			return -1
		}
		return 1
	case KindNumber:
		if v.num < other.num {
			return -1
		}
		if v.num > other.num {
			return 1
		}
		return 0
	case KindString:
		return strings.Compare(v.str, other.str)
	case KindList:
		for i := 0; i < len(v.list) && i < len(other.list); i++ {
			if c := v.list[i].Compare(other.list[i]); c != 0 {
				return c
			}
		}
		switch {
		case len(v.list) < len(other.list):
			return -1
		case len(v.list) > len(other.list):
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return "unknown"
	}
}

// FromGo converts a decoded JSON value (nil, bool, float64, string, []any,
// or a json.Number-free map) into a Value. Maps and unsupported types come
// back as (zero, false); nested objects are addressed through FieldPath
// traversal instead of being values themselves.
func FromGo(x any) (Value, bool) {
	switch t := x.(type) {
	case nil:
		return Null(), true
	case bool:
		return Bool(t), true
	case float64:
		return Number(t), true
	case int:
		return Number(float64(t)), true
	case int64:
		return Number(float64(t)), true
	case string:
		return StringValue(t), true
	case []any:
		elems := make([]Value, 0, len(t))
		for _, e := range t {
			v, ok := FromGo(e)
			if !ok {
				return Value{}, false
			}
			elems = append(elems, v)
		}
		return Value{kind: KindList, list: elems}, true
	default:
		return Value{}, false
	}
}
