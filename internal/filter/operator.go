package filter

import (
	"errors"
	"fmt"
)

// ErrUnknownOperator is returned by ParseOperator for unrecognized symbols.
var ErrUnknownOperator = errors.New("unknown operator")

// Operator is the comparison applied by a field filter.
type Operator int

const (
	OpEqual Operator = iota
	OpNotEqual
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpIn
	OpNotIn
	OpArrayContains
	OpArrayContainsAny
)

var operatorNames = map[Operator]string{
	OpEqual:              "==",
	OpNotEqual:           "!=",
	OpLessThan:           "<",
	OpLessThanOrEqual:    "<=",
	OpGreaterThan:        ">",
	OpGreaterThanOrEqual: ">=",
	OpIn:                 "in",
	OpNotIn:              "not-in",
	OpArrayContains:      "array-contains",
	OpArrayContainsAny:   "array-contains-any",
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return fmt.Sprintf("operator(%d)", int(o))
}

// ParseOperator maps an operator symbol (as it appears in filter JSON) to
// its Operator.
func ParseOperator(s string) (Operator, error) {
	for op, name := range operatorNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}
