package domain

import "fmt"

// ComparisonOperator is the relation tested by a Comparison leaf.
type ComparisonOperator string

const (
	OpEqual        ComparisonOperator = "=="
	OpNotEqual     ComparisonOperator = "!="
	OpGreater      ComparisonOperator = ">"
	OpLess         ComparisonOperator = "<"
	OpGreaterEqual ComparisonOperator = ">="
	OpLessEqual    ComparisonOperator = "<="
)

// AllOperators lists every comparison operator in display order.
var AllOperators = []ComparisonOperator{
	OpEqual, OpNotEqual, OpGreater, OpLess, OpGreaterEqual, OpLessEqual,
}

// EqualityOperators is the restricted set offered for boolean and string
// operands, where ordering comparisons are meaningless.
var EqualityOperators = []ComparisonOperator{OpEqual, OpNotEqual}

// ParseOperator validates a raw operator string.
func ParseOperator(raw string) (ComparisonOperator, error) {
	op := ComparisonOperator(raw)
	for _, known := range AllOperators {
		if op == known {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown comparison operator: %q", raw)
}
