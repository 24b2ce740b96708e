package domain

import (
	"encoding/json"
	"fmt"
)

// ConditionKind discriminates the node variants of the expression tree.
// The set is closed: consumers switch exhaustively over it, so adding a
// kind is a single-point, compile-visible change.
type ConditionKind string

const (
	// Group kinds. And/Or hold a list of children, Not holds one operand.
	KindAnd ConditionKind = "and"
	KindOr  ConditionKind = "or"
	KindNot ConditionKind = "not"

	// Leaf kinds.
	KindComparison ConditionKind = "comparison"
	KindScriptRef  ConditionKind = "script_ref"
	KindLiteral    ConditionKind = "literal"
)

// legacyKindVariableRef is an older leaf variant that tested a boolean
// variable directly. It is accepted on decode as an alias of
// Comparison{op: ==, right: constant true} and never written back.
const legacyKindVariableRef ConditionKind = "variable_ref"

// ConditionExpression is one node of the recursive boolean-expression
// tree. Exactly the fields belonging to Kind are meaningful; the rest
// stay at their zero value. The root of a condition is expressed as
// *ConditionExpression where nil is a first-class value meaning
// "no condition, always true".
type ConditionExpression struct {
	Kind ConditionKind `json:"kind" yaml:"kind"`

	// Children is populated for And/Or groups.
	Children []*ConditionExpression `json:"children,omitempty" yaml:"children,omitempty"`

	// Operand is populated for Not groups. Not holds at most one child.
	Operand *ConditionExpression `json:"operand,omitempty" yaml:"operand,omitempty"`

	// Comparison leaf fields. Left is always a variable reference,
	// Right may be a constant or another variable.
	Operator ComparisonOperator `json:"operator,omitempty" yaml:"operator,omitempty"`
	Left     *VariableRef       `json:"left,omitempty" yaml:"left,omitempty"`
	Right    *ValueSource       `json:"right,omitempty" yaml:"right,omitempty"`

	// ScriptRef leaf field: weak reference to a condition script.
	ScriptID string `json:"script_id,omitempty" yaml:"script_id,omitempty"`

	// Literal leaf field.
	Value bool `json:"value,omitempty" yaml:"value,omitempty"`
}

// conditionWire mirrors ConditionExpression for decoding, so the custom
// UnmarshalJSON does not recurse into itself.
type conditionWire struct {
	Kind     ConditionKind          `json:"kind" yaml:"kind"`
	Children []*ConditionExpression `json:"children" yaml:"children"`
	Operand  *ConditionExpression   `json:"operand" yaml:"operand"`
	Operator ComparisonOperator     `json:"operator" yaml:"operator"`
	Left     *VariableRef           `json:"left" yaml:"left"`
	Right    *ValueSource           `json:"right" yaml:"right"`
	ScriptID string                 `json:"script_id" yaml:"script_id"`
	Value    bool                   `json:"value" yaml:"value"`
}

// UnmarshalJSON validates the kind tag and upgrades legacy variants.
func (c *ConditionExpression) UnmarshalJSON(data []byte) error {
	var wire conditionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	return c.fromWire(wire)
}

// UnmarshalYAML validates the kind tag and upgrades legacy variants.
func (c *ConditionExpression) UnmarshalYAML(unmarshal func(any) error) error {
	var wire conditionWire
	if err := unmarshal(&wire); err != nil {
		return err
	}
	return c.fromWire(wire)
}

func (c *ConditionExpression) fromWire(wire conditionWire) error {
	switch wire.Kind {
	case KindAnd, KindOr:
		*c = ConditionExpression{Kind: wire.Kind, Children: wire.Children}
	case KindNot:
		*c = ConditionExpression{Kind: KindNot, Operand: wire.Operand}
	case KindComparison:
		*c = ConditionExpression{
			Kind:     KindComparison,
			Operator: wire.Operator,
			Left:     wire.Left,
			Right:    wire.Right,
		}
	case KindScriptRef:
		*c = ConditionExpression{Kind: KindScriptRef, ScriptID: wire.ScriptID}
	case KindLiteral:
		*c = ConditionExpression{Kind: KindLiteral, Value: wire.Value}
	case legacyKindVariableRef:
		// Upgrade: "variable is true" becomes an explicit comparison.
		right := NewConstant(true)
		*c = ConditionExpression{
			Kind:     KindComparison,
			Operator: OpEqual,
			Left:     wire.Left,
			Right:    &right,
		}
	default:
		return fmt.Errorf("condition: %w: %q", ErrUnknownKind, wire.Kind)
	}
	return nil
}

// String returns a compact single-line rendering, used in logs and errors.
func (c *ConditionExpression) String() string {
	if c == nil {
		return "always"
	}
	switch c.Kind {
	case KindAnd, KindOr:
		return fmt.Sprintf("%s(%d)", c.Kind, len(c.Children))
	case KindNot:
		if c.Operand == nil {
			return "not(empty)"
		}
		return fmt.Sprintf("not(%s)", c.Operand)
	case KindComparison:
		left := "?"
		if c.Left != nil {
			left = c.Left.VariableID
		}
		return fmt.Sprintf("%s %s ...", left, c.Operator)
	case KindScriptRef:
		return fmt.Sprintf("script(%s)", c.ScriptID)
	case KindLiteral:
		return fmt.Sprintf("literal(%t)", c.Value)
	default:
		return string(c.Kind)
	}
}
