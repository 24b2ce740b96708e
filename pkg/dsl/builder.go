package dsl

import (
	"github.com/aretw0/espalier/pkg/domain"
)

// And builds a conjunction group over the given children.
func And(children ...*domain.ConditionExpression) *domain.ConditionExpression {
	return &domain.ConditionExpression{
		Kind:     domain.KindAnd,
		Children: children,
	}
}

// Or builds a disjunction group over the given children.
func Or(children ...*domain.ConditionExpression) *domain.ConditionExpression {
	return &domain.ConditionExpression{
		Kind:     domain.KindOr,
		Children: children,
	}
}

// Not negates a single operand.
func Not(operand *domain.ConditionExpression) *domain.ConditionExpression {
	return &domain.ConditionExpression{
		Kind:    domain.KindNot,
		Operand: operand,
	}
}

// Script builds a script reference leaf.
func Script(scriptID string) *domain.ConditionExpression {
	return &domain.ConditionExpression{
		Kind:     domain.KindScriptRef,
		ScriptID: scriptID,
	}
}

// Literal builds a constant boolean leaf.
func Literal(value bool) *domain.ConditionExpression {
	return &domain.ConditionExpression{
		Kind:  domain.KindLiteral,
		Value: value,
	}
}

// Var starts a comparison leaf anchored on the given variable.
func Var(variableID string, scope domain.VariableScope) *VarBuilder {
	return &VarBuilder{
		ref: domain.VariableRef{VariableID: variableID, Scope: scope},
	}
}

// VarBuilder provides a fluent API for building comparison leaves.
type VarBuilder struct {
	ref domain.VariableRef
}

// Equals compares the variable for equality against the right-hand side.
func (v *VarBuilder) Equals(right domain.ValueSource) *domain.ConditionExpression {
	return v.compare(domain.OpEqual, right)
}

// NotEquals compares the variable for inequality against the right-hand side.
func (v *VarBuilder) NotEquals(right domain.ValueSource) *domain.ConditionExpression {
	return v.compare(domain.OpNotEqual, right)
}

// GreaterThan compares the variable strictly above the right-hand side.
func (v *VarBuilder) GreaterThan(right domain.ValueSource) *domain.ConditionExpression {
	return v.compare(domain.OpGreater, right)
}

// GreaterOrEqual compares the variable at or above the right-hand side.
func (v *VarBuilder) GreaterOrEqual(right domain.ValueSource) *domain.ConditionExpression {
	return v.compare(domain.OpGreaterEqual, right)
}

// LessThan compares the variable strictly below the right-hand side.
func (v *VarBuilder) LessThan(right domain.ValueSource) *domain.ConditionExpression {
	return v.compare(domain.OpLess, right)
}

// LessOrEqual compares the variable at or below the right-hand side.
func (v *VarBuilder) LessOrEqual(right domain.ValueSource) *domain.ConditionExpression {
	return v.compare(domain.OpLessEqual, right)
}

func (v *VarBuilder) compare(op domain.ComparisonOperator, right domain.ValueSource) *domain.ConditionExpression {
	ref := v.ref
	rhs := right
	return &domain.ConditionExpression{
		Kind:     domain.KindComparison,
		Operator: op,
		Left:     &ref,
		Right:    &rhs,
	}
}

// Bool builds a constant boolean right-hand side.
func Bool(v bool) domain.ValueSource {
	return domain.NewConstant(v)
}

// Int builds a constant integer right-hand side.
func Int(v int64) domain.ValueSource {
	return domain.NewConstant(v)
}

// Float builds a constant floating-point right-hand side.
func Float(v float64) domain.ValueSource {
	return domain.NewConstant(v)
}

// Str builds a constant string right-hand side.
func Str(v string) domain.ValueSource {
	return domain.NewConstant(v)
}

// Ref builds a variable-backed right-hand side.
func Ref(variableID string, scope domain.VariableScope) domain.ValueSource {
	return domain.NewVariableSource(domain.VariableRef{VariableID: variableID, Scope: scope})
}
