package condition

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

// Describe renders a one-line human label for a single node, resolving
// variable and script names against the supplied definition sets.
// Unhealthy references are annotated rather than hidden.
func Describe(expr *domain.ConditionExpression, vars []domain.VariableDefinition, scripts []domain.ScriptDefinition) string {
	if expr == nil {
		return "always true"
	}

	switch expr.Kind {
	case domain.KindAnd:
		return "AND"
	case domain.KindOr:
		return "OR"
	case domain.KindNot:
		return "NOT"
	case domain.KindLiteral:
		return fmt.Sprintf("%t", expr.Value)
	case domain.KindScriptRef:
		if expr.ScriptID == "" {
			return "script: (select script)"
		}
		return "script: " + describeScript(expr.ScriptID, scripts)
	case domain.KindComparison:
		left := "(select variable)"
		if expr.Left != nil && expr.Left.VariableID != "" {
			left = describeVariable(expr.Left.VariableID, vars)
		}
		op := string(expr.Operator)
		if op == "" {
			op = string(domain.OpEqual)
		}
		return fmt.Sprintf("%s %s %s", left, op, DescribeValue(expr.Right, vars))
	default:
		return string(expr.Kind)
	}
}

// DescribeValue renders a comparison's right-hand side.
func DescribeValue(source *domain.ValueSource, vars []domain.VariableDefinition) string {
	if source == nil {
		return "(no value)"
	}
	switch source.Kind {
	case domain.SourceConstant:
		if s, ok := source.Value.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("%v", source.Value)
	case domain.SourceVariable:
		if source.Variable == nil || source.Variable.VariableID == "" {
			return "(select variable)"
		}
		return describeVariable(source.Variable.VariableID, vars)
	default:
		return "(no value)"
	}
}

func describeVariable(id string, vars []domain.VariableDefinition) string {
	def, status := ResolveVariable(vars, id)
	switch status {
	case RefOK:
		return def.Name
	case RefMarked:
		return def.Name + " (deleted)"
	default:
		return id + " (missing)"
	}
}

func describeScript(id string, scripts []domain.ScriptDefinition) string {
	def, status := ResolveScript(scripts, id)
	switch status {
	case RefOK:
		return def.Name
	case RefMarked:
		return def.Name + " (deleted)"
	default:
		return id + " (missing)"
	}
}
