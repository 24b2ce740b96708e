package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
)

func TestGenerateMermaid(t *testing.T) {
	vars := []domain.VariableDefinition{
		{ID: "hp", Name: "Health", Type: domain.TypeInteger, Scope: domain.ScopeGlobal},
	}

	tests := []struct {
		name     string
		expr     *domain.ConditionExpression
		contains []string
	}{
		{
			name: "Empty Condition",
			expr: nil,
			contains: []string{
				"root[\"always true\"]",
			},
		},
		{
			name: "Group Shapes",
			expr: dsl.And(
				dsl.Or(dsl.Literal(true)),
				dsl.Not(dsl.Literal(false)),
			),
			contains: []string{
				"root{{\"AND\"}}",
				"n_0{{\"OR\"}}",
				"n_1[[\"NOT\"]]",
				"root --> n_0",
				"root --> n_1",
				"n_0 --> n_0_0",
				"n_1 --> n_1_0",
			},
		},
		{
			name: "Comparison Labels",
			expr: dsl.And(
				dsl.Var("hp", domain.ScopeGlobal).GreaterThan(dsl.Int(10)),
			),
			contains: []string{
				"n_0[\"Health > 10\"]",
			},
		},
		{
			name: "Warning Styling",
			expr: dsl.And(dsl.Script("ghost")),
			contains: []string{
				"n_0[\"script: ghost (missing)\"]",
				"classDef warn",
				"class n_0 warn;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(tt.expr, vars, nil)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Expected output to contain %q.\nGot:\n%s", want, out)
				}
			}
		})
	}
}
