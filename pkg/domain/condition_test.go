package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/espalier/pkg/domain"
)

func TestConditionExpression_JSONRoundTrip(t *testing.T) {
	right := domain.NewConstant(int64(10))
	tree := &domain.ConditionExpression{
		Kind: domain.KindAnd,
		Children: []*domain.ConditionExpression{
			{
				Kind:     domain.KindComparison,
				Operator: domain.OpGreaterEqual,
				Left:     &domain.VariableRef{VariableID: "hp", Scope: domain.ScopeGlobal},
				Right:    &right,
			},
			{Kind: domain.KindNot, Operand: &domain.ConditionExpression{Kind: domain.KindScriptRef, ScriptID: "night"}},
			{Kind: domain.KindLiteral, Value: false},
		},
	}

	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded domain.ConditionExpression
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded.Kind != domain.KindAnd || len(decoded.Children) != 3 {
		t.Fatalf("Expected And with 3 children, got %+v", decoded)
	}
	cmp := decoded.Children[0]
	if cmp.Operator != domain.OpGreaterEqual || cmp.Left.VariableID != "hp" {
		t.Errorf("Comparison did not round-trip: %+v", cmp)
	}
	if cmp.Right == nil || cmp.Right.Kind != domain.SourceConstant {
		t.Errorf("Right side did not round-trip: %+v", cmp.Right)
	}
	if decoded.Children[1].Operand == nil || decoded.Children[1].Operand.ScriptID != "night" {
		t.Errorf("Not operand did not round-trip: %+v", decoded.Children[1])
	}
	// Literal false survives the omitempty encoding via the zero default.
	if decoded.Children[2].Kind != domain.KindLiteral || decoded.Children[2].Value != false {
		t.Errorf("Literal false did not round-trip: %+v", decoded.Children[2])
	}
}

func TestConditionExpression_LegacyVariableRefUpgrade(t *testing.T) {
	raw := `{"kind": "variable_ref", "left": {"variable_id": "alive", "scope": "global"}}`

	var decoded domain.ConditionExpression
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded.Kind != domain.KindComparison {
		t.Fatalf("Expected upgrade to comparison, got %q", decoded.Kind)
	}
	if decoded.Operator != domain.OpEqual {
		t.Errorf("Expected operator '==', got %q", decoded.Operator)
	}
	if decoded.Left == nil || decoded.Left.VariableID != "alive" {
		t.Errorf("Expected left side preserved, got %+v", decoded.Left)
	}
	if decoded.Right == nil || decoded.Right.Value != true {
		t.Errorf("Expected constant-true right side, got %+v", decoded.Right)
	}

	// The legacy tag is never written back.
	data, err := json.Marshal(&decoded)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("Unmarshal wire failed: %v", err)
	}
	if wire["kind"] != "comparison" {
		t.Errorf("Expected kind 'comparison' on the wire, got %v", wire["kind"])
	}
}

func TestConditionExpression_UnknownKindRejected(t *testing.T) {
	var decoded domain.ConditionExpression
	err := json.Unmarshal([]byte(`{"kind": "xor"}`), &decoded)
	if !errors.Is(err, domain.ErrUnknownKind) {
		t.Fatalf("Expected ErrUnknownKind, got %v", err)
	}
}

func TestConditionExpression_YAMLRoundTrip(t *testing.T) {
	right := domain.NewVariableSource(domain.VariableRef{VariableID: "target", Scope: domain.ScopeStage})
	tree := &domain.ConditionExpression{
		Kind: domain.KindOr,
		Children: []*domain.ConditionExpression{
			{
				Kind:     domain.KindComparison,
				Operator: domain.OpNotEqual,
				Left:     &domain.VariableRef{VariableID: "score", Scope: domain.ScopeNode},
				Right:    &right,
			},
		},
	}

	data, err := yaml.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded domain.ConditionExpression
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded.Kind != domain.KindOr || len(decoded.Children) != 1 {
		t.Fatalf("Expected Or with 1 child, got %+v", decoded)
	}
	cmp := decoded.Children[0]
	if cmp.Right == nil || cmp.Right.Kind != domain.SourceVariable || cmp.Right.Variable.VariableID != "target" {
		t.Errorf("Variable right side did not round-trip: %+v", cmp.Right)
	}
}

func TestValueSource_UnknownKindRejected(t *testing.T) {
	var source domain.ValueSource
	err := json.Unmarshal([]byte(`{"kind": "computed"}`), &source)
	if !errors.Is(err, domain.ErrUnknownKind) {
		t.Fatalf("Expected ErrUnknownKind, got %v", err)
	}
}

func TestParseOperator(t *testing.T) {
	for _, known := range domain.AllOperators {
		if _, err := domain.ParseOperator(string(known)); err != nil {
			t.Errorf("ParseOperator(%q) failed: %v", known, err)
		}
	}
	if _, err := domain.ParseOperator("~="); err == nil {
		t.Error("Expected an error for an unknown operator")
	}
}
