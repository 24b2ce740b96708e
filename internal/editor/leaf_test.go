package editor

import (
	"errors"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
)

var testVars = []domain.VariableDefinition{
	{ID: "hp", Name: "Health", Type: domain.TypeInteger, Scope: domain.ScopeGlobal},
	{ID: "alive", Name: "Alive", Type: domain.TypeBoolean, Scope: domain.ScopeGlobal},
	{ID: "title", Name: "Title", Type: domain.TypeString, Scope: domain.ScopeStage},
	{ID: "speed", Name: "Speed", Type: domain.TypeFloat, Scope: domain.ScopeGlobal},
}

var testScripts = []domain.ScriptDefinition{
	{ID: "night", Name: "Is Night", Category: domain.ScriptCategoryCondition},
}

func comparisonSession(t *testing.T) *Session {
	t.Helper()
	s, _ := newTestSession(nil, WithVariables(testVars), WithScripts(testScripts))
	if err := s.Apply(AddCondition{}); err != nil {
		t.Fatalf("AddCondition failed: %v", err)
	}
	return s
}

func TestSwitchLeafKind_FreshDefaults(t *testing.T) {
	s := comparisonSession(t)

	if err := s.Apply(SwitchLeafKind{Kind: domain.KindLiteral}); err != nil {
		t.Fatalf("SwitchLeafKind failed: %v", err)
	}
	root := s.Root()
	if root.Kind != domain.KindLiteral || root.Value != true {
		t.Fatalf("Expected Literal(true) default, got %+v", root)
	}

	if err := s.Apply(SwitchLeafKind{Kind: domain.KindScriptRef}); err != nil {
		t.Fatalf("SwitchLeafKind failed: %v", err)
	}
	root = s.Root()
	if root.Kind != domain.KindScriptRef || root.ScriptID != "" {
		t.Fatalf("Expected empty ScriptRef default, got %+v", root)
	}

	if err := s.Apply(SwitchLeafKind{Kind: domain.KindComparison}); err != nil {
		t.Fatalf("SwitchLeafKind failed: %v", err)
	}
	root = s.Root()
	if root.Kind != domain.KindComparison || root.Operator != domain.OpEqual || root.Right == nil {
		t.Fatalf("Expected complete Comparison default, got %+v", root)
	}

	if err := s.Apply(SwitchLeafKind{Kind: domain.KindAnd}); !errors.Is(err, domain.ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind for a group kind, got %v", err)
	}
}

func TestOperatorOptions_FollowLeftType(t *testing.T) {
	s := comparisonSession(t)

	// Unresolved left offers the full set.
	ops, err := s.OperatorOptions(nil)
	if err != nil {
		t.Fatalf("OperatorOptions failed: %v", err)
	}
	if len(ops) != len(domain.AllOperators) {
		t.Errorf("Expected full operator set, got %v", ops)
	}

	// Boolean left narrows to equality.
	if err := s.Apply(SetLeft{Ref: domain.VariableRef{VariableID: "alive", Scope: domain.ScopeGlobal}}); err != nil {
		t.Fatalf("SetLeft failed: %v", err)
	}
	ops, err = s.OperatorOptions(nil)
	if err != nil {
		t.Fatalf("OperatorOptions failed: %v", err)
	}
	if len(ops) != 2 {
		t.Errorf("Expected equality operators only, got %v", ops)
	}
}

func TestSetOperator_Validation(t *testing.T) {
	s := comparisonSession(t)

	if err := s.Apply(SetLeft{Ref: domain.VariableRef{VariableID: "alive", Scope: domain.ScopeGlobal}}); err != nil {
		t.Fatalf("SetLeft failed: %v", err)
	}
	if err := s.Apply(SetOperator{Operator: domain.OpGreater}); !errors.Is(err, ErrOperatorNotAllowed) {
		t.Fatalf("Expected ErrOperatorNotAllowed for '>' on boolean, got %v", err)
	}
	if err := s.Apply(SetOperator{Operator: domain.OpNotEqual}); err != nil {
		t.Fatalf("SetOperator failed: %v", err)
	}
	if s.Root().Operator != domain.OpNotEqual {
		t.Errorf("Expected operator '!=', got %q", s.Root().Operator)
	}
}

func TestSetLeft_ResetsIllegalOperatorAndRight(t *testing.T) {
	s := comparisonSession(t)

	// Numeric left with an ordering operator and numeric constant.
	if err := s.Apply(SetLeft{Ref: domain.VariableRef{VariableID: "hp", Scope: domain.ScopeGlobal}}); err != nil {
		t.Fatalf("SetLeft failed: %v", err)
	}
	if err := s.Apply(SetOperator{Operator: domain.OpGreater}); err != nil {
		t.Fatalf("SetOperator failed: %v", err)
	}
	if err := s.Apply(SetRightText{Text: "10"}); err != nil {
		t.Fatalf("SetRightText failed: %v", err)
	}

	// Re-binding to a boolean variable invalidates both; they reset.
	if err := s.Apply(SetLeft{Ref: domain.VariableRef{VariableID: "alive", Scope: domain.ScopeGlobal}}); err != nil {
		t.Fatalf("SetLeft failed: %v", err)
	}
	root := s.Root()
	if root.Operator != domain.OpEqual {
		t.Errorf("Expected operator reset to '==', got %q", root.Operator)
	}
	if root.Right == nil || root.Right.Value != false {
		t.Errorf("Expected right reset to boolean default, got %+v", root.Right)
	}
}

func TestSetRightText_ParseGate(t *testing.T) {
	s := comparisonSession(t)
	if err := s.Apply(SetLeft{Ref: domain.VariableRef{VariableID: "hp", Scope: domain.ScopeGlobal}}); err != nil {
		t.Fatalf("SetLeft failed: %v", err)
	}

	before := s.Root()
	if err := s.Apply(SetRightText{Text: "not-a-number"}); !errors.Is(err, ErrInvalidConstant) {
		t.Fatalf("Expected ErrInvalidConstant, got %v", err)
	}
	if s.Root() != before {
		t.Error("Rejected input must not commit anything")
	}

	if err := s.Apply(SetRightText{Text: "42"}); err != nil {
		t.Fatalf("SetRightText failed: %v", err)
	}
	if s.Root().Right.Value != int64(42) {
		t.Errorf("Expected int64 42, got %#v", s.Root().Right.Value)
	}
}

func TestSetRight_TypeChecked(t *testing.T) {
	s := comparisonSession(t)
	if err := s.Apply(SetLeft{Ref: domain.VariableRef{VariableID: "hp", Scope: domain.ScopeGlobal}}); err != nil {
		t.Fatalf("SetLeft failed: %v", err)
	}

	// Integer left accepts a float variable on the right.
	if err := s.Apply(SetRight{Source: domain.NewVariableSource(domain.VariableRef{VariableID: "speed", Scope: domain.ScopeGlobal})}); err != nil {
		t.Fatalf("SetRight failed: %v", err)
	}

	// But not a string variable.
	err := s.Apply(SetRight{Source: domain.NewVariableSource(domain.VariableRef{VariableID: "title", Scope: domain.ScopeStage})})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("Expected ErrTypeMismatch, got %v", err)
	}

	// A dangling reference passes: dangling is a warning, not a blocker.
	if err := s.Apply(SetRight{Source: domain.NewVariableSource(domain.VariableRef{VariableID: "ghost", Scope: domain.ScopeGlobal})}); err != nil {
		t.Fatalf("SetRight with dangling reference failed: %v", err)
	}
}

func TestSetScriptAndLiteral(t *testing.T) {
	s := comparisonSession(t)

	if err := s.Apply(SwitchLeafKind{Kind: domain.KindScriptRef}); err != nil {
		t.Fatalf("SwitchLeafKind failed: %v", err)
	}
	if err := s.Apply(SetScript{ScriptID: "night"}); err != nil {
		t.Fatalf("SetScript failed: %v", err)
	}
	if s.Root().ScriptID != "night" {
		t.Errorf("Expected script 'night', got %q", s.Root().ScriptID)
	}
	if err := s.Apply(SetLiteral{Value: false}); err == nil {
		t.Error("Expected SetLiteral on a script leaf to fail")
	}

	if err := s.Apply(SwitchLeafKind{Kind: domain.KindLiteral}); err != nil {
		t.Fatalf("SwitchLeafKind failed: %v", err)
	}
	if err := s.Apply(SetLiteral{Value: false}); err != nil {
		t.Fatalf("SetLiteral failed: %v", err)
	}
	if s.Root().Value != false {
		t.Errorf("Expected literal false, got %+v", s.Root())
	}
}

func TestWarnings_MissingAndMarked(t *testing.T) {
	marked := append([]domain.VariableDefinition{}, testVars...)
	marked[0].MarkedForDelete = true

	root := dsl.And(
		dsl.Var("hp", domain.ScopeGlobal).GreaterThan(dsl.Int(1)),
		dsl.Script("ghost"),
	)
	s := NewSession(root, WithVariables(marked), WithScripts(testScripts))

	warnings := s.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %d: %+v", len(warnings), warnings)
	}
}

func TestParseConstant(t *testing.T) {
	tests := []struct {
		expected domain.VariableType
		text     string
		want     any
		wantErr  bool
	}{
		{domain.TypeBoolean, "true", true, false},
		{domain.TypeBoolean, " False ", false, false},
		{domain.TypeBoolean, "yes", nil, true},
		{domain.TypeInteger, "42", int64(42), false},
		{domain.TypeInteger, "4.2", nil, true},
		{domain.TypeFloat, "4.2", 4.2, false},
		{domain.TypeFloat, "abc", nil, true},
		{domain.TypeString, "anything goes", "anything goes", false},
		{"", "verbatim", "verbatim", false},
	}

	for _, tt := range tests {
		got, err := ParseConstant(tt.expected, tt.text)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidConstant) {
				t.Errorf("ParseConstant(%q, %q): expected ErrInvalidConstant, got %v", tt.expected, tt.text, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseConstant(%q, %q) failed: %v", tt.expected, tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseConstant(%q, %q) = %#v, want %#v", tt.expected, tt.text, got, tt.want)
		}
	}
}
