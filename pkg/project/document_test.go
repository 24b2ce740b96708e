package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
	"github.com/aretw0/espalier/pkg/project"
)

func TestDocument_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")

	doc := project.New("demo")
	hp := doc.AddVariable("Health", domain.TypeInteger, domain.ScopeGlobal)
	night := doc.AddScript("Is Night")
	doc.Conditions["to-secret-room"] = dsl.And(
		dsl.Var(hp.ID, hp.Scope).GreaterThan(dsl.Int(10)),
		dsl.Script(night.ID),
	)
	doc.Conditions["always-open"] = nil

	if err := doc.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "demo" {
		t.Errorf("Expected name 'demo', got %q", loaded.Name)
	}
	if len(loaded.Variables) != 1 || loaded.Variables[0].ID != hp.ID {
		t.Errorf("Variables did not round-trip: %+v", loaded.Variables)
	}
	if len(loaded.Scripts) != 1 || loaded.Scripts[0].Category != domain.ScriptCategoryCondition {
		t.Errorf("Scripts did not round-trip: %+v", loaded.Scripts)
	}

	expr := loaded.Conditions["to-secret-room"]
	if expr == nil || expr.Kind != domain.KindAnd || len(expr.Children) != 2 {
		t.Fatalf("Condition did not round-trip: %+v", expr)
	}
	if expr.Children[0].Left.VariableID != hp.ID {
		t.Errorf("Expected left side %q, got %+v", hp.ID, expr.Children[0].Left)
	}
	if loaded.Conditions["always-open"] != nil {
		t.Errorf("Expected nil condition preserved, got %+v", loaded.Conditions["always-open"])
	}
}

func TestDocument_LoadMissingFile(t *testing.T) {
	if _, err := project.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestDocument_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte(":\n  - not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := project.Load(path); err == nil {
		t.Fatal("Expected a parse error")
	}
}

func TestDocument_ConditionScriptsFiltersCategory(t *testing.T) {
	doc := project.New("demo")
	doc.AddScript("Is Night")
	doc.Scripts = append(doc.Scripts, domain.ScriptDefinition{
		ID:       "fx-1",
		Name:     "Play Sound",
		Category: "effect",
	})

	scripts := doc.ConditionScripts()
	if len(scripts) != 1 || scripts[0].Name != "Is Night" {
		t.Errorf("Expected only condition scripts, got %+v", scripts)
	}
}

func TestDocument_Validate(t *testing.T) {
	doc := project.New("demo")
	hp := doc.AddVariable("Health", domain.TypeInteger, domain.ScopeGlobal)
	doc.Variables[0].MarkedForDelete = true

	doc.Conditions["t1"] = dsl.And(
		dsl.Var(hp.ID, hp.Scope).GreaterThan(dsl.Int(0)),
		dsl.Script("ghost"),
	)
	doc.Conditions["t2"] = dsl.Literal(true)

	report := doc.Validate()
	if len(report) != 1 {
		t.Fatalf("Expected 1 unhealthy condition, got %d: %+v", len(report), report)
	}
	warnings := report["t1"]
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings for t1, got %+v", warnings)
	}
}
