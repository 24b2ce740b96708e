package cli

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/project"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		raw     string
		want    []int
		wantErr bool
	}{
		{raw: "root", want: nil},
		{raw: ".", want: nil},
		{raw: "0", want: []int{0}},
		{raw: "0.2.1", want: []int{0, 2, 1}},
		{raw: "a.b", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "0..1", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parsePath(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePath(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePath(%q) failed: %v", tt.raw, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parsePath(%q) = %v, want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parsePath(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		}
	}
}

func TestEditLoop_DispatchAndAutosave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")

	doc := project.New("demo")
	hp := doc.AddVariable("Health", domain.TypeInteger, domain.ScopeGlobal)
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	owner := "t1"
	ed := espalier.New(nil,
		espalier.WithVariables(doc.Variables),
		espalier.WithScripts(doc.ConditionScripts()),
		espalier.WithOnChange(func(root *domain.ConditionExpression) {
			doc.Conditions[owner] = root
			if err := doc.Save(path); err != nil {
				t.Fatalf("autosave failed: %v", err)
			}
		}),
	)
	loop := &editLoop{ed: ed, doc: doc, render: func(s string) string { return s }}

	for _, line := range []string{
		"add root",
		"left root Health",
		"op root >",
		"right root 10",
	} {
		if err := loop.dispatch(line); err != nil {
			t.Fatalf("dispatch(%q) failed: %v", line, err)
		}
	}

	if err := loop.dispatch("op root bogus"); err == nil {
		t.Error("Expected an error for an unknown operator")
	}
	if err := loop.dispatch("left root Missing"); err == nil {
		t.Error("Expected an error for an unknown variable")
	}
	if err := loop.dispatch("explode root"); err == nil {
		t.Error("Expected an error for an unknown command")
	}

	// The edits must have been written through to disk.
	loaded, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	expr := loaded.Conditions[owner]
	if expr == nil || expr.Kind != domain.KindComparison {
		t.Fatalf("Expected a persisted comparison, got %+v", expr)
	}
	if expr.Left == nil || expr.Left.VariableID != hp.ID {
		t.Errorf("Expected left side %q, got %+v", hp.ID, expr.Left)
	}
	if expr.Operator != domain.OpGreater {
		t.Errorf("Expected operator '>', got %q", expr.Operator)
	}
}
