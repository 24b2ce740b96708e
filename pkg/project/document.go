// Package project implements the minimal host document the CLI edits:
// blackboard variables, condition scripts, and the named condition
// trees owned by transitions/branches. The full authoring tool owns a
// much richer model; this package covers exactly the surface the
// condition editor needs.
package project

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/espalier/pkg/condition"
	"github.com/aretw0/espalier/pkg/domain"
)

// Document is the on-disk project file.
type Document struct {
	Name      string                      `yaml:"name"`
	Variables []domain.VariableDefinition `yaml:"variables,omitempty"`
	Scripts   []domain.ScriptDefinition   `yaml:"scripts,omitempty"`

	// Conditions maps an owner id (transition/branch) to its tree.
	// A missing or null entry means "always true".
	Conditions map[string]*domain.ConditionExpression `yaml:"conditions,omitempty"`
}

// New creates an empty project document.
func New(name string) *Document {
	return &Document{
		Name:       name,
		Conditions: make(map[string]*domain.ConditionExpression),
	}
}

// Load reads a project document from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	if doc.Conditions == nil {
		doc.Conditions = make(map[string]*domain.ConditionExpression)
	}
	return &doc, nil
}

// Save writes the project document back to a YAML file.
func (d *Document) Save(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// AddVariable mints a new variable definition with a fresh id.
func (d *Document) AddVariable(name string, t domain.VariableType, scope domain.VariableScope) domain.VariableDefinition {
	def := domain.VariableDefinition{
		ID:    uuid.NewString(),
		Name:  name,
		Type:  t,
		Scope: scope,
	}
	d.Variables = append(d.Variables, def)
	return def
}

// AddScript mints a new condition-script definition with a fresh id.
func (d *Document) AddScript(name string) domain.ScriptDefinition {
	def := domain.ScriptDefinition{
		ID:       uuid.NewString(),
		Name:     name,
		Category: domain.ScriptCategoryCondition,
	}
	d.Scripts = append(d.Scripts, def)
	return def
}

// ConditionScripts returns the scripts eligible for ScriptRef leaves.
func (d *Document) ConditionScripts() []domain.ScriptDefinition {
	var out []domain.ScriptDefinition
	for _, s := range d.Scripts {
		if s.Category == "" || s.Category == domain.ScriptCategoryCondition {
			out = append(out, s)
		}
	}
	return out
}

// VariableByName finds a variable by display name.
func (d *Document) VariableByName(name string) (*domain.VariableDefinition, bool) {
	for i := range d.Variables {
		if d.Variables[i].Name == name {
			return &d.Variables[i], true
		}
	}
	return nil, false
}

// Validate inspects every condition tree against the document's
// variable and script sets, keyed by owner id. Only unhealthy
// references appear in the result.
func (d *Document) Validate() map[string][]condition.RefWarning {
	report := make(map[string][]condition.RefWarning)
	for owner, expr := range d.Conditions {
		if warnings := condition.Inspect(expr, d.Variables, d.ConditionScripts()); len(warnings) > 0 {
			report[owner] = warnings
		}
	}
	return report
}
