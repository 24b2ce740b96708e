package domain

import "fmt"

// VariableType is the declared type of a blackboard variable.
type VariableType string

const (
	TypeBoolean VariableType = "boolean"
	TypeInteger VariableType = "integer"
	TypeFloat   VariableType = "float"
	TypeString  VariableType = "string"
)

// ParseVariableType validates a raw type string.
func ParseVariableType(raw string) (VariableType, error) {
	switch t := VariableType(raw); t {
	case TypeBoolean, TypeInteger, TypeFloat, TypeString:
		return t, nil
	default:
		return "", fmt.Errorf("unknown variable type: %q", raw)
	}
}

// VariableDefinition describes a blackboard variable visible in the
// current editing context. Scope resolution (which variables are visible
// at a given stage/node) is the host's responsibility; the editor only
// matches by id and honors the soft-delete flag.
type VariableDefinition struct {
	ID    string        `json:"id" yaml:"id" mapstructure:"id"`
	Name  string        `json:"name" yaml:"name" mapstructure:"name"`
	Type  VariableType  `json:"type" yaml:"type" mapstructure:"type"`
	Scope VariableScope `json:"scope,omitempty" yaml:"scope,omitempty" mapstructure:"scope"`

	// MarkedForDelete flags the variable as pending removal. Referencing
	// it is surfaced as a warning, never an error.
	MarkedForDelete bool `json:"marked_for_delete,omitempty" yaml:"marked_for_delete,omitempty" mapstructure:"marked_for_delete"`
}

// ScriptCategoryCondition selects scripts usable as ScriptRef leaves.
const ScriptCategoryCondition = "condition"

// ScriptDefinition describes a script the project exposes. Only scripts
// in the "condition" category are offered for ScriptRef leaves; scripts
// are opaque references here and are never executed by the editor.
type ScriptDefinition struct {
	ID       string `json:"id" yaml:"id" mapstructure:"id"`
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Category string `json:"category,omitempty" yaml:"category,omitempty" mapstructure:"category"`

	MarkedForDelete bool `json:"marked_for_delete,omitempty" yaml:"marked_for_delete,omitempty" mapstructure:"marked_for_delete"`
}
