package domain

import (
	"encoding/json"
	"fmt"
)

// ValueSourceKind discriminates the two origins a value can have.
type ValueSourceKind string

const (
	// SourceConstant is an inline literal value (bool, number or string).
	SourceConstant ValueSourceKind = "constant"
	// SourceVariable is a weak reference to a blackboard variable.
	SourceVariable ValueSourceKind = "variable"
)

// VariableScope identifies where a referenced variable is declared.
type VariableScope string

const (
	ScopeGlobal VariableScope = "global"
	ScopeStage  VariableScope = "stage"
	ScopeNode   VariableScope = "node"
)

// VariableRef is an id-based pointer to a variable, qualified by scope.
// It carries no ownership: the target may have been deleted or flagged
// for deletion, which is a warning condition, never a hard failure.
type VariableRef struct {
	VariableID string        `json:"variable_id" yaml:"variable_id" mapstructure:"variable_id"`
	Scope      VariableScope `json:"scope,omitempty" yaml:"scope,omitempty" mapstructure:"scope"`
}

// ValueSource is a tagged union: a value is either a constant or a
// variable reference. The zero value is not valid; use NewConstant or
// NewVariableSource.
type ValueSource struct {
	Kind     ValueSourceKind
	Value    any          // set when Kind == SourceConstant
	Variable *VariableRef // set when Kind == SourceVariable
}

// NewConstant builds a constant value source.
func NewConstant(value any) ValueSource {
	return ValueSource{Kind: SourceConstant, Value: value}
}

// NewVariableSource builds a value source referencing a variable.
func NewVariableSource(ref VariableRef) ValueSource {
	return ValueSource{Kind: SourceVariable, Variable: &ref}
}

type valueSourceWire struct {
	Kind     ValueSourceKind `json:"kind" yaml:"kind"`
	Value    any             `json:"value,omitempty" yaml:"value,omitempty"`
	Variable *VariableRef    `json:"variable,omitempty" yaml:"variable,omitempty"`
}

// MarshalJSON emits only the fields relevant to the active kind.
func (v ValueSource) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case SourceConstant:
		return json.Marshal(valueSourceWire{Kind: v.Kind, Value: v.Value})
	case SourceVariable:
		return json.Marshal(valueSourceWire{Kind: v.Kind, Variable: v.Variable})
	default:
		return nil, fmt.Errorf("value source: %w: %q", ErrUnknownKind, v.Kind)
	}
}

// UnmarshalJSON decodes the union, validating the kind tag.
func (v *ValueSource) UnmarshalJSON(data []byte) error {
	var wire valueSourceWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	return v.fromWire(wire)
}

// MarshalYAML mirrors the JSON layout so documents stay hand-editable.
func (v ValueSource) MarshalYAML() (any, error) {
	switch v.Kind {
	case SourceConstant:
		return valueSourceWire{Kind: v.Kind, Value: v.Value}, nil
	case SourceVariable:
		return valueSourceWire{Kind: v.Kind, Variable: v.Variable}, nil
	default:
		return nil, fmt.Errorf("value source: %w: %q", ErrUnknownKind, v.Kind)
	}
}

// UnmarshalYAML decodes the union from YAML.
func (v *ValueSource) UnmarshalYAML(unmarshal func(any) error) error {
	var wire valueSourceWire
	if err := unmarshal(&wire); err != nil {
		return err
	}
	return v.fromWire(wire)
}

func (v *ValueSource) fromWire(wire valueSourceWire) error {
	switch wire.Kind {
	case SourceConstant:
		*v = ValueSource{Kind: SourceConstant, Value: wire.Value}
	case SourceVariable:
		ref := wire.Variable
		if ref == nil {
			ref = &VariableRef{}
		}
		*v = ValueSource{Kind: SourceVariable, Variable: ref}
	default:
		return fmt.Errorf("value source: %w: %q", ErrUnknownKind, wire.Kind)
	}
	return nil
}
