package editor

import "github.com/aretw0/espalier/pkg/domain"

// Intent is one atomic edit requested against the session. The set is
// closed; Apply switches exhaustively over it. Paths address nodes as
// child-index slices from the root, so the root itself is the empty path
// and the edit depth is len(path).
type Intent interface {
	intentName() string
}

// AddCondition appends a default comparison leaf to the group at Path.
// On an empty root it commits the bare leaf; on a bare-leaf root it
// first synthesizes an And wrapping the existing leaf and the new one.
type AddCondition struct {
	Path []int `json:"path" mapstructure:"path"`
}

// AddGroup appends an empty And group to the group at Path. On an empty
// root it materializes the group itself (preserved, not collapsed).
type AddGroup struct {
	Path []int `json:"path" mapstructure:"path"`
}

// Remove deletes the node at Path. Removing a group that still has
// content requires confirmation: Apply parks the request and the caller
// resolves it with Confirm or Cancel. Removing the root resets the
// condition to "always true".
type Remove struct {
	Path []int `json:"path" mapstructure:"path"`
}

// SwitchMode changes a group's logic kind (And/Or/Not), restructuring
// children per the capacity rules of the target kind.
type SwitchMode struct {
	Path []int                `json:"path" mapstructure:"path"`
	Kind domain.ConditionKind `json:"kind" mapstructure:"kind"`
}

// Reorder moves a child within one children list (no cross-group moves).
type Reorder struct {
	Path []int `json:"path" mapstructure:"path"`
	From int   `json:"from" mapstructure:"from"`
	To   int   `json:"to" mapstructure:"to"`
}

// SwitchLeafKind replaces the leaf at Path with a fresh, fully populated
// default of the target leaf kind.
type SwitchLeafKind struct {
	Path []int                `json:"path" mapstructure:"path"`
	Kind domain.ConditionKind `json:"kind" mapstructure:"kind"`
}

// SetOperator sets a comparison's operator, validated against the
// option set derived from the left operand's resolved type.
type SetOperator struct {
	Path     []int                     `json:"path" mapstructure:"path"`
	Operator domain.ComparisonOperator `json:"operator" mapstructure:"operator"`
}

// SetLeft binds a comparison's left side to a variable. The operator
// and right side are re-checked against the new type and reset to
// defaults where they became illegal.
type SetLeft struct {
	Path []int              `json:"path" mapstructure:"path"`
	Ref  domain.VariableRef `json:"ref" mapstructure:"ref"`
}

// SetRight sets a comparison's right operand to a typed value source.
type SetRight struct {
	Path   []int              `json:"path" mapstructure:"path"`
	Source domain.ValueSource `json:"source" mapstructure:"source"`
}

// SetRightText sets a comparison's right operand from raw text input,
// parsed according to the left operand's resolved type. Malformed input
// is rejected without committing anything.
type SetRightText struct {
	Path []int  `json:"path" mapstructure:"path"`
	Text string `json:"text" mapstructure:"text"`
}

// SetScript binds a script-reference leaf to a script id.
type SetScript struct {
	Path     []int  `json:"path" mapstructure:"path"`
	ScriptID string `json:"script_id" mapstructure:"script_id"`
}

// SetLiteral sets a literal leaf's boolean value.
type SetLiteral struct {
	Path  []int `json:"path" mapstructure:"path"`
	Value bool  `json:"value" mapstructure:"value"`
}

func (AddCondition) intentName() string   { return "add_condition" }
func (AddGroup) intentName() string       { return "add_group" }
func (Remove) intentName() string         { return "remove" }
func (SwitchMode) intentName() string     { return "switch_mode" }
func (Reorder) intentName() string        { return "reorder" }
func (SwitchLeafKind) intentName() string { return "switch_leaf_kind" }
func (SetOperator) intentName() string    { return "set_operator" }
func (SetLeft) intentName() string        { return "set_left" }
func (SetRight) intentName() string       { return "set_right" }
func (SetRightText) intentName() string   { return "set_right_text" }
func (SetScript) intentName() string      { return "set_script" }
func (SetLiteral) intentName() string     { return "set_literal" }
