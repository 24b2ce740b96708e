package espalier

import (
	"io"
	"log/slog"

	"github.com/aretw0/espalier/internal/editor"
	"github.com/aretw0/espalier/pkg/condition"
	"github.com/aretw0/espalier/pkg/domain"
)

// OnChange receives the committed condition after every successful
// edit. A nil value means "no condition - always true".
type OnChange = editor.OnChange

// Editor is the high-level entry point for the Espalier library.
// It wraps the internal editing session and provides a simplified API
// for hosts embedding the condition editor.
type Editor struct {
	session *editor.Session
	logger  *slog.Logger
	opts    []editor.Option
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithVariables supplies the variable definitions visible in the
// current editing context. Scope resolution is the host's job; the
// editor only matches by id and honors soft-delete flags.
func WithVariables(vars []domain.VariableDefinition) Option {
	return func(e *Editor) {
		e.opts = append(e.opts, editor.WithVariables(vars))
	}
}

// WithScripts supplies the condition-script definitions available for
// script-reference leaves.
func WithScripts(scripts []domain.ScriptDefinition) Option {
	return func(e *Editor) {
		e.opts = append(e.opts, editor.WithScripts(scripts))
	}
}

// WithOnChange registers the commit callback, the sole write path back
// to the host. Omitting this option puts the editor in read-only mode:
// no edits are accepted, but integrity warnings are still reported.
func WithOnChange(fn OnChange) Option {
	return func(e *Editor) {
		e.opts = append(e.opts, editor.WithOnChange(fn))
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// New initializes an Editor over the given condition value.
// The value is copied; the host's tree is never mutated in place.
func New(root *domain.ConditionExpression, opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		opt(e)
	}

	// Ensure logger is initialized so we don't pass nil to the session.
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e.opts = append(e.opts, editor.WithLogger(e.logger))

	e.session = editor.NewSession(root, e.opts...)
	return e
}

// Root returns the current condition value.
func (e *Editor) Root() *domain.ConditionExpression { return e.session.Root() }

// ReadOnly reports whether the editor rejects mutations.
func (e *Editor) ReadOnly() bool { return e.session.ReadOnly() }

// Warnings reports every dangling or soft-deleted reference in the
// current tree. Warnings never block editing.
func (e *Editor) Warnings() []condition.RefWarning { return e.session.Warnings() }

// SetVariables replaces the visible variable set.
func (e *Editor) SetVariables(vars []domain.VariableDefinition) { e.session.SetVariables(vars) }

// SetScripts replaces the visible script set.
func (e *Editor) SetScripts(scripts []domain.ScriptDefinition) { e.session.SetScripts(scripts) }

// AddCondition appends a default comparison leaf to the group at path.
// On an empty root the bare leaf is committed directly; on a bare-leaf
// root an And group is synthesized around the existing leaf.
func (e *Editor) AddCondition(path []int) error {
	return e.session.Apply(editor.AddCondition{Path: path})
}

// AddGroup appends an empty And group at path (or materializes one as
// the root when the condition is empty).
func (e *Editor) AddGroup(path []int) error {
	return e.session.Apply(editor.AddGroup{Path: path})
}

// Remove deletes the node at path. Removing a group that still has
// content parks a confirmation: resolve it with Confirm or Cancel.
func (e *Editor) Remove(path []int) error {
	return e.session.Apply(editor.Remove{Path: path})
}

// Pending reports a parked delete confirmation: the path of the group,
// how many descendant nodes it holds, and whether one is pending.
func (e *Editor) Pending() (path []int, count int, ok bool) {
	p := e.session.Pending()
	if p == nil {
		return nil, 0, false
	}
	return p.Path, p.Count, true
}

// Confirm applies the parked guarded removal.
func (e *Editor) Confirm() error { return e.session.Confirm() }

// Cancel discards the parked guarded removal; the tree is unchanged.
func (e *Editor) Cancel() error { return e.session.Cancel() }

// SwitchMode changes the logic kind (And/Or/Not) of the group at path.
func (e *Editor) SwitchMode(path []int, kind domain.ConditionKind) error {
	return e.session.Apply(editor.SwitchMode{Path: path, Kind: kind})
}

// Reorder moves a child within the children list of the group at path.
func (e *Editor) Reorder(path []int, from, to int) error {
	return e.session.Apply(editor.Reorder{Path: path, From: from, To: to})
}

// SwitchLeafKind replaces the leaf at path with a fresh default of the
// target kind.
func (e *Editor) SwitchLeafKind(path []int, kind domain.ConditionKind) error {
	return e.session.Apply(editor.SwitchLeafKind{Path: path, Kind: kind})
}

// SetOperator sets the comparison operator of the leaf at path.
func (e *Editor) SetOperator(path []int, op domain.ComparisonOperator) error {
	return e.session.Apply(editor.SetOperator{Path: path, Operator: op})
}

// SetLeft binds the left side of the comparison at path to a variable.
func (e *Editor) SetLeft(path []int, ref domain.VariableRef) error {
	return e.session.Apply(editor.SetLeft{Path: path, Ref: ref})
}

// SetRight sets the right operand of the comparison at path.
func (e *Editor) SetRight(path []int, source domain.ValueSource) error {
	return e.session.Apply(editor.SetRight{Path: path, Source: source})
}

// SetRightText sets the right operand from raw text input, parsed
// against the left operand's type. Malformed input is rejected without
// committing.
func (e *Editor) SetRightText(path []int, text string) error {
	return e.session.Apply(editor.SetRightText{Path: path, Text: text})
}

// SetScript binds the script-reference leaf at path to a script id.
func (e *Editor) SetScript(path []int, scriptID string) error {
	return e.session.Apply(editor.SetScript{Path: path, ScriptID: scriptID})
}

// SetLiteral sets the boolean value of the literal leaf at path.
func (e *Editor) SetLiteral(path []int, value bool) error {
	return e.session.Apply(editor.SetLiteral{Path: path, Value: value})
}

// OperatorOptions returns the operator set offered for the comparison
// at path, derived from its left operand's resolved type.
func (e *Editor) OperatorOptions(path []int) ([]domain.ComparisonOperator, error) {
	return e.session.OperatorOptions(path)
}

// ToggleCollapse flips presentation-only collapse state for a group.
func (e *Editor) ToggleCollapse(path []int) { e.session.ToggleCollapse(path) }

// IsCollapsed reports presentation-only collapse state for a group.
func (e *Editor) IsCollapsed(path []int) bool { return e.session.IsCollapsed(path) }

// StartDrag begins a drag of child from within the group at path.
func (e *Editor) StartDrag(path []int, from int) { e.session.StartDrag(path, from) }

// Drop completes a drag as a reorder within the source list. Drops in a
// different list are discarded (no cross-group dragging).
func (e *Editor) Drop(path []int, to int) error { return e.session.Drop(path, to) }

// CancelDrag discards drag state without touching the tree.
func (e *Editor) CancelDrag() { e.session.CancelDrag() }
