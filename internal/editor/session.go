// Package editor implements the interactive condition-tree editing
// session: a synchronous state machine over one expression value.
//
// Every mutation is an Intent applied atomically: locate the target by
// path, build the replacement subtree, run it through the normalization
// rules, splice it into a fresh root and hand that root to the host via
// the change callback. The session never mutates the host's tree in
// place and holds no state beyond the current value and transient UI
// state (collapsed nodes, drag source, pending delete confirmation).
package editor

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/condition"
	"github.com/aretw0/espalier/pkg/domain"
)

// OnChange receives the committed root after every successful mutation.
// The new root may be nil, meaning "no condition, always true".
type OnChange func(*domain.ConditionExpression)

// PendingDelete describes a guarded removal waiting for confirmation.
type PendingDelete struct {
	// Path addresses the group to remove; empty path means the root.
	Path []int
	// Count is the number of descendant nodes that would be deleted,
	// as reported by condition.CountGroupContent.
	Count int
}

// Session is the editing state machine. It is not safe for concurrent
// use: the model is a single-threaded UI event loop where intents are
// dispatched one at a time.
type Session struct {
	root    *domain.ConditionExpression
	vars    []domain.VariableDefinition
	scripts []domain.ScriptDefinition

	onChange OnChange
	logger   *slog.Logger

	collapsed map[string]bool
	pending   *PendingDelete

	dragging bool
	dragPath []int
	dragFrom int
}

// Option configures a Session.
type Option func(*Session)

// WithVariables supplies the variable set visible in the current
// editing context.
func WithVariables(vars []domain.VariableDefinition) Option {
	return func(s *Session) { s.vars = vars }
}

// WithScripts supplies the condition-script set.
func WithScripts(scripts []domain.ScriptDefinition) Option {
	return func(s *Session) { s.scripts = scripts }
}

// WithOnChange registers the commit callback. Omitting it puts the
// session in read-only mode: integrity warnings still work, mutating
// intents are rejected.
func WithOnChange(fn OnChange) Option {
	return func(s *Session) { s.onChange = fn }
}

// WithLogger sets a structured logger for edit tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// NewSession starts an editing session over the given root condition.
// The root is deep-copied, so later edits never touch the host's value.
func NewSession(root *domain.ConditionExpression, opts ...Option) *Session {
	s := &Session{
		root:      condition.Clone(root),
		collapsed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Root returns the current condition value.
func (s *Session) Root() *domain.ConditionExpression { return s.root }

// ReadOnly reports whether mutating intents are rejected.
func (s *Session) ReadOnly() bool { return s.onChange == nil }

// Pending returns the delete confirmation waiting for an answer, if any.
func (s *Session) Pending() *PendingDelete { return s.pending }

// Warnings inspects the current tree against the supplied variable and
// script sets and returns every dangling or soft-deleted reference.
func (s *Session) Warnings() []condition.RefWarning {
	return condition.Inspect(s.root, s.vars, s.scripts)
}

// Variables returns the visible variable set.
func (s *Session) Variables() []domain.VariableDefinition { return s.vars }

// Scripts returns the visible condition-script set.
func (s *Session) Scripts() []domain.ScriptDefinition { return s.scripts }

// SetVariables replaces the visible variable set (host re-resolved scope).
func (s *Session) SetVariables(vars []domain.VariableDefinition) { s.vars = vars }

// SetScripts replaces the visible script set.
func (s *Session) SetScripts(scripts []domain.ScriptDefinition) { s.scripts = scripts }

// Apply executes one intent atomically. On success the new root has
// been committed through the change callback; on error the tree is
// unchanged. While a delete confirmation is pending, all mutating
// intents are rejected until Confirm or Cancel resolves it.
func (s *Session) Apply(intent Intent) error {
	if s.ReadOnly() {
		return ErrReadOnly
	}
	if s.pending != nil {
		return ErrConfirmationPending
	}

	var err error
	switch it := intent.(type) {
	case AddCondition:
		err = s.addChild(it.Path, condition.NewComparison(), false)
	case AddGroup:
		err = s.addChild(it.Path, condition.NewGroup(domain.KindAnd), true)
	case Remove:
		err = s.remove(it.Path)
	case SwitchMode:
		err = s.switchMode(it.Path, it.Kind)
	case Reorder:
		err = s.reorder(it.Path, it.From, it.To)
	case SwitchLeafKind:
		err = s.switchLeafKind(it.Path, it.Kind)
	case SetOperator:
		err = s.setOperator(it.Path, it.Operator)
	case SetLeft:
		err = s.setLeft(it.Path, it.Ref)
	case SetRight:
		err = s.setRight(it.Path, it.Source)
	case SetRightText:
		err = s.setRightText(it.Path, it.Text)
	case SetScript:
		err = s.setScript(it.Path, it.ScriptID)
	case SetLiteral:
		err = s.setLiteral(it.Path, it.Value)
	default:
		err = fmt.Errorf("unsupported intent %T", intent)
	}

	if err != nil {
		s.logger.Debug("intent rejected", "intent", intent.intentName(), "err", err)
	}
	return err
}

// Confirm applies the pending guarded removal.
func (s *Session) Confirm() error {
	if s.pending == nil {
		return ErrNoPendingDelete
	}
	pending := s.pending
	s.pending = nil

	if len(pending.Path) == 0 {
		// Root group deletion resets the condition to "always true".
		return s.commit(pending.Path, nil, condition.NormalizeOptions{})
	}
	return s.removeChild(pending.Path[:len(pending.Path)-1], pending.Path[len(pending.Path)-1])
}

// Cancel discards the pending guarded removal. The tree is unchanged.
func (s *Session) Cancel() error {
	if s.pending == nil {
		return ErrNoPendingDelete
	}
	s.pending = nil
	return nil
}

// --- structural edits ---

func (s *Session) addChild(path []int, child *domain.ConditionExpression, preserveEmptyRoot bool) error {
	// Empty root: first population.
	if s.root == nil {
		if len(path) != 0 {
			return ErrInvalidPath
		}
		// A lone default leaf commits bare (no And wrapper); an explicit
		// group request materializes the group and is preserved.
		return s.commit(path, child, condition.NormalizeOptions{PreserveGroup: preserveEmptyRoot})
	}

	target, err := s.nodeAt(path)
	if err != nil {
		return err
	}

	if condition.IsLeafKind(target.Kind) {
		if len(path) != 0 {
			return fmt.Errorf("add at %v: %w", path, domain.ErrNotAGroup)
		}
		// Bare leaf at the root grows into a multi-condition group
		// without round-tripping through "always true".
		group := &domain.ConditionExpression{
			Kind:     domain.KindAnd,
			Children: []*domain.ConditionExpression{target, child},
		}
		return s.commit(path, group, condition.NormalizeOptions{PreserveGroup: true})
	}

	if !condition.CanAddChild(target) {
		return fmt.Errorf("add at %v: %w", path, ErrGroupFull)
	}
	children, err := condition.Children(target)
	if err != nil {
		return err
	}
	next, err := condition.WithChildren(target, append(append([]*domain.ConditionExpression(nil), children...), child))
	if err != nil {
		return err
	}
	return s.commit(path, next, condition.NormalizeOptions{PreserveGroup: true})
}

func (s *Session) remove(path []int) error {
	target, err := s.nodeAt(path)
	if err != nil {
		return err
	}

	if condition.IsGroupKind(target.Kind) {
		if count := condition.CountGroupContent(target); count > 0 {
			// Guarded: park the removal until the host confirms.
			s.pending = &PendingDelete{Path: append([]int(nil), path...), Count: count}
			s.logger.Debug("delete confirmation requested", "path", path, "count", count)
			return nil
		}
	}

	if len(path) == 0 {
		// Removing the root (bare leaf or empty group) resets to "always true".
		return s.commit(path, nil, condition.NormalizeOptions{})
	}
	return s.removeChild(path[:len(path)-1], path[len(path)-1])
}

// removeChild drops one element from a children list. The emptied group
// is deliberately retained ("Always true" placeholder) rather than
// collapsed, so a removal never deletes the user's place in the tree.
func (s *Session) removeChild(parentPath []int, index int) error {
	parent, err := s.nodeAt(parentPath)
	if err != nil {
		return err
	}
	children, err := condition.Children(parent)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(children) {
		return fmt.Errorf("remove child %d of %d: %w", index, len(children), ErrIndexOutOfRange)
	}

	remaining := make([]*domain.ConditionExpression, 0, len(children)-1)
	remaining = append(remaining, children[:index]...)
	remaining = append(remaining, children[index+1:]...)

	next, err := condition.WithChildren(parent, remaining)
	if err != nil {
		return err
	}
	return s.commit(parentPath, next, condition.NormalizeOptions{PreserveGroup: true})
}

func (s *Session) switchMode(path []int, kind domain.ConditionKind) error {
	if !condition.IsGroupKind(kind) {
		return fmt.Errorf("switch mode to %q: %w", kind, domain.ErrUnknownKind)
	}
	target, err := s.nodeAt(path)
	if err != nil {
		return err
	}
	if !condition.IsGroupKind(target.Kind) {
		return fmt.Errorf("switch mode at %v: %w", path, domain.ErrNotAGroup)
	}
	if target.Kind == kind {
		return nil
	}

	children, err := condition.Children(target)
	if err != nil {
		return err
	}

	var next *domain.ConditionExpression
	switch {
	case kind == domain.KindNot && len(children) > 1:
		// Multiple children cannot fit Not's single slot: wrap them in a
		// sub-group of the previous mode so no condition is lost.
		sub := &domain.ConditionExpression{Kind: target.Kind, Children: children}
		next = &domain.ConditionExpression{Kind: domain.KindNot, Operand: sub}
	default:
		// Children pass through the uniform list view: And<->Or keep the
		// list, Not<->And/Or adapt between slot and list.
		next, err = condition.WithChildren(&domain.ConditionExpression{Kind: kind}, children)
		if err != nil {
			return err
		}
	}
	return s.commit(path, next, condition.NormalizeOptions{PreserveGroup: true})
}

func (s *Session) reorder(path []int, from, to int) error {
	target, err := s.nodeAt(path)
	if err != nil {
		return err
	}
	children, err := condition.Children(target)
	if err != nil {
		return err
	}
	if from < 0 || from >= len(children) || to < 0 || to >= len(children) {
		return fmt.Errorf("reorder %d -> %d of %d: %w", from, to, len(children), ErrIndexOutOfRange)
	}
	if from == to {
		return nil
	}

	moved := make([]*domain.ConditionExpression, 0, len(children))
	moved = append(moved, children[:from]...)
	moved = append(moved, children[from+1:]...)
	moved = append(moved[:to], append([]*domain.ConditionExpression{children[from]}, moved[to:]...)...)

	next, err := condition.WithChildren(target, moved)
	if err != nil {
		return err
	}
	return s.commit(path, next, condition.NormalizeOptions{PreserveGroup: true})
}

// --- commit pipeline ---

// commit normalizes the proposed subtree at its depth, splices it into
// a fresh root and notifies the host. This is the single write path.
func (s *Session) commit(path []int, proposed *domain.ConditionExpression, opts condition.NormalizeOptions) error {
	normalized := condition.Normalize(len(path), proposed, opts)
	next, err := spliceAt(s.root, path, normalized)
	if err != nil {
		return err
	}
	s.root = next
	s.logger.Debug("condition committed", "depth", len(path), "value", next.String())
	if s.onChange != nil {
		s.onChange(next)
	}
	return nil
}

// nodeAt resolves a path to the node it addresses.
func (s *Session) nodeAt(path []int) (*domain.ConditionExpression, error) {
	node := s.root
	for _, index := range path {
		if node == nil {
			return nil, ErrInvalidPath
		}
		children, err := condition.Children(node)
		if err != nil {
			return nil, fmt.Errorf("path %v: %w", path, ErrInvalidPath)
		}
		if index < 0 || index >= len(children) {
			return nil, fmt.Errorf("path %v: %w", path, ErrInvalidPath)
		}
		node = children[index]
	}
	if node == nil && len(path) > 0 {
		return nil, ErrInvalidPath
	}
	return node, nil
}

// spliceAt rebuilds the spine from the root down to path, replacing the
// addressed node. All untouched subtrees are shared, not copied.
func spliceAt(root *domain.ConditionExpression, path []int, replacement *domain.ConditionExpression) (*domain.ConditionExpression, error) {
	if len(path) == 0 {
		return replacement, nil
	}
	children, err := condition.Children(root)
	if err != nil {
		return nil, fmt.Errorf("splice: %w", err)
	}
	if path[0] < 0 || path[0] >= len(children) {
		return nil, fmt.Errorf("splice: %w", ErrInvalidPath)
	}
	next := make([]*domain.ConditionExpression, len(children))
	copy(next, children)
	next[path[0]], err = spliceAt(children[path[0]], path[1:], replacement)
	if err != nil {
		return nil, err
	}
	return condition.WithChildren(root, next)
}
