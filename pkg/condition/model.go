package condition

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

// IsGroupKind reports whether kind is a logic combinator (And/Or/Not).
func IsGroupKind(kind domain.ConditionKind) bool {
	switch kind {
	case domain.KindAnd, domain.KindOr, domain.KindNot:
		return true
	default:
		return false
	}
}

// IsLeafKind is the complement of IsGroupKind over the closed kind set.
func IsLeafKind(kind domain.ConditionKind) bool {
	switch kind {
	case domain.KindComparison, domain.KindScriptRef, domain.KindLiteral:
		return true
	default:
		return false
	}
}

// Children returns a uniform list view over a group's children.
// And/Or return their child list; Not returns a list of length zero or
// one wrapping its operand. Calling Children on a leaf is a programming
// error and returns domain.ErrNotAGroup.
func Children(expr *domain.ConditionExpression) ([]*domain.ConditionExpression, error) {
	if expr == nil {
		return nil, fmt.Errorf("nil expression: %w", domain.ErrNotAGroup)
	}
	switch expr.Kind {
	case domain.KindAnd, domain.KindOr:
		return expr.Children, nil
	case domain.KindNot:
		if expr.Operand == nil {
			return nil, nil
		}
		return []*domain.ConditionExpression{expr.Operand}, nil
	default:
		return nil, fmt.Errorf("%s: %w", expr.Kind, domain.ErrNotAGroup)
	}
}

// WithChildren returns a new group with the same kind and the given
// children. For Not, only the first element is kept as the operand;
// extra elements are dropped by contract (Not is capacity-1, and the
// uniform list view is the single place this adaptation happens).
func WithChildren(expr *domain.ConditionExpression, children []*domain.ConditionExpression) (*domain.ConditionExpression, error) {
	if expr == nil {
		return nil, fmt.Errorf("nil expression: %w", domain.ErrNotAGroup)
	}
	switch expr.Kind {
	case domain.KindAnd, domain.KindOr:
		return &domain.ConditionExpression{Kind: expr.Kind, Children: children}, nil
	case domain.KindNot:
		next := &domain.ConditionExpression{Kind: domain.KindNot}
		if len(children) > 0 {
			next.Operand = children[0]
		}
		return next, nil
	default:
		return nil, fmt.Errorf("%s: %w", expr.Kind, domain.ErrNotAGroup)
	}
}

// CanAddChild reports whether a group can accept another child.
// And/Or are unbounded; Not accepts a child only while its operand slot
// is empty. Leaves never accept children.
func CanAddChild(expr *domain.ConditionExpression) bool {
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case domain.KindAnd, domain.KindOr:
		return true
	case domain.KindNot:
		return expr.Operand == nil
	default:
		return false
	}
}

// ChildCount returns the number of children, defined as 0 for leaves.
func ChildCount(expr *domain.ConditionExpression) int {
	children, err := Children(expr)
	if err != nil {
		return 0
	}
	return len(children)
}

// CountGroupContent counts every node in the subtree below expr,
// excluding expr itself. It drives the delete-confirmation rule: a
// group with content requires explicit confirmation before removal.
func CountGroupContent(expr *domain.ConditionExpression) int {
	children, err := Children(expr)
	if err != nil {
		return 0
	}
	count := 0
	for _, child := range children {
		count += 1 + CountGroupContent(child)
	}
	return count
}

// NewComparison returns a default comparison leaf: unset left side,
// equality operator, empty-string constant right side. Factory-built
// leaves are always fully populated so no consumer ever observes a
// partial comparison.
func NewComparison() *domain.ConditionExpression {
	right := domain.NewConstant("")
	return &domain.ConditionExpression{
		Kind:     domain.KindComparison,
		Operator: domain.OpEqual,
		Right:    &right,
	}
}

// NewScriptRef returns a script-reference leaf.
func NewScriptRef(scriptID string) *domain.ConditionExpression {
	return &domain.ConditionExpression{Kind: domain.KindScriptRef, ScriptID: scriptID}
}

// NewLiteral returns a boolean literal leaf.
func NewLiteral(value bool) *domain.ConditionExpression {
	return &domain.ConditionExpression{Kind: domain.KindLiteral, Value: value}
}

// NewGroup returns an empty group of the given kind.
// Non-group kinds fall back to an empty And, keeping callers total.
func NewGroup(kind domain.ConditionKind) *domain.ConditionExpression {
	if !IsGroupKind(kind) {
		kind = domain.KindAnd
	}
	return &domain.ConditionExpression{Kind: kind, Children: []*domain.ConditionExpression{}}
}

// Clone returns a deep copy of the expression. Edits operate on copies
// so the host's value is never mutated in place.
func Clone(expr *domain.ConditionExpression) *domain.ConditionExpression {
	if expr == nil {
		return nil
	}
	next := *expr
	if expr.Children != nil {
		next.Children = make([]*domain.ConditionExpression, len(expr.Children))
		for i, child := range expr.Children {
			next.Children[i] = Clone(child)
		}
	}
	next.Operand = Clone(expr.Operand)
	if expr.Left != nil {
		left := *expr.Left
		next.Left = &left
	}
	if expr.Right != nil {
		right := *expr.Right
		if expr.Right.Variable != nil {
			ref := *expr.Right.Variable
			right.Variable = &ref
		}
		next.Right = &right
	}
	return &next
}

// Heal fills in any missing required fields of a comparison leaf.
// A leaf can only be partial when produced by an external document;
// every factory and edit path in this module emits complete leaves.
func Heal(expr *domain.ConditionExpression) *domain.ConditionExpression {
	if expr == nil || expr.Kind != domain.KindComparison {
		return expr
	}
	if expr.Operator != "" && expr.Right != nil {
		return expr
	}
	next := Clone(expr)
	if next.Operator == "" {
		next.Operator = domain.OpEqual
	}
	if next.Right == nil {
		right := domain.NewConstant("")
		next.Right = &right
	}
	return next
}
