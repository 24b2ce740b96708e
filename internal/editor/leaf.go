package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/espalier/pkg/condition"
	"github.com/aretw0/espalier/pkg/domain"
)

// leafAt resolves a path to a leaf, healing partial comparisons so no
// edit ever observes a half-built node.
func (s *Session) leafAt(path []int) (*domain.ConditionExpression, error) {
	target, err := s.nodeAt(path)
	if err != nil {
		return nil, err
	}
	if !condition.IsLeafKind(target.Kind) {
		return nil, fmt.Errorf("at %v: %w", path, ErrNotALeaf)
	}
	return condition.Heal(target), nil
}

// leftType resolves the declared type of a comparison's left operand.
// Unset or dangling left yields "", which relaxes every constraint.
func (s *Session) leftType(leaf *domain.ConditionExpression) domain.VariableType {
	if leaf.Left == nil || leaf.Left.VariableID == "" {
		return ""
	}
	def, status := condition.ResolveVariable(s.vars, leaf.Left.VariableID)
	if status == condition.RefMissing {
		return ""
	}
	return def.Type
}

// OperatorOptions returns the operator set offered for the leaf at path,
// derived from its left operand's resolved type.
func (s *Session) OperatorOptions(path []int) ([]domain.ComparisonOperator, error) {
	leaf, err := s.leafAt(path)
	if err != nil {
		return nil, err
	}
	if leaf.Kind != domain.KindComparison {
		return nil, fmt.Errorf("at %v: not a comparison", path)
	}
	return condition.OperatorsFor(s.leftType(leaf)), nil
}

func (s *Session) switchLeafKind(path []int, kind domain.ConditionKind) error {
	leaf, err := s.leafAt(path)
	if err != nil {
		return err
	}
	if leaf.Kind == kind {
		return nil
	}

	// The replacement is always a complete default of the target kind,
	// never a transitional value with missing fields.
	var next *domain.ConditionExpression
	switch kind {
	case domain.KindComparison:
		next = condition.NewComparison()
	case domain.KindScriptRef:
		next = condition.NewScriptRef("")
	case domain.KindLiteral:
		next = condition.NewLiteral(true)
	default:
		return fmt.Errorf("switch leaf to %q: %w", kind, domain.ErrUnknownKind)
	}
	return s.commit(path, next, condition.NormalizeOptions{})
}

func (s *Session) setOperator(path []int, op domain.ComparisonOperator) error {
	leaf, err := s.comparisonAt(path)
	if err != nil {
		return err
	}
	if !operatorAllowed(op, condition.OperatorsFor(s.leftType(leaf))) {
		return fmt.Errorf("operator %q: %w", op, ErrOperatorNotAllowed)
	}
	next := condition.Clone(leaf)
	next.Operator = op
	return s.commit(path, next, condition.NormalizeOptions{})
}

func (s *Session) setLeft(path []int, ref domain.VariableRef) error {
	leaf, err := s.comparisonAt(path)
	if err != nil {
		return err
	}

	next := condition.Clone(leaf)
	next.Left = &ref

	// The left type governs operator and right-operand legality; reset
	// anything the new type no longer permits back to a safe default.
	newType := s.leftType(next)
	if !operatorAllowed(next.Operator, condition.OperatorsFor(newType)) {
		next.Operator = domain.OpEqual
	}
	if !s.rightAllowed(next.Right, newType) {
		fallback := domain.NewConstant(defaultConstant(newType))
		next.Right = &fallback
	}
	return s.commit(path, next, condition.NormalizeOptions{})
}

func (s *Session) setRight(path []int, source domain.ValueSource) error {
	leaf, err := s.comparisonAt(path)
	if err != nil {
		return err
	}
	if !s.rightAllowed(&source, s.leftType(leaf)) {
		return fmt.Errorf("right operand: %w", ErrTypeMismatch)
	}
	next := condition.Clone(leaf)
	next.Right = &source
	return s.commit(path, next, condition.NormalizeOptions{})
}

func (s *Session) setRightText(path []int, text string) error {
	leaf, err := s.comparisonAt(path)
	if err != nil {
		return err
	}
	value, err := ParseConstant(s.leftType(leaf), text)
	if err != nil {
		// Malformed input never commits; the previous value stands.
		return err
	}
	source := domain.NewConstant(value)
	next := condition.Clone(leaf)
	next.Right = &source
	return s.commit(path, next, condition.NormalizeOptions{})
}

func (s *Session) setScript(path []int, scriptID string) error {
	leaf, err := s.leafAt(path)
	if err != nil {
		return err
	}
	if leaf.Kind != domain.KindScriptRef {
		return fmt.Errorf("at %v: not a script reference", path)
	}
	return s.commit(path, condition.NewScriptRef(scriptID), condition.NormalizeOptions{})
}

func (s *Session) setLiteral(path []int, value bool) error {
	leaf, err := s.leafAt(path)
	if err != nil {
		return err
	}
	if leaf.Kind != domain.KindLiteral {
		return fmt.Errorf("at %v: not a literal", path)
	}
	return s.commit(path, condition.NewLiteral(value), condition.NormalizeOptions{})
}

func (s *Session) comparisonAt(path []int) (*domain.ConditionExpression, error) {
	leaf, err := s.leafAt(path)
	if err != nil {
		return nil, err
	}
	if leaf.Kind != domain.KindComparison {
		return nil, fmt.Errorf("at %v: not a comparison", path)
	}
	return leaf, nil
}

// rightAllowed checks a right operand against the left type's allowed
// set: variable references by declared type, constants by dynamic type.
// Unresolvable references pass; dangling is a warning, not a blocker.
func (s *Session) rightAllowed(right *domain.ValueSource, left domain.VariableType) bool {
	if right == nil || left == "" {
		return true
	}
	switch right.Kind {
	case domain.SourceVariable:
		if right.Variable == nil || right.Variable.VariableID == "" {
			return true
		}
		def, status := condition.ResolveVariable(s.vars, right.Variable.VariableID)
		if status == condition.RefMissing {
			return true
		}
		return condition.RightTypeAllowed(left, def.Type)
	case domain.SourceConstant:
		return constantTypeAllowed(left, right.Value)
	default:
		return true
	}
}

func constantTypeAllowed(left domain.VariableType, value any) bool {
	switch left {
	case domain.TypeBoolean:
		_, ok := value.(bool)
		return ok
	case domain.TypeInteger, domain.TypeFloat:
		switch value.(type) {
		case int, int32, int64, float32, float64:
			return true
		default:
			return false
		}
	default:
		// Strings compare against anything renderable.
		return true
	}
}

func operatorAllowed(op domain.ComparisonOperator, allowed []domain.ComparisonOperator) bool {
	for _, candidate := range allowed {
		if op == candidate {
			return true
		}
	}
	return false
}

// ParseConstant parses raw text input as a constant of the expected
// type. It is the single gate between free-form input and committed
// values: anything it rejects never reaches the tree.
func ParseConstant(expected domain.VariableType, text string) (any, error) {
	switch expected {
	case domain.TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, fmt.Errorf("%q as boolean: %w", text, ErrInvalidConstant)
		}
	case domain.TypeInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q as integer: %w", text, ErrInvalidConstant)
		}
		return n, nil
	case domain.TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, fmt.Errorf("%q as float: %w", text, ErrInvalidConstant)
		}
		return f, nil
	default:
		// String or unresolved left: text passes through verbatim.
		return text, nil
	}
}

// defaultConstant is the zero value rendered for a freshly reset right
// operand of the given type.
func defaultConstant(t domain.VariableType) any {
	switch t {
	case domain.TypeBoolean:
		return false
	case domain.TypeInteger:
		return int64(0)
	case domain.TypeFloat:
		return float64(0)
	default:
		return ""
	}
}
