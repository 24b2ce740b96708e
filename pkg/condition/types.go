package condition

import "github.com/aretw0/espalier/pkg/domain"

// AllowedRightTypes returns the variable types eligible on the right
// side of a comparison, derived from the resolved type of the left
// operand. An unresolved left ("" or unknown) allows every type, so an
// incomplete leaf never locks the user out of the value controls.
func AllowedRightTypes(left domain.VariableType) []domain.VariableType {
	switch left {
	case domain.TypeBoolean:
		return []domain.VariableType{domain.TypeBoolean}
	case domain.TypeInteger, domain.TypeFloat:
		return []domain.VariableType{domain.TypeInteger, domain.TypeFloat}
	case domain.TypeString:
		return []domain.VariableType{domain.TypeString, domain.TypeInteger, domain.TypeFloat, domain.TypeBoolean}
	default:
		return []domain.VariableType{domain.TypeBoolean, domain.TypeInteger, domain.TypeFloat, domain.TypeString}
	}
}

// OperatorsFor returns the operator option set for a comparison whose
// left operand resolves to the given type. Ordering comparisons are
// only offered for numeric operands.
func OperatorsFor(left domain.VariableType) []domain.ComparisonOperator {
	switch left {
	case domain.TypeBoolean, domain.TypeString:
		return domain.EqualityOperators
	default:
		return domain.AllOperators
	}
}

// RightTypeAllowed reports whether candidate is eligible on the right
// side given the left operand's resolved type.
func RightTypeAllowed(left, candidate domain.VariableType) bool {
	for _, t := range AllowedRightTypes(left) {
		if t == candidate {
			return true
		}
	}
	return false
}
