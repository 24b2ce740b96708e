package condition

import "github.com/aretw0/espalier/pkg/domain"

// NormalizeOptions tunes a single normalization pass.
type NormalizeOptions struct {
	// PreserveGroup suppresses root-level collapse and unwrap for this
	// commit. Callers set it for explicit structural edits (mode switch,
	// add against a materialized root, child removal, reorder) so a
	// group the user is actively shaping never silently vanishes.
	PreserveGroup bool
}

// Normalize decides the committed value for a proposed subtree edited at
// the given depth. The root relaxations (empty group collapses to nil,
// single-leaf And unwraps to the bare leaf) apply only at depth 0;
// non-root subtrees commit verbatim, because empty and singleton groups
// are legal editing states everywhere below the root.
func Normalize(depth int, proposed *domain.ConditionExpression, opts NormalizeOptions) *domain.ConditionExpression {
	if depth > 0 || proposed == nil {
		return proposed
	}
	if IsLeafKind(proposed.Kind) {
		return proposed
	}
	if opts.PreserveGroup {
		return proposed
	}

	switch ChildCount(proposed) {
	case 0:
		// Root group with nothing in it means "always true".
		return nil
	case 1:
		// A root And wrapping exactly one leaf is redundant; persist the
		// bare leaf. Or/Not singletons are kept: their tag is an explicit
		// user choice, not an artifact of population.
		if proposed.Kind == domain.KindAnd {
			children, err := Children(proposed)
			if err == nil && IsLeafKind(children[0].Kind) {
				return children[0]
			}
		}
	}
	return proposed
}
