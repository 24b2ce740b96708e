package editor

import (
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/aretw0/espalier/pkg/condition"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/dsl"
)

// checkShape walks the tree and fails on any structurally impossible
// node: a Not holding more than one operand cannot be built through the
// model layer, and every group/leaf tag must belong to the closed set.
func checkShape(t *testing.T, expr *domain.ConditionExpression) bool {
	if expr == nil {
		return true
	}
	if !condition.IsGroupKind(expr.Kind) && !condition.IsLeafKind(expr.Kind) {
		t.Errorf("Unknown kind %q", expr.Kind)
		return false
	}
	if expr.Kind == domain.KindNot && len(expr.Children) > 0 {
		t.Errorf("Not carrying a children list: %+v", expr)
		return false
	}
	if condition.ChildCount(expr) > 1 && expr.Kind == domain.KindNot {
		t.Errorf("Not with more than one operand: %+v", expr)
		return false
	}
	children, err := condition.Children(expr)
	if err != nil {
		return true
	}
	for _, child := range children {
		if child == nil {
			t.Error("Nil child inside a group")
			return false
		}
		if !checkShape(t, child) {
			return false
		}
	}
	return true
}

// Random edit sequences: whatever mix of intents is thrown at a
// session, accepted or rejected, the resulting tree stays well formed
// and rejected intents leave it untouched.
func TestProperty_EditSequencesKeepTreeWellFormed(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	genIntent := func(op, a, b int) Intent {
		path := []int{}
		if a%2 == 1 {
			path = []int{a % 3}
		}
		switch op % 8 {
		case 0:
			return AddCondition{Path: path}
		case 1:
			return AddGroup{Path: path}
		case 2:
			return Remove{Path: path}
		case 3:
			kinds := []domain.ConditionKind{domain.KindAnd, domain.KindOr, domain.KindNot}
			return SwitchMode{Path: path, Kind: kinds[b%3]}
		case 4:
			return Reorder{Path: path, From: a % 4, To: b % 4}
		case 5:
			kinds := []domain.ConditionKind{domain.KindComparison, domain.KindScriptRef, domain.KindLiteral}
			return SwitchLeafKind{Path: path, Kind: kinds[b%3]}
		case 6:
			return SetLiteral{Path: path, Value: b%2 == 0}
		default:
			return SetRightText{Path: path, Text: "10"}
		}
	}

	properties.Property("tree stays well formed under random intents", prop.ForAll(
		func(ops []int) bool {
			s, _ := newTestSession(nil)
			for i, op := range ops {
				before := s.Root()
				err := s.Apply(genIntent(op, i, op))
				if s.Pending() != nil {
					if op%2 == 0 {
						if err := s.Confirm(); err != nil {
							return false
						}
					} else {
						if err := s.Cancel(); err != nil {
							return false
						}
						if s.Root() != before {
							t.Error("Cancel changed the tree")
							return false
						}
					}
				}
				if err != nil && s.Root() != before {
					t.Error("Rejected intent changed the tree")
					return false
				}
				if !checkShape(t, s.Root()) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 63)),
	))

	properties.TestingRun(t)
}

// Reordering is a permutation: same multiset of children, new order.
func TestProperty_ReorderIsPermutation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("reorder permutes without loss", prop.ForAll(
		func(n, from, to int) bool {
			if n < 1 {
				n = 1
			}
			children := make([]*domain.ConditionExpression, n)
			ids := make([]string, n)
			for i := range children {
				ids[i] = string(rune('a' + i))
				children[i] = dsl.Script(ids[i])
			}
			s, _ := newTestSession(dsl.And(children...))

			err := s.Apply(Reorder{From: from % n, To: to % n})
			if err != nil {
				return false
			}

			got := make([]string, 0, n)
			for _, child := range s.Root().Children {
				got = append(got, child.ScriptID)
			}
			if len(got) != n {
				return false
			}
			sortedGot := append([]string(nil), got...)
			sortedIDs := append([]string(nil), ids...)
			sort.Strings(sortedGot)
			sort.Strings(sortedIDs)
			for i := range sortedIDs {
				if sortedGot[i] != sortedIDs[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(0, 11),
		gen.IntRange(0, 11),
	))

	properties.TestingRun(t)
}

// The root never persists as an empty group or a single-leaf And after
// a plain (non-preserving) commit path: adding the very first condition
// and every leaf edit go through normalization with defaults.
func TestProperty_FirstAddNeverWrapsInAnd(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("first add commits a bare leaf", prop.ForAll(
		func(asGroup bool) bool {
			s, _ := newTestSession(nil)
			var err error
			if asGroup {
				err = s.Apply(AddGroup{})
			} else {
				err = s.Apply(AddCondition{})
			}
			if err != nil {
				return false
			}
			root := s.Root()
			if asGroup {
				// Explicit group request materializes and is preserved.
				return root != nil && root.Kind == domain.KindAnd
			}
			return root != nil && root.Kind == domain.KindComparison
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}
