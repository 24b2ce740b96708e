package condition

import "github.com/aretw0/espalier/pkg/domain"

// RefStatus classifies the health of a weak reference.
type RefStatus string

const (
	// RefOK: the referenced definition exists and is live.
	RefOK RefStatus = "ok"
	// RefMissing: the id is not present in the supplied set (hard-deleted).
	RefMissing RefStatus = "missing"
	// RefMarked: the definition exists but is flagged for deletion.
	RefMarked RefStatus = "marked"
)

// RefKind names the referenced collection.
type RefKind string

const (
	RefVariable RefKind = "variable"
	RefScript   RefKind = "script"
)

// RefWarning reports one unhealthy reference found in a tree.
// Warnings are advisory: the stale id stays in the tree until the user
// explicitly changes the selector.
type RefWarning struct {
	Path   []int     `json:"path"`
	Kind   RefKind   `json:"kind"`
	ID     string    `json:"id"`
	Status RefStatus `json:"status"`
}

// ResolveVariable looks up a variable id in the visible set.
func ResolveVariable(vars []domain.VariableDefinition, id string) (*domain.VariableDefinition, RefStatus) {
	for i := range vars {
		if vars[i].ID == id {
			if vars[i].MarkedForDelete {
				return &vars[i], RefMarked
			}
			return &vars[i], RefOK
		}
	}
	return nil, RefMissing
}

// ResolveScript looks up a script id in the supplied condition-script set.
func ResolveScript(scripts []domain.ScriptDefinition, id string) (*domain.ScriptDefinition, RefStatus) {
	for i := range scripts {
		if scripts[i].ID == id {
			if scripts[i].MarkedForDelete {
				return &scripts[i], RefMarked
			}
			return &scripts[i], RefOK
		}
	}
	return nil, RefMissing
}

// Inspect walks the tree and reports every dangling or soft-deleted
// reference. Unset ids (an incomplete comparison) are not reported:
// incompleteness is transient editing state, not a broken link.
func Inspect(expr *domain.ConditionExpression, vars []domain.VariableDefinition, scripts []domain.ScriptDefinition) []RefWarning {
	var warnings []RefWarning
	inspect(expr, nil, vars, scripts, &warnings)
	return warnings
}

func inspect(expr *domain.ConditionExpression, path []int, vars []domain.VariableDefinition, scripts []domain.ScriptDefinition, out *[]RefWarning) {
	if expr == nil {
		return
	}
	if IsGroupKind(expr.Kind) {
		children, err := Children(expr)
		if err != nil {
			return
		}
		for i, child := range children {
			childPath := append(append([]int(nil), path...), i)
			inspect(child, childPath, vars, scripts, out)
		}
		return
	}

	switch expr.Kind {
	case domain.KindComparison:
		if expr.Left != nil && expr.Left.VariableID != "" {
			if _, status := ResolveVariable(vars, expr.Left.VariableID); status != RefOK {
				*out = append(*out, RefWarning{Path: path, Kind: RefVariable, ID: expr.Left.VariableID, Status: status})
			}
		}
		if expr.Right != nil && expr.Right.Kind == domain.SourceVariable &&
			expr.Right.Variable != nil && expr.Right.Variable.VariableID != "" {
			if _, status := ResolveVariable(vars, expr.Right.Variable.VariableID); status != RefOK {
				*out = append(*out, RefWarning{Path: path, Kind: RefVariable, ID: expr.Right.Variable.VariableID, Status: status})
			}
		}
	case domain.KindScriptRef:
		if expr.ScriptID != "" {
			if _, status := ResolveScript(scripts, expr.ScriptID); status != RefOK {
				*out = append(*out, RefWarning{Path: path, Kind: RefScript, ID: expr.ScriptID, Status: status})
			}
		}
	}
}
