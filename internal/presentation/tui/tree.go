package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/condition"
	"github.com/aretw0/espalier/pkg/domain"
)

// TreeOptions controls the markdown rendering of a condition tree.
type TreeOptions struct {
	Title     string
	Variables []domain.VariableDefinition
	Scripts   []domain.ScriptDefinition

	// Collapsed reports whether the group at the given path is folded.
	// Nil means everything is expanded.
	Collapsed func(path []int) bool
}

// MarkdownTree renders a condition tree as markdown, one bullet per
// node, children indented under their group. Each child carries its
// index so paths can be typed back into the editor prompt. Unhealthy
// references surface inline through the node labels.
func MarkdownTree(expr *domain.ConditionExpression, opts TreeOptions) string {
	var sb strings.Builder
	if opts.Title != "" {
		sb.WriteString("# " + opts.Title + "\n\n")
	}

	if expr == nil {
		sb.WriteString("_No condition set. Always true._\n")
		return sb.String()
	}

	writeNode(&sb, expr, nil, 0, opts)
	return sb.String()
}

func writeNode(sb *strings.Builder, expr *domain.ConditionExpression, path []int, indent int, opts TreeOptions) {
	prefix := strings.Repeat("  ", indent) + "- "
	if len(path) > 0 {
		prefix += fmt.Sprintf("`[%d]` ", path[len(path)-1])
	}

	label := condition.Describe(expr, opts.Variables, opts.Scripts)

	if !condition.IsGroupKind(expr.Kind) {
		sb.WriteString(prefix + label + "\n")
		return
	}

	sb.WriteString(prefix + "**" + label + "**" + groupHint(expr) + "\n")

	if opts.Collapsed != nil && opts.Collapsed(path) {
		sb.WriteString(strings.Repeat("  ", indent+1) + "- …\n")
		return
	}

	children, err := condition.Children(expr)
	if err != nil {
		return
	}
	for i, child := range children {
		childPath := append(append([]int(nil), path...), i)
		writeNode(sb, child, childPath, indent+1, opts)
	}
}

func groupHint(expr *domain.ConditionExpression) string {
	switch expr.Kind {
	case domain.KindAnd, domain.KindOr:
		if len(expr.Children) == 0 {
			return " _(empty: always true)_"
		}
	case domain.KindNot:
		if expr.Operand == nil {
			return " _(empty: always true)_"
		}
	}
	return ""
}
