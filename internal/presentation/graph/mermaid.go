package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/espalier/pkg/condition"
	"github.com/aretw0/espalier/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart syntax string for a
// condition tree. It applies semantic styling:
// - And/Or groups: {{Hexagon}}
// - Not: [[Subroutine]]
// - Leaves: [Rectangle]
// Nodes holding an unhealthy reference get a warn style.
func GenerateMermaid(expr *domain.ConditionExpression, vars []domain.VariableDefinition, scripts []domain.ScriptDefinition) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	if expr == nil {
		sb.WriteString("    root[\"always true\"]\n")
		return sb.String()
	}

	warnIDs := make(map[string]bool)
	for _, w := range condition.Inspect(expr, vars, scripts) {
		warnIDs[mermaidID(w.Path)] = true
	}

	writeNode(&sb, expr, nil, vars, scripts)

	if len(warnIDs) > 0 {
		sb.WriteString("\n    %% Reference Warnings\n")
		sb.WriteString("    classDef warn fill:#fff3e0,stroke:#e65100,stroke-width:2px,color:#000;\n")
		for _, id := range sortedKeys(warnIDs) {
			sb.WriteString(fmt.Sprintf("    class %s warn;\n", id))
		}
	}

	return sb.String()
}

func writeNode(sb *strings.Builder, expr *domain.ConditionExpression, path []int, vars []domain.VariableDefinition, scripts []domain.ScriptDefinition) {
	id := mermaidID(path)
	label := escapeMermaidLabel(condition.Describe(expr, vars, scripts))

	opener, closer := "[", "]"
	switch expr.Kind {
	case domain.KindAnd, domain.KindOr:
		opener, closer = "{{", "}}"
	case domain.KindNot:
		opener, closer = "[[", "]]"
	}
	sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))

	if !condition.IsGroupKind(expr.Kind) {
		return
	}

	children, err := condition.Children(expr)
	if err != nil {
		return
	}
	for i, child := range children {
		childPath := append(append([]int(nil), path...), i)
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, mermaidID(childPath)))
		writeNode(sb, child, childPath, vars, scripts)
	}
}

func mermaidID(path []int) string {
	if len(path) == 0 {
		return "root"
	}
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return "n_" + strings.Join(parts, "_")
}

func escapeMermaidLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
