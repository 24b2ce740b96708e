/*
Package espalier is an embeddable editor for the boolean condition trees
of a visual game/narrative authoring tool: AND/OR/NOT groups over
comparison, script-reference and literal leaves, with the structural
normalization rules such trees need to stay well-formed while a user
drags, adds, retypes and deletes nodes.

The host application owns the condition value: it hands the editor the
current tree (nil means "no condition - always true") together with the
variable and script sets visible in the editing context, and receives a
new tree through a single change callback after every edit. The editor
never mutates its inputs in place.

# Key Features

  - Uniform child access across group kinds: Not's single operand slot is
    adapted to a list view in one place, so editing code never special-cases it.
  - Root normalization: empty root groups collapse to "always true" and a
    root AND wrapping one leaf unwraps to the bare leaf, unless the edit
    explicitly preserves the group mid-structure.
  - Guarded deletes: removing a group with content requires confirmation,
    reported with the exact descendant count.
  - Weak references: variables and scripts are referenced by id; dangling
    or soft-deleted targets are inline warnings, never editing failures.

# Usage

	package main

	import (
		"fmt"

		"github.com/aretw0/espalier"
		"github.com/aretw0/espalier/pkg/domain"
	)

	func main() {
		vars := []domain.VariableDefinition{
			{ID: "hp", Name: "Health", Type: domain.TypeInteger, Scope: domain.ScopeGlobal},
		}

		var current *domain.ConditionExpression
		ed := espalier.New(nil,
			espalier.WithVariables(vars),
			espalier.WithOnChange(func(next *domain.ConditionExpression) {
				current = next
			}),
		)

		// First condition commits as a bare leaf, not wrapped in a group.
		if err := ed.AddCondition(nil); err != nil {
			panic(err)
		}
		if err := ed.SetLeft(nil, domain.VariableRef{VariableID: "hp", Scope: domain.ScopeGlobal}); err != nil {
			panic(err)
		}
		if err := ed.SetRightText(nil, "10"); err != nil {
			panic(err)
		}

		fmt.Println(current)
	}
*/
package espalier
