/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing condition trees.

It allows developers to define nested boolean expressions using type-safe, composable
helpers instead of hand-assembling domain structs or relying on external JSON/YAML
files. This is particularly useful for seeding projects, unit testing, and leveraging
IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/espalier/pkg/dsl"
		"github.com/aretw0/espalier/pkg/domain"
	)

	func main() {
		expr := dsl.And(
			dsl.Var("hp", domain.ScopeGlobal).GreaterThan(dsl.Int(10)),
			dsl.Or(
				dsl.Script("is-night"),
				dsl.Not(dsl.Var("has-key", domain.ScopeStage).Equals(dsl.Bool(true))),
			),
		)

		// The resulting tree can be edited, persisted, or rendered.
		_ = expr
	}
*/
package dsl
