/*
Package condition implements the structural operations of the
condition-expression tree: uniform child access across group kinds,
normalization of root-level edits, type compatibility between comparison
operands, and referential-integrity inspection against the live
variable/script sets.

Every function here is pure: expressions are treated as immutable values
and operations return new trees, leaving their inputs untouched. The
interactive editing layer (internal/editor) composes these primitives;
hosts embedding their own UI can call them directly.
*/
package condition
