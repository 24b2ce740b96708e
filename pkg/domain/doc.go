/*
Package domain contains the core value types of the Espalier condition model.

These types are plain data: the recursive ConditionExpression tree, the
ValueSource union used for comparison operands and parameter bindings, and
the variable/script definitions the host supplies for reference resolution.

All structural logic (normalization, child accessors, integrity checks)
lives in pkg/condition; this package only defines the shapes and their
serialization.
*/
package domain
