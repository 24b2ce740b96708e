package editor

import "errors"

// ErrReadOnly is returned for mutating intents when the session was
// created without a change callback.
var ErrReadOnly = errors.New("editor session is read-only")

// ErrConfirmationPending is returned when a mutating intent arrives
// while a delete confirmation is waiting for an answer.
var ErrConfirmationPending = errors.New("delete confirmation pending")

// ErrNoPendingDelete is returned by Confirm/Cancel when nothing is pending.
var ErrNoPendingDelete = errors.New("no delete confirmation pending")

// ErrInvalidPath is returned when an intent addresses a node that does
// not exist in the current tree.
var ErrInvalidPath = errors.New("path does not address a node")

// ErrNotALeaf is returned when a leaf intent addresses a group node.
var ErrNotALeaf = errors.New("expression is not a leaf")

// ErrGroupFull is returned when adding a child to a group at capacity
// (a Not whose operand slot is occupied).
var ErrGroupFull = errors.New("group cannot accept another child")

// ErrIndexOutOfRange is returned for child indices outside the list.
var ErrIndexOutOfRange = errors.New("child index out of range")

// ErrInvalidConstant is returned when raw constant input cannot be
// parsed as the expected type. The previous committed value is kept.
var ErrInvalidConstant = errors.New("constant input does not match expected type")

// ErrTypeMismatch is returned when a right operand's type is not
// allowed for the comparison's left operand.
var ErrTypeMismatch = errors.New("operand type not allowed for this comparison")

// ErrOperatorNotAllowed is returned when an operator outside the option
// set for the left operand's type is requested.
var ErrOperatorNotAllowed = errors.New("operator not allowed for this operand type")
