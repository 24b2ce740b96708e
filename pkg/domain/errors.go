package domain

import "errors"

// ErrNotAGroup is returned when a children accessor is applied to a leaf node.
var ErrNotAGroup = errors.New("expression is not a group")

// ErrUnknownKind is returned when decoding an expression with an unrecognized kind tag.
var ErrUnknownKind = errors.New("unknown expression kind")

// ErrDocumentNotFound is returned when a condition document cannot be found in a store.
var ErrDocumentNotFound = errors.New("condition document not found")
