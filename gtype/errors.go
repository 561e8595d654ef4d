package gtype

import "errors"

// Sentinel errors for the type-resolution failures gtype itself can raise.
// Schema-level errors (unknown type, duplicate declaration, etc.) are
// defined in package schema since gtype has no notion of a declaration
// table.
var (
	// ErrValueMismatch means a value at a tree position does not satisfy
	// its bound: zero terminals in the TypeSet matched it.
	ErrValueMismatch = errors.New("gtype: value does not match schema")

	// ErrAmbiguous means more than one terminal in a TypeSet matched the
	// value.
	ErrAmbiguous = errors.New("gtype: ambiguous resolution")
)
