package model

import (
	"errors"
)

// Sentinel error kinds shared by the domain packages. These allow
// errors.Is/As from callers; none of them is ever recovered from
// internally, the caller decides whether to re-prompt or abort.
var (
	// ErrInvalidParameter marks a non-positive period, radius ratio or
	// width factor, or otherwise malformed numeric input.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrShapeMismatch marks paired sequences of unequal length.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrEmptyInput marks a zero-length series, distinct from
	// ErrShapeMismatch so callers can tell "no data" from "bad data".
	ErrEmptyInput = errors.New("empty input")
)
