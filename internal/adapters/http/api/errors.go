package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
)

// wrapOp prefixes an error with the handler operation name.
func wrapOp(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
