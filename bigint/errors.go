package bigint

import "errors"

// Sentinel errors returned by this package, wrapped with context:
// ErrFormat by Parse and ParseRange, ErrDivideByZero by DivideAndRemainder.
var (
	ErrFormat       = errors.New("invalid integer syntax")
	ErrDivideByZero = errors.New("division by zero")
)
