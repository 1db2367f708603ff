package data

import "errors"

// Error kinds returned by table loading and lookups. Callers match them with
// errors.Is; I/O failures wrap the underlying os error instead.
var (
	ErrParse        = errors.New("parse error")
	ErrMissingKey   = errors.New("missing key")
	ErrDivideByZero = errors.New("divide by zero")
)
