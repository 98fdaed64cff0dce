package scopes

import "errors"

var (
	// ErrInvalidScope is returned when a scope is not in "<module>.<action>" form.
	ErrInvalidScope = errors.New("scopes: invalid scope format")
)
