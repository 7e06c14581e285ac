package core

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is wrapped by every rejection of a parameter value,
// an unknown parameter name or a malformed color.
var ErrInvalidParameter = errors.New("invalid parameter")

type ParameterError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(name string, value any, reason string) error {
	return &ParameterError{Name: name, Value: value, Reason: reason}
}
