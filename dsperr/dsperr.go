package dsperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNumericalDegeneracy = errors.New("numerical degeneracy")
)

// Error describes a rejected value.
type Error struct {
	Kind       error
	Name       string
	Value      interface{}
	Constraint string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s = %v: %s", e.Kind, e.Name, e.Value, e.Constraint)
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Parameter reports a configuration value violating constraint.
func Parameter(name string, value interface{}, constraint string) error {
	return &Error{Kind: ErrInvalidParameter, Name: name, Value: value, Constraint: constraint}
}

// Input reports malformed runtime data.
func Input(name string, value interface{}, constraint string) error {
	return &Error{Kind: ErrInvalidInput, Name: name, Value: value, Constraint: constraint}
}

// Degenerate reports a numerical degeneracy that the caller asked not to paper over.
func Degenerate(name string, value interface{}, constraint string) error {
	return &Error{Kind: ErrNumericalDegeneracy, Name: name, Value: value, Constraint: constraint}
}
