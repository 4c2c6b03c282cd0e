package catppuccinifier

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPalette    = errors.New("catppuccinifier: empty palette")
	ErrInvalidResolution = errors.New("catppuccinifier: invalid hald level")
	ErrInvalidParameter  = errors.New("catppuccinifier: invalid parameter")
	ErrEmptyImage        = errors.New("catppuccinifier: empty image")
)

// ParameterError reports an Options field rejected by Validate.
type ParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("catppuccinifier: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }
