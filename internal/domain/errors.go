package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying calculation failures with errors.Is.
var (
	// ErrInvalidInput marks malformed or out-of-range package fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfig marks an internally inconsistent fiscal-year configuration.
	// The engine refuses to compute against a snapshot that reports this.
	ErrConfig = errors.New("fiscal configuration error")

	// ErrUnsupportedCombination marks field combinations that are
	// structurally disallowed, such as payroll-only benefits requested
	// under the simplified regime.
	ErrUnsupportedCombination = errors.New("unsupported combination")
)

// InputError reports a problem with a specific package field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// NewInputError creates an InputError for the given field.
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

// ConfigError reports an inconsistency in a fiscal-year table.
type ConfigError struct {
	Table  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("fiscal configuration error: %s: %s", e.Table, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// NewConfigError creates a ConfigError for the given table.
func NewConfigError(table, reason string) *ConfigError {
	return &ConfigError{Table: table, Reason: reason}
}

// CombinationError reports a structurally disallowed field combination.
type CombinationError struct {
	Field  string
	Reason string
}

func (e *CombinationError) Error() string {
	return fmt.Sprintf("unsupported combination: %s: %s", e.Field, e.Reason)
}

func (e *CombinationError) Unwrap() error { return ErrUnsupportedCombination }

// NewCombinationError creates a CombinationError for the given field.
func NewCombinationError(field, reason string) *CombinationError {
	return &CombinationError{Field: field, Reason: reason}
}
