package parsererror

import (
	"errors"
	"fmt"
)

// RowErrorKind classifies why an imported CSV row was skipped.
type RowErrorKind string

const (
	InsufficientColumns RowErrorKind = "insufficient_columns"
	InvalidDate         RowErrorKind = "invalid_date"
	InvalidAmount       RowErrorKind = "invalid_amount"
)

// Sentinels for errors.Is on a RowParseError.
var (
	ErrInsufficientColumns = errors.New("insufficient columns")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidAmount       = errors.New("invalid amount")
)

// RowParseError describes one CSV row that could not be imported. It is
// always local to its row: the import counts it and moves on.
type RowParseError struct {
	Line  int
	Kind  RowErrorKind
	Value string
	Err   error
}

func (e *RowParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s '%s': %v", e.Line, e.Kind, e.Value, e.Err)
	}
	return fmt.Sprintf("line %d: %s '%s'", e.Line, e.Kind, e.Value)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *RowParseError) Is(target error) bool {
	switch e.Kind {
	case InsufficientColumns:
		return target == ErrInsufficientColumns
	case InvalidDate:
		return target == ErrInvalidDate
	case InvalidAmount:
		return target == ErrInvalidAmount
	}
	return false
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}
