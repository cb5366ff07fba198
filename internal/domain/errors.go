package domain

import (
	"errors"
	"fmt"
)

// Row-level failure causes. A RowParseError always wraps one of these.
var (
	ErrMissingColumn      = errors.New("missing column")
	ErrEmptyAfterCleaning = errors.New("empty after cleaning")
	ErrNotNumeric         = errors.New("not numeric after cleaning")
)

// Resource failure causes. A ResourceError always wraps one of these.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrResourceRead     = errors.New("resource read error")
)

// RowParseError reports why a single row could not become a domain record.
// It is recoverable: aggregation drops the row and moves on.
type RowParseError struct {
	Row    RawRow
	Column string
	Value  string
	Err    error
}

func (e *RowParseError) Error() string {
	if errors.Is(e.Err, ErrMissingColumn) {
		return fmt.Sprintf("missing column '%s'", e.Column)
	}
	return fmt.Sprintf("column '%s': %v: %q", e.Column, e.Err, e.Value)
}

func (e *RowParseError) Unwrap() error { return e.Err }

// Reason returns a short, stable label for the failure cause, suitable for
// metric labels.
func (e *RowParseError) Reason() string {
	switch {
	case errors.Is(e.Err, ErrMissingColumn):
		return "missing_column"
	case errors.Is(e.Err, ErrEmptyAfterCleaning):
		return "empty_after_cleaning"
	case errors.Is(e.Err, ErrNotNumeric):
		return "not_numeric"
	default:
		return "other"
	}
}

// ResourceError reports that a table source could not be opened or read.
// It is fatal for the analysis that needed the table.
type ResourceError struct {
	Source string
	Err    error
	Cause  error
}

func (e *ResourceError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%v: %s", e.Err, e.Source)
	}
	return fmt.Sprintf("%v: %s: %v", e.Err, e.Source, e.Cause)
}

// Unwrap exposes both the classification sentinel and the underlying cause.
func (e *ResourceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
