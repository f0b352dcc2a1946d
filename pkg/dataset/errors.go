package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors covering the whole load-time taxonomy
var (
	ErrFileNotFound   = errors.New("file not found")
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrEmptyResult    = errors.New("empty result")
)

// Error provides structured error information for dataset operations.
type Error struct {
	Op     string // Operation that failed (e.g., "load", "parse")
	File   string // Source file path
	Row    int    // 1-based data row, 0 when not row-specific
	Column string // Column name, empty when not column-specific
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Row > 0 {
		if e.Column != "" {
			return fmt.Sprintf("%s %s (row %d, column %s): %v", e.Op, e.File, e.Row, e.Column, e.Cause)
		}
		return fmt.Sprintf("%s %s (row %d): %v", e.Op, e.File, e.Row, e.Cause)
	}
	if e.Column != "" {
		return fmt.Sprintf("%s %s (column %s): %v", e.Op, e.File, e.Column, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.File, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func notFoundError(file string, cause error) error {
	return &Error{Op: "load", File: file, Cause: fmt.Errorf("%w: %v", ErrFileNotFound, cause)}
}

func loadError(file string, cause error) error {
	return &Error{Op: "load", File: file, Cause: cause}
}

func schemaError(file string, row int, column string, cause error) error {
	return &Error{Op: "parse", File: file, Row: row, Column: column,
		Cause: fmt.Errorf("%w: %v", ErrSchemaMismatch, cause)}
}

func emptyError(file string) error {
	return &Error{Op: "load", File: file, Cause: fmt.Errorf("%w: no data rows", ErrEmptyResult)}
}

// IsNotFound returns true if the error indicates a missing input file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

// IsSchemaMismatch returns true if the error indicates a malformed input table.
func IsSchemaMismatch(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}

// IsEmpty returns true if the error indicates an empty table or selection.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}
