package engine

import "fmt"

// Kind classifies inspector failures.
type Kind int

const (
	// KindFileNotFound reports a missing source file.
	KindFileNotFound Kind = iota
	// KindInvalidFormat reports a path that is not an inspectable data file.
	KindInvalidFormat
	// KindConnection reports a failure opening the database.
	KindConnection
	// KindQuery reports a query that could not be prepared or executed.
	KindQuery
	// KindInvalidColumn reports a column name that failed sanitization.
	KindInvalidColumn
	// KindDatabase covers any other database failure.
	KindDatabase
)

// Error is the failure type returned by all Inspector operations.
type Error struct {
	kind   Kind
	detail string
	err    error
}

func (e *Error) Error() string {
	switch e.kind {
	case KindFileNotFound:
		return "File not found: " + e.detail
	case KindInvalidFormat:
		return "Invalid file format: " + e.detail
	case KindConnection:
		return "Database connection error: " + e.detail
	case KindQuery:
		return "Query execution error: " + e.detail
	case KindInvalidColumn:
		return "Invalid column name: " + e.detail
	default:
		return "Database error: " + e.detail
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.err }

// Kind returns the failure classification.
func (e *Error) Kind() Kind { return e.kind }

func newError(kind Kind, detail string) *Error {
	return &Error{kind: kind, detail: detail}
}

func wrapError(kind Kind, context string, err error) *Error {
	return &Error{kind: kind, detail: fmt.Sprintf("%s: %v", context, err), err: err}
}
