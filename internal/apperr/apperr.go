// Package apperr defines the closed set of error kinds that cross layer boundaries.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindStorage
	KindCancelled
	KindUnknownCommand
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	case KindCancelled:
		return "cancelled"
	case KindUnknownCommand:
		return "unknown command"
	}
	return "unknown"
}

// Error is a classified failure. Op names the operation that failed, Field the
// offending input for validation failures.
type Error struct {
	Kind    Kind
	Op      string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Field, e.Message, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports an invalid entity field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Storage wraps an engine or row-mapping failure with the operation name.
// An error that is already a storage error for the same op is returned as is.
func Storage(op string, err error) *Error {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindStorage && e.Op == op {
		return e
	}
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// Cancelled reports a user-initiated abort of op.
func Cancelled(op string, err error) *Error {
	return &Error{Kind: KindCancelled, Op: op, Message: "canceled by user", Err: err}
}

// UnknownCommand reports an unrecognised CLI invocation.
func UnknownCommand(detail string) *Error {
	return &Error{Kind: KindUnknownCommand, Message: detail}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// FieldOf returns the field named by the first validation error in err's
// chain, looking through storage wrappers.
func FieldOf(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}
		if e.Kind == KindValidation {
			return e.Field
		}
		err = e.Err
	}
	return ""
}
