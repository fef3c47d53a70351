package apperror

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation Code = "validation"
	CodeNotFound   Code = "not_found"
	CodeConflict   Code = "conflict"
	CodeStorage    Code = "storage"
	CodeInternal   Code = "internal"
)

// Error is the application error carried between service and handler layers.
// Fields is populated only for validation errors and maps field names to
// human-readable messages.
type Error struct {
	Code    Code
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

func Validation(fields map[string][]string) *Error {
	return &Error{Code: CodeValidation, Message: "The given data was invalid", Fields: fields}
}

func ValidationField(field, message string) *Error {
	return Validation(map[string][]string{field: {message}})
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

func Storage(err error) *Error {
	return &Error{Code: CodeStorage, Message: "file storage operation failed", Err: err}
}

// GetCode extracts the application error code, defaulting to internal for
// unclassified errors.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// FieldErrors returns the per-field validation messages attached to err,
// or nil when err carries none.
func FieldErrors(err error) map[string][]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
