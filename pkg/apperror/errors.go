package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
	KindConflict     Kind = "conflict"
	KindStorage      Kind = "storage"
	KindDecode       Kind = "decode"
	KindInternal     Kind = "internal"
)

// AppError represents an application error with a classification kind
type AppError struct {
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrNotFound       = &AppError{Kind: KindNotFound, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Kind: KindInvalidInput, Message: "Bad request"}
	ErrConflict       = &AppError{Kind: KindConflict, Message: "Resource already exists"}
	ErrInternalServer = &AppError{Kind: KindInternal, Message: "Internal error"}
	ErrEmptyCart      = &AppError{Kind: KindInvalidInput, Message: "Cart is empty"}
	ErrAlreadyVoided  = &AppError{Kind: KindConflict, Message: "Transaction is already voided"}
)

// NewAppError creates a new application error
func NewAppError(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Kind:    KindInvalidInput,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates an invalid input error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Kind:    KindInvalidInput,
		Message: message,
	}
}

// NewStorageError wraps a failure of the backing key-value store
func NewStorageError(op string, err error) *AppError {
	return &AppError{
		Kind:    KindStorage,
		Message: fmt.Sprintf("storage %s failed", op),
		Err:     err,
	}
}

// NewDecodeError reports a stored document that could not be decoded or failed validation
func NewDecodeError(key string, err error) *AppError {
	return &AppError{
		Kind:    KindDecode,
		Message: fmt.Sprintf("decode %q failed", key),
		Err:     err,
	}
}

// NewInvalidRecordError reports a record that would not survive being read back
func NewInvalidRecordError(key string, index int, err error) *AppError {
	return &AppError{
		Kind:    KindInvalidInput,
		Message: fmt.Sprintf("record %d of %q is invalid", index, key),
		Err:     err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:    KindInternal,
		Message: err.Error(),
		Err:     err,
	}
}
