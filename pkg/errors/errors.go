package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness. Label is the value of
// the "error" field on the wire; Fields, when set, replaces Message as the "message"
// value with a per-field map of validation messages.
type Error struct {
	Label   string              `json:"error"`
	Status  int                 `json:"-"`
	Message string              `json:"message,omitempty"`
	Fields  map[string][]string `json:"-"`
	Err     error               `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Label
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(label string, status int, message string) *Error {
	return &Error{Label: label, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, label string, status int, message string) *Error {
	return &Error{Label: label, Status: status, Message: message, Err: err}
}

// Validation builds a field-level validation error. Login uses 400, registration 422;
// both carry the same label.
func Validation(status int, fields map[string][]string) *Error {
	return &Error{Label: "Validation failed", Status: status, Fields: fields}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("Invalid credentials", http.StatusUnauthorized, "The provided username or email does not match our records.")
	ErrWrongPassword      = New("Invalid credentials", http.StatusUnauthorized, "The password is incorrect.")
	ErrInvalidToken       = New("Invalid token", http.StatusUnauthorized, "The provided refresh token is invalid.")
	ErrUnauthorized       = New("Unauthorized", http.StatusUnauthorized, "You need to log in to access this resource.")
	ErrNotFound           = New("Not found", http.StatusNotFound, "resource not found")
	ErrConflict           = New("Conflict", http.StatusConflict, "conflict")
	ErrServer             = New("Server error", http.StatusInternalServerError, "An error occurred while creating the user. Please try again.")
	ErrInternal           = New("An unexpected error occurred.", http.StatusInternalServerError, "Please try again later.")
)

// Label-less errors render as a bare {"message": ...} body.
var (
	ErrEmailExists     = &Error{Status: http.StatusConflict, Message: "A user with this email already exists."}
	ErrDeviceNotFound  = &Error{Status: http.StatusNotFound, Message: "Device not found"}
	ErrAlreadyAssigned = &Error{Status: http.StatusBadRequest, Message: "Device is already assigned to this user."}
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Label, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
