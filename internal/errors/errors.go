package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error.
type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindNotFound           Kind = "NOT_FOUND"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindConflict           Kind = "CONFLICT"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindInternal           Kind = "INTERNAL_ERROR"
)

// Error is a domain error carrying a human readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind. A target with a message must match it too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

var (
	// ErrValidation matches every validation failure.
	ErrValidation = &Error{Kind: KindValidation}
	// ErrNotFound matches every missing or soft-deleted row.
	ErrNotFound = &Error{Kind: KindNotFound}
	// ErrUnauthorized matches every failed role or ownership check.
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	// ErrConflict matches every unique constraint violation.
	ErrConflict = &Error{Kind: KindConflict}

	// ErrInvalidCredentials is returned for any login failure.
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "Invalid credentials"}
	// ErrEmailAlreadyExists is returned when the email is taken.
	ErrEmailAlreadyExists = &Error{Kind: KindConflict, Message: "Email already registered"}
	// ErrPhoneAlreadyExists is returned when the phone number is taken.
	ErrPhoneAlreadyExists = &Error{Kind: KindConflict, Message: "Phone already registered"}
	// ErrNotAnOwner is returned when a manager is provisioned by a non-owner.
	ErrNotAnOwner = &Error{Kind: KindUnauthorized, Message: "Only restaurant owners can create managers"}
	// ErrRestaurantNotOwned is returned when an owner assigns a restaurant they do not own.
	ErrRestaurantNotOwned = &Error{Kind: KindUnauthorized, Message: "You do not own this restaurant"}
	// ErrOwnerNotFound is returned when a restaurant owner uid does not resolve.
	ErrOwnerNotFound = &Error{Kind: KindNotFound, Message: "Owner not found"}
)

// Validation builds a validation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound builds a not found error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Unauthorized builds an authorization error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Conflict builds a conflict error wrapping the store failure.
func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

// KindOf returns the kind of the first domain error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsDomain reports whether err carries a domain error.
func IsDomain(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Handlers answer with
// envelopes; this mapping only serves errors that escape a handler.
func MapErrorToHTTP(err error) *HTTPError {
	var e *Error
	if !errors.As(err, &e) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", string(KindInternal))
	}
	switch e.Kind {
	case KindValidation:
		return NewHTTPError(http.StatusBadRequest, e.Error(), string(e.Kind))
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, e.Error(), string(e.Kind))
	case KindUnauthorized:
		return NewHTTPError(http.StatusForbidden, e.Error(), string(e.Kind))
	case KindConflict:
		return NewHTTPError(http.StatusConflict, e.Error(), string(e.Kind))
	case KindInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, e.Error(), string(e.Kind))
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", string(KindInternal))
	}
}
