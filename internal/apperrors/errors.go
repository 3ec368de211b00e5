package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrTodoNotFound is returned when no todo has the requested id.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrOwnerNotFound is returned when a todo references a user that does not exist.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrUserNotFound is returned when no user has the requested id.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrStoreUnavailable is returned when the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTodoNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TODO_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrOwnerNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OWNER_NOT_FOUND")
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "STORE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
