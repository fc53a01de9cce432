package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrFeedbackNotFound is returned when a feedback post does not exist.
	ErrFeedbackNotFound = errors.New("feedback not found")
	// ErrUniquenessConflict is returned when a unique column would be duplicated.
	ErrUniquenessConflict = errors.New("uniqueness conflict")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = fmt.Errorf("%w: username taken", ErrUniquenessConflict)
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = fmt.Errorf("%w: email already registered", ErrUniquenessConflict)
	// ErrAuthenticationFailed is returned when login credentials do not match.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrInvalidUsername is returned when no user has the given username.
	ErrInvalidUsername = fmt.Errorf("%w: invalid username", ErrAuthenticationFailed)
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = fmt.Errorf("%w: invalid password", ErrAuthenticationFailed)
	// ErrAuthorizationDenied is returned when the acting user may not touch a resource.
	ErrAuthorizationDenied = errors.New("you don't have permission to do that")
	// ErrNotAuthenticated is returned when an action needs a logged-in user.
	ErrNotAuthenticated = errors.New("please log in first")
)

// ValidationError carries per-field form validation messages.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a validation error from field messages.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error    string            `json:"error"`
	Code     string            `json:"code"`
	Fields   map[string]string `json:"fields,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string]string
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

// WithFields attaches field-level messages.
func (e *HTTPError) WithFields(fields map[string]string) *HTTPError {
	e.Fields = fields
	return e
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return NewHTTPError(http.StatusBadRequest, "validation failed", "VALIDATION_ERROR").WithFields(verr.Fields)
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN").
			WithFields(map[string]string{"username": "Username taken. Please pick another."})
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN").
			WithFields(map[string]string{"email": "Email already registered."})
	case errors.Is(err, ErrUniquenessConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, ErrInvalidUsername):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS").
			WithFields(map[string]string{"username": "Invalid username"})
	case errors.Is(err, ErrInvalidPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS").
			WithFields(map[string]string{"password": "Invalid password"})
	case errors.Is(err, ErrAuthenticationFailed):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotAuthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_AUTHENTICATED")
	case errors.Is(err, ErrAuthorizationDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrFeedbackNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "FEEDBACK_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
