package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidRequest is returned when a request body cannot be decoded or validated.
	ErrInvalidRequest = errors.New("invalid request body")
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrPasswordTooLong is returned when a password exceeds what bcrypt can hash.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	// ErrEmptyContent is returned when a blog post has no content.
	ErrEmptyContent = errors.New("content is required")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrAlreadyLoggedIn is returned when logging in on a session that is already bound.
	ErrAlreadyLoggedIn = errors.New("already logged in")
	// ErrNotLoggedIn is returned when logging out of an anonymous session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrLoginRequired is returned when an operation needs an authenticated session.
	ErrLoginRequired = errors.New("login required")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrForbidden is returned when the requester does not own the blog post.
	ErrForbidden = errors.New("you are not the owner of this blog post")
	// ErrPostNotFound is returned when a blog post does not exist.
	ErrPostNotFound = errors.New("blog post not found")
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindConflict
	KindState
	KindAuthentication
	KindAuthorization
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindState:
		return "state"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// KindOf returns the taxonomy kind of err. Unknown errors are KindUnexpected.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrPasswordTooLong), errors.Is(err, ErrEmptyContent):
		return KindValidation
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrAlreadyLoggedIn):
		return KindConflict
	case errors.Is(err, ErrNotLoggedIn):
		return KindState
	case errors.Is(err, ErrLoginRequired), errors.Is(err, ErrInvalidCredentials):
		return KindAuthentication
	case errors.Is(err, ErrForbidden):
		return KindAuthorization
	case errors.Is(err, ErrPostNotFound):
		return KindNotFound
	default:
		return KindUnexpected
	}
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidRequest.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrMissingCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrMissingCredentials.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrPasswordTooLong):
		return NewHTTPError(http.StatusBadRequest, ErrPasswordTooLong.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrEmptyContent):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyContent.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, ErrUsernameTaken.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrAlreadyLoggedIn):
		return NewHTTPError(http.StatusBadRequest, ErrAlreadyLoggedIn.Error(), "ALREADY_LOGGED_IN")
	case errors.Is(err, ErrNotLoggedIn):
		return NewHTTPError(http.StatusBadRequest, ErrNotLoggedIn.Error(), "NOT_LOGGED_IN")
	case errors.Is(err, ErrLoginRequired):
		return NewHTTPError(http.StatusUnauthorized, ErrLoginRequired.Error(), "LOGIN_REQUIRED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, ErrPostNotFound.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// codeForStatus picks a response code for errors raised by the framework itself.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "LOGIN_REQUIRED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	default:
		if status >= http.StatusInternalServerError {
			return "INTERNAL_ERROR"
		}
		return "REQUEST_ERROR"
	}
}
