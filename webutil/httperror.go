package webutil

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	msgBadRequest     = "Bad Request"
	msgNotFound       = "Resource not found"
	msgConflict       = "Conflict"
	msgInternalServer = "Internal Server Error"
	msgTimeout        = "Request timed out"
)

// ErrorKind tags an HTTPError with the class of failure it represents.
type ErrorKind int

const (
	KindPersistence ErrorKind = iota // datastore failure or anything unclassified
	KindValidation                   // client input rejected before any I/O
	KindNotFound                     // single-entity read matched nothing
	KindConflict                     // write collided with existing data
	KindTimeout                      // request deadline passed before the work finished
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTimeout:
		return "timeout"
	default:
		return "persistence"
	}
}

// Status is the HTTP status code rendered for the kind.
func (k ErrorKind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Represents an error with an associated HTTP status code
// and a user-facing message.
type HTTPError struct {
	cause   error     // The underlying error, can be nil
	Kind    ErrorKind // Failure class
	Code    int       // HTTP status code
	Message string    // User-facing error message
}

// Implements the error interface.
// It returns the Message, which is intended for the HTTP response.
func (he HTTPError) Error() string {
	return he.Message
}

// Provides compatibility for errors.Is and errors.As.
func (he HTTPError) Unwrap() error {
	return he.cause
}

// Returns the defaultVal if the initial message is empty.
func defaultMessageIfEmpty(initialMsg, defaultVal string) string {
	if initialMsg == "" {
		return defaultVal
	}
	return initialMsg
}

// Creates a new HTTPError of the given kind. The status code follows the kind.
func NewHTTPError(kind ErrorKind, message string) *HTTPError {
	return &HTTPError{
		cause:   errors.New(message), // Base error is the message itself
		Kind:    kind,
		Code:    kind.Status(),
		Message: message,
	}
}

// Creates a new HTTPError that wraps an existing error (cause).
// The message is a user-facing message for this specific HTTP error context.
func NewHTTPErrorWrap(kind ErrorKind, message string, cause error) *HTTPError {
	return &HTTPError{
		cause:   cause,
		Kind:    kind,
		Code:    kind.Status(),
		Message: message,
	}
}

func ErrValidation(message string) *HTTPError {
	return NewHTTPError(KindValidation, defaultMessageIfEmpty(message, msgBadRequest))
}

func ErrValidationWrap(message string, cause error) *HTTPError {
	return NewHTTPErrorWrap(KindValidation, defaultMessageIfEmpty(message, msgBadRequest), cause)
}

func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(KindNotFound, defaultMessageIfEmpty(message, msgNotFound))
}

func ErrNotFoundWrap(message string, cause error) *HTTPError {
	return NewHTTPErrorWrap(KindNotFound, defaultMessageIfEmpty(message, msgNotFound), cause)
}

func ErrConflictWrap(message string, cause error) *HTTPError {
	return NewHTTPErrorWrap(KindConflict, defaultMessageIfEmpty(message, msgConflict), cause)
}

func ErrTimeoutWrap(message string, cause error) *HTTPError {
	return NewHTTPErrorWrap(KindTimeout, defaultMessageIfEmpty(message, msgTimeout), cause)
}

// ErrPersistenceWrap hides the cause behind a generic message; the cause is
// only logged.
func ErrPersistenceWrap(message string, cause error) *HTTPError {
	return NewHTTPErrorWrap(KindPersistence, msgInternalServer, fmt.Errorf("%s: %w", message, cause))
}
