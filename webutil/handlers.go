package webutil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coreybb/tasker/datastore"
	"github.com/coreybb/tasker/metrics"
)

// AppHandler represents a handler function that returns an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// MakeHandler adapts an AppHandler to the standard http.HandlerFunc signature.
// It is the one place errors become responses: the returned error is
// classified, logged, counted and rendered as an ErrorBody.
func MakeHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tw := &trackingWriter{ResponseWriter: w}
		err := handler(tw, r)
		if err == nil {
			// The handler wrote its own successful response.
			return
		}

		httpErr := Classify(err)
		logLevel := slog.LevelWarn // Treat client errors as warnings server-side
		if httpErr.Code >= 500 {
			logLevel = slog.LevelError
		}
		attrs := []any{
			"kind", httpErr.Kind.String(),
			"code", httpErr.Code,
			"msg", httpErr.Message,
			"path", r.URL.Path,
			"method", r.Method,
		}
		// Log the underlying cause if present and different from the public message
		if cause := errors.Unwrap(httpErr); cause != nil && cause.Error() != httpErr.Message {
			attrs = append(attrs, "cause", cause)
		}
		slog.Log(r.Context(), logLevel, "Error response", attrs...)
		metrics.ObserveError(httpErr.Kind.String())

		if tw.wrote {
			slog.Warn("Handler returned error after writing response",
				"path", r.URL.Path,
				"method", r.Method,
				"error", err,
			)
			return
		}

		RespondWithJSON(w, httpErr.Code, ErrorBody{Status: httpErr.Code, Message: httpErr.Message})
	}
}

// Classify turns any error into an HTTPError. Errors that already are one
// pass through, except persistence errors caused by an expired request
// deadline, which become timeouts. Bare datastore sentinels get their
// matching kind; everything else is a persistence failure.
func Classify(err error) *HTTPError {
	var httpErr *HTTPError
	isHTTPErr := errors.As(err, &httpErr)
	switch {
	case isHTTPErr && httpErr.Kind != KindPersistence:
		return httpErr
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeoutWrap("", err)
	case isHTTPErr:
		return httpErr
	case errors.Is(err, datastore.ErrNotFound):
		return ErrNotFoundWrap("", err)
	case errors.Is(err, datastore.ErrConflict):
		return ErrConflictWrap("", err)
	case errors.Is(err, datastore.ErrInvalidReference):
		return ErrValidationWrap("Referenced resource does not exist", err)
	default:
		return ErrPersistenceWrap("unhandled internal error", err)
	}
}
