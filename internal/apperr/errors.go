package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors for the service's failure taxonomy. Callers classify with
// errors.Is and wrap with fmt.Errorf("...: %w", ...) to add context.
var (
	// ErrNotFound covers operating on a record that does not exist or is
	// not owned by the requesting user. Ownership failures are deliberately
	// indistinguishable from missing rows.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument covers malformed input: empty message content,
	// bad pagination parameters, self-addressed messages.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthorized covers requests without a valid caller identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTransientStore covers persistence failures that may succeed on
	// retry. Notification dispatch swallows these per recipient; message
	// send and read-state mutations surface them to the caller.
	ErrTransientStore = errors.New("transient store failure")
)

// HTTPStatus maps a classified error to its HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTransientStore):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
