package timeline

import (
	"errors"
	"net/http"
)

// Domain errors for timeline operations.
var (
	ErrInvalidKind       = errors.New("invalid event kind")
	ErrMissingInspection = errors.New("inspection number required")
	ErrMissingAuthor     = errors.New("author required")
)

// MapHTTPStatus maps timeline domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrMissingInspection) ||
		errors.Is(err, ErrMissingAuthor) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
