package comments

import (
	"errors"
	"net/http"
)

// Domain errors for comment operations.
var (
	ErrNotFound           = errors.New("comment not found")
	ErrInspectionNotFound = errors.New("referenced inspection not found")
	ErrMissingAuthor      = errors.New("author required")
	ErrMissingComment     = errors.New("comment text required")
)

// MapHTTPStatus maps comment domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInspectionNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrMissingAuthor) || errors.Is(err, ErrMissingComment) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
