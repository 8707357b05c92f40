package transformers

import (
	"errors"
	"net/http"

	"github.com/gridsight/gridsight/pkg/handlers"
)

// Domain errors for transformer operations.
var (
	ErrNotFound      = errors.New("transformer not found")
	ErrDuplicate     = errors.New("transformer already exists")
	ErrMissingNumber = errors.New("transformer number required")
	ErrNoImage       = errors.New("transformer has no baseline image")
)

// MapHTTPStatus maps transformer domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoImage) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingNumber) || errors.Is(err, handlers.ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, handlers.ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
