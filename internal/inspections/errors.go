package inspections

import (
	"errors"
	"net/http"

	"github.com/gridsight/gridsight/pkg/handlers"
)

// Domain errors for inspection operations.
var (
	ErrNotFound           = errors.New("inspection not found")
	ErrDuplicate          = errors.New("inspection already exists")
	ErrMissingNumber      = errors.New("inspection number required")
	ErrMissingTransformer = errors.New("transformer number required")
	ErrTransformerMissing = errors.New("referenced transformer not found")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidStatus      = errors.New("invalid inspection status")
	ErrNoImage            = errors.New("inspection has no image")
)

// MapHTTPStatus maps inspection domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoImage) || errors.Is(err, ErrTransformerMissing) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingNumber) ||
		errors.Is(err, ErrMissingTransformer) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, handlers.ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, handlers.ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
