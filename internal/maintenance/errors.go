package maintenance

import (
	"errors"
	"net/http"
)

// Domain errors for maintenance operations.
var (
	ErrNotFound           = errors.New("maintenance record not found")
	ErrInspectionNotFound = errors.New("referenced inspection not found")
	ErrMissingInspector   = errors.New("inspector name required")
)

// MapHTTPStatus maps maintenance domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInspectionNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrMissingInspector) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
