package detections

import (
	"errors"
	"net/http"

	"github.com/gridsight/gridsight/internal/inspections"
	"github.com/gridsight/gridsight/internal/timeline"
	"github.com/gridsight/gridsight/internal/vision"
)

// Domain errors for detection operations.
var (
	ErrNotFound           = errors.New("detection not found")
	ErrDuplicate          = errors.New("detection already exists")
	ErrInspectionNotFound = errors.New("referenced inspection not found")
)

// MapHTTPStatus maps detection domain errors to HTTP status codes,
// including errors surfaced from the timeline, inspection, and model
// collaborators.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInspectionNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, vision.ErrAnalyzeFailed) {
		return http.StatusBadGateway
	}
	if status := timeline.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	if status := inspections.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return http.StatusInternalServerError
}
