package timeline

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/gridsight/gridsight/pkg/handlers"
	"github.com/gridsight/gridsight/pkg/routes"
)

// Handler provides HTTP endpoints for reading annotation timelines.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "timeline"),
	}
}

// InspectionRoutes returns the timeline routes nested under inspections.
func (h *Handler) InspectionRoutes() routes.Group {
	return routes.Group{
		Prefix: "/inspections",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{number}/timeline", Handler: h.ListByInspection},
			{Method: "DELETE", Pattern: "/{number}/timeline", Handler: h.DeleteAllByInspection},
		},
	}
}

// DetectionRoutes returns the timeline routes nested under detections.
func (h *Handler) DetectionRoutes() routes.Group {
	return routes.Group{
		Prefix: "/detections",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}/timeline", Handler: h.ListByDetection},
		},
	}
}

// ListByInspection returns all events for an inspection, newest first.
func (h *Handler) ListByInspection(w http.ResponseWriter, r *http.Request) {
	events, err := h.sys.ListByInspection(r.Context(), r.PathValue("number"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, events)
}

// ListByDetection returns all events referencing a detection, newest first.
func (h *Handler) ListByDetection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	events, err := h.sys.ListByDetection(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, events)
}

// DeleteAllByInspection purges the annotation history of an inspection.
func (h *Handler) DeleteAllByInspection(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.DeleteAllByInspection(r.Context(), r.PathValue("number")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
