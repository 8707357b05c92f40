package maintenance

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/gridsight/gridsight/pkg/handlers"
	"github.com/gridsight/gridsight/pkg/routes"
)

// Handler provides HTTP endpoints for maintenance operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "maintenance"),
	}
}

// InspectionRoutes returns the maintenance routes nested under inspections.
func (h *Handler) InspectionRoutes() routes.Group {
	return routes.Group{
		Prefix: "/inspections",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{number}/maintenance", Handler: h.ListByInspection},
			{Method: "POST", Pattern: "/{number}/maintenance", Handler: h.Create},
		},
	}
}

// Routes returns the route group for record-id addressed endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/maintenance",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/report", Handler: h.Report},
		},
	}
}

// ListByInspection returns an inspection's maintenance records, newest first.
func (h *Handler) ListByInspection(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.ListByInspection(r.Context(), r.PathValue("number"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Find returns a single maintenance record.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	m, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, m)
}

// Create records a maintenance visit from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	m, err := h.sys.Create(r.Context(), r.PathValue("number"), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, m)
}

// Report returns the assembled report for a maintenance record.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	report, err := h.sys.Report(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}
