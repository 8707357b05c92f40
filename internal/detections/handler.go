package detections

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/gridsight/gridsight/pkg/handlers"
	"github.com/gridsight/gridsight/pkg/routes"
)

// Handler provides HTTP endpoints for detection lifecycle operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "detections"),
	}
}

// InspectionRoutes returns the detection routes nested under inspections.
func (h *Handler) InspectionRoutes() routes.Group {
	return routes.Group{
		Prefix: "/inspections",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{number}/detections", Handler: h.ListByInspection},
			{Method: "POST", Pattern: "/{number}/detections", Handler: h.Add},
			{Method: "POST", Pattern: "/{number}/detections/analyze", Handler: h.Analyze},
			{Method: "DELETE", Pattern: "/{number}/detections", Handler: h.DeleteAllByInspection},
		},
	}
}

// Routes returns the route group for detection-id addressed endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/detections",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// ListByInspection returns the stored detections for an inspection.
func (h *Handler) ListByInspection(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.ListByInspection(r.Context(), r.PathValue("number"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Find returns a single detection by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	d, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, d)
}

// Analyze runs the detection model against the inspection image and
// returns the ingested batch.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.Analyze(r.Context(), r.PathValue("number"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, items)
}

// Add records a manual detection annotation from a JSON body.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var cmd AddCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	d, err := h.sys.Add(r.Context(), r.PathValue("number"), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, d)
}

// Update overwrites a detection's geometry, confidence, and class id.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd UpdateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	d, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, d)
}

// Delete removes a detection. The JSON body carries the author and
// comment recorded on the deletion's timeline event.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd DeleteCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id, cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllByInspection purges an inspection's detections.
func (h *Handler) DeleteAllByInspection(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.DeleteAllByInspection(r.Context(), r.PathValue("number")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
