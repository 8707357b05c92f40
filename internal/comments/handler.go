package comments

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/gridsight/gridsight/pkg/handlers"
	"github.com/gridsight/gridsight/pkg/routes"
)

// Handler provides HTTP endpoints for comment operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "comments"),
	}
}

// InspectionRoutes returns the comment routes nested under inspections.
func (h *Handler) InspectionRoutes() routes.Group {
	return routes.Group{
		Prefix: "/inspections",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{number}/comments", Handler: h.ListByInspection},
			{Method: "POST", Pattern: "/{number}/comments", Handler: h.Create},
		},
	}
}

// Routes returns the route group for comment-id addressed endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/comments",
		Routes: []routes.Route{
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// ListByInspection returns an inspection's comments, newest first.
func (h *Handler) ListByInspection(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.ListByInspection(r.Context(), r.PathValue("number"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Create records a new comment from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	c, err := h.sys.Create(r.Context(), r.PathValue("number"), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, c)
}

// Update overwrites a comment's topic and text.
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

	c, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

// Delete removes a comment.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
