package inspections

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gridsight/gridsight/pkg/handlers"
	"github.com/gridsight/gridsight/pkg/pagination"
	"github.com/gridsight/gridsight/pkg/routes"
	"github.com/gridsight/gridsight/pkg/storage"
)

// Handler provides HTTP endpoints for inspection operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "inspections"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for inspection endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/inspections",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{number}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "PATCH", Pattern: "/{number}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{number}", Handler: h.Delete},
			{Method: "POST", Pattern: "/{number}/image", Handler: h.AttachImage},
			{Method: "GET", Pattern: "/{number}/image", Handler: h.Image},
		},
	}
}

// TransformerRoutes returns the route group exposing inspections nested
// under a transformer.
func (h *Handler) TransformerRoutes() routes.Group {
	return routes.Group{
		Prefix: "/transformers",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{number}/inspections", Handler: h.ListByTransformer},
		},
	}
}

// List returns a paginated list of inspections with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListByTransformer returns the inspections recorded against a transformer.
func (h *Handler) ListByTransformer(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	number := r.PathValue("number")
	filters := Filters{TransformerNumber: &number}

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single inspection by its number path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	i, err := h.sys.Find(r.Context(), r.PathValue("number"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, i)
}

// Create records a new inspection from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	i, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, i)
}

// Search accepts a JSON body with pagination and filter criteria and
// returns matching inspections.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update applies a partial update to an inspection.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd UpdateCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	i, err := h.sys.Update(r.Context(), r.PathValue("number"), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, i)
}

// Delete removes an inspection by its number path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("number")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AttachImage processes a multipart form upload containing the inspection image.
func (h *Handler) AttachImage(w http.ResponseWriter, r *http.Request) {
	file, err := handlers.ReadFormFile(r, "file", h.maxUploadSize)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cmd := ImageCommand{
		Data:        file.Data,
		Filename:    file.Filename,
		ContentType: file.ContentType,
	}

	i, err := h.sys.AttachImage(r.Context(), r.PathValue("number"), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, i)
}

// Image streams the inspection's stored image.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	obj, err := h.sys.Image(r.Context(), r.PathValue("number"))
	if err != nil {
		status := MapHTTPStatus(err)
		if s := storage.MapHTTPStatus(err); s != http.StatusInternalServerError {
			status = s
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)
	io.Copy(w, obj.Body)
}
