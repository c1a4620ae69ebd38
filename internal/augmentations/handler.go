package augmentations

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sarifworks/augments/pkg/handlers"
	"github.com/sarifworks/augments/pkg/pagination"
	"github.com/sarifworks/augments/pkg/routes"
)

const allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

// Handler provides HTTP endpoints for catalog operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	presenter  *Presenter
	maxUpload  int64
}

// NewHandler creates a Handler with the given system, logger, pagination
// config, link presenter, and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	presenter *Presenter,
	maxUpload int64,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "augmentations"),
		pagination: pagination,
		presenter:  presenter,
		maxUpload:  maxUpload,
	}
}

// Routes returns the route group definition for catalog endpoints. Patterns
// are relative to the module prefix; the collection root is matched exactly
// so "/pdf" and "/csv" stay distinct from "/{id}".
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: h.List},
			{Method: "POST", Pattern: "/{$}", Handler: h.Create},
			{Method: "OPTIONS", Pattern: "/{$}", Handler: h.Options},
			{Method: "GET", Pattern: "/pdf", Handler: h.Export},
			{Method: "POST", Pattern: "/csv", Handler: h.Import},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "PATCH", Pattern: "/{id}", Handler: h.Patch},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List runs the query pipeline and returns the matching page of resources.
// Malformed paging or filter parameters reject the request before any data
// access happens.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	q := Query{
		Filters:    filters,
		SearchTerm: r.URL.Query().Get("searchTerm"),
		Page:       page,
	}

	items, err := h.sys.List(r.Context(), q)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	resources, err := h.presenter.PresentAll(r, items)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resources)
}

// Find returns a single augmentation resource by its integer path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	aug, err := h.sys.Find(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respondResource(w, r, http.StatusOK, *aug)
}

// Create decodes a JSON command and persists a new augmentation. Responds
// 201 with the created resource and its canonical URL in Location.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	aug, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		h.fail(w, err)
		return
	}

	resource, err := h.presenter.Present(r, *aug)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	for _, link := range resource.Links {
		if link.Rel == "self" {
			w.Header().Set("Location", link.Href)
		}
	}
	handlers.RespondJSON(w, http.StatusCreated, resource)
}

// Update fully replaces an augmentation with the decoded command.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	aug, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respondResource(w, r, http.StatusOK, *aug)
}

// Patch applies a JSON array of replace operations to an augmentation.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	var ops []PatchOp
	if err := json.NewDecoder(r.Body).Decode(&ops); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	aug, err := h.sys.Patch(r.Context(), id, ops)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respondResource(w, r, http.StatusOK, *aug)
}

// Delete removes an augmentation by its integer path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Options advertises the methods supported by the collection.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", allowedMethods)
	w.WriteHeader(http.StatusOK)
}

// Export runs the same query pipeline as List and streams the resulting
// records as a PDF document. An empty result is a 404, not an empty file.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	q := Query{
		Filters:    filters,
		SearchTerm: r.URL.Query().Get("searchTerm"),
		Page:       page,
	}

	data, err := h.sys.Export(r.Context(), q)
	if err != nil {
		h.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="augmentations.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import processes a multipart form upload containing a CSV catalog batch.
// The whole batch persists atomically; the response lists the created
// resources.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotCSV)
		return
	}

	cmds, err := DecodeCSV(file)
	if err != nil {
		h.fail(w, err)
		return
	}

	augs, err := h.sys.Import(r.Context(), cmds)
	if err != nil {
		h.fail(w, err)
		return
	}

	resources, err := h.presenter.PresentAll(r, augs)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, resources)
}

func (h *Handler) respondResource(w http.ResponseWriter, r *http.Request, status int, aug Augmentation) {
	resource, err := h.presenter.Present(r, aug)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(w, status, resource)
}

// fail maps a domain error to its status. Field-level failures render as a
// field map so clients can address individual inputs.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := MapHTTPStatus(err)

	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		handlers.RespondJSON(w, status, map[string]any{"errors": fieldErrs})
		return
	}

	var rowErr *RowError
	if errors.As(err, &rowErr) {
		handlers.RespondJSON(w, status, map[string]any{
			"error": rowErr.Error(),
			"row":   rowErr.Row,
		})
		return
	}

	handlers.RespondError(w, h.logger, status, err)
}
