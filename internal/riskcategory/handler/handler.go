// Package handler wires the risk category HTTP endpoints to the service.
// The transport layer stays thin: decode, delegate, translate. Error bodies
// are plain text, preserving the wire contract of the predecessor service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/models"
	"github.com/eksiir/risk-categories-microservice/internal/status"
	dErrors "github.com/eksiir/risk-categories-microservice/pkg/domainerrors"
	"github.com/eksiir/risk-categories-microservice/pkg/httputil"
	"github.com/eksiir/risk-categories-microservice/pkg/requestcontext"
)

// Service defines the operations the handler dispatches to.
type Service interface {
	Create(ctx context.Context, req models.CreateRequest) (*models.RiskCategory, error)
	GetByID(ctx context.Context, id string) (*models.RiskCategory, error)
	Search(ctx context.Context, query map[string]any) ([]*models.RiskCategory, error)
	Update(ctx context.Context, id string, req models.UpdateRequest) (*models.RiskCategory, error)
	SoftDelete(ctx context.Context, id string) (*models.RiskCategory, error)
}

// Handler serves the risk category routes and the readiness status surface.
type Handler struct {
	service  Service
	registry *status.Registry
	logger   *slog.Logger
}

// New constructs a handler with its dependencies.
func New(service Service, registry *status.Registry, logger *slog.Logger) *Handler {
	return &Handler{service: service, registry: registry, logger: logger}
}

// Register mounts the risk category endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/risk-categories/status", h.HandleStatus)
	r.Post("/risk-categories", h.HandleCreate)
	r.Post("/risk-categories/search", h.HandleSearch)
	r.Get("/risk-categories/{id}", h.HandleGetByID)
	r.Patch("/risk-categories/{id}", h.HandleUpdate)
	r.Delete("/risk-categories/{id}", h.HandleSoftDelete)
}

// HandleStatus handles GET /risk-categories/status. The response status code
// is the registry's aggregate code, so orchestration health checks need only
// look at the status line.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	code, fields := h.registry.Snapshot()
	httputil.WriteJSON(w, code, fields)
}

// HandleCreate handles POST /risk-categories.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateRequest
	if !h.decode(w, r, &req) {
		return
	}

	created, err := h.service.Create(ctx, req)
	if err != nil {
		h.writeError(w, r, "create", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

// HandleGetByID handles GET /risk-categories/{id}.
func (h *Handler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "getById", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleSearch handles POST /risk-categories/search. The body is the query
// document; an absent or empty body matches every document.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := map[string]any{}
	if !h.decode(w, r, &query) {
		return
	}

	docs, err := h.service.Search(r.Context(), query)
	if err != nil {
		h.writeError(w, r, "search", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, docs)
}

// HandleUpdate handles PATCH /risk-categories/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, "update", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// HandleSoftDelete handles DELETE /risk-categories/{id}.
func (h *Handler) HandleSoftDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.SoftDelete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "softDelete", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, deleted)
}

// decode unmarshals the request body into v. An empty body decodes to the
// zero value, matching the predecessor's permissive body parsing.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		httputil.WriteText(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if dErrors.HTTPStatus(err) == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "operation failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"operation", operation,
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
