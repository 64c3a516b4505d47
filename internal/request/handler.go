package request

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/accessflow/accessflow/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the request lifecycle.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers request routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/requests", h.handleList)
	r.Post("/requests", h.handleCreate)
	r.Get("/requests/{requestID}", h.handleGet)
	r.Put("/requests/{requestID}", h.handleEdit)
	r.Delete("/requests/{requestID}", h.handleDelete)
}

func idParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid request id", httpx.ErrValidation)
	}
	return id, nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var form Form
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	req, dest, err := h.service.Create(r.Context(), form)
	if err != nil {
		h.logger.Error("create request", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"request":     req,
		"destination": dest,
	})
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var form Form
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	req, dest, err := h.service.Edit(r.Context(), id, form)
	if err != nil {
		h.logger.Error("edit request", slog.String("request_id", id.String()), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"request":     req,
		"destination": dest,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete request", slog.String("request_id", id.String()), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	filters := ListFilters{
		EmployeeName: q.Get("employee_name"),
		EmployeeID:   q.Get("employee_id"),
		Status:       Status(q.Get("status")),
		Page:         page,
		Limit:        limit,
	}
	result, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list requests", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
