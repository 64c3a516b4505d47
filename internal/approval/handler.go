package approval

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/accessflow/accessflow/internal/platform/httpx"
	"github.com/accessflow/accessflow/internal/shared"
)

// Handler wires HTTP endpoints for the approval workflow.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers approval routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/requests/{requestID}/approvals", h.handleList)
	r.Get("/requests/{requestID}/approvals/next", h.handleNextPending)
	r.Post("/requests/{requestID}/approvals/auto", h.handleAutoApprove)
	r.Post("/requests/{requestID}/complete", h.handleComplete)
	r.Post("/approvals/{id}/approve", h.handleApprove)
	r.Post("/approvals/{id}/deny", h.handleDeny)
}

func requestIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid request id", httpx.ErrValidation)
	}
	return id, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	approvals, err := h.service.ListForRequest(r.Context(), requestID)
	if err != nil {
		h.logger.Error("list approvals", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	canComplete, err := h.service.CanComplete(r.Context(), requestID)
	if err != nil {
		h.logger.Error("completion gate", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"approvals":    approvals,
		"can_complete": canComplete,
	})
}

func (h *Handler) handleNextPending(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	next, err := h.service.NextPendingStep(r.Context(), requestID)
	if err != nil {
		h.logger.Error("next pending step", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if next == nil {
		httpx.JSON(w, http.StatusOK, map[string]any{"next": nil})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"next": next})
}

type decisionPayload struct {
	ApproverEmail string `json:"approver_email"`
	SignatureData string `json:"signature_data"`
	Comments      string `json:"comments"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := parseApprovalID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var payload decisionPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid body", httpx.ErrValidation))
		return
	}
	updated, err := h.service.Approve(r.Context(), id, ApproveInput{
		ApproverEmail: payload.ApproverEmail,
		SignatureData: payload.SignatureData,
		Comments:      payload.Comments,
	})
	if err != nil {
		h.logger.Warn("approve step", slog.Int64("approval_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeny(w http.ResponseWriter, r *http.Request) {
	id, err := parseApprovalID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var payload decisionPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid body", httpx.ErrValidation))
		return
	}
	updated, err := h.service.Deny(r.Context(), id, payload.ApproverEmail, payload.Comments)
	if err != nil {
		h.logger.Warn("deny step", slog.Int64("approval_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handleAutoApprove(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if !shared.TestModeFromContext(r.Context()) {
		httpx.RespondError(w, fmt.Errorf("%w: test mode required", httpx.ErrForbidden))
		return
	}
	count, err := h.service.AutoApproveAllPending(r.Context(), requestID)
	if err != nil {
		h.logger.Warn("auto approve", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"approved": count})
}

type completePayload struct {
	CompletedBy string `json:"completed_by"`
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var payload completePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid body", httpx.ErrValidation))
		return
	}
	if payload.CompletedBy == "" {
		payload.CompletedBy = shared.IdentityFromContext(r.Context())
	}
	if err := h.service.CompleteRequest(r.Context(), requestID, payload.CompletedBy); err != nil {
		h.logger.Warn("complete request", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "completed"})
}
