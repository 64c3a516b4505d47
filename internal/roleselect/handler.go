package roleselect

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/accessflow/accessflow/internal/platform/httpx"
)

// Handler wires HTTP endpoints for recording role selections.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers role-selection routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/requests/{requestID}/selections", func(r chi.Router) {
		r.Post("/accounting", h.saveAccounting)
		r.Post("/hr-payroll", h.saveHRPayroll)
		r.Post("/epm", h.saveEPM)
		r.Post("/elm", h.saveELM)
		r.Get("/accounting", h.loadAccounting)
		r.Get("/hr-payroll", h.loadHRPayroll)
		r.Get("/epm", h.loadEPM)
		r.Get("/elm", h.loadELM)
		r.Post("/copy", h.copyFromUser)
		r.Get("/copy", h.copyDetails)
	})
}

func requestIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid request id", httpx.ErrValidation)
	}
	return id, nil
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, sel Selections) {
	requestID, err := requestIDParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Save(r.Context(), requestID, sel); err != nil {
		h.logger.Warn("save selections", slog.String("request_id", requestID.String()), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (h *Handler) saveAccounting(w http.ResponseWriter, r *http.Request) {
	var sel AccountingSelections
	if err := httpx.DecodeJSON(r, &sel); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid body", httpx.ErrValidation))
		return
	}
	h.save(w, r, sel)
}

func (h *Handler) saveHRPayroll(w http.ResponseWriter, r *http.Request) {
	var sel HRPayrollSelections
	if err := httpx.DecodeJSON(r, &sel); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid body", httpx.ErrValidation))
		return
	}
	h.save(w, r, sel)
}

func (h *Handler) saveEPM(w http.ResponseWriter, r *http.Request) {
	var sel EPMSelections
	if err := httpx.DecodeJSON(r, &sel); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid body", httpx.ErrValidation))
		return
	}
	h.save(w, r, sel)
}

func (h *Handler) saveELM(w http.ResponseWriter, r *http.Request) {
	var sel ELMSelections
	if err := httpx.DecodeJSON(r, &sel); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid body", httpx.ErrValidation))
		return
	}
	h.save(w, r, sel)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request, convert func(Row) any) {
	requestID, err := requestIDParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	row, err := h.service.Load(r.Context(), requestID)
	if err != nil {
		h.logger.Error("load selections", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if row == nil {
		httpx.JSON(w, http.StatusOK, map[string]any{"selections": nil})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"selections": convert(*row)})
}

func (h *Handler) loadAccounting(w http.ResponseWriter, r *http.Request) {
	h.load(w, r, func(row Row) any { return AccountingFromRow(row) })
}

func (h *Handler) loadHRPayroll(w http.ResponseWriter, r *http.Request) {
	h.load(w, r, func(row Row) any { return HRPayrollFromRow(row) })
}

func (h *Handler) loadEPM(w http.ResponseWriter, r *http.Request) {
	h.load(w, r, func(row Row) any { return EPMFromRow(row) })
}

func (h *Handler) loadELM(w http.ResponseWriter, r *http.Request) {
	h.load(w, r, func(row Row) any { return ELMFromRow(row) })
}

func (h *Handler) copyFromUser(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var details CopyUserDetails
	if err := httpx.DecodeJSON(r, &details); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid body", httpx.ErrValidation))
		return
	}
	if err := h.service.CopyFromUser(r.Context(), requestID, details); err != nil {
		h.logger.Warn("copy from user", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"copied": true})
}

func (h *Handler) copyDetails(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDParam(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	details, err := h.service.CopyDetails(r.Context(), requestID)
	if err != nil {
		h.logger.Error("load copy details", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"copy_user": details})
}
