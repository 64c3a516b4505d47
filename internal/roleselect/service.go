package roleselect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/accessflow/accessflow/internal/platform/httpx"
	"github.com/accessflow/accessflow/internal/request"
	"github.com/accessflow/accessflow/internal/shared"
)

// CopiedJustification is the default justification stamped onto selections
// duplicated from an existing user when the source carried none.
const CopiedJustification = "Copied from existing user access"

// AuditPort records selection events.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service records role selections against requests.
type Service struct {
	repo   Repository
	audit  AuditPort
	logger *slog.Logger
}

// NewService constructs the roleselect Service.
func NewService(repo Repository, audit AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// Save validates and upserts the selections for a request. Saving manually
// also abandons the copy path: any copy-user record is removed.
func (s *Service) Save(ctx context.Context, requestID uuid.UUID, sel Selections) error {
	if requestID == uuid.Nil {
		return fmt.Errorf("%w: request id required", httpx.ErrValidation)
	}
	if err := sel.Validate(); err != nil {
		return err
	}
	row := sel.row(requestID)
	// Business-unit codes persist in their fixed 5-character form.
	row.HomeBusinessUnit = request.PadBusinessUnit(row.HomeBusinessUnit)
	if err := s.repo.Upsert(ctx, row); err != nil {
		return err
	}
	if err := s.repo.DeleteCopyDetails(ctx, requestID); err != nil {
		return err
	}
	s.recordAudit(ctx, "SELECTIONS_SAVE", requestID, map[string]any{"fields": sel.ActiveFields()})
	return nil
}

// Load returns the stored selection row, or nil when the request has none.
// Absence is not an error; the form simply starts blank.
func (s *Service) Load(ctx context.Context, requestID uuid.UUID) (*Row, error) {
	return s.repo.Get(ctx, requestID)
}

// CopyFromUser duplicates the role selections of the employee's most recent
// completed request onto the target request. Both a missing completed
// request and a missing source selection row are soft no-ops: the copy path
// is a convenience, not a guarantee.
func (s *Service) CopyFromUser(ctx context.Context, requestID uuid.UUID, details CopyUserDetails) error {
	if requestID == uuid.Nil {
		return fmt.Errorf("%w: request id required", httpx.ErrValidation)
	}
	if strings.TrimSpace(details.CopyUserEmployeeID) == "" {
		return fmt.Errorf("%w: copy-user employee id required", httpx.ErrValidation)
	}
	details.RequestID = requestID
	if err := s.repo.UpsertCopyDetails(ctx, details); err != nil {
		return err
	}

	sourceID, found, err := s.repo.LatestCompletedRequest(ctx, details.CopyUserEmployeeID)
	if err != nil {
		return err
	}
	if !found {
		if s.logger != nil {
			s.logger.Info("copy-from-user source not found", slog.String("employee_id", details.CopyUserEmployeeID))
		}
		return nil
	}

	source, err := s.repo.Get(ctx, sourceID)
	if err != nil {
		return err
	}
	if source == nil {
		return nil
	}

	// Replace, never merge, any previous selections on the target.
	if err := s.repo.Delete(ctx, requestID); err != nil {
		return err
	}

	copied := *source
	copied.RequestID = requestID
	if copied.RoleJustification == "" {
		copied.RoleJustification = CopiedJustification
	}
	if err := s.repo.Upsert(ctx, copied); err != nil {
		return err
	}
	s.recordAudit(ctx, "SELECTIONS_COPY", requestID, map[string]any{"source_request": sourceID.String(), "employee_id": details.CopyUserEmployeeID})
	return nil
}

// CopyDetails returns the copy-user record when the copy path was chosen.
func (s *Service) CopyDetails(ctx context.Context, requestID uuid.UUID) (*CopyUserDetails, error) {
	return s.repo.GetCopyDetails(ctx, requestID)
}

func (s *Service) recordAudit(ctx context.Context, action string, requestID uuid.UUID, meta map[string]any) {
	if s.audit == nil {
		return
	}
	log := shared.AuditLog{
		Actor:    shared.IdentityFromContext(ctx),
		Action:   action,
		Entity:   "security_role_request",
		EntityID: requestID.String(),
		Meta:     meta,
	}
	if err := s.audit.Record(ctx, log); err != nil && s.logger != nil {
		s.logger.Warn("record audit", slog.String("action", action), slog.Any("error", err))
	}
}
