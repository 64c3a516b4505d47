package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/accessflow/accessflow/internal/approval"
	"github.com/accessflow/accessflow/internal/platform/httpx"
	"github.com/accessflow/accessflow/internal/shared"
)

// ApprovalReader surfaces the next actionable step for listings.
type ApprovalReader interface {
	NextPendingStep(ctx context.Context, requestID uuid.UUID) (*approval.Approval, error)
}

// AuditPort records lifecycle events.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service owns the request lifecycle: create with area and approval
// expansion, edit with approval resets, cascading delete, and listing.
type Service struct {
	repo        RepositoryPort
	approvals   ApprovalReader
	audit       AuditPort
	logger      *slog.Logger
	forms       *formValidator
	emailDomain string
	now         func() time.Time
}

// NewService constructs the lifecycle Service. emailDomain completes bare
// usernames into full addresses.
func NewService(repo RepositoryPort, approvals ApprovalReader, audit AuditPort, logger *slog.Logger, emailDomain string) *Service {
	return &Service{
		repo:        repo,
		approvals:   approvals,
		audit:       audit,
		logger:      logger,
		forms:       newFormValidator(),
		emailDomain: emailDomain,
		now:         time.Now,
	}
}

// Detail aggregates a request with its active security area.
type Detail struct {
	Request Request       `json:"request"`
	Area    *SecurityArea `json:"area,omitempty"`
}

// ListItem decorates a request with its actionable next step.
type ListItem struct {
	Request     Request       `json:"request"`
	NextStepID  int64         `json:"next_step_id,omitempty"`
	NextStep    approval.Step `json:"next_step,omitempty"`
	StatusBadge string        `json:"status_badge"`
}

// ListResult is one page of decorated requests.
type ListResult struct {
	Items      []ListItem        `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

// Create validates the form, then persists the request, its security area
// and the area's approval steps in one transaction.
func (s *Service) Create(ctx context.Context, form Form) (Request, Destination, error) {
	if err := s.forms.Check(form, s.now()); err != nil {
		return Request{}, "", err
	}

	req := s.applyForm(Request{ID: uuid.New(), Status: StatusPending}, form)
	area := s.buildArea(req.ID, form)

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.InsertRequest(ctx, req); err != nil {
			return err
		}
		if err := tx.InsertArea(ctx, area); err != nil {
			return err
		}
		for _, step := range StepsForArea(area.AreaType) {
			if err := tx.InsertApproval(ctx, req.ID, step, s.approverEmail(step, req, area)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Request{}, "", fmt.Errorf("create request: %w", err)
	}

	s.recordAudit(ctx, "request.created", req.ID, map[string]any{"area_type": string(area.AreaType)})
	s.logger.Info("request created", slog.String("request_id", req.ID.String()), slog.String("area", string(area.AreaType)))
	return req, RouteAfterSave(area.AreaType), nil
}

// Edit updates a pending request. Changing the area replaces the area row,
// drops every area-specific approval step and inserts the new area's step.
// Role selections are always cleared and every approval except the user's
// own signature returns to pending, since an edit changes who must approve
// what.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, form Form) (Request, Destination, error) {
	if err := s.forms.Check(form, s.now()); err != nil {
		return Request{}, "", err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Request{}, "", s.wrapNotFound(err)
	}
	if existing.Status != StatusPending {
		return Request{}, "", fmt.Errorf("%w: request %s is %s and can no longer be edited", httpx.ErrPrecondition, id, existing.Status)
	}

	existingArea, err := s.repo.GetArea(ctx, id)
	if err != nil {
		return Request{}, "", err
	}

	updated := s.applyForm(existing, form)
	area := s.buildArea(id, form)

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.UpdateRequest(ctx, updated); err != nil {
			return err
		}
		if existingArea != nil && existingArea.AreaType == area.AreaType {
			area.ID = existingArea.ID
			if err := tx.UpdateArea(ctx, area); err != nil {
				return err
			}
		} else {
			if err := tx.DeleteAreas(ctx, id); err != nil {
				return err
			}
			if err := tx.DeleteApprovalsBySteps(ctx, id, approval.AreaSteps); err != nil {
				return err
			}
			if err := tx.InsertArea(ctx, area); err != nil {
				return err
			}
			if step := AreaStep(area.AreaType); step != "" {
				if err := tx.InsertApproval(ctx, id, step, s.approverEmail(step, updated, area)); err != nil {
					return err
				}
			}
		}
		if err := tx.DeleteRoleSelections(ctx, id); err != nil {
			return err
		}
		return tx.ResetApprovalsExcept(ctx, id, approval.StepUserSignature)
	})
	if err != nil {
		return Request{}, "", fmt.Errorf("edit request: %w", err)
	}

	s.recordAudit(ctx, "request.edited", id, map[string]any{"area_type": string(area.AreaType)})
	return updated, RouteAfterSave(area.AreaType), nil
}

// Delete removes the request and lets the store cascade to its dependents.
// Deleting an id that is already gone is a no-op.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		s.recordAudit(ctx, "request.deleted", id, nil)
	}
	return nil
}

// Get returns the request with its active area.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Detail, error) {
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, s.wrapNotFound(err)
	}
	area, err := s.repo.GetArea(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Request: req, Area: area}, nil
}

// List pages through requests and decorates each row with its next pending
// step so the caller can build the "go sign this" link.
func (s *Service) List(ctx context.Context, filters ListFilters) (ListResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 20
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	requests, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return ListResult{}, err
	}

	items := make([]ListItem, 0, len(requests))
	for _, req := range requests {
		item := ListItem{Request: req, StatusBadge: string(req.Status)}
		if req.Status != StatusCompleted {
			next, err := s.approvals.NextPendingStep(ctx, req.ID)
			if err != nil {
				s.logger.Warn("next pending step lookup failed",
					slog.String("request_id", req.ID.String()), slog.Any("error", err))
			} else if next != nil {
				item.NextStepID = next.ID
				item.NextStep = next.Step
				item.StatusBadge = "awaiting " + string(next.Step)
			} else {
				item.StatusBadge = "ready to complete"
			}
		}
		items = append(items, item)
	}
	return ListResult{
		Items:      items,
		Pagination: shared.NewPagination(filters.Page, filters.Limit, total),
	}, nil
}

// applyForm maps form fields onto the record with the stored normalizations:
// full email address, digits-only phone, right-padded agency code.
func (s *Service) applyForm(req Request, form Form) Request {
	req.StartDate = form.startDate()
	req.EmployeeName = form.EmployeeName
	req.EmployeeID = form.EmployeeID
	req.NonEmployee = form.NonEmployee
	req.WorkLocation = form.WorkLocation
	req.WorkPhone = NormalizePhone(form.WorkPhone)
	req.Email = NormalizeEmail(form.Email, s.emailDomain)
	req.AgencyName = form.AgencyName
	req.AgencyCode = PadAgencyCode(form.AgencyCode)
	req.Justification = form.Justification
	req.SubmitterName = form.SubmitterName
	req.SupervisorName = form.SupervisorName
	req.SecurityAdminName = form.SecurityAdminName
	return req
}

// buildArea shapes the security area per area type. HR/payroll overloads the
// director fields with the mainframe logon id and the fixed security mailbox
// chosen by the statewide-access flag; EPM carries no extras.
func (s *Service) buildArea(requestID uuid.UUID, form Form) SecurityArea {
	area := SecurityArea{RequestID: requestID, AreaType: form.AreaType}
	switch form.AreaType {
	case AreaAccountingProcurement, AreaELM:
		area.DirectorName = form.DirectorName
		area.DirectorEmail = EmailFromName(form.DirectorName, s.emailDomain)
	case AreaHRPayroll:
		area.DirectorName = form.MainframeLogonID
		if form.StatewideAccess {
			area.DirectorEmail = HRStatewideSecurityEmail
		} else {
			area.DirectorEmail = HRAgencySecurityEmail
		}
	}
	return area
}

func (s *Service) approverEmail(step approval.Step, req Request, area SecurityArea) string {
	switch step {
	case approval.StepUserSignature:
		return req.Email
	case approval.StepSupervisorApproval:
		return EmailFromName(req.SupervisorName, s.emailDomain)
	case approval.StepSecurityAdmin:
		return EmailFromName(req.SecurityAdminName, s.emailDomain)
	default:
		return area.DirectorEmail
	}
}

func (s *Service) wrapNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %v", httpx.ErrNotFound, err)
	}
	return err
}

func (s *Service) recordAudit(ctx context.Context, action string, requestID uuid.UUID, meta map[string]any) {
	if s.audit == nil {
		return
	}
	entry := shared.AuditLog{
		Action:   action,
		Entity:   "security_role_request",
		EntityID: requestID.String(),
		Meta:     meta,
	}
	if sess := shared.SessionFromContext(ctx); sess != nil {
		entry.Actor = sess.Identity()
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("audit record failed", slog.String("action", action), slog.Any("error", err))
	}
}
