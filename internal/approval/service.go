package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/accessflow/accessflow/internal/platform/httpx"
	"github.com/accessflow/accessflow/internal/shared"
)

// AuditPort records workflow events.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// DecisionMetrics counts approve/deny outcomes per step.
type DecisionMetrics interface {
	ObserveDecision(step, outcome string)
}

// Service drives the approval workflow state machine.
type Service struct {
	repo        Repository
	audit       AuditPort
	logger      *slog.Logger
	metrics     DecisionMetrics
	autoApprove bool
}

// NewService constructs the approval Service. autoApprove enables the bulk
// auto-approve convenience, intended only for non-production deployments.
func NewService(repo Repository, audit AuditPort, logger *slog.Logger, autoApprove bool) *Service {
	return &Service{repo: repo, audit: audit, logger: logger, autoApprove: autoApprove}
}

// WithMetrics attaches the decision counter. Nil-safe by omission.
func (s *Service) WithMetrics(m DecisionMetrics) *Service {
	s.metrics = m
	return s
}

// ListForRequest returns the request's approvals in canonical order.
func (s *Service) ListForRequest(ctx context.Context, requestID uuid.UUID) ([]Approval, error) {
	approvals, err := s.repo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	SortCanonical(approvals)
	return approvals, nil
}

// NextPendingStep returns the first pending approval in canonical order, or
// nil when nothing is actionable.
func (s *Service) NextPendingStep(ctx context.Context, requestID uuid.UUID) (*Approval, error) {
	approvals, err := s.ListForRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	for i := range approvals {
		if approvals[i].Status == StatusPending {
			return &approvals[i], nil
		}
	}
	return nil, nil
}

// IsFullyApproved reports whether every step is approved. An empty step set
// does not count as approved.
func (s *Service) IsFullyApproved(ctx context.Context, requestID uuid.UUID) (bool, error) {
	approvals, err := s.repo.ListByRequest(ctx, requestID)
	if err != nil {
		return false, err
	}
	return FullyApproved(approvals), nil
}

// CanComplete reports whether the completion gate is open: all steps
// approved and the request not already completed.
func (s *Service) CanComplete(ctx context.Context, requestID uuid.UUID) (bool, error) {
	completed, err := s.repo.RequestCompleted(ctx, requestID)
	if err != nil {
		return false, s.wrapNotFound(err)
	}
	if completed {
		return false, nil
	}
	return s.IsFullyApproved(ctx, requestID)
}

// ApproveInput carries the approver's decision payload.
type ApproveInput struct {
	ApproverEmail string
	SignatureData string
	Comments      string
}

// Approve transitions a pending step to approved with the captured signature.
func (s *Service) Approve(ctx context.Context, id int64, input ApproveInput) (Approval, error) {
	if strings.TrimSpace(input.SignatureData) == "" {
		return Approval{}, fmt.Errorf("%w: signature required", httpx.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Approval{}, s.wrapNotFound(err)
	}
	if current.Status != StatusPending {
		return Approval{}, fmt.Errorf("%w: approval already %s", httpx.ErrPrecondition, current.Status)
	}
	now := time.Now()
	d := Decision{
		Status:        StatusApproved,
		ApproverEmail: input.ApproverEmail,
		SignatureData: input.SignatureData,
		Comments:      input.Comments,
		ApprovedAt:    &now,
	}
	if err := s.repo.UpdateDecision(ctx, id, d); err != nil {
		return Approval{}, s.wrapNotFound(err)
	}
	s.observe(current.Step, StatusApproved)
	s.recordAudit(ctx, "APPROVAL_APPROVE", current.RequestID, map[string]any{"step": string(current.Step), "approval_id": id})
	current.Status = StatusApproved
	current.SignatureData = input.SignatureData
	current.Comments = input.Comments
	current.ApprovedAt = &now
	if input.ApproverEmail != "" {
		current.ApproverEmail = input.ApproverEmail
	}
	return current, nil
}

// Deny transitions a pending step to denied. Comments are mandatory so the
// requester learns why.
func (s *Service) Deny(ctx context.Context, id int64, approverEmail, comments string) (Approval, error) {
	if strings.TrimSpace(comments) == "" {
		return Approval{}, fmt.Errorf("%w: comments required to deny", httpx.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Approval{}, s.wrapNotFound(err)
	}
	if current.Status != StatusPending {
		return Approval{}, fmt.Errorf("%w: approval already %s", httpx.ErrPrecondition, current.Status)
	}
	d := Decision{
		Status:        StatusDenied,
		ApproverEmail: approverEmail,
		Comments:      comments,
	}
	if err := s.repo.UpdateDecision(ctx, id, d); err != nil {
		return Approval{}, s.wrapNotFound(err)
	}
	s.observe(current.Step, StatusDenied)
	s.recordAudit(ctx, "APPROVAL_DENY", current.RequestID, map[string]any{"step": string(current.Step), "approval_id": id})
	current.Status = StatusDenied
	current.Comments = comments
	if approverEmail != "" {
		current.ApproverEmail = approverEmail
	}
	return current, nil
}

// AutoApproveSignature is the placeholder written by the bulk convenience.
const AutoApproveSignature = "auto-approved"

// AutoApproveAllPending approves every pending step with a placeholder
// signature. Refused unless the deployment enables it; callers additionally
// gate on the session's test-mode flag.
func (s *Service) AutoApproveAllPending(ctx context.Context, requestID uuid.UUID) (int, error) {
	if !s.autoApprove {
		return 0, fmt.Errorf("%w: auto-approve disabled", httpx.ErrForbidden)
	}
	count, err := s.repo.AutoApprovePending(ctx, requestID, AutoApproveSignature)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.recordAudit(ctx, "APPROVAL_AUTO_APPROVE", requestID, map[string]any{"count": count})
	}
	return count, nil
}

// CompleteRequest marks the request completed once the gate is open.
// The gate is re-checked here even though the UI hides the action.
func (s *Service) CompleteRequest(ctx context.Context, requestID uuid.UUID, completedBy string) error {
	if strings.TrimSpace(completedBy) == "" {
		return fmt.Errorf("%w: completed-by name required", httpx.ErrValidation)
	}
	ok, err := s.CanComplete(ctx, requestID)
	if err != nil {
		return s.wrapNotFound(err)
	}
	if !ok {
		return fmt.Errorf("%w: request has unapproved steps or is already completed", httpx.ErrPrecondition)
	}
	changed, err := s.repo.MarkRequestCompleted(ctx, requestID, completedBy)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("%w: request already completed", httpx.ErrPrecondition)
	}
	s.recordAudit(ctx, "REQUEST_COMPLETE", requestID, map[string]any{"completed_by": completedBy})
	return nil
}

func (s *Service) observe(step Step, outcome Status) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveDecision(string(step), string(outcome))
}

func (s *Service) wrapNotFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s", httpx.ErrNotFound, err)
	}
	return err
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

// parseApprovalID is shared by handler routes.
func parseApprovalID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid approval id", httpx.ErrValidation)
	}
	return id, nil
}
