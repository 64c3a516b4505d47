package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository describes the store operations used by Service.
type Repository interface {
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]Approval, error)
	Get(ctx context.Context, id int64) (Approval, error)
	UpdateDecision(ctx context.Context, id int64, d Decision) error
	AutoApprovePending(ctx context.Context, requestID uuid.UUID, signature string) (int, error)
	RequestCompleted(ctx context.Context, requestID uuid.UUID) (bool, error)
	MarkRequestCompleted(ctx context.Context, requestID uuid.UUID, completedBy string) (bool, error)
}

// Decision carries the mutable fields written when a step is decided.
type Decision struct {
	Status        Status
	ApproverEmail string
	SignatureData string
	Comments      string
	ApprovedAt    *time.Time
}

// ErrNotFound indicates a missing approval or request row.
var ErrNotFound = errors.New("approval: not found")

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const approvalColumns = `id, request_id, step, approver_email, status, COALESCE(signature_data, ''), approved_at, COALESCE(comments, ''), created_at`

func scanApproval(row pgx.Row) (Approval, error) {
	var a Approval
	var step, status string
	if err := row.Scan(&a.ID, &a.RequestID, &step, &a.ApproverEmail, &status, &a.SignatureData, &a.ApprovedAt, &a.Comments, &a.CreatedAt); err != nil {
		return Approval{}, err
	}
	a.Step = Step(step)
	a.Status = Status(status)
	return a, nil
}

func (r *repository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]Approval, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+approvalColumns+`
FROM request_approvals WHERE request_id=$1 ORDER BY created_at ASC, id ASC`, requestID)
	if err != nil {
		return nil, fmt.Errorf("approval: list: %w", err)
	}
	defer rows.Close()

	var approvals []Approval
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("approval: scan: %w", err)
		}
		approvals = append(approvals, a)
	}
	return approvals, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Approval, error) {
	a, err := scanApproval(r.pool.QueryRow(ctx, `SELECT `+approvalColumns+`
FROM request_approvals WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Approval{}, ErrNotFound
		}
		return Approval{}, fmt.Errorf("approval: get: %w", err)
	}
	return a, nil
}

func (r *repository) UpdateDecision(ctx context.Context, id int64, d Decision) error {
	tag, err := r.pool.Exec(ctx, `UPDATE request_approvals
SET status=$2, approver_email=COALESCE(NULLIF($3, ''), approver_email), signature_data=$4, comments=$5, approved_at=$6
WHERE id=$1`, id, string(d.Status), d.ApproverEmail, d.SignatureData, d.Comments, d.ApprovedAt)
	if err != nil {
		return fmt.Errorf("approval: update decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) AutoApprovePending(ctx context.Context, requestID uuid.UUID, signature string) (int, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE request_approvals
SET status='approved', signature_data=$2, approved_at=NOW()
WHERE request_id=$1 AND status='pending'`, requestID, signature)
	if err != nil {
		return 0, fmt.Errorf("approval: auto approve: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *repository) RequestCompleted(ctx context.Context, requestID uuid.UUID) (bool, error) {
	var status string
	err := r.pool.QueryRow(ctx, `SELECT status FROM security_role_requests WHERE id=$1`, requestID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("approval: request status: %w", err)
	}
	return status == "completed", nil
}

// MarkRequestCompleted flips the request to completed. The status guard in
// the WHERE clause makes the transition race-safe: the second of two
// concurrent completers sees zero rows affected.
func (r *repository) MarkRequestCompleted(ctx context.Context, requestID uuid.UUID, completedBy string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE security_role_requests
SET status='completed', completed_by=$2, completed_at=NOW()
WHERE id=$1 AND status <> 'completed'`, requestID, completedBy)
	if err != nil {
		return false, fmt.Errorf("approval: mark completed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
