package request

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accessflow/accessflow/internal/approval"
	"github.com/accessflow/accessflow/internal/platform/db"
)

// ErrNotFound indicates a missing request row.
var ErrNotFound = errors.New("request: not found")

// ListFilters narrows the request listing.
type ListFilters struct {
	EmployeeName string
	EmployeeID   string
	Status       Status
	Page         int
	Limit        int
}

// RepositoryPort describes the store operations used by Service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id uuid.UUID) (Request, error)
	GetArea(ctx context.Context, requestID uuid.UUID) (*SecurityArea, error)
	List(ctx context.Context, filters ListFilters) ([]Request, int, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// TxRepository exposes the transactional operations of the lifecycle
// sequences. Create and edit run their whole delete/insert/reset chains
// inside one transaction.
type TxRepository interface {
	InsertRequest(ctx context.Context, req Request) error
	UpdateRequest(ctx context.Context, req Request) error
	InsertArea(ctx context.Context, area SecurityArea) error
	UpdateArea(ctx context.Context, area SecurityArea) error
	DeleteAreas(ctx context.Context, requestID uuid.UUID) error
	InsertApproval(ctx context.Context, requestID uuid.UUID, step approval.Step, approverEmail string) error
	DeleteApprovalsBySteps(ctx context.Context, requestID uuid.UUID, steps []approval.Step) error
	ResetApprovalsExcept(ctx context.Context, requestID uuid.UUID, keep approval.Step) error
	DeleteRoleSelections(ctx context.Context, requestID uuid.UUID) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx wraps the callback in a read-committed transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

const requestColumns = `id, start_date, employee_name, COALESCE(employee_id, ''), non_employee, work_location, work_phone, email,
agency_name, agency_code, justification, submitter_name, supervisor_name, security_admin_name,
status, COALESCE(completed_by, ''), completed_at, COALESCE(point_of_contact, ''), created_at, updated_at`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	var status string
	err := row.Scan(&req.ID, &req.StartDate, &req.EmployeeName, &req.EmployeeID, &req.NonEmployee,
		&req.WorkLocation, &req.WorkPhone, &req.Email, &req.AgencyName, &req.AgencyCode,
		&req.Justification, &req.SubmitterName, &req.SupervisorName, &req.SecurityAdminName,
		&status, &req.CompletedBy, &req.CompletedAt, &req.PointOfContact, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return Request{}, err
	}
	req.Status = Status(status)
	return req, nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Request, error) {
	req, err := scanRequest(r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM security_role_requests WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Request{}, ErrNotFound
		}
		return Request{}, fmt.Errorf("request: get: %w", err)
	}
	return req, nil
}

func (r *Repository) GetArea(ctx context.Context, requestID uuid.UUID) (*SecurityArea, error) {
	var area SecurityArea
	var areaType string
	err := r.pool.QueryRow(ctx, `SELECT id, request_id, area_type, COALESCE(director_name, ''), COALESCE(director_email, ''), created_at
FROM security_areas WHERE request_id=$1 ORDER BY created_at DESC LIMIT 1`, requestID).
		Scan(&area.ID, &area.RequestID, &areaType, &area.DirectorName, &area.DirectorEmail, &area.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("request: get area: %w", err)
	}
	area.AreaType = AreaType(areaType)
	return &area, nil
}

// List uses a dynamically built query because the filters are optional.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Request, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.EmployeeName != "" {
		argCount++
		where += ` AND employee_name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filters.EmployeeName+"%")
	}
	if filters.EmployeeID != "" {
		argCount++
		where += ` AND employee_id = $` + strconv.Itoa(argCount)
		args = append(args, filters.EmployeeID)
	}
	if filters.Status != "" {
		argCount++
		where += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, string(filters.Status))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM security_role_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("request: count: %w", err)
	}

	query := `SELECT ` + requestColumns + ` FROM security_role_requests` + where + ` ORDER BY created_at DESC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("request: list: %w", err)
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("request: scan: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

// Delete removes the request row; the store cascades to areas, selections,
// copy details and approvals. Returns false when the id was already gone.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM security_role_requests WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("request: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Transactional operations

func (t *txRepo) InsertRequest(ctx context.Context, req Request) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO security_role_requests
(id, start_date, employee_name, employee_id, non_employee, work_location, work_phone, email,
 agency_name, agency_code, justification, submitter_name, supervisor_name, security_admin_name,
 status, point_of_contact, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())`,
		req.ID, req.StartDate, req.EmployeeName, req.EmployeeID, req.NonEmployee, req.WorkLocation,
		req.WorkPhone, req.Email, req.AgencyName, req.AgencyCode, req.Justification, req.SubmitterName,
		req.SupervisorName, req.SecurityAdminName, string(req.Status), req.PointOfContact)
	if err != nil {
		return fmt.Errorf("request: insert: %w", err)
	}
	return nil
}

func (t *txRepo) UpdateRequest(ctx context.Context, req Request) error {
	tag, err := t.tx.Exec(ctx, `UPDATE security_role_requests
SET start_date=$2, employee_name=$3, employee_id=$4, non_employee=$5, work_location=$6, work_phone=$7,
    email=$8, agency_name=$9, agency_code=$10, justification=$11, submitter_name=$12,
    supervisor_name=$13, security_admin_name=$14, updated_at=NOW()
WHERE id=$1`,
		req.ID, req.StartDate, req.EmployeeName, req.EmployeeID, req.NonEmployee, req.WorkLocation,
		req.WorkPhone, req.Email, req.AgencyName, req.AgencyCode, req.Justification, req.SubmitterName,
		req.SupervisorName, req.SecurityAdminName)
	if err != nil {
		return fmt.Errorf("request: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *txRepo) InsertArea(ctx context.Context, area SecurityArea) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO security_areas (request_id, area_type, director_name, director_email, created_at)
VALUES ($1, $2, $3, $4, NOW())`, area.RequestID, string(area.AreaType), area.DirectorName, area.DirectorEmail)
	if err != nil {
		return fmt.Errorf("request: insert area: %w", err)
	}
	return nil
}

func (t *txRepo) UpdateArea(ctx context.Context, area SecurityArea) error {
	tag, err := t.tx.Exec(ctx, `UPDATE security_areas SET director_name=$2, director_email=$3 WHERE id=$1`,
		area.ID, area.DirectorName, area.DirectorEmail)
	if err != nil {
		return fmt.Errorf("request: update area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *txRepo) DeleteAreas(ctx context.Context, requestID uuid.UUID) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM security_areas WHERE request_id=$1`, requestID); err != nil {
		return fmt.Errorf("request: delete areas: %w", err)
	}
	return nil
}

func (t *txRepo) InsertApproval(ctx context.Context, requestID uuid.UUID, step approval.Step, approverEmail string) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO request_approvals (request_id, step, approver_email, status, created_at)
VALUES ($1, $2, $3, 'pending', NOW())`, requestID, string(step), approverEmail)
	if err != nil {
		return fmt.Errorf("request: insert approval: %w", err)
	}
	return nil
}

func (t *txRepo) DeleteApprovalsBySteps(ctx context.Context, requestID uuid.UUID, steps []approval.Step) error {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		names = append(names, string(s))
	}
	if _, err := t.tx.Exec(ctx, `DELETE FROM request_approvals WHERE request_id=$1 AND step = ANY($2)`, requestID, names); err != nil {
		return fmt.Errorf("request: delete approvals: %w", err)
	}
	return nil
}

// ResetApprovalsExcept returns every step but keep to pending with cleared
// signature and approval time. An edit restarts the downstream workflow
// while preserving the user's own captured signature.
func (t *txRepo) ResetApprovalsExcept(ctx context.Context, requestID uuid.UUID, keep approval.Step) error {
	_, err := t.tx.Exec(ctx, `UPDATE request_approvals
SET status='pending', signature_data=NULL, approved_at=NULL
WHERE request_id=$1 AND step <> $2`, requestID, string(keep))
	if err != nil {
		return fmt.Errorf("request: reset approvals: %w", err)
	}
	return nil
}

func (t *txRepo) DeleteRoleSelections(ctx context.Context, requestID uuid.UUID) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM security_role_selections WHERE request_id=$1`, requestID); err != nil {
		return fmt.Errorf("request: delete role selections: %w", err)
	}
	return nil
}
