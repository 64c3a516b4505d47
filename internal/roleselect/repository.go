package roleselect

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CopyUserDetails records whose existing access a request replicates.
// Its presence signals the copy path was chosen.
type CopyUserDetails struct {
	RequestID          uuid.UUID `json:"request_id"`
	CopyUserName       string    `json:"copy_user_name"`
	CopyUserEmployeeID string    `json:"copy_user_employee_id"`
	CopyUserSEMA4ID    string    `json:"copy_user_sema4_id"`
}

// Repository describes the store operations used by Service.
type Repository interface {
	Upsert(ctx context.Context, row Row) error
	Get(ctx context.Context, requestID uuid.UUID) (*Row, error)
	Delete(ctx context.Context, requestID uuid.UUID) error
	LatestCompletedRequest(ctx context.Context, employeeID string) (uuid.UUID, bool, error)
	UpsertCopyDetails(ctx context.Context, details CopyUserDetails) error
	GetCopyDetails(ctx context.Context, requestID uuid.UUID) (*CopyUserDetails, error)
	DeleteCopyDetails(ctx context.Context, requestID uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Upsert writes the selection row keyed by request id, overwriting any
// previous submission so the one-row-per-request invariant holds.
func (r *repository) Upsert(ctx context.Context, row Row) error {
	cols := row.columns()

	names := make([]string, 0, len(cols)+1)
	placeholders := make([]string, 0, len(cols)+1)
	updates := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)

	names = append(names, "request_id")
	placeholders = append(placeholders, "$1")
	args = append(args, row.RequestID)

	for i, c := range cols {
		names = append(names, c.name)
		placeholders = append(placeholders, "$"+strconv.Itoa(i+2))
		updates = append(updates, c.name+"=EXCLUDED."+c.name)
		args = append(args, c.value)
	}

	query := `INSERT INTO security_role_selections (` + strings.Join(names, ", ") + `)
VALUES (` + strings.Join(placeholders, ", ") + `)
ON CONFLICT (request_id) DO UPDATE SET ` + strings.Join(updates, ", ")

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("roleselect: upsert: %w", err)
	}
	return nil
}

// Get loads the selection row. Absence is reported as a nil row, not an
// error.
func (r *repository) Get(ctx context.Context, requestID uuid.UUID) (*Row, error) {
	var row Row
	cols := row.columns()

	names := make([]string, 0, len(cols))
	dests := make([]any, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.name)
		dests = append(dests, c.value)
	}

	query := `SELECT ` + strings.Join(names, ", ") + ` FROM security_role_selections WHERE request_id=$1`
	if err := r.pool.QueryRow(ctx, query, requestID).Scan(dests...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("roleselect: get: %w", err)
	}
	row.RequestID = requestID
	return &row, nil
}

func (r *repository) Delete(ctx context.Context, requestID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM security_role_selections WHERE request_id=$1`, requestID); err != nil {
		return fmt.Errorf("roleselect: delete: %w", err)
	}
	return nil
}

// LatestCompletedRequest finds the most recent completed request for the
// employee, the source for the copy path.
func (r *repository) LatestCompletedRequest(ctx context.Context, employeeID string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT id FROM security_role_requests
WHERE employee_id=$1 AND status='completed'
ORDER BY created_at DESC LIMIT 1`, employeeID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("roleselect: latest completed request: %w", err)
	}
	return id, true, nil
}

func (r *repository) UpsertCopyDetails(ctx context.Context, details CopyUserDetails) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO copy_user_details (request_id, copy_user_name, copy_user_employee_id, copy_user_sema4_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (request_id) DO UPDATE SET copy_user_name=EXCLUDED.copy_user_name, copy_user_employee_id=EXCLUDED.copy_user_employee_id, copy_user_sema4_id=EXCLUDED.copy_user_sema4_id`,
		details.RequestID, details.CopyUserName, details.CopyUserEmployeeID, details.CopyUserSEMA4ID)
	if err != nil {
		return fmt.Errorf("roleselect: upsert copy details: %w", err)
	}
	return nil
}

func (r *repository) GetCopyDetails(ctx context.Context, requestID uuid.UUID) (*CopyUserDetails, error) {
	var d CopyUserDetails
	err := r.pool.QueryRow(ctx, `SELECT request_id, copy_user_name, copy_user_employee_id, copy_user_sema4_id
FROM copy_user_details WHERE request_id=$1`, requestID).Scan(&d.RequestID, &d.CopyUserName, &d.CopyUserEmployeeID, &d.CopyUserSEMA4ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("roleselect: get copy details: %w", err)
	}
	return &d, nil
}

func (r *repository) DeleteCopyDetails(ctx context.Context, requestID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM copy_user_details WHERE request_id=$1`, requestID); err != nil {
		return fmt.Errorf("roleselect: delete copy details: %w", err)
	}
	return nil
}
