package request

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/accessflow/accessflow/internal/approval"
	"github.com/accessflow/accessflow/internal/platform/httpx"
)

type memoryApprovalRow struct {
	id     int64
	step   approval.Step
	email  string
	status approval.Status
}

type memoryRequestRepo struct {
	requests   map[uuid.UUID]Request
	areas      map[uuid.UUID]SecurityArea
	approvals  map[uuid.UUID][]memoryApprovalRow
	selections map[uuid.UUID]bool
	nextID     int64
}

func newMemoryRequestRepo() *memoryRequestRepo {
	return &memoryRequestRepo{
		requests:   make(map[uuid.UUID]Request),
		areas:      make(map[uuid.UUID]SecurityArea),
		approvals:  make(map[uuid.UUID][]memoryApprovalRow),
		selections: make(map[uuid.UUID]bool),
	}
}

func (r *memoryRequestRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, r)
}

func (r *memoryRequestRepo) Get(ctx context.Context, id uuid.UUID) (Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return req, nil
}

func (r *memoryRequestRepo) GetArea(ctx context.Context, requestID uuid.UUID) (*SecurityArea, error) {
	area, ok := r.areas[requestID]
	if !ok {
		return nil, nil
	}
	return &area, nil
}

func (r *memoryRequestRepo) List(ctx context.Context, filters ListFilters) ([]Request, int, error) {
	var out []Request
	for _, req := range r.requests {
		if filters.EmployeeID != "" && req.EmployeeID != filters.EmployeeID {
			continue
		}
		out = append(out, req)
	}
	return out, len(out), nil
}

func (r *memoryRequestRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.requests[id]; !ok {
		return false, nil
	}
	delete(r.requests, id)
	delete(r.areas, id)
	delete(r.approvals, id)
	delete(r.selections, id)
	return true, nil
}

func (r *memoryRequestRepo) InsertRequest(ctx context.Context, req Request) error {
	r.requests[req.ID] = req
	return nil
}

func (r *memoryRequestRepo) UpdateRequest(ctx context.Context, req Request) error {
	if _, ok := r.requests[req.ID]; !ok {
		return ErrNotFound
	}
	existing := r.requests[req.ID]
	req.Status = existing.Status
	r.requests[req.ID] = req
	return nil
}

func (r *memoryRequestRepo) InsertArea(ctx context.Context, area SecurityArea) error {
	r.nextID++
	area.ID = r.nextID
	r.areas[area.RequestID] = area
	return nil
}

func (r *memoryRequestRepo) UpdateArea(ctx context.Context, area SecurityArea) error {
	existing, ok := r.areas[area.RequestID]
	if !ok {
		return ErrNotFound
	}
	existing.DirectorName = area.DirectorName
	existing.DirectorEmail = area.DirectorEmail
	r.areas[area.RequestID] = existing
	return nil
}

func (r *memoryRequestRepo) DeleteAreas(ctx context.Context, requestID uuid.UUID) error {
	delete(r.areas, requestID)
	return nil
}

func (r *memoryRequestRepo) InsertApproval(ctx context.Context, requestID uuid.UUID, step approval.Step, approverEmail string) error {
	r.nextID++
	r.approvals[requestID] = append(r.approvals[requestID], memoryApprovalRow{
		id:     r.nextID,
		step:   step,
		email:  approverEmail,
		status: approval.StatusPending,
	})
	return nil
}

func (r *memoryRequestRepo) DeleteApprovalsBySteps(ctx context.Context, requestID uuid.UUID, steps []approval.Step) error {
	drop := make(map[approval.Step]bool, len(steps))
	for _, s := range steps {
		drop[s] = true
	}
	var kept []memoryApprovalRow
	for _, row := range r.approvals[requestID] {
		if !drop[row.step] {
			kept = append(kept, row)
		}
	}
	r.approvals[requestID] = kept
	return nil
}

func (r *memoryRequestRepo) ResetApprovalsExcept(ctx context.Context, requestID uuid.UUID, keep approval.Step) error {
	rows := r.approvals[requestID]
	for i := range rows {
		if rows[i].step != keep {
			rows[i].status = approval.StatusPending
		}
	}
	return nil
}

func (r *memoryRequestRepo) DeleteRoleSelections(ctx context.Context, requestID uuid.UUID) error {
	delete(r.selections, requestID)
	return nil
}

func (r *memoryRequestRepo) steps(requestID uuid.UUID) []approval.Step {
	var out []approval.Step
	for _, row := range r.approvals[requestID] {
		out = append(out, row.step)
	}
	return out
}

func (r *memoryRequestRepo) setStatus(requestID uuid.UUID, step approval.Step, status approval.Status) {
	rows := r.approvals[requestID]
	for i := range rows {
		if rows[i].step == step {
			rows[i].status = status
		}
	}
}

type stubApprovalReader struct {
	next map[uuid.UUID]*approval.Approval
}

func (s *stubApprovalReader) NextPendingStep(ctx context.Context, requestID uuid.UUID) (*approval.Approval, error) {
	if s.next == nil {
		return nil, nil
	}
	return s.next[requestID], nil
}

func newTestService(repo *memoryRequestRepo) *Service {
	svc := NewService(repo, &stubApprovalReader{}, nil, slog.Default(), "state.mn.us")
	return svc
}

func validForm(area AreaType) Form {
	form := Form{
		StartDate:         time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		EmployeeName:      "Pat Carlson",
		EmployeeID:        "100234",
		WorkLocation:      "Centennial Office Building",
		WorkPhone:         "(651) 555-0123",
		Email:             "pat.carlson",
		AgencyName:        "Department of Administration",
		AgencyCode:        "G",
		Justification:     "New hire needs system access",
		SubmitterName:     "Pat Carlson",
		SupervisorName:    "Lee Morgan",
		SecurityAdminName: "Dana Reyes",
		AreaType:          area,
	}
	switch area {
	case AreaAccountingProcurement, AreaELM:
		form.DirectorName = "Chris Walker"
	case AreaHRPayroll:
		form.MainframeLogonID = "MN00123"
	}
	return form
}

func TestCreateExpandsApprovalSteps(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	req, dest, err := svc.Create(context.Background(), validForm(AreaAccountingProcurement))
	require.NoError(t, err)
	require.Equal(t, DestGenericRoles, dest)
	require.Equal(t, StatusPending, req.Status)

	require.Equal(t, []approval.Step{
		approval.StepUserSignature,
		approval.StepSupervisorApproval,
		approval.StepAccountingDirector,
		approval.StepSecurityAdmin,
	}, repo.steps(req.ID))
}

func TestCreateNormalizesStoredFields(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	req, _, err := svc.Create(context.Background(), validForm(AreaAccountingProcurement))
	require.NoError(t, err)

	stored := repo.requests[req.ID]
	require.Equal(t, "pat.carlson@state.mn.us", stored.Email)
	require.Equal(t, "6515550123", stored.WorkPhone)
	require.Equal(t, "G00", stored.AgencyCode)
}

func TestCreateEPMHasNoAreaStep(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	req, dest, err := svc.Create(context.Background(), validForm(AreaEPMDataWarehouse))
	require.NoError(t, err)
	require.Equal(t, DestEPMRoles, dest)
	require.Equal(t, []approval.Step{
		approval.StepUserSignature,
		approval.StepSupervisorApproval,
		approval.StepSecurityAdmin,
	}, repo.steps(req.ID))

	area := repo.areas[req.ID]
	require.Empty(t, area.DirectorName)
	require.Empty(t, area.DirectorEmail)
}

func TestCreateHRPayrollStatewideMailbox(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	form := validForm(AreaHRPayroll)
	form.StatewideAccess = true
	req, dest, err := svc.Create(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, DestHRPayrollRoles, dest)

	area := repo.areas[req.ID]
	require.Equal(t, "MN00123", area.DirectorName)
	require.Equal(t, HRStatewideSecurityEmail, area.DirectorEmail)

	form.StatewideAccess = false
	req2, _, err := svc.Create(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, HRAgencySecurityEmail, repo.areas[req2.ID].DirectorEmail)
}

func TestCreateRejectsPastStartDate(t *testing.T) {
	svc := newTestService(newMemoryRequestRepo())

	form := validForm(AreaELM)
	form.StartDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	_, _, err := svc.Create(context.Background(), form)
	require.ErrorIs(t, err, httpx.ErrValidation)

	form.StartDate = time.Now().Format("2006-01-02")
	_, _, err = svc.Create(context.Background(), form)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestStartDateBoundaryUsesLocalCalendarDay(t *testing.T) {
	v := newFormValidator()

	// 10pm central time is already tomorrow in UTC; tomorrow's local date
	// must still count as after today.
	central := time.FixedZone("CST", -6*3600)
	now := time.Date(2026, time.August, 26, 22, 0, 0, 0, central)

	form := validForm(AreaELM)
	form.StartDate = "2026-08-27"
	require.NoError(t, v.Check(form, now))

	form.StartDate = "2026-08-26"
	require.ErrorIs(t, v.Check(form, now), httpx.ErrValidation)
}

func TestCreateEmployeeIDRequiredUnlessNonEmployee(t *testing.T) {
	svc := newTestService(newMemoryRequestRepo())

	form := validForm(AreaELM)
	form.EmployeeID = ""
	_, _, err := svc.Create(context.Background(), form)
	require.ErrorIs(t, err, httpx.ErrValidation)

	form.NonEmployee = true
	_, _, err = svc.Create(context.Background(), form)
	require.NoError(t, err)
}

func TestEditAreaChangeReplacesAreaSteps(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	req, _, err := svc.Create(context.Background(), validForm(AreaHRPayroll))
	require.NoError(t, err)

	repo.selections[req.ID] = true
	repo.setStatus(req.ID, approval.StepUserSignature, approval.StatusApproved)
	repo.setStatus(req.ID, approval.StepSupervisorApproval, approval.StatusApproved)

	_, dest, err := svc.Edit(context.Background(), req.ID, validForm(AreaAccountingProcurement))
	require.NoError(t, err)
	require.Equal(t, DestGenericRoles, dest)

	steps := repo.steps(req.ID)
	require.NotContains(t, steps, approval.StepHRDirector)
	require.Contains(t, steps, approval.StepAccountingDirector)
	require.Contains(t, steps, approval.StepUserSignature)

	// Role selections cleared, signature kept, everything else pending again.
	require.False(t, repo.selections[req.ID])
	for _, row := range repo.approvals[req.ID] {
		if row.step == approval.StepUserSignature {
			require.Equal(t, approval.StatusApproved, row.status)
		} else {
			require.Equal(t, approval.StatusPending, row.status)
		}
	}
	require.Equal(t, AreaAccountingProcurement, repo.areas[req.ID].AreaType)
}

func TestEditSameAreaUpdatesInPlace(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	req, _, err := svc.Create(context.Background(), validForm(AreaELM))
	require.NoError(t, err)
	originalSteps := repo.steps(req.ID)

	form := validForm(AreaELM)
	form.DirectorName = "Jordan Blake"
	_, _, err = svc.Edit(context.Background(), req.ID, form)
	require.NoError(t, err)

	require.Equal(t, originalSteps, repo.steps(req.ID))
	require.Equal(t, "Jordan Blake", repo.areas[req.ID].DirectorName)
	require.Equal(t, "jordan.blake@state.mn.us", repo.areas[req.ID].DirectorEmail)
}

func TestEditRejectsCompletedRequest(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	req, _, err := svc.Create(context.Background(), validForm(AreaELM))
	require.NoError(t, err)

	stored := repo.requests[req.ID]
	stored.Status = StatusCompleted
	repo.requests[req.ID] = stored

	_, _, err = svc.Edit(context.Background(), req.ID, validForm(AreaELM))
	require.ErrorIs(t, err, httpx.ErrPrecondition)
}

func TestEditMissingRequest(t *testing.T) {
	svc := newTestService(newMemoryRequestRepo())
	_, _, err := svc.Edit(context.Background(), uuid.New(), validForm(AreaELM))
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteIdempotent(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	req, _, err := svc.Create(context.Background(), validForm(AreaELM))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), req.ID))
	require.NoError(t, svc.Delete(context.Background(), req.ID))
	require.Empty(t, repo.requests)
}

func TestListDecoratesNextStep(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	req, _, err := svc.Create(context.Background(), validForm(AreaELM))
	require.NoError(t, err)

	reader := &stubApprovalReader{next: map[uuid.UUID]*approval.Approval{
		req.ID: {ID: 42, Step: approval.StepSupervisorApproval, Status: approval.StatusPending},
	}}
	svc.approvals = reader

	result, err := svc.List(context.Background(), ListFilters{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, int64(42), result.Items[0].NextStepID)
	require.Equal(t, approval.StepSupervisorApproval, result.Items[0].NextStep)
	require.Equal(t, "awaiting supervisor_approval", result.Items[0].StatusBadge)
}

func TestListCompletedBadge(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	req, _, err := svc.Create(context.Background(), validForm(AreaELM))
	require.NoError(t, err)

	stored := repo.requests[req.ID]
	stored.Status = StatusCompleted
	repo.requests[req.ID] = stored

	result, err := svc.List(context.Background(), ListFilters{})
	require.NoError(t, err)
	require.Equal(t, "completed", result.Items[0].StatusBadge)
}

func TestApproverEmailsPerStep(t *testing.T) {
	repo := newMemoryRequestRepo()
	svc := newTestService(repo)

	req, _, err := svc.Create(context.Background(), validForm(AreaAccountingProcurement))
	require.NoError(t, err)

	byStep := make(map[approval.Step]string)
	for _, row := range repo.approvals[req.ID] {
		byStep[row.step] = row.email
	}
	require.Equal(t, "pat.carlson@state.mn.us", byStep[approval.StepUserSignature])
	require.Equal(t, "lee.morgan@state.mn.us", byStep[approval.StepSupervisorApproval])
	require.Equal(t, "chris.walker@state.mn.us", byStep[approval.StepAccountingDirector])
	require.Equal(t, "dana.reyes@state.mn.us", byStep[approval.StepSecurityAdmin])
}
