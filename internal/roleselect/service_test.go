package roleselect

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/accessflow/accessflow/internal/platform/httpx"
)

type memorySelectionRepo struct {
	rows            map[uuid.UUID]Row
	copies          map[uuid.UUID]CopyUserDetails
	latestCompleted map[string]uuid.UUID
	upserts         int
}

func newMemorySelectionRepo() *memorySelectionRepo {
	return &memorySelectionRepo{
		rows:            make(map[uuid.UUID]Row),
		copies:          make(map[uuid.UUID]CopyUserDetails),
		latestCompleted: make(map[string]uuid.UUID),
	}
}

func (r *memorySelectionRepo) Upsert(ctx context.Context, row Row) error {
	r.rows[row.RequestID] = row
	r.upserts++
	return nil
}

func (r *memorySelectionRepo) Get(ctx context.Context, requestID uuid.UUID) (*Row, error) {
	row, ok := r.rows[requestID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *memorySelectionRepo) Delete(ctx context.Context, requestID uuid.UUID) error {
	delete(r.rows, requestID)
	return nil
}

func (r *memorySelectionRepo) LatestCompletedRequest(ctx context.Context, employeeID string) (uuid.UUID, bool, error) {
	id, ok := r.latestCompleted[employeeID]
	return id, ok, nil
}

func (r *memorySelectionRepo) UpsertCopyDetails(ctx context.Context, details CopyUserDetails) error {
	r.copies[details.RequestID] = details
	return nil
}

func (r *memorySelectionRepo) GetCopyDetails(ctx context.Context, requestID uuid.UUID) (*CopyUserDetails, error) {
	d, ok := r.copies[requestID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *memorySelectionRepo) DeleteCopyDetails(ctx context.Context, requestID uuid.UUID) error {
	delete(r.copies, requestID)
	return nil
}

func TestSaveELMRequiresAtLeastOneRole(t *testing.T) {
	repo := newMemorySelectionRepo()
	svc := NewService(repo, nil, nil)
	requestID := uuid.New()

	err := svc.Save(context.Background(), requestID, ELMSelections{SupervisorAcknowledged: true})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "select at least one role")
	require.Empty(t, repo.rows)

	err = svc.Save(context.Background(), requestID, ELMSelections{
		SupervisorAcknowledged: true,
		LearningAdministrator:  true,
	})
	require.NoError(t, err)

	saved := repo.rows[requestID]
	require.True(t, saved.ELMSystemAdministrator)
	require.False(t, saved.ELMExternalLearnerAdm)
	require.False(t, saved.ELMEnrollmentAdmin)
	require.False(t, saved.ELMCourseAdmin)
	require.False(t, saved.ELMCurriculumAdmin)
	require.False(t, saved.ELMReportingAdmin)
	require.False(t, saved.ELMInstructor)
	require.False(t, saved.ELMSandboxAccess)
}

func TestSaveELMRequiresAcknowledgment(t *testing.T) {
	svc := NewService(newMemorySelectionRepo(), nil, nil)

	err := svc.Save(context.Background(), uuid.New(), ELMSelections{LearningAdministrator: true})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "supervisor approval")
}

func TestSaveIsIdempotent(t *testing.T) {
	repo := newMemorySelectionRepo()
	svc := NewService(repo, nil, nil)
	requestID := uuid.New()
	sel := AccountingSelections{VoucherEntry: true, HomeBusinessUnit: "G0201"}

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Save(context.Background(), requestID, sel))
	}
	require.Len(t, repo.rows, 1)
	require.True(t, repo.rows[requestID].APVoucherEntry)
}

func TestSavePadsHomeBusinessUnit(t *testing.T) {
	repo := newMemorySelectionRepo()
	svc := NewService(repo, nil, nil)
	requestID := uuid.New()

	err := svc.Save(context.Background(), requestID, AccountingSelections{VoucherEntry: true, HomeBusinessUnit: "G02"})
	require.NoError(t, err)
	require.Equal(t, "G0200", repo.rows[requestID].HomeBusinessUnit)
}

func TestSaveAbandonsCopyPath(t *testing.T) {
	repo := newMemorySelectionRepo()
	svc := NewService(repo, nil, nil)
	requestID := uuid.New()
	repo.copies[requestID] = CopyUserDetails{RequestID: requestID, CopyUserEmployeeID: "00123456"}

	require.NoError(t, svc.Save(context.Background(), requestID, AccountingSelections{VoucherEntry: true}))
	require.Empty(t, repo.copies)
}

func TestSaveHRPayrollScope(t *testing.T) {
	svc := NewService(newMemorySelectionRepo(), nil, nil)

	err := svc.Save(context.Background(), uuid.New(), HRPayrollSelections{TimeEntry: true})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "access scope")

	err = svc.Save(context.Background(), uuid.New(), HRPayrollSelections{AccessScope: "everything", TimeEntry: true})
	require.ErrorIs(t, err, httpx.ErrValidation)

	err = svc.Save(context.Background(), uuid.New(), HRPayrollSelections{AccessScope: AccessScopeAgency, TimeEntry: true})
	require.NoError(t, err)
}

func TestSaveEPMLockedRoles(t *testing.T) {
	repo := newMemorySelectionRepo()
	svc := NewService(repo, nil, nil)
	requestID := uuid.New()

	// Submitting the locked roles unchecked still persists them as true.
	err := svc.Save(context.Background(), requestID, EPMSelections{HomeBusinessUnit: "T7901"})
	require.NoError(t, err)
	saved := repo.rows[requestID]
	require.True(t, saved.RAPSReporting)
	require.True(t, saved.RAPSStatewide)
	require.False(t, saved.RAPSAgencyRpt)
}

func TestSaveEPMNewUserNeedsSEMA4(t *testing.T) {
	svc := NewService(newMemorySelectionRepo(), nil, nil)

	err := svc.Save(context.Background(), uuid.New(), EPMSelections{NewUser: true})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "SEMA4")

	err = svc.Save(context.Background(), uuid.New(), EPMSelections{NewUser: true, SEMA4Code: "AB123"})
	require.NoError(t, err)
}

func TestCopyFromUserNoCompletedRequest(t *testing.T) {
	repo := newMemorySelectionRepo()
	svc := NewService(repo, nil, nil)
	requestID := uuid.New()

	err := svc.CopyFromUser(context.Background(), requestID, CopyUserDetails{
		CopyUserName:       "Pat Carlson",
		CopyUserEmployeeID: "00999999",
	})
	require.NoError(t, err, "missing source is a soft no-op")
	_, exists := repo.rows[requestID]
	require.False(t, exists)
	require.Contains(t, repo.copies, requestID, "copy-user record still marks the chosen path")
}

func TestCopyFromUserDuplicatesSource(t *testing.T) {
	repo := newMemorySelectionRepo()
	svc := NewService(repo, nil, nil)

	sourceID := uuid.New()
	repo.latestCompleted["00123456"] = sourceID
	repo.rows[sourceID] = Row{
		RequestID:        sourceID,
		HomeBusinessUnit: "G0201",
		APVoucherEntry:   true,
		GLInquiry:        true,
	}

	targetID := uuid.New()
	// Pre-existing manual selections must be replaced, not merged.
	repo.rows[targetID] = Row{RequestID: targetID, ELMSandboxAccess: true}

	err := svc.CopyFromUser(context.Background(), targetID, CopyUserDetails{
		CopyUserName:       "Pat Carlson",
		CopyUserEmployeeID: "00123456",
	})
	require.NoError(t, err)

	copied := repo.rows[targetID]
	require.Equal(t, targetID, copied.RequestID)
	require.True(t, copied.APVoucherEntry)
	require.True(t, copied.GLInquiry)
	require.False(t, copied.ELMSandboxAccess)
	require.Equal(t, CopiedJustification, copied.RoleJustification)
}

func TestCopyFromUserKeepsSourceJustification(t *testing.T) {
	repo := newMemorySelectionRepo()
	svc := NewService(repo, nil, nil)

	sourceID := uuid.New()
	repo.latestCompleted["00123456"] = sourceID
	repo.rows[sourceID] = Row{RequestID: sourceID, APVoucherEntry: true, RoleJustification: "fiscal year close coverage"}

	targetID := uuid.New()
	require.NoError(t, svc.CopyFromUser(context.Background(), targetID, CopyUserDetails{CopyUserEmployeeID: "00123456"}))
	require.Equal(t, "fiscal year close coverage", repo.rows[targetID].RoleJustification)
}

func TestCopyFromUserRequiresEmployeeID(t *testing.T) {
	svc := NewService(newMemorySelectionRepo(), nil, nil)

	err := svc.CopyFromUser(context.Background(), uuid.New(), CopyUserDetails{CopyUserName: "Pat Carlson"})
	require.ErrorIs(t, err, httpx.ErrValidation)
}
