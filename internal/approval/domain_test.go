package approval

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRankOrdering(t *testing.T) {
	require.Less(t, Rank(StepUserSignature), Rank(StepSupervisorApproval))
	require.Less(t, Rank(StepSupervisorApproval), Rank(StepAccountingDirector))
	require.Equal(t, Rank(StepAccountingDirector), Rank(StepHRDirector))
	require.Equal(t, Rank(StepAccountingDirector), Rank(StepELMAdmin))
	require.Greater(t, Rank(StepSecurityAdmin), Rank(StepELMAdmin))

	// Unknown steps slot in with the area directors.
	require.Equal(t, 3, Rank(Step("some_future_step")))
}

func TestSortCanonical(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	requestID := uuid.New()
	approvals := []Approval{
		{ID: 4, RequestID: requestID, Step: StepSecurityAdmin, CreatedAt: base},
		{ID: 2, RequestID: requestID, Step: StepSupervisorApproval, CreatedAt: base.Add(time.Second)},
		{ID: 3, RequestID: requestID, Step: StepHRDirector, CreatedAt: base.Add(2 * time.Second)},
		{ID: 1, RequestID: requestID, Step: StepUserSignature, CreatedAt: base.Add(3 * time.Second)},
	}
	SortCanonical(approvals)

	got := make([]Step, 0, len(approvals))
	for _, a := range approvals {
		got = append(got, a.Step)
	}
	require.Equal(t, []Step{StepUserSignature, StepSupervisorApproval, StepHRDirector, StepSecurityAdmin}, got)
}

func TestSortCanonicalTiesByCreation(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	approvals := []Approval{
		{ID: 2, Step: StepELMAdmin, CreatedAt: base.Add(time.Minute)},
		{ID: 1, Step: StepAccountingDirector, CreatedAt: base},
	}
	SortCanonical(approvals)
	require.Equal(t, int64(1), approvals[0].ID)
	require.Equal(t, int64(2), approvals[1].ID)
}

func TestFullyApproved(t *testing.T) {
	require.False(t, FullyApproved(nil), "empty set must not open the gate")
	require.False(t, FullyApproved([]Approval{
		{Step: StepUserSignature, Status: StatusApproved},
		{Step: StepSecurityAdmin, Status: StatusPending},
	}))
	require.False(t, FullyApproved([]Approval{
		{Step: StepUserSignature, Status: StatusDenied},
	}))
	require.True(t, FullyApproved([]Approval{
		{Step: StepUserSignature, Status: StatusApproved},
		{Step: StepSupervisorApproval, Status: StatusApproved},
		{Step: StepSecurityAdmin, Status: StatusApproved},
	}))
}
