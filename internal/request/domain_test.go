package request

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accessflow/accessflow/internal/approval"
)

func TestRouteAfterSave(t *testing.T) {
	cases := map[AreaType]Destination{
		AreaELM:                   DestELMRoles,
		AreaEPMDataWarehouse:      DestEPMRoles,
		AreaHRPayroll:             DestHRPayrollRoles,
		AreaAccountingProcurement: DestGenericRoles,
		AreaType("something_else"): DestGenericRoles,
	}
	for area, want := range cases {
		require.Equal(t, want, RouteAfterSave(area), "area %s", area)
	}
}

func TestStepsForAreaAlwaysEndsWithSecurityAdmin(t *testing.T) {
	for _, area := range []AreaType{AreaAccountingProcurement, AreaHRPayroll, AreaEPMDataWarehouse, AreaELM} {
		steps := StepsForArea(area)
		require.Equal(t, approval.StepUserSignature, steps[0])
		require.Equal(t, approval.StepSupervisorApproval, steps[1])
		require.Equal(t, approval.StepSecurityAdmin, steps[len(steps)-1])
	}
}

func TestStepsForAreaCounts(t *testing.T) {
	require.Len(t, StepsForArea(AreaEPMDataWarehouse), 3)
	require.Len(t, StepsForArea(AreaAccountingProcurement), 4)
	require.Len(t, StepsForArea(AreaHRPayroll), 4)
	require.Len(t, StepsForArea(AreaELM), 4)
}

func TestKnownArea(t *testing.T) {
	require.True(t, KnownArea(AreaELM))
	require.False(t, KnownArea(AreaType("finance")))
	require.False(t, KnownArea(AreaType("")))
}
