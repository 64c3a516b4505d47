package roleselect

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAccountingRoundTrip(t *testing.T) {
	sel := AccountingSelections{
		HomeBusinessUnit:   "G0201",
		OtherBusinessUnits: "G0202, G0203",
		Justification:      "grant accounting backup",
		VoucherEntry:       true,
		BudgetOverride:     true,
		NVisionReporting:   true,
		PCardAdmin:         true,
	}
	require.Equal(t, sel, AccountingFromRow(sel.row(uuid.New())))
}

func TestHRPayrollRoundTrip(t *testing.T) {
	sel := HRPayrollSelections{
		AccessScope:           AccessScopeDepartment,
		ProhibitedDepartments: "T790122, T790123",
		PayrollDataEntry:      true,
		GarnishmentEntry:      true,
		LeaveAccounting:       true,
	}
	require.Equal(t, sel, HRPayrollFromRow(sel.row(uuid.New())))
}

func TestEPMRoundTrip(t *testing.T) {
	sel := EPMSelections{
		HomeBusinessUnit: "T7901",
		DataExtracts:     true,
		NewUser:          true,
		SEMA4Code:        "AB123",
		// Locked roles read back as stored.
		RAPSReporting: true,
		RAPSStatewide: true,
	}
	require.Equal(t, sel, EPMFromRow(sel.row(uuid.New())))
}

func TestELMMapping(t *testing.T) {
	sel := ELMSelections{
		SupervisorAcknowledged: true,
		LearningAdministrator:  true,
		SandboxAccess:          true,
	}
	row := sel.row(uuid.New())
	require.True(t, row.ELMSystemAdministrator)
	require.True(t, row.ELMSandboxAccess)
	require.False(t, row.ELMInstructor)

	back := ELMFromRow(row)
	require.True(t, back.LearningAdministrator)
	require.True(t, back.SandboxAccess)
	require.False(t, back.SupervisorAcknowledged, "acknowledgment never pre-checks")
}

func TestELMActiveFieldsCountsOnlyRoles(t *testing.T) {
	sel := ELMSelections{SupervisorAcknowledged: true, Justification: "needs admin"}
	require.Empty(t, sel.ActiveFields(), "justification and acknowledgment are not role selections")
}

func TestRowColumnsAreUniqueAndStable(t *testing.T) {
	var row Row
	cols := row.columns()
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		require.False(t, seen[c.name], "duplicate column %s", c.name)
		seen[c.name] = true
	}
	// One row per request carries the union of every area's columns.
	require.GreaterOrEqual(t, len(cols), 85)
}
