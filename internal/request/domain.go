// Package request owns the lifecycle of a security role request: creation
// with its security area, routing to the area's role-selection form, edit
// with approval resets, and cascading delete.
package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/accessflow/accessflow/internal/approval"
)

// AreaType names the single access domain a request targets.
type AreaType string

const (
	AreaAccountingProcurement AreaType = "accounting_procurement"
	AreaHRPayroll             AreaType = "hr_payroll"
	AreaEPMDataWarehouse      AreaType = "epm_data_warehouse"
	AreaELM                   AreaType = "elm"
)

// KnownArea reports whether the value is one of the four areas.
func KnownArea(area AreaType) bool {
	switch area {
	case AreaAccountingProcurement, AreaHRPayroll, AreaEPMDataWarehouse, AreaELM:
		return true
	}
	return false
}

// Status enumerates request lifecycle states. Only pending and completed
// are driven here; approved and rejected exist for step-level decisions.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// Request is the top-level record for one person's access request.
type Request struct {
	ID                uuid.UUID  `json:"id"`
	StartDate         time.Time  `json:"start_date"`
	EmployeeName      string     `json:"employee_name"`
	EmployeeID        string     `json:"employee_id,omitempty"`
	NonEmployee       bool       `json:"non_employee"`
	WorkLocation      string     `json:"work_location"`
	WorkPhone         string     `json:"work_phone"`
	Email             string     `json:"email"`
	AgencyName        string     `json:"agency_name"`
	AgencyCode        string     `json:"agency_code"`
	Justification     string     `json:"justification"`
	SubmitterName     string     `json:"submitter_name"`
	SupervisorName    string     `json:"supervisor_name"`
	SecurityAdminName string     `json:"security_admin_name"`
	Status            Status     `json:"status"`
	CompletedBy       string     `json:"completed_by,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	PointOfContact    string     `json:"point_of_contact,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// SecurityArea is the access domain attached to a request. The director
// fields are overloaded per area: for hr_payroll the name carries a
// mainframe logon id and the email is fixed by the statewide-access choice.
type SecurityArea struct {
	ID            int64     `json:"id"`
	RequestID     uuid.UUID `json:"request_id"`
	AreaType      AreaType  `json:"area_type"`
	DirectorName  string    `json:"director_name,omitempty"`
	DirectorEmail string    `json:"director_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Fixed HR security addresses selected by the statewide-access choice.
const (
	HRStatewideSecurityEmail = "statewide.hr.security@state.mn.us"
	HRAgencySecurityEmail    = "agency.hr.security@state.mn.us"
)

// Destination identifies the page a saved request routes to next.
type Destination string

const (
	DestELMRoles       Destination = "elm-role-selection"
	DestEPMRoles       Destination = "epm-role-selection"
	DestHRPayrollRoles Destination = "hr-payroll-role-selection"
	DestGenericRoles   Destination = "role-selection"
)

// RouteAfterSave maps the chosen area to its role-selection destination.
// Create and edit share this mapping; anything unrecognized falls back to
// the generic page.
func RouteAfterSave(area AreaType) Destination {
	switch area {
	case AreaELM:
		return DestELMRoles
	case AreaEPMDataWarehouse:
		return DestEPMRoles
	case AreaHRPayroll:
		return DestHRPayrollRoles
	default:
		return DestGenericRoles
	}
}

// AreaStep returns the director/admin approval step owed to the area, or
// empty for epm_data_warehouse, which has no area-specific signoff.
func AreaStep(area AreaType) approval.Step {
	switch area {
	case AreaAccountingProcurement:
		return approval.StepAccountingDirector
	case AreaHRPayroll:
		return approval.StepHRDirector
	case AreaELM:
		return approval.StepELMAdmin
	default:
		return ""
	}
}

// StepsForArea expands the approval rows created when a security area is
// inserted. The store has no trigger for this; the lifecycle manager owns
// the expansion explicitly.
func StepsForArea(area AreaType) []approval.Step {
	steps := []approval.Step{approval.StepUserSignature, approval.StepSupervisorApproval}
	if s := AreaStep(area); s != "" {
		steps = append(steps, s)
	}
	return append(steps, approval.StepSecurityAdmin)
}
