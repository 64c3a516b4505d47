package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/accessflow/accessflow/internal/platform/httpx"
)

// Form carries the main request form fields. Dates arrive as YYYY-MM-DD.
type Form struct {
	StartDate         string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EmployeeName      string `json:"employee_name" validate:"required"`
	EmployeeID        string `json:"employee_id"`
	NonEmployee       bool   `json:"non_employee"`
	WorkLocation      string `json:"work_location" validate:"required"`
	WorkPhone         string `json:"work_phone" validate:"required"`
	Email             string `json:"email" validate:"required"`
	AgencyName        string `json:"agency_name" validate:"required"`
	AgencyCode        string `json:"agency_code" validate:"required,max=3"`
	Justification     string `json:"justification" validate:"required"`
	SubmitterName     string `json:"submitter_name" validate:"required"`
	SupervisorName    string `json:"supervisor_name" validate:"required"`
	SecurityAdminName string `json:"security_admin_name" validate:"required"`

	AreaType AreaType `json:"area_type" validate:"required"`
	// Director fields, meaningful for accounting_procurement and elm.
	DirectorName string `json:"director_name"`
	// HR/Payroll extras: mainframe logon id plus the statewide-access flag
	// that picks the fixed security mailbox.
	MainframeLogonID string `json:"mainframe_logon_id"`
	StatewideAccess  bool   `json:"statewide_access"`
}

type formValidator struct {
	validate *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{validate: validator.New()}
}

// Check enforces the structural tags plus the rules the tags cannot carry:
// the start date must be strictly after today, an employee id is required
// unless the non-employee flag is set, and the area must be recognized.
func (v *formValidator) Check(form Form, now time.Time) error {
	if err := v.validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if e, ok := err.(validator.ValidationErrors); ok {
			fieldErrs = e
		}
		if len(fieldErrs) > 0 {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field())
			}
			return fmt.Errorf("%w: missing or malformed fields: %s", httpx.ErrValidation, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	startDate, err := time.Parse("2006-01-02", form.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", httpx.ErrValidation)
	}
	// Compare calendar dates in the caller's zone; truncating the instant
	// would shift the boundary to the UTC day.
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if !startDate.After(today) {
		return fmt.Errorf("%w: start_date must be after today", httpx.ErrValidation)
	}

	if !form.NonEmployee && strings.TrimSpace(form.EmployeeID) == "" {
		return fmt.Errorf("%w: employee_id is required for employees", httpx.ErrValidation)
	}

	if !KnownArea(form.AreaType) {
		return fmt.Errorf("%w: unknown area_type %q", httpx.ErrValidation, form.AreaType)
	}

	switch form.AreaType {
	case AreaAccountingProcurement, AreaELM:
		if strings.TrimSpace(form.DirectorName) == "" {
			return fmt.Errorf("%w: director_name is required for %s", httpx.ErrValidation, form.AreaType)
		}
	case AreaHRPayroll:
		if strings.TrimSpace(form.MainframeLogonID) == "" {
			return fmt.Errorf("%w: mainframe_logon_id is required for hr_payroll", httpx.ErrValidation)
		}
	}
	return nil
}

func (form Form) startDate() time.Time {
	d, _ := time.Parse("2006-01-02", form.StartDate)
	return d
}
