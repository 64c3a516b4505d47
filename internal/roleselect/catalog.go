package roleselect

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/accessflow/accessflow/internal/platform/httpx"
)

// Selections is implemented by one typed variant per security area. Each
// variant carries a statically typed field set and an explicit active-field
// enumeration; there is no reflective iteration anywhere.
type Selections interface {
	Validate() error
	ActiveFields() []string
	row(requestID uuid.UUID) Row
}

func boolField(active []string, set bool, name string) []string {
	if set {
		return append(active, name)
	}
	return active
}

func stringField(active []string, value, name string) []string {
	if value != "" {
		return append(active, name)
	}
	return active
}

// AccountingSelections covers the accounting/procurement area: accounts
// payable, AR/cash management, budgets, general ledger, grants, project
// costing, cost allocation, asset management and purchasing roles.
type AccountingSelections struct {
	HomeBusinessUnit      string `json:"homeBusinessUnit"`
	OtherBusinessUnits    string `json:"otherBusinessUnits"`
	RouteBusinessUnits    string `json:"routeBusinessUnits"`
	ApprovalBusinessUnits string `json:"approvalBusinessUnits"`
	Justification         string `json:"justification"`

	VoucherEntry         bool `json:"voucherEntry"`
	VoucherApproval      bool `json:"voucherApproval"`
	PaymentProcessing    bool `json:"paymentProcessing"`
	SupplierInquiry      bool `json:"supplierInquiry"`
	MatchOverride        bool `json:"matchOverride"`
	APInquiry            bool `json:"apInquiry"`
	ARPaymentEntry       bool `json:"arPaymentEntry"`
	ARItemMaintenance    bool `json:"arItemMaintenance"`
	CashManagement       bool `json:"cashManagement"`
	DepositEntry         bool `json:"depositEntry"`
	ARInquiry            bool `json:"arInquiry"`
	BudgetJournalEntry   bool `json:"budgetJournalEntry"`
	BudgetTransfer       bool `json:"budgetTransfer"`
	BudgetOverride       bool `json:"budgetOverride"`
	BudgetInquiry        bool `json:"budgetInquiry"`
	JournalEntry         bool `json:"journalEntry"`
	JournalApproval      bool `json:"journalApproval"`
	ChartfieldMaint      bool `json:"chartfieldMaintenance"`
	GLInquiry            bool `json:"glInquiry"`
	NVisionReporting     bool `json:"nVisionReporting"`
	GrantSetup           bool `json:"grantSetup"`
	GrantBilling         bool `json:"grantBilling"`
	GrantInquiry         bool `json:"grantInquiry"`
	ProjectEntry         bool `json:"projectEntry"`
	ProjectBudgeting     bool `json:"projectBudgeting"`
	ProjectInquiry       bool `json:"projectInquiry"`
	AllocationSetup      bool `json:"allocationSetup"`
	AllocationProcessing bool `json:"allocationProcessing"`
	AssetEntry           bool `json:"assetEntry"`
	AssetTransfer        bool `json:"assetTransfer"`
	AssetRetirement      bool `json:"assetRetirement"`
	AMInquiry            bool `json:"amInquiry"`
	RequisitionEntry     bool `json:"requisitionEntry"`
	RequisitionApproval  bool `json:"requisitionApproval"`
	POEntry              bool `json:"poEntry"`
	POApproval           bool `json:"poApproval"`
	ReceiptEntry         bool `json:"receiptEntry"`
	ContractEntry        bool `json:"contractEntry"`
	StrategicSourcing    bool `json:"strategicSourcing"`
	CatalogMaintenance   bool `json:"catalogMaintenance"`
	PCardAdmin           bool `json:"pCardAdmin"`
	POInquiry            bool `json:"poInquiry"`
}

func (s AccountingSelections) Validate() error {
	if len(s.ActiveFields()) == 0 {
		return fmt.Errorf("%w: select at least one role", httpx.ErrValidation)
	}
	return nil
}

func (s AccountingSelections) ActiveFields() []string {
	var active []string
	active = stringField(active, s.HomeBusinessUnit, "homeBusinessUnit")
	active = stringField(active, s.OtherBusinessUnits, "otherBusinessUnits")
	active = stringField(active, s.RouteBusinessUnits, "routeBusinessUnits")
	active = stringField(active, s.ApprovalBusinessUnits, "approvalBusinessUnits")
	active = boolField(active, s.VoucherEntry, "voucherEntry")
	active = boolField(active, s.VoucherApproval, "voucherApproval")
	active = boolField(active, s.PaymentProcessing, "paymentProcessing")
	active = boolField(active, s.SupplierInquiry, "supplierInquiry")
	active = boolField(active, s.MatchOverride, "matchOverride")
	active = boolField(active, s.APInquiry, "apInquiry")
	active = boolField(active, s.ARPaymentEntry, "arPaymentEntry")
	active = boolField(active, s.ARItemMaintenance, "arItemMaintenance")
	active = boolField(active, s.CashManagement, "cashManagement")
	active = boolField(active, s.DepositEntry, "depositEntry")
	active = boolField(active, s.ARInquiry, "arInquiry")
	active = boolField(active, s.BudgetJournalEntry, "budgetJournalEntry")
	active = boolField(active, s.BudgetTransfer, "budgetTransfer")
	active = boolField(active, s.BudgetOverride, "budgetOverride")
	active = boolField(active, s.BudgetInquiry, "budgetInquiry")
	active = boolField(active, s.JournalEntry, "journalEntry")
	active = boolField(active, s.JournalApproval, "journalApproval")
	active = boolField(active, s.ChartfieldMaint, "chartfieldMaintenance")
	active = boolField(active, s.GLInquiry, "glInquiry")
	active = boolField(active, s.NVisionReporting, "nVisionReporting")
	active = boolField(active, s.GrantSetup, "grantSetup")
	active = boolField(active, s.GrantBilling, "grantBilling")
	active = boolField(active, s.GrantInquiry, "grantInquiry")
	active = boolField(active, s.ProjectEntry, "projectEntry")
	active = boolField(active, s.ProjectBudgeting, "projectBudgeting")
	active = boolField(active, s.ProjectInquiry, "projectInquiry")
	active = boolField(active, s.AllocationSetup, "allocationSetup")
	active = boolField(active, s.AllocationProcessing, "allocationProcessing")
	active = boolField(active, s.AssetEntry, "assetEntry")
	active = boolField(active, s.AssetTransfer, "assetTransfer")
	active = boolField(active, s.AssetRetirement, "assetRetirement")
	active = boolField(active, s.AMInquiry, "amInquiry")
	active = boolField(active, s.RequisitionEntry, "requisitionEntry")
	active = boolField(active, s.RequisitionApproval, "requisitionApproval")
	active = boolField(active, s.POEntry, "poEntry")
	active = boolField(active, s.POApproval, "poApproval")
	active = boolField(active, s.ReceiptEntry, "receiptEntry")
	active = boolField(active, s.ContractEntry, "contractEntry")
	active = boolField(active, s.StrategicSourcing, "strategicSourcing")
	active = boolField(active, s.CatalogMaintenance, "catalogMaintenance")
	active = boolField(active, s.PCardAdmin, "pCardAdmin")
	active = boolField(active, s.POInquiry, "poInquiry")
	return active
}

func (s AccountingSelections) row(requestID uuid.UUID) Row {
	return Row{
		RequestID:             requestID,
		HomeBusinessUnit:      s.HomeBusinessUnit,
		OtherBusinessUnits:    s.OtherBusinessUnits,
		RouteBusinessUnits:    s.RouteBusinessUnits,
		ApprovalBusinessUnits: s.ApprovalBusinessUnits,
		RoleJustification:     s.Justification,

		APVoucherEntry:         s.VoucherEntry,
		APVoucherApproval:      s.VoucherApproval,
		APPaymentProcessing:    s.PaymentProcessing,
		APSupplierInquiry:      s.SupplierInquiry,
		APMatchOverride:        s.MatchOverride,
		APInquiry:              s.APInquiry,
		ARPaymentEntry:         s.ARPaymentEntry,
		ARItemMaintenance:      s.ARItemMaintenance,
		ARCashManagement:       s.CashManagement,
		ARDepositEntry:         s.DepositEntry,
		ARInquiry:              s.ARInquiry,
		KKBudgetJournalEntry:   s.BudgetJournalEntry,
		KKBudgetTransfer:       s.BudgetTransfer,
		KKBudgetOverride:       s.BudgetOverride,
		KKInquiry:              s.BudgetInquiry,
		GLJournalEntry:         s.JournalEntry,
		GLJournalApproval:      s.JournalApproval,
		GLChartfieldMaint:      s.ChartfieldMaint,
		GLInquiry:              s.GLInquiry,
		GLNVisionReporting:     s.NVisionReporting,
		GMAwardSetup:           s.GrantSetup,
		GMBilling:              s.GrantBilling,
		GMInquiry:              s.GrantInquiry,
		PCProjectEntry:         s.ProjectEntry,
		PCBudgeting:            s.ProjectBudgeting,
		PCInquiry:              s.ProjectInquiry,
		CAAllocationSetup:      s.AllocationSetup,
		CAAllocationProcessing: s.AllocationProcessing,
		AMAssetEntry:           s.AssetEntry,
		AMAssetTransfer:        s.AssetTransfer,
		AMAssetRetirement:      s.AssetRetirement,
		AMInquiry:              s.AMInquiry,
		PORequisitionEntry:     s.RequisitionEntry,
		PORequisitionApproval:  s.RequisitionApproval,
		POPurchaseOrderEntry:   s.POEntry,
		POPurchaseOrderAppr:    s.POApproval,
		POReceiptEntry:         s.ReceiptEntry,
		POContractEntry:        s.ContractEntry,
		POStrategicSourcing:    s.StrategicSourcing,
		POCatalogMaintenance:   s.CatalogMaintenance,
		POPCardAdmin:           s.PCardAdmin,
		POInquiry:              s.POInquiry,
	}
}

// AccountingFromRow reverse-maps a stored row for form pre-population.
func AccountingFromRow(r Row) AccountingSelections {
	return AccountingSelections{
		HomeBusinessUnit:      r.HomeBusinessUnit,
		OtherBusinessUnits:    r.OtherBusinessUnits,
		RouteBusinessUnits:    r.RouteBusinessUnits,
		ApprovalBusinessUnits: r.ApprovalBusinessUnits,
		Justification:         r.RoleJustification,

		VoucherEntry:         r.APVoucherEntry,
		VoucherApproval:      r.APVoucherApproval,
		PaymentProcessing:    r.APPaymentProcessing,
		SupplierInquiry:      r.APSupplierInquiry,
		MatchOverride:        r.APMatchOverride,
		APInquiry:            r.APInquiry,
		ARPaymentEntry:       r.ARPaymentEntry,
		ARItemMaintenance:    r.ARItemMaintenance,
		CashManagement:       r.ARCashManagement,
		DepositEntry:         r.ARDepositEntry,
		ARInquiry:            r.ARInquiry,
		BudgetJournalEntry:   r.KKBudgetJournalEntry,
		BudgetTransfer:       r.KKBudgetTransfer,
		BudgetOverride:       r.KKBudgetOverride,
		BudgetInquiry:        r.KKInquiry,
		JournalEntry:         r.GLJournalEntry,
		JournalApproval:      r.GLJournalApproval,
		ChartfieldMaint:      r.GLChartfieldMaint,
		GLInquiry:            r.GLInquiry,
		NVisionReporting:     r.GLNVisionReporting,
		GrantSetup:           r.GMAwardSetup,
		GrantBilling:         r.GMBilling,
		GrantInquiry:         r.GMInquiry,
		ProjectEntry:         r.PCProjectEntry,
		ProjectBudgeting:     r.PCBudgeting,
		ProjectInquiry:       r.PCInquiry,
		AllocationSetup:      r.CAAllocationSetup,
		AllocationProcessing: r.CAAllocationProcessing,
		AssetEntry:           r.AMAssetEntry,
		AssetTransfer:        r.AMAssetTransfer,
		AssetRetirement:      r.AMAssetRetirement,
		AMInquiry:            r.AMInquiry,
		RequisitionEntry:     r.PORequisitionEntry,
		RequisitionApproval:  r.PORequisitionApproval,
		POEntry:              r.POPurchaseOrderEntry,
		POApproval:           r.POPurchaseOrderAppr,
		ReceiptEntry:         r.POReceiptEntry,
		ContractEntry:        r.POContractEntry,
		StrategicSourcing:    r.POStrategicSourcing,
		CatalogMaintenance:   r.POCatalogMaintenance,
		PCardAdmin:           r.POPCardAdmin,
		POInquiry:            r.POInquiry,
	}
}

// Access scope choices for HR/payroll selections. The two radio choices are
// mutually exclusive.
const (
	AccessScopeAgency     = "agency"
	AccessScopeDepartment = "department"
)

// HRPayrollSelections covers the HR/payroll area.
type HRPayrollSelections struct {
	AccessScope           string `json:"accessScope"`
	ProhibitedDepartments string `json:"prohibitedDepartments"`
	Justification         string `json:"justification"`

	PersonalDataEntry   bool `json:"personalDataEntry"`
	PositionDataEntry   bool `json:"positionDataEntry"`
	JobDataEntry        bool `json:"jobDataEntry"`
	HRInquiry           bool `json:"hrInquiry"`
	LaborRelations      bool `json:"laborRelations"`
	PayrollDataEntry    bool `json:"payrollDataEntry"`
	PayrollAudit        bool `json:"payrollAudit"`
	GarnishmentEntry    bool `json:"garnishmentEntry"`
	DirectDepositEntry  bool `json:"directDepositEntry"`
	TaxDataEntry        bool `json:"taxDataEntry"`
	PayrollInquiry      bool `json:"payrollInquiry"`
	BenefitsEnrollment  bool `json:"benefitsEnrollment"`
	BenefitsBilling     bool `json:"benefitsBilling"`
	LeaveAccounting     bool `json:"leaveAccounting"`
	BenefitsInquiry     bool `json:"benefitsInquiry"`
	JobPostings         bool `json:"jobPostings"`
	ApplicantScreening  bool `json:"applicantScreening"`
	JobOffers           bool `json:"jobOffers"`
	RecruitingInquiry   bool `json:"recruitingInquiry"`
	TimeEntry           bool `json:"timeEntry"`
	TimeApproval        bool `json:"timeApproval"`
	ScheduleMaintenance bool `json:"scheduleMaintenance"`
}

func (s HRPayrollSelections) Validate() error {
	switch s.AccessScope {
	case AccessScopeAgency, AccessScopeDepartment:
	case "":
		return fmt.Errorf("%w: access scope required", httpx.ErrValidation)
	default:
		return fmt.Errorf("%w: access scope must be %q or %q", httpx.ErrValidation, AccessScopeAgency, AccessScopeDepartment)
	}
	if len(s.ActiveFields()) == 0 {
		return fmt.Errorf("%w: select at least one role", httpx.ErrValidation)
	}
	return nil
}

func (s HRPayrollSelections) ActiveFields() []string {
	var active []string
	active = boolField(active, s.PersonalDataEntry, "personalDataEntry")
	active = boolField(active, s.PositionDataEntry, "positionDataEntry")
	active = boolField(active, s.JobDataEntry, "jobDataEntry")
	active = boolField(active, s.HRInquiry, "hrInquiry")
	active = boolField(active, s.LaborRelations, "laborRelations")
	active = boolField(active, s.PayrollDataEntry, "payrollDataEntry")
	active = boolField(active, s.PayrollAudit, "payrollAudit")
	active = boolField(active, s.GarnishmentEntry, "garnishmentEntry")
	active = boolField(active, s.DirectDepositEntry, "directDepositEntry")
	active = boolField(active, s.TaxDataEntry, "taxDataEntry")
	active = boolField(active, s.PayrollInquiry, "payrollInquiry")
	active = boolField(active, s.BenefitsEnrollment, "benefitsEnrollment")
	active = boolField(active, s.BenefitsBilling, "benefitsBilling")
	active = boolField(active, s.LeaveAccounting, "leaveAccounting")
	active = boolField(active, s.BenefitsInquiry, "benefitsInquiry")
	active = boolField(active, s.JobPostings, "jobPostings")
	active = boolField(active, s.ApplicantScreening, "applicantScreening")
	active = boolField(active, s.JobOffers, "jobOffers")
	active = boolField(active, s.RecruitingInquiry, "recruitingInquiry")
	active = boolField(active, s.TimeEntry, "timeEntry")
	active = boolField(active, s.TimeApproval, "timeApproval")
	active = boolField(active, s.ScheduleMaintenance, "scheduleMaintenance")
	return active
}

func (s HRPayrollSelections) row(requestID uuid.UUID) Row {
	return Row{
		RequestID:             requestID,
		AccessScope:           s.AccessScope,
		ProhibitedDepartments: s.ProhibitedDepartments,
		RoleJustification:     s.Justification,

		HRPersonalDataEntry:   s.PersonalDataEntry,
		HRPositionDataEntry:   s.PositionDataEntry,
		HRJobDataEntry:        s.JobDataEntry,
		HRInquiry:             s.HRInquiry,
		HRLaborRelations:      s.LaborRelations,
		PYPayrollDataEntry:    s.PayrollDataEntry,
		PYAudit:               s.PayrollAudit,
		PYGarnishmentEntry:    s.GarnishmentEntry,
		PYDirectDepositEntry:  s.DirectDepositEntry,
		PYTaxDataEntry:        s.TaxDataEntry,
		PYInquiry:             s.PayrollInquiry,
		BNEnrollment:          s.BenefitsEnrollment,
		BNBilling:             s.BenefitsBilling,
		BNLeaveAccounting:     s.LeaveAccounting,
		BNInquiry:             s.BenefitsInquiry,
		TAJobPostings:         s.JobPostings,
		TAApplicantScreening:  s.ApplicantScreening,
		TAJobOffers:           s.JobOffers,
		TAInquiry:             s.RecruitingInquiry,
		TLTimeEntry:           s.TimeEntry,
		TLTimeApproval:        s.TimeApproval,
		TLScheduleMaintenance: s.ScheduleMaintenance,
	}
}

// HRPayrollFromRow reverse-maps a stored row for form pre-population.
func HRPayrollFromRow(r Row) HRPayrollSelections {
	return HRPayrollSelections{
		AccessScope:           r.AccessScope,
		ProhibitedDepartments: r.ProhibitedDepartments,
		Justification:         r.RoleJustification,

		PersonalDataEntry:   r.HRPersonalDataEntry,
		PositionDataEntry:   r.HRPositionDataEntry,
		JobDataEntry:        r.HRJobDataEntry,
		HRInquiry:           r.HRInquiry,
		LaborRelations:      r.HRLaborRelations,
		PayrollDataEntry:    r.PYPayrollDataEntry,
		PayrollAudit:        r.PYAudit,
		GarnishmentEntry:    r.PYGarnishmentEntry,
		DirectDepositEntry:  r.PYDirectDepositEntry,
		TaxDataEntry:        r.PYTaxDataEntry,
		PayrollInquiry:      r.PYInquiry,
		BenefitsEnrollment:  r.BNEnrollment,
		BenefitsBilling:     r.BNBilling,
		LeaveAccounting:     r.BNLeaveAccounting,
		BenefitsInquiry:     r.BNInquiry,
		JobPostings:         r.TAJobPostings,
		ApplicantScreening:  r.TAApplicantScreening,
		JobOffers:           r.TAJobOffers,
		RecruitingInquiry:   r.TAInquiry,
		TimeEntry:           r.TLTimeEntry,
		TimeApproval:        r.TLTimeApproval,
		ScheduleMaintenance: r.TLScheduleMaintenance,
	}
}

// EPMSelections covers the EPM data warehouse area. The two statewide RAPS
// roles are policy-locked: they persist as true no matter what the form
// submits.
type EPMSelections struct {
	HomeBusinessUnit   string `json:"homeBusinessUnit"`
	OtherBusinessUnits string `json:"otherBusinessUnits"`
	Justification      string `json:"justification"`

	DataExtracts   bool `json:"dataExtracts"`
	PrivateQueries bool `json:"privateQueries"`
	SensitiveData  bool `json:"sensitiveData"`

	RAPSReporting       bool   `json:"rapsReporting"`
	RAPSStatewide       bool   `json:"rapsStatewide"`
	RAPSAgencyReporting bool   `json:"rapsAgencyReporting"`
	RAPSSecurityAdmin   bool   `json:"rapsSecurityAdmin"`
	NewUser             bool   `json:"newUser"`
	SEMA4Code           string `json:"sema4Code"`
}

func (s EPMSelections) Validate() error {
	if s.NewUser && s.SEMA4Code == "" {
		return fmt.Errorf("%w: SEMA4 code required for new users", httpx.ErrValidation)
	}
	return nil
}

func (s EPMSelections) ActiveFields() []string {
	var active []string
	active = stringField(active, s.HomeBusinessUnit, "homeBusinessUnit")
	active = stringField(active, s.OtherBusinessUnits, "otherBusinessUnits")
	active = boolField(active, s.DataExtracts, "dataExtracts")
	active = boolField(active, s.PrivateQueries, "privateQueries")
	active = boolField(active, s.SensitiveData, "sensitiveData")
	// Locked roles are always active.
	active = append(active, "rapsReporting", "rapsStatewide")
	active = boolField(active, s.RAPSAgencyReporting, "rapsAgencyReporting")
	active = boolField(active, s.RAPSSecurityAdmin, "rapsSecurityAdmin")
	active = boolField(active, s.NewUser, "newUser")
	return active
}

func (s EPMSelections) row(requestID uuid.UUID) Row {
	return Row{
		RequestID:          requestID,
		HomeBusinessUnit:   s.HomeBusinessUnit,
		OtherBusinessUnits: s.OtherBusinessUnits,
		RoleJustification:  s.Justification,

		EPMDataExtracts:   s.DataExtracts,
		EPMPrivateQueries: s.PrivateQueries,
		EPMSensitiveData:  s.SensitiveData,
		RAPSReporting:     true,
		RAPSStatewide:     true,
		RAPSAgencyRpt:     s.RAPSAgencyReporting,
		RAPSSecurityAdm:   s.RAPSSecurityAdmin,
		NewUserSetup:      s.NewUser,
		SEMA4Code:         s.SEMA4Code,
	}
}

// EPMFromRow reverse-maps a stored row for form pre-population.
func EPMFromRow(r Row) EPMSelections {
	return EPMSelections{
		HomeBusinessUnit:   r.HomeBusinessUnit,
		OtherBusinessUnits: r.OtherBusinessUnits,
		Justification:      r.RoleJustification,

		DataExtracts:        r.EPMDataExtracts,
		PrivateQueries:      r.EPMPrivateQueries,
		SensitiveData:       r.EPMSensitiveData,
		RAPSReporting:       r.RAPSReporting,
		RAPSStatewide:       r.RAPSStatewide,
		RAPSAgencyReporting: r.RAPSAgencyRpt,
		RAPSSecurityAdmin:   r.RAPSSecurityAdm,
		NewUser:             r.NewUserSetup,
		SEMA4Code:           r.SEMA4Code,
	}
}

// ELMSelections covers the learning-management area: exactly eight fixed
// roles. LearningAdministrator is the high-risk role behind the extra
// acknowledgment banner; SandboxAccess implies parallel-environment
// provisioning. Submission is blocked until the supervisor-approval box is
// acknowledged.
type ELMSelections struct {
	Justification          string `json:"justification"`
	SupervisorAcknowledged bool   `json:"supervisorAcknowledged"`

	LearningAdministrator        bool `json:"learningAdministrator"`
	ExternalLearnerAdministrator bool `json:"externalLearnerAdministrator"`
	EnrollmentAdministrator      bool `json:"enrollmentAdministrator"`
	CourseAdministrator          bool `json:"courseAdministrator"`
	CurriculumAdministrator      bool `json:"curriculumAdministrator"`
	ReportingAdministrator       bool `json:"reportingAdministrator"`
	InstructorAccess             bool `json:"instructorAccess"`
	SandboxAccess                bool `json:"sandboxAccess"`
}

func (s ELMSelections) Validate() error {
	if !s.SupervisorAcknowledged {
		return fmt.Errorf("%w: supervisor approval must be acknowledged", httpx.ErrValidation)
	}
	if len(s.ActiveFields()) == 0 {
		return fmt.Errorf("%w: select at least one role", httpx.ErrValidation)
	}
	return nil
}

func (s ELMSelections) ActiveFields() []string {
	var active []string
	active = boolField(active, s.LearningAdministrator, "learningAdministrator")
	active = boolField(active, s.ExternalLearnerAdministrator, "externalLearnerAdministrator")
	active = boolField(active, s.EnrollmentAdministrator, "enrollmentAdministrator")
	active = boolField(active, s.CourseAdministrator, "courseAdministrator")
	active = boolField(active, s.CurriculumAdministrator, "curriculumAdministrator")
	active = boolField(active, s.ReportingAdministrator, "reportingAdministrator")
	active = boolField(active, s.InstructorAccess, "instructorAccess")
	active = boolField(active, s.SandboxAccess, "sandboxAccess")
	return active
}

func (s ELMSelections) row(requestID uuid.UUID) Row {
	return Row{
		RequestID:         requestID,
		RoleJustification: s.Justification,

		ELMSystemAdministrator: s.LearningAdministrator,
		ELMExternalLearnerAdm:  s.ExternalLearnerAdministrator,
		ELMEnrollmentAdmin:     s.EnrollmentAdministrator,
		ELMCourseAdmin:         s.CourseAdministrator,
		ELMCurriculumAdmin:     s.CurriculumAdministrator,
		ELMReportingAdmin:      s.ReportingAdministrator,
		ELMInstructor:          s.InstructorAccess,
		ELMSandboxAccess:       s.SandboxAccess,
	}
}

// ELMFromRow reverse-maps a stored row for form pre-population. The
// acknowledgment box is never pre-checked.
func ELMFromRow(r Row) ELMSelections {
	return ELMSelections{
		Justification: r.RoleJustification,

		LearningAdministrator:        r.ELMSystemAdministrator,
		ExternalLearnerAdministrator: r.ELMExternalLearnerAdm,
		EnrollmentAdministrator:      r.ELMEnrollmentAdmin,
		CourseAdministrator:          r.ELMCourseAdmin,
		CurriculumAdministrator:      r.ELMCurriculumAdmin,
		ReportingAdministrator:       r.ELMReportingAdmin,
		InstructorAccess:             r.ELMInstructor,
		SandboxAccess:                r.ELMSandboxAccess,
	}
}
