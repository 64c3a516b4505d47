// Package roleselect records the detailed permission selections made within
// a request's security area. Each request owns at most one selection row;
// resubmission overwrites via a conflict-keyed upsert.
package roleselect

import "github.com/google/uuid"

// Row mirrors the security_role_selections table: one row per request,
// holding the union of every area's columns. Which subset is meaningful
// depends on the request's security area; the typed variants in catalog.go
// map UI-facing role names onto these columns.
type Row struct {
	RequestID uuid.UUID

	// Shared business-unit / routing fields.
	HomeBusinessUnit      string
	OtherBusinessUnits    string
	RouteBusinessUnits    string
	ApprovalBusinessUnits string
	RoleJustification     string

	// Accounting / procurement.
	APVoucherEntry         bool
	APVoucherApproval      bool
	APPaymentProcessing    bool
	APSupplierInquiry      bool
	APMatchOverride        bool
	APInquiry              bool
	ARPaymentEntry         bool
	ARItemMaintenance      bool
	ARCashManagement       bool
	ARDepositEntry         bool
	ARInquiry              bool
	KKBudgetJournalEntry   bool
	KKBudgetTransfer       bool
	KKBudgetOverride       bool
	KKInquiry              bool
	GLJournalEntry         bool
	GLJournalApproval      bool
	GLChartfieldMaint      bool
	GLInquiry              bool
	GLNVisionReporting     bool
	GMAwardSetup           bool
	GMBilling              bool
	GMInquiry              bool
	PCProjectEntry         bool
	PCBudgeting            bool
	PCInquiry              bool
	CAAllocationSetup      bool
	CAAllocationProcessing bool
	AMAssetEntry           bool
	AMAssetTransfer        bool
	AMAssetRetirement      bool
	AMInquiry              bool
	PORequisitionEntry     bool
	PORequisitionApproval  bool
	POPurchaseOrderEntry   bool
	POPurchaseOrderAppr    bool
	POReceiptEntry         bool
	POContractEntry        bool
	POStrategicSourcing    bool
	POCatalogMaintenance   bool
	POPCardAdmin           bool
	POInquiry              bool

	// HR / payroll.
	AccessScope           string
	ProhibitedDepartments string
	HRPersonalDataEntry   bool
	HRPositionDataEntry   bool
	HRJobDataEntry        bool
	HRInquiry             bool
	HRLaborRelations      bool
	PYPayrollDataEntry    bool
	PYAudit               bool
	PYGarnishmentEntry    bool
	PYDirectDepositEntry  bool
	PYTaxDataEntry        bool
	PYInquiry             bool
	BNEnrollment          bool
	BNBilling             bool
	BNLeaveAccounting     bool
	BNInquiry             bool
	TAJobPostings         bool
	TAApplicantScreening  bool
	TAJobOffers           bool
	TAInquiry             bool
	TLTimeEntry           bool
	TLTimeApproval        bool
	TLScheduleMaintenance bool

	// EPM data warehouse.
	EPMDataExtracts   bool
	EPMPrivateQueries bool
	EPMSensitiveData  bool
	RAPSReporting     bool
	RAPSStatewide     bool
	RAPSAgencyRpt     bool
	RAPSSecurityAdm   bool
	NewUserSetup      bool
	SEMA4Code         string

	// ELM learning management.
	ELMSystemAdministrator bool
	ELMExternalLearnerAdm  bool
	ELMEnrollmentAdmin     bool
	ELMCourseAdmin         bool
	ELMCurriculumAdmin     bool
	ELMReportingAdmin      bool
	ELMInstructor          bool
	ELMSandboxAccess       bool
}

type column struct {
	name  string
	value any
}

// columns enumerates every persisted column in table order. The upsert and
// the scanner are both built from this one list so they cannot drift.
func (r *Row) columns() []column {
	return []column{
		{"home_business_unit", &r.HomeBusinessUnit},
		{"other_business_units", &r.OtherBusinessUnits},
		{"route_business_units", &r.RouteBusinessUnits},
		{"approval_business_units", &r.ApprovalBusinessUnits},
		{"role_justification", &r.RoleJustification},

		{"ap_voucher_entry", &r.APVoucherEntry},
		{"ap_voucher_approval", &r.APVoucherApproval},
		{"ap_payment_processing", &r.APPaymentProcessing},
		{"ap_supplier_inquiry", &r.APSupplierInquiry},
		{"ap_match_override", &r.APMatchOverride},
		{"ap_inquiry", &r.APInquiry},
		{"ar_payment_entry", &r.ARPaymentEntry},
		{"ar_item_maintenance", &r.ARItemMaintenance},
		{"ar_cash_management", &r.ARCashManagement},
		{"ar_deposit_entry", &r.ARDepositEntry},
		{"ar_inquiry", &r.ARInquiry},
		{"kk_budget_journal_entry", &r.KKBudgetJournalEntry},
		{"kk_budget_transfer", &r.KKBudgetTransfer},
		{"kk_budget_override", &r.KKBudgetOverride},
		{"kk_inquiry", &r.KKInquiry},
		{"gl_journal_entry", &r.GLJournalEntry},
		{"gl_journal_approval", &r.GLJournalApproval},
		{"gl_chartfield_maintenance", &r.GLChartfieldMaint},
		{"gl_inquiry", &r.GLInquiry},
		{"gl_nvision_reporting", &r.GLNVisionReporting},
		{"gm_award_setup", &r.GMAwardSetup},
		{"gm_billing", &r.GMBilling},
		{"gm_inquiry", &r.GMInquiry},
		{"pc_project_entry", &r.PCProjectEntry},
		{"pc_budgeting", &r.PCBudgeting},
		{"pc_inquiry", &r.PCInquiry},
		{"ca_allocation_setup", &r.CAAllocationSetup},
		{"ca_allocation_processing", &r.CAAllocationProcessing},
		{"am_asset_entry", &r.AMAssetEntry},
		{"am_asset_transfer", &r.AMAssetTransfer},
		{"am_asset_retirement", &r.AMAssetRetirement},
		{"am_inquiry", &r.AMInquiry},
		{"po_requisition_entry", &r.PORequisitionEntry},
		{"po_requisition_approval", &r.PORequisitionApproval},
		{"po_purchase_order_entry", &r.POPurchaseOrderEntry},
		{"po_purchase_order_approval", &r.POPurchaseOrderAppr},
		{"po_receipt_entry", &r.POReceiptEntry},
		{"po_contract_entry", &r.POContractEntry},
		{"po_strategic_sourcing", &r.POStrategicSourcing},
		{"po_catalog_maintenance", &r.POCatalogMaintenance},
		{"po_pcard_admin", &r.POPCardAdmin},
		{"po_inquiry", &r.POInquiry},

		{"access_scope", &r.AccessScope},
		{"prohibited_departments", &r.ProhibitedDepartments},
		{"hr_personal_data_entry", &r.HRPersonalDataEntry},
		{"hr_position_data_entry", &r.HRPositionDataEntry},
		{"hr_job_data_entry", &r.HRJobDataEntry},
		{"hr_inquiry", &r.HRInquiry},
		{"hr_labor_relations", &r.HRLaborRelations},
		{"py_payroll_data_entry", &r.PYPayrollDataEntry},
		{"py_audit", &r.PYAudit},
		{"py_garnishment_entry", &r.PYGarnishmentEntry},
		{"py_direct_deposit_entry", &r.PYDirectDepositEntry},
		{"py_tax_data_entry", &r.PYTaxDataEntry},
		{"py_inquiry", &r.PYInquiry},
		{"bn_enrollment", &r.BNEnrollment},
		{"bn_billing", &r.BNBilling},
		{"bn_leave_accounting", &r.BNLeaveAccounting},
		{"bn_inquiry", &r.BNInquiry},
		{"ta_job_postings", &r.TAJobPostings},
		{"ta_applicant_screening", &r.TAApplicantScreening},
		{"ta_job_offers", &r.TAJobOffers},
		{"ta_inquiry", &r.TAInquiry},
		{"tl_time_entry", &r.TLTimeEntry},
		{"tl_time_approval", &r.TLTimeApproval},
		{"tl_schedule_maintenance", &r.TLScheduleMaintenance},

		{"epm_data_extracts", &r.EPMDataExtracts},
		{"epm_private_queries", &r.EPMPrivateQueries},
		{"epm_sensitive_data", &r.EPMSensitiveData},
		{"raps_reporting", &r.RAPSReporting},
		{"raps_statewide", &r.RAPSStatewide},
		{"raps_agency_reporting", &r.RAPSAgencyRpt},
		{"raps_security_admin", &r.RAPSSecurityAdm},
		{"new_user_setup", &r.NewUserSetup},
		{"sema4_code", &r.SEMA4Code},

		{"elm_system_administrator", &r.ELMSystemAdministrator},
		{"elm_external_learner_admin", &r.ELMExternalLearnerAdm},
		{"elm_enrollment_admin", &r.ELMEnrollmentAdmin},
		{"elm_course_admin", &r.ELMCourseAdmin},
		{"elm_curriculum_admin", &r.ELMCurriculumAdmin},
		{"elm_reporting_admin", &r.ELMReportingAdmin},
		{"elm_instructor", &r.ELMInstructor},
		{"elm_sandbox_access", &r.ELMSandboxAccess},
	}
}
