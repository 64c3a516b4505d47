// Package approval implements the signature workflow walked by approvers
// before a security role request can be completed.
package approval

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Step names one required signoff in the workflow.
type Step string

const (
	StepUserSignature      Step = "user_signature"
	StepSupervisorApproval Step = "supervisor_approval"
	StepAccountingDirector Step = "accounting_director_approval"
	StepHRDirector         Step = "hr_director_approval"
	StepELMAdmin           Step = "elm_admin_approval"
	StepSecurityAdmin      Step = "security_admin_approval"
)

// AreaSteps lists the director/admin steps tied to a single security area.
// Editing a request's area removes exactly these rows before reinsertion.
var AreaSteps = []Step{StepAccountingDirector, StepHRDirector, StepELMAdmin}

// Status enumerates per-step states. A step is terminal once approved or
// denied; only a request edit moves non-signature steps back to pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// Approval is one signoff row belonging to a request.
type Approval struct {
	ID            int64      `json:"id"`
	RequestID     uuid.UUID  `json:"request_id"`
	Step          Step       `json:"step"`
	ApproverEmail string     `json:"approver_email"`
	Status        Status     `json:"status"`
	SignatureData string     `json:"signature_data,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	Comments      string     `json:"comments,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Rank places a step in the canonical display/selection order: the user's
// own signature first, supervisor second, any area director third, and the
// security administrator always last. Unknown steps fall into the area slot.
func Rank(step Step) int {
	switch step {
	case StepUserSignature:
		return 1
	case StepSupervisorApproval:
		return 2
	case StepSecurityAdmin:
		return 4
	default:
		return 3
	}
}

// SortCanonical orders approvals by rank, breaking ties by creation time
// then id. The ordering is a reader-side invariant, not a storage gate.
func SortCanonical(approvals []Approval) {
	sort.SliceStable(approvals, func(i, j int) bool {
		ri, rj := Rank(approvals[i].Step), Rank(approvals[j].Step)
		if ri != rj {
			return ri < rj
		}
		if !approvals[i].CreatedAt.Equal(approvals[j].CreatedAt) {
			return approvals[i].CreatedAt.Before(approvals[j].CreatedAt)
		}
		return approvals[i].ID < approvals[j].ID
	})
}

// FullyApproved reports whether the set is non-empty and every row is
// approved. An empty set never satisfies the completion gate.
func FullyApproved(approvals []Approval) bool {
	if len(approvals) == 0 {
		return false
	}
	for _, a := range approvals {
		if a.Status != StatusApproved {
			return false
		}
	}
	return true
}
