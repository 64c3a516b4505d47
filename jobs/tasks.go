package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskApprovalReminder nudges approvers with stale pending steps.
	TaskApprovalReminder = "approvals:reminder"
)

// ApprovalReminderPayload bounds which pending approvals count as stale.
type ApprovalReminderPayload struct {
	OlderThanHours int `json:"older_than_hours"`
}

// NewApprovalReminderTask constructs an Asynq task.
func NewApprovalReminderTask(payload ApprovalReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskApprovalReminder, data, asynq.Queue(QueueDefault)), nil
}
