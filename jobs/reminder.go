package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/accessflow/accessflow/internal/approval"
	jobmetrics "github.com/accessflow/accessflow/internal/jobs"
)

// ApprovalReminderJob finds pending approval steps that have sat untouched
// past the reminder window and nudges their approvers.
type ApprovalReminderJob struct {
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewApprovalReminderJob initialises the reminder handler.
func NewApprovalReminderJob(pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *ApprovalReminderJob {
	return &ApprovalReminderJob{
		Pool:    pool,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

type staleApproval struct {
	RequestID     string
	EmployeeName  string
	ApproverEmail string
	Age           time.Duration
}

// Handle executes one reminder sweep.
func (j *ApprovalReminderJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("approval reminder: handler not configured")
	}
	var payload ApprovalReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.OlderThanHours <= 0 {
		payload.OlderThanHours = 48
	}

	tracker := j.metrics().Track(TaskApprovalReminder)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	now := j.now()
	cutoff := now.Add(-time.Duration(payload.OlderThanHours) * time.Hour)
	logger := j.logger().With(slog.Int("older_than_hours", payload.OlderThanHours))
	logger.Info("starting approval reminder sweep")

	byStep, err := j.scan(ctx, cutoff, now)
	if err != nil {
		resultErr = err
		logger.Error("sweep failed", slog.Any("error", err))
		return resultErr
	}

	total := 0
	for step, stale := range byStep {
		for _, s := range stale {
			logger.Warn("approval overdue",
				slog.String("step", step),
				slog.String("request_id", s.RequestID),
				slog.String("employee", s.EmployeeName),
				slog.String("approver", s.ApproverEmail),
				slog.Duration("age", s.Age),
			)
		}
		j.metrics().AddReminders(step, len(stale))
		total += len(stale)
	}

	logger.Info("completed approval reminder sweep", slog.Int("reminders", total))
	return resultErr
}

// scan queries each step concurrently; every goroutine writes only its own
// slot of the results slice.
func (j *ApprovalReminderJob) scan(ctx context.Context, cutoff, now time.Time) (map[string][]staleApproval, error) {
	if j.Pool == nil {
		return nil, errors.New("approval reminder: pool not configured")
	}

	steps := []approval.Step{
		approval.StepUserSignature,
		approval.StepSupervisorApproval,
		approval.StepAccountingDirector,
		approval.StepHRDirector,
		approval.StepELMAdmin,
		approval.StepSecurityAdmin,
	}

	perStep := make([][]staleApproval, len(steps))

	g, ctx := errgroup.WithContext(ctx)
	for i, step := range steps {
		i, step := i, step
		g.Go(func() error {
			rows, err := j.Pool.Query(ctx, `SELECT a.request_id, r.employee_name, a.approver_email, a.created_at
FROM request_approvals a
JOIN security_role_requests r ON r.id = a.request_id
WHERE a.status = 'pending' AND a.step = $1 AND a.created_at < $2 AND r.status = 'pending'
ORDER BY a.created_at ASC`, string(step), cutoff)
			if err != nil {
				return err
			}
			defer rows.Close()

			var stale []staleApproval
			for rows.Next() {
				var s staleApproval
				var createdAt time.Time
				if err := rows.Scan(&s.RequestID, &s.EmployeeName, &s.ApproverEmail, &createdAt); err != nil {
					return err
				}
				s.Age = now.Sub(createdAt)
				stale = append(stale, s)
			}
			if err := rows.Err(); err != nil {
				return err
			}
			perStep[i] = stale
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[string][]staleApproval)
	for i, step := range steps {
		if len(perStep[i]) > 0 {
			results[string(step)] = perStep[i]
		}
	}
	return results, nil
}

func (j *ApprovalReminderJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskApprovalReminder))
	}
	return slog.Default().With(slog.String("job", TaskApprovalReminder))
}

func (j *ApprovalReminderJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return jobmetrics.NewMetrics(nil)
}

func (j *ApprovalReminderJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
