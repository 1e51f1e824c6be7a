package scheduler

import (
	"context"
	"fmt"

	"centavo/internal/domain/notification"
	"centavo/internal/domain/payment"
)

// MaterializeJob realizes due recurring occurrences as transactions.
type MaterializeJob struct {
	materializer *payment.Materializer
}

func NewMaterializeJob(m *payment.Materializer) *MaterializeJob {
	return &MaterializeJob{materializer: m}
}

func (j *MaterializeJob) Execute(ctx context.Context) error {
	result, err := j.materializer.Run(ctx)
	if err != nil {
		return fmt.Errorf("materializing due occurrences: %w", err)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("materialization finished with %d errors: %s", len(result.Errors), result.Errors[0])
	}
	return nil
}

func (j *MaterializeJob) Description() string {
	return "materialize due occurrences"
}

// ReminderJob pushes upcoming-payment reminders for the next few days.
type ReminderJob struct {
	notifications *notification.Service
	daysAhead     int
}

func NewReminderJob(s *notification.Service, daysAhead int) *ReminderJob {
	return &ReminderJob{notifications: s, daysAhead: daysAhead}
}

func (j *ReminderJob) Execute(ctx context.Context) error {
	if _, err := j.notifications.SendUpcomingReminders(ctx, j.daysAhead); err != nil {
		return fmt.Errorf("sending upcoming-payment reminders: %w", err)
	}
	return nil
}

func (j *ReminderJob) Description() string {
	return fmt.Sprintf("upcoming-payment reminders (%d days ahead)", j.daysAhead)
}

// BudgetAlertJob pushes an alert when monthly spending crosses the configured
// threshold.
type BudgetAlertJob struct {
	notifications *notification.Service
}

func NewBudgetAlertJob(s *notification.Service) *BudgetAlertJob {
	return &BudgetAlertJob{notifications: s}
}

func (j *BudgetAlertJob) Execute(ctx context.Context) error {
	if _, err := j.notifications.SendBudgetAlert(ctx); err != nil {
		return fmt.Errorf("sending budget alert: %w", err)
	}
	return nil
}

func (j *BudgetAlertJob) Description() string {
	return "budget threshold alert"
}
