package jobs

import (
	"context"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/logger"
)

// BalanceReconciler is the slice of the balance service jobs need.
type BalanceReconciler interface {
	ReconcileAll(ctx context.Context) (int, error)
}

// DueReminderSender lists indebted students and mails them.
type DueReminderSender interface {
	ListStudentsWithDues(ctx context.Context) ([]domain.Student, error)
	SendDueReminder(ctx context.Context, email, studentName string, feesDue float64) error
}

// ReconcileStudentBalances recomputes every student's feesDue aggregate from
// the collection ledger and repairs any drift. Drift can accumulate when two
// open views race payments against the same student.
func (jr *JobRunner) ReconcileStudentBalances() {
	jr.runWithRecovery("ReconcileStudentBalances", func() {
		ctx := context.Background()

		repaired, err := jr.services.Balance.ReconcileAll(ctx)
		if err != nil {
			logger.Error("Balance reconciliation failed", "error", err)
			return
		}
		if repaired > 0 {
			logger.Warn("Repaired drifted student balances", "count", repaired)
		}
	})
}

// SendDueReminders emails every student carrying an outstanding balance.
func (jr *JobRunner) SendDueReminders() {
	jr.runWithRecovery("SendDueReminders", func() {
		ctx := context.Background()

		students, err := jr.services.Reminder.ListStudentsWithDues(ctx)
		if err != nil {
			logger.Error("Failed to list students with dues", "error", err)
			return
		}

		sent := 0
		for _, student := range students {
			if student.Email == "" {
				continue
			}
			if err := jr.services.Reminder.SendDueReminder(ctx, student.Email, student.Name, student.FeesDue); err != nil {
				logger.Error("Failed to send due reminder", "studentID", student.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Due reminders sent", "count", sent, "candidates", len(students))
	})
}
