package service

import (
	"context"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/repository"
)

// ReminderService pairs the indebted-student listing with the reminder mail,
// for the scheduled reminder job.
type ReminderService interface {
	ListStudentsWithDues(ctx context.Context) ([]domain.Student, error)
	SendDueReminder(ctx context.Context, email, studentName string, feesDue float64) error
}

type reminderService struct {
	studentRepo repository.StudentRepository
	emailSvc    EmailService
}

func NewReminderService(studentRepo repository.StudentRepository, emailSvc EmailService) ReminderService {
	return &reminderService{studentRepo: studentRepo, emailSvc: emailSvc}
}

func (s *reminderService) ListStudentsWithDues(ctx context.Context) ([]domain.Student, error) {
	return s.studentRepo.ListWithDues(ctx)
}

func (s *reminderService) SendDueReminder(ctx context.Context, email, studentName string, feesDue float64) error {
	return s.emailSvc.SendDueReminder(ctx, email, studentName, feesDue)
}
