package service

import (
	"context"
	"errors"

	"schoolfees-backend/internal/events"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository"
)

type balanceService struct {
	collectionRepo repository.CollectionRepository
	studentRepo    repository.StudentRepository
	bus            *events.Bus
}

func NewBalanceService(collectionRepo repository.CollectionRepository, studentRepo repository.StudentRepository, bus *events.Bus) BalanceService {
	return &balanceService{collectionRepo: collectionRepo, studentRepo: studentRepo, bus: bus}
}

// Resync recomputes feesDue as the sum of totalDue over the student's
// collections and writes it back. Full re-scan per mutation; fine at this
// data scale.
func (s *balanceService) Resync(ctx context.Context, studentID int32) (float64, error) {
	logger.EnterMethod("balanceService.Resync", "studentID", studentID)

	feesDue, err := s.computeFeesDue(ctx, studentID)
	if err != nil {
		logger.ExitMethodWithError("balanceService.Resync", err, "studentID", studentID)
		return 0, err
	}

	if err := s.studentRepo.UpdateFeesDue(ctx, studentID, feesDue); err != nil {
		logger.ExitMethodWithError("balanceService.Resync", err, "studentID", studentID)
		return 0, err
	}

	s.bus.Publish(events.TopicStudentsUpdated)
	logger.ExitMethod("balanceService.Resync", "studentID", studentID, "feesDue", feesDue)
	return feesDue, nil
}

func (s *balanceService) computeFeesDue(ctx context.Context, studentID int32) (float64, error) {
	cols, err := s.collectionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	var feesDue float64
	for _, col := range cols {
		feesDue += col.TotalDue
	}
	return feesDue, nil
}

// ReconcileAll repairs drift between the stored aggregates and the ledger,
// e.g. after two tabs raced a payment against the same student.
func (s *balanceService) ReconcileAll(ctx context.Context) (int, error) {
	logger.EnterMethod("balanceService.ReconcileAll")

	students, err := s.studentRepo.List(ctx)
	if err != nil {
		logger.ExitMethodWithError("balanceService.ReconcileAll", err)
		return 0, err
	}

	repaired := 0
	for _, student := range students {
		feesDue, err := s.computeFeesDue(ctx, student.ID)
		if err != nil {
			logger.Error("Failed to recompute student balance", "studentID", student.ID, "error", err)
			continue
		}
		if feesDue == student.FeesDue {
			continue
		}

		logger.Warn("Student balance drifted from ledger",
			"studentID", student.ID, "stored", student.FeesDue, "computed", feesDue)
		if err := s.studentRepo.UpdateFeesDue(ctx, student.ID, feesDue); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			logger.Error("Failed to repair student balance", "studentID", student.ID, "error", err)
			continue
		}
		repaired++
	}

	if repaired > 0 {
		s.bus.Publish(events.TopicStudentsUpdated)
	}

	logger.ExitMethod("balanceService.ReconcileAll", "repaired", repaired)
	return repaired, nil
}
