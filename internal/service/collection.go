package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/events"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository"
	"schoolfees-backend/internal/utils"
)

type collectionService struct {
	collectionRepo repository.CollectionRepository
	studentRepo    repository.StudentRepository
	catalogSvc     CatalogService
	discountSvc    DiscountService
	balanceSvc     BalanceService
	emailSvc       EmailService
	bus            *events.Bus
	sendReceipts   bool
}

func NewCollectionService(
	collectionRepo repository.CollectionRepository,
	studentRepo repository.StudentRepository,
	catalogSvc CatalogService,
	discountSvc DiscountService,
	balanceSvc BalanceService,
	emailSvc EmailService,
	bus *events.Bus,
	sendReceipts bool,
) CollectionService {
	return &collectionService{
		collectionRepo: collectionRepo,
		studentRepo:    studentRepo,
		catalogSvc:     catalogSvc,
		discountSvc:    discountSvc,
		balanceSvc:     balanceSvc,
		emailSvc:       emailSvc,
		bus:            bus,
		sendReceipts:   sendReceipts,
	}
}

// RecordPayment turns one payment event into a new collection record plus the
// settlement updates it implies, then republishes the student's aggregate.
func (s *collectionService) RecordPayment(ctx context.Context, req PaymentRequest) (*domain.Collection, error) {
	logger.EnterMethod("collectionService.RecordPayment",
		"studentID", req.StudentID, "feeTypes", len(req.FeeTypeNames), "paid", req.Paid)

	if err := validatePaymentRequest(&req); err != nil {
		logger.ExitMethodWithError("collectionService.RecordPayment", err, "studentID", req.StudentID)
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		logger.ExitMethodWithError("collectionService.RecordPayment", err, "studentID", req.StudentID)
		return nil, err
	}

	scope := domain.FeeFilter{
		Class:   student.Class,
		Group:   student.Group,
		Section: student.Section,
		Session: student.Session,
	}

	// Per-fee-type effective amounts: catalog base, then discount override.
	var totalPayable float64
	for _, name := range req.FeeTypeNames {
		f := scope
		f.FeeTypeName = name

		base, err := s.catalogSvc.ResolveBaseAmount(ctx, f)
		if err != nil {
			logger.ExitMethodWithError("collectionService.RecordPayment", err, "studentID", req.StudentID, "feeType", name)
			return nil, err
		}

		effective, err := s.discountSvc.ResolveEffectiveAmount(ctx, base, student.Name, f, req.PayDate)
		if err != nil {
			logger.ExitMethodWithError("collectionService.RecordPayment", err, "studentID", req.StudentID, "feeType", name)
			return nil, err
		}
		totalPayable += effective
	}

	// Prior unpaid records within the same academic scope carry forward.
	outstanding, err := s.collectionRepo.ListOutstanding(ctx, student.ID, scope)
	if err != nil {
		logger.ExitMethodWithError("collectionService.RecordPayment", err, "studentID", req.StudentID)
		return nil, err
	}
	var overdueAmount float64
	for _, prior := range outstanding {
		overdueAmount += prior.TotalDue
	}

	calculatedTotalDue := totalPayable + student.FeesDue + overdueAmount

	var totalDue float64
	if req.Paid >= calculatedTotalDue {
		totalDue = 0
	} else {
		totalDue = utils.ClampNonNegative(calculatedTotalDue - req.Paid)
	}
	payableDue := utils.ClampNonNegative(totalPayable - req.Paid)

	settleSerials := settlePriorDuesIfFullyCovered(req.Paid, overdueAmount, outstanding)

	col := &domain.Collection{
		ReceiptRef:    uuid.NewString(),
		StudentID:     student.ID,
		StudentName:   student.Name,
		Class:         student.Class,
		Group:         student.Group,
		Section:       student.Section,
		Session:       student.Session,
		FeeTypes:      req.FeeTypeNames,
		TotalPayable:  totalPayable,
		PaidAmount:    req.Paid,
		PayableDue:    payableDue,
		TotalDue:      totalDue,
		OverdueAmount: overdueAmount,
		PayDate:       req.PayDate,
		PaymentMethod: req.PaymentMethod,
	}

	// New record and settlement updates persist atomically together.
	if err := s.collectionRepo.Create(ctx, col, settleSerials); err != nil {
		logger.ExitMethodWithError("collectionService.RecordPayment", err, "studentID", req.StudentID)
		return nil, err
	}

	s.bus.Publish(events.TopicCollectionsUpdated)

	if _, err := s.balanceSvc.Resync(ctx, student.ID); err != nil {
		logger.Error("Failed to resync student balance after payment",
			"studentID", student.ID, "serial", col.Serial, "error", err)
	}

	if s.sendReceipts && student.Email != "" {
		_ = s.emailSvc.SendPaymentReceipt(ctx, student.Email, student.Name, col)
	}

	logger.ExitMethod("collectionService.RecordPayment",
		"studentID", req.StudentID, "serial", col.Serial, "totalPayable", totalPayable,
		"totalDue", totalDue, "settled", len(settleSerials))
	return col, nil
}

// settlePriorDuesIfFullyCovered returns the serials of prior outstanding
// records to force to zero. The policy is all-or-nothing: a payment covering
// the entire carried-forward amount clears every prior record; anything less
// clears none of them. There is no oldest-first partial credit.
func settlePriorDuesIfFullyCovered(paid, overdueAmount float64, outstanding []domain.Collection) []int32 {
	if overdueAmount <= 0 || paid < overdueAmount {
		return nil
	}
	serials := make([]int32, 0, len(outstanding))
	for _, col := range outstanding {
		serials = append(serials, col.Serial)
	}
	return serials
}

func validatePaymentRequest(req *PaymentRequest) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: a student must be selected", ErrValidation)
	}
	if len(req.FeeTypeNames) == 0 {
		return fmt.Errorf("%w: at least one fee type must be selected", ErrValidation)
	}
	for _, name := range req.FeeTypeNames {
		if name == "" {
			return fmt.Errorf("%w: fee type name must not be empty", ErrValidation)
		}
	}
	if req.Paid <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	if req.PayDate == "" {
		req.PayDate = time.Now().Format("2006-01-02")
	} else if err := utils.ValidateISODate(req.PayDate); err != nil {
		return fmt.Errorf("%w: pay date: %v", ErrValidation, err)
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.PaymentMethodCash
	}
	return nil
}

func (s *collectionService) GetCollection(ctx context.Context, serial int32) (*domain.Collection, error) {
	return s.collectionRepo.GetBySerial(ctx, serial)
}

func (s *collectionService) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	return s.collectionRepo.List(ctx)
}

func (s *collectionService) ListStudentCollections(ctx context.Context, studentID int32) ([]domain.Collection, error) {
	return s.collectionRepo.ListByStudent(ctx, studentID)
}

// UpdateCollection applies a direct field patch. payableDue is re-derived in
// the store; settlement propagation never reruns on edit, so an edit can
// reintroduce a non-zero totalDue on a previously settled record.
func (s *collectionService) UpdateCollection(ctx context.Context, serial int32, patch domain.CollectionPatch) (*domain.Collection, error) {
	logger.EnterMethod("collectionService.UpdateCollection", "serial", serial)

	col, err := s.collectionRepo.Update(ctx, serial, patch)
	if err != nil {
		logger.ExitMethodWithError("collectionService.UpdateCollection", err, "serial", serial)
		return nil, err
	}

	s.bus.Publish(events.TopicCollectionsUpdated)

	if _, err := s.balanceSvc.Resync(ctx, col.StudentID); err != nil {
		logger.Error("Failed to resync student balance after edit",
			"studentID", col.StudentID, "serial", serial, "error", err)
	}

	logger.ExitMethod("collectionService.UpdateCollection", "serial", serial)
	return col, nil
}

// DeleteCollection removes exactly one record. Records it may have settled in
// the past stay settled; deletion never unsettles anything.
func (s *collectionService) DeleteCollection(ctx context.Context, serial int32) error {
	logger.EnterMethod("collectionService.DeleteCollection", "serial", serial)

	col, err := s.collectionRepo.GetBySerial(ctx, serial)
	if err != nil {
		logger.ExitMethodWithError("collectionService.DeleteCollection", err, "serial", serial)
		return err
	}

	if err := s.collectionRepo.Delete(ctx, serial); err != nil {
		logger.ExitMethodWithError("collectionService.DeleteCollection", err, "serial", serial)
		return err
	}

	s.bus.Publish(events.TopicCollectionsUpdated)

	if _, err := s.balanceSvc.Resync(ctx, col.StudentID); err != nil {
		logger.Error("Failed to resync student balance after delete",
			"studentID", col.StudentID, "serial", serial, "error", err)
	}

	logger.ExitMethod("collectionService.DeleteCollection", "serial", serial)
	return nil
}
