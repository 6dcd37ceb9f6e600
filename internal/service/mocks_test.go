package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"schoolfees-backend/internal/domain"
)

// MockFeeTypeRepo
type MockFeeTypeRepo struct {
	mock.Mock
}

func (m *MockFeeTypeRepo) Create(ctx context.Context, ft *domain.FeeType) error {
	args := m.Called(ctx, ft)
	return args.Error(0)
}
func (m *MockFeeTypeRepo) GetByID(ctx context.Context, id int32) (*domain.FeeType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeType), args.Error(1)
}
func (m *MockFeeTypeRepo) FindByFilter(ctx context.Context, f domain.FeeFilter) (*domain.FeeType, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeType), args.Error(1)
}
func (m *MockFeeTypeRepo) List(ctx context.Context) ([]domain.FeeType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FeeType), args.Error(1)
}
func (m *MockFeeTypeRepo) Update(ctx context.Context, ft *domain.FeeType) error {
	args := m.Called(ctx, ft)
	return args.Error(0)
}
func (m *MockFeeTypeRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockFeeTypeRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

// MockFeeLabelRepo
type MockFeeLabelRepo struct {
	mock.Mock
}

func (m *MockFeeLabelRepo) Create(ctx context.Context, label *domain.FeeLabel) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}
func (m *MockFeeLabelRepo) List(ctx context.Context) ([]domain.FeeLabel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FeeLabel), args.Error(1)
}
func (m *MockFeeLabelRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockFeeLabelRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

// MockDiscountRepo
type MockDiscountRepo struct {
	mock.Mock
}

func (m *MockDiscountRepo) Create(ctx context.Context, d *domain.Discount) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDiscountRepo) GetByID(ctx context.Context, id int32) (*domain.Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Discount), args.Error(1)
}
func (m *MockDiscountRepo) List(ctx context.Context) ([]domain.Discount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Discount), args.Error(1)
}
func (m *MockDiscountRepo) ListMatching(ctx context.Context, studentName string, f domain.FeeFilter) ([]domain.Discount, error) {
	args := m.Called(ctx, studentName, f)
	return args.Get(0).([]domain.Discount), args.Error(1)
}
func (m *MockDiscountRepo) Update(ctx context.Context, d *domain.Discount) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDiscountRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockDiscountRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

// MockCollectionRepo
type MockCollectionRepo struct {
	mock.Mock
}

func (m *MockCollectionRepo) Create(ctx context.Context, col *domain.Collection, settleSerials []int32) error {
	args := m.Called(ctx, col, settleSerials)
	return args.Error(0)
}
func (m *MockCollectionRepo) GetBySerial(ctx context.Context, serial int32) (*domain.Collection, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}
func (m *MockCollectionRepo) List(ctx context.Context) ([]domain.Collection, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Collection), args.Error(1)
}
func (m *MockCollectionRepo) ListByStudent(ctx context.Context, studentID int32) ([]domain.Collection, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]domain.Collection), args.Error(1)
}
func (m *MockCollectionRepo) ListOutstanding(ctx context.Context, studentID int32, f domain.FeeFilter) ([]domain.Collection, error) {
	args := m.Called(ctx, studentID, f)
	return args.Get(0).([]domain.Collection), args.Error(1)
}
func (m *MockCollectionRepo) Update(ctx context.Context, serial int32, patch domain.CollectionPatch) (*domain.Collection, error) {
	args := m.Called(ctx, serial, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}
func (m *MockCollectionRepo) Delete(ctx context.Context, serial int32) error {
	args := m.Called(ctx, serial)
	return args.Error(0)
}

// MockStudentRepo
type MockStudentRepo struct {
	mock.Mock
}

func (m *MockStudentRepo) Create(ctx context.Context, s *domain.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockStudentRepo) GetByID(ctx context.Context, id int32) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentRepo) List(ctx context.Context) ([]domain.Student, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Student), args.Error(1)
}
func (m *MockStudentRepo) ListWithDues(ctx context.Context) ([]domain.Student, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Student), args.Error(1)
}
func (m *MockStudentRepo) UpdateFeesDue(ctx context.Context, id int32, feesDue float64) error {
	args := m.Called(ctx, id, feesDue)
	return args.Error(0)
}
func (m *MockStudentRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, email, studentName string, col *domain.Collection) error {
	args := m.Called(ctx, email, studentName, col)
	return args.Error(0)
}
func (m *MockEmailService) SendDueReminder(ctx context.Context, email, studentName string, feesDue float64) error {
	args := m.Called(ctx, email, studentName, feesDue)
	return args.Error(0)
}
