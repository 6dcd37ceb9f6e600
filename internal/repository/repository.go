package repository

import (
	"context"
	"errors"

	"schoolfees-backend/internal/domain"
)

// ErrNotFound is returned by lookups, updates and deletes that hit no record.
// Callers treat it as a non-fatal no-op and refresh their view.
var ErrNotFound = errors.New("record not found")

type FeeTypeRepository interface {
	Create(ctx context.Context, ft *domain.FeeType) error
	GetByID(ctx context.Context, id int32) (*domain.FeeType, error)
	// FindByFilter returns the unique fee type matching the composite
	// (class, group, section, session, name) key, or ErrNotFound.
	FindByFilter(ctx context.Context, f domain.FeeFilter) (*domain.FeeType, error)
	List(ctx context.Context) ([]domain.FeeType, error)
	Update(ctx context.Context, ft *domain.FeeType) error
	Delete(ctx context.Context, id int32) error
	Count(ctx context.Context) (int32, error)
}

type FeeLabelRepository interface {
	Create(ctx context.Context, label *domain.FeeLabel) error
	List(ctx context.Context) ([]domain.FeeLabel, error)
	Delete(ctx context.Context, id int32) error
	Count(ctx context.Context) (int32, error)
}

type DiscountRepository interface {
	Create(ctx context.Context, d *domain.Discount) error
	GetByID(ctx context.Context, id int32) (*domain.Discount, error)
	List(ctx context.Context) ([]domain.Discount, error)
	// ListMatching returns all discounts scoped to the student and filter,
	// regardless of date window. Window and tie-break policy are applied by
	// the discount service.
	ListMatching(ctx context.Context, studentName string, f domain.FeeFilter) ([]domain.Discount, error)
	Update(ctx context.Context, d *domain.Discount) error
	Delete(ctx context.Context, id int32) error
	Count(ctx context.Context) (int32, error)
}

type CollectionRepository interface {
	// Create persists a new collection record, assigning its serial, and in
	// the same transaction forces totalDue and payableDue to zero on every
	// record named in settleSerials. The two writes are atomic together.
	Create(ctx context.Context, col *domain.Collection, settleSerials []int32) error
	GetBySerial(ctx context.Context, serial int32) (*domain.Collection, error)
	List(ctx context.Context) ([]domain.Collection, error)
	ListByStudent(ctx context.Context, studentID int32) ([]domain.Collection, error)
	// ListOutstanding returns the student's records with totalDue > 0 within
	// the same class/group/section/session scope.
	ListOutstanding(ctx context.Context, studentID int32, f domain.FeeFilter) ([]domain.Collection, error)
	// Update applies a direct field patch to one record and re-derives
	// payableDue from the patched amounts. It never touches other records.
	Update(ctx context.Context, serial int32, patch domain.CollectionPatch) (*domain.Collection, error)
	// Delete removes exactly one record. No due re-propagation occurs.
	Delete(ctx context.Context, serial int32) error
}

type StudentRepository interface {
	Create(ctx context.Context, s *domain.Student) error
	GetByID(ctx context.Context, id int32) (*domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	// ListWithDues returns students whose denormalized feesDue is positive.
	ListWithDues(ctx context.Context) ([]domain.Student, error)
	UpdateFeesDue(ctx context.Context, id int32, feesDue float64) error
	Count(ctx context.Context) (int32, error)
}
