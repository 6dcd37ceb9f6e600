package service

import (
	"context"

	"schoolfees-backend/internal/domain"
)

// CatalogService owns the fee catalog: priced fee types and the
// user-creatable fee name labels.
type CatalogService interface {
	// ResolveBaseAmount looks up the unique fee type matching the filter and
	// returns its base amount. A missing fee type is ErrNotOffered, never a
	// silent zero.
	ResolveBaseAmount(ctx context.Context, f domain.FeeFilter) (float64, error)

	CreateFeeType(ctx context.Context, ft *domain.FeeType) error
	ListFeeTypes(ctx context.Context) ([]domain.FeeType, error)
	UpdateFeeType(ctx context.Context, ft *domain.FeeType) error
	DeleteFeeType(ctx context.Context, id int32) error

	CreateFeeLabel(ctx context.Context, label *domain.FeeLabel) error
	ListFeeLabels(ctx context.Context) ([]domain.FeeLabel, error)
	DeleteFeeLabel(ctx context.Context, id int32) error
}

// DiscountService resolves time-bounded per-student amount overrides.
type DiscountService interface {
	// ResolveEffectiveAmount applies the active discount, if any, to the base
	// amount for the given student, scope and evaluation day (yyyy-mm-dd).
	// Outside the discount window the base amount passes through unmodified.
	ResolveEffectiveAmount(ctx context.Context, baseAmount float64, studentName string, f domain.FeeFilter, day string) (float64, error)

	CreateDiscount(ctx context.Context, d *domain.Discount) error
	ListDiscounts(ctx context.Context) ([]domain.Discount, error)
	UpdateDiscount(ctx context.Context, d *domain.Discount) error
	DeleteDiscount(ctx context.Context, id int32) error
}

// PaymentRequest is one payment event against a student's selected fee types.
type PaymentRequest struct {
	StudentID     int32
	FeeTypeNames  []string
	Paid          float64
	PayDate       string // yyyy-mm-dd, defaults to today
	PaymentMethod domain.PaymentMethod
}

// CollectionService is the collection ledger: it records payments, applies
// settlement propagation and maintains the transaction history.
type CollectionService interface {
	RecordPayment(ctx context.Context, req PaymentRequest) (*domain.Collection, error)
	GetCollection(ctx context.Context, serial int32) (*domain.Collection, error)
	ListCollections(ctx context.Context) ([]domain.Collection, error)
	ListStudentCollections(ctx context.Context, studentID int32) ([]domain.Collection, error)
	UpdateCollection(ctx context.Context, serial int32, patch domain.CollectionPatch) (*domain.Collection, error)
	DeleteCollection(ctx context.Context, serial int32) error
}

// BalanceService keeps the denormalized student feesDue aggregate consistent
// with the collection ledger.
type BalanceService interface {
	// Resync recomputes one student's feesDue by full re-scan of their
	// collections and writes it back, returning the new aggregate.
	Resync(ctx context.Context, studentID int32) (float64, error)
	// ReconcileAll resyncs every student and returns how many aggregates had
	// drifted from the ledger.
	ReconcileAll(ctx context.Context) (int, error)
}

// EmailService sends ledger-related mail. Failures are reported but callers
// treat sending as best-effort.
type EmailService interface {
	SendPaymentReceipt(ctx context.Context, email, studentName string, col *domain.Collection) error
	SendDueReminder(ctx context.Context, email, studentName string, feesDue float64) error
}
