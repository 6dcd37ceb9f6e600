package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/events"
)

func tuitionFilter() domain.FeeFilter {
	return domain.FeeFilter{
		Class:       "Six",
		Group:       "General",
		Section:     "A",
		Session:     "2024-2025",
		FeeTypeName: "Tuition Fee",
	}
}

func TestDiscountService_ResolveEffectiveAmount_NoDiscount(t *testing.T) {
	mockRepo := new(MockDiscountRepo)
	svc := NewDiscountService(mockRepo, events.NewBus(), TieBreakLatest)
	ctx := context.Background()

	mockRepo.On("ListMatching", ctx, "Rahim", tuitionFilter()).Return([]domain.Discount{}, nil)

	amount, err := svc.ResolveEffectiveAmount(ctx, 1000, "Rahim", tuitionFilter(), "2025-01-15")
	assert.NoError(t, err)
	assert.Equal(t, float64(1000), amount)
	mockRepo.AssertExpectations(t)
}

func TestDiscountService_ResolveEffectiveAmount_WindowInclusive(t *testing.T) {
	mockRepo := new(MockDiscountRepo)
	svc := NewDiscountService(mockRepo, events.NewBus(), TieBreakLatest)
	ctx := context.Background()

	d := domain.Discount{
		ID: 1, StudentName: "Rahim",
		Class: "Six", Group: "General", Section: "A", Session: "2024-2025",
		FeeTypeName: "Tuition Fee",
		Kind:        domain.DiscountKindPercentage, DiscountAmount: 50,
		StartDate: "2025-01-10", EndDate: "2025-01-20",
	}
	mockRepo.On("ListMatching", ctx, "Rahim", tuitionFilter()).Return([]domain.Discount{d}, nil)

	cases := []struct {
		day  string
		want float64
	}{
		{"2025-01-09", 1000}, // day before the window
		{"2025-01-10", 500},  // first day counts
		{"2025-01-15", 500},
		{"2025-01-20", 500},  // last day counts
		{"2025-01-21", 1000}, // day after the window
	}
	for _, tc := range cases {
		amount, err := svc.ResolveEffectiveAmount(ctx, 1000, "Rahim", tuitionFilter(), tc.day)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, amount, "day %s", tc.day)
	}
}

func TestDiscountService_ResolveEffectiveAmount_Fixed(t *testing.T) {
	mockRepo := new(MockDiscountRepo)
	svc := NewDiscountService(mockRepo, events.NewBus(), TieBreakLatest)
	ctx := context.Background()

	t.Run("WholeUnitRounding", func(t *testing.T) {
		d := domain.Discount{
			ID: 1, StudentName: "Rahim",
			Class: "Six", Group: "General", Section: "A", Session: "2024-2025",
			FeeTypeName: "Tuition Fee",
			Kind:        domain.DiscountKindFixed,
			RegularAmount: 1000, DiscountAmount: 250.4,
			StartDate: "2025-01-01", EndDate: "2025-12-31",
		}
		mockRepo.On("ListMatching", ctx, "Rahim", tuitionFilter()).Return([]domain.Discount{d}, nil).Once()

		amount, err := svc.ResolveEffectiveAmount(ctx, 1000, "Rahim", tuitionFilter(), "2025-06-01")
		assert.NoError(t, err)
		assert.Equal(t, float64(750), amount)
	})

	t.Run("StoredBaseWinsOverLiveCatalog", func(t *testing.T) {
		// The fixed discount carries the catalog amount cached at creation
		// time. A later catalog price change does not affect it.
		d := domain.Discount{
			ID: 2, StudentName: "Rahim",
			Class: "Six", Group: "General", Section: "A", Session: "2024-2025",
			FeeTypeName: "Tuition Fee",
			Kind:        domain.DiscountKindFixed,
			RegularAmount: 1000, DiscountAmount: 200,
			StartDate: "2025-01-01", EndDate: "2025-12-31",
		}
		mockRepo.On("ListMatching", ctx, "Rahim", tuitionFilter()).Return([]domain.Discount{d}, nil).Once()

		amount, err := svc.ResolveEffectiveAmount(ctx, 1500, "Rahim", tuitionFilter(), "2025-06-01")
		assert.NoError(t, err)
		assert.Equal(t, float64(800), amount)
	})

	t.Run("DiscountLargerThanBaseClampsToZero", func(t *testing.T) {
		d := domain.Discount{
			ID: 3, StudentName: "Rahim",
			Class: "Six", Group: "General", Section: "A", Session: "2024-2025",
			FeeTypeName: "Tuition Fee",
			Kind:        domain.DiscountKindFixed,
			RegularAmount: 500, DiscountAmount: 800,
			StartDate: "2025-01-01", EndDate: "2025-12-31",
		}
		mockRepo.On("ListMatching", ctx, "Rahim", tuitionFilter()).Return([]domain.Discount{d}, nil).Once()

		amount, err := svc.ResolveEffectiveAmount(ctx, 500, "Rahim", tuitionFilter(), "2025-06-01")
		assert.NoError(t, err)
		assert.Equal(t, float64(0), amount)
	})
}

func TestDiscountService_ResolveEffectiveAmount_Percentage(t *testing.T) {
	mockRepo := new(MockDiscountRepo)
	svc := NewDiscountService(mockRepo, events.NewBus(), TieBreakLatest)
	ctx := context.Background()

	t.Run("CentRounding", func(t *testing.T) {
		d := domain.Discount{
			ID: 1, StudentName: "Karim",
			Class: "Six", Group: "General", Section: "A", Session: "2024-2025",
			FeeTypeName: "Tuition Fee",
			Kind:        domain.DiscountKindPercentage, DiscountAmount: 10,
			StartDate: "2025-01-01", EndDate: "2025-12-31",
		}
		mockRepo.On("ListMatching", ctx, "Karim", tuitionFilter()).Return([]domain.Discount{d}, nil).Once()

		amount, err := svc.ResolveEffectiveAmount(ctx, 999.99, "Karim", tuitionFilter(), "2025-06-01")
		assert.NoError(t, err)
		assert.Equal(t, 899.99, amount)
	})

	t.Run("FullWaiver", func(t *testing.T) {
		d := domain.Discount{
			ID: 2, StudentName: "Karim",
			Class: "Six", Group: "General", Section: "A", Session: "2024-2025",
			FeeTypeName: "Tuition Fee",
			Kind:        domain.DiscountKindPercentage, DiscountAmount: 100,
			StartDate: "2025-01-01", EndDate: "2025-12-31",
		}
		mockRepo.On("ListMatching", ctx, "Karim", tuitionFilter()).Return([]domain.Discount{d}, nil).Once()

		amount, err := svc.ResolveEffectiveAmount(ctx, 1000, "Karim", tuitionFilter(), "2025-06-01")
		assert.NoError(t, err)
		assert.Equal(t, float64(0), amount)
	})

	t.Run("PercentageTracksLiveBase", func(t *testing.T) {
		d := domain.Discount{
			ID: 3, StudentName: "Karim",
			Class: "Six", Group: "General", Section: "A", Session: "2024-2025",
			FeeTypeName: "Tuition Fee",
			Kind:        domain.DiscountKindPercentage,
			RegularAmount: 1000, DiscountAmount: 25,
			StartDate: "2025-01-01", EndDate: "2025-12-31",
		}
		mockRepo.On("ListMatching", ctx, "Karim", tuitionFilter()).Return([]domain.Discount{d}, nil).Once()

		// Catalog since raised to 2000; the percentage applies to the live amount.
		amount, err := svc.ResolveEffectiveAmount(ctx, 2000, "Karim", tuitionFilter(), "2025-06-01")
		assert.NoError(t, err)
		assert.Equal(t, float64(1500), amount)
	})
}

func TestDiscountService_TieBreak(t *testing.T) {
	ctx := context.Background()

	older := domain.Discount{
		ID: 1, StudentName: "Rahim",
		Class: "Six", Group: "General", Section: "A", Session: "2024-2025",
		FeeTypeName: "Tuition Fee",
		Kind:        domain.DiscountKindPercentage, DiscountAmount: 10,
		StartDate: "2025-01-01", EndDate: "2025-12-31", CreatedOn: "2025-01-01",
	}
	newer := older
	newer.ID = 2
	newer.DiscountAmount = 20
	newer.CreatedOn = "2025-03-01"

	t.Run("LatestWins", func(t *testing.T) {
		mockRepo := new(MockDiscountRepo)
		svc := NewDiscountService(mockRepo, events.NewBus(), TieBreakLatest)
		mockRepo.On("ListMatching", ctx, "Rahim", tuitionFilter()).Return([]domain.Discount{older, newer}, nil)

		amount, err := svc.ResolveEffectiveAmount(ctx, 1000, "Rahim", tuitionFilter(), "2025-06-01")
		assert.NoError(t, err)
		assert.Equal(t, float64(800), amount)
	})

	t.Run("SameDayHigherIDWins", func(t *testing.T) {
		sameDay := newer
		sameDay.CreatedOn = older.CreatedOn

		mockRepo := new(MockDiscountRepo)
		svc := NewDiscountService(mockRepo, events.NewBus(), TieBreakLatest)
		mockRepo.On("ListMatching", ctx, "Rahim", tuitionFilter()).Return([]domain.Discount{sameDay, older}, nil)

		amount, err := svc.ResolveEffectiveAmount(ctx, 1000, "Rahim", tuitionFilter(), "2025-06-01")
		assert.NoError(t, err)
		assert.Equal(t, float64(800), amount)
	})

	t.Run("FirstWins", func(t *testing.T) {
		mockRepo := new(MockDiscountRepo)
		svc := NewDiscountService(mockRepo, events.NewBus(), TieBreakFirst)
		mockRepo.On("ListMatching", ctx, "Rahim", tuitionFilter()).Return([]domain.Discount{older, newer}, nil)

		amount, err := svc.ResolveEffectiveAmount(ctx, 1000, "Rahim", tuitionFilter(), "2025-06-01")
		assert.NoError(t, err)
		assert.Equal(t, float64(900), amount)
	})

	t.Run("ErrorPolicyRejectsAmbiguity", func(t *testing.T) {
		mockRepo := new(MockDiscountRepo)
		svc := NewDiscountService(mockRepo, events.NewBus(), TieBreakError)
		mockRepo.On("ListMatching", ctx, "Rahim", tuitionFilter()).Return([]domain.Discount{older, newer}, nil)

		_, err := svc.ResolveEffectiveAmount(ctx, 1000, "Rahim", tuitionFilter(), "2025-06-01")
		assert.ErrorIs(t, err, ErrAmbiguousDiscount)
	})

	t.Run("SingleActiveNeverAmbiguous", func(t *testing.T) {
		// The second discount is expired on the evaluation day, so the error
		// policy still resolves cleanly.
		expired := newer
		expired.EndDate = "2025-02-01"

		mockRepo := new(MockDiscountRepo)
		svc := NewDiscountService(mockRepo, events.NewBus(), TieBreakError)
		mockRepo.On("ListMatching", ctx, "Rahim", tuitionFilter()).Return([]domain.Discount{older, expired}, nil)

		amount, err := svc.ResolveEffectiveAmount(ctx, 1000, "Rahim", tuitionFilter(), "2025-06-01")
		assert.NoError(t, err)
		assert.Equal(t, float64(900), amount)
	})
}

func TestDiscountService_CreateDiscount_Validation(t *testing.T) {
	mockRepo := new(MockDiscountRepo)
	svc := NewDiscountService(mockRepo, events.NewBus(), TieBreakLatest)
	ctx := context.Background()

	valid := domain.Discount{
		StudentName: "Rahim", Class: "Six", Session: "2024-2025",
		FeeTypeName: "Tuition Fee",
		Kind:        domain.DiscountKindPercentage, DiscountAmount: 10,
		StartDate: "2025-01-01", EndDate: "2025-12-31",
	}

	t.Run("UnknownKind", func(t *testing.T) {
		d := valid
		d.Kind = "FLAT"
		assert.ErrorIs(t, svc.CreateDiscount(ctx, &d), ErrValidation)
	})

	t.Run("PercentageOverHundred", func(t *testing.T) {
		d := valid
		d.DiscountAmount = 150
		assert.ErrorIs(t, svc.CreateDiscount(ctx, &d), ErrValidation)
	})

	t.Run("WindowEndsBeforeStart", func(t *testing.T) {
		d := valid
		d.StartDate = "2025-12-31"
		d.EndDate = "2025-01-01"
		assert.ErrorIs(t, svc.CreateDiscount(ctx, &d), ErrValidation)
	})

	t.Run("MalformedDate", func(t *testing.T) {
		d := valid
		d.StartDate = "01/01/2025"
		assert.ErrorIs(t, svc.CreateDiscount(ctx, &d), ErrValidation)
	})

	t.Run("Valid", func(t *testing.T) {
		d := valid
		mockRepo.On("Create", ctx, &d).Return(nil).Once()
		assert.NoError(t, svc.CreateDiscount(ctx, &d))
		mockRepo.AssertExpectations(t)
	})
}
