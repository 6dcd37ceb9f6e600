package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/events"
	"schoolfees-backend/internal/repository"
)

func TestCatalogService_ResolveBaseAmount(t *testing.T) {
	mockFeeTypes := new(MockFeeTypeRepo)
	mockFeeLabels := new(MockFeeLabelRepo)
	svc := NewCatalogService(mockFeeTypes, mockFeeLabels, events.NewBus())
	ctx := context.Background()

	t.Run("Offered", func(t *testing.T) {
		f := tuitionFilter()
		mockFeeTypes.On("FindByFilter", ctx, f).Return(&domain.FeeType{
			ID: 1, Class: "Six", Group: "General", Section: "A",
			Session: "2024-2025", Name: "Tuition Fee", Amount: 1000,
		}, nil).Once()

		amount, err := svc.ResolveBaseAmount(ctx, f)
		assert.NoError(t, err)
		assert.Equal(t, float64(1000), amount)
	})

	t.Run("NotOffered", func(t *testing.T) {
		f := tuitionFilter()
		f.Class = "Nine"
		mockFeeTypes.On("FindByFilter", ctx, f).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.ResolveBaseAmount(ctx, f)
		assert.ErrorIs(t, err, ErrNotOffered)
	})

	mockFeeTypes.AssertExpectations(t)
}

func TestCatalogService_CreateFeeType(t *testing.T) {
	mockFeeTypes := new(MockFeeTypeRepo)
	svc := NewCatalogService(mockFeeTypes, new(MockFeeLabelRepo), events.NewBus())
	ctx := context.Background()

	t.Run("MissingName", func(t *testing.T) {
		err := svc.CreateFeeType(ctx, &domain.FeeType{Class: "Six", Session: "2024-2025"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		err := svc.CreateFeeType(ctx, &domain.FeeType{
			Class: "Six", Session: "2024-2025", Name: "Tuition Fee", Amount: -10,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Valid", func(t *testing.T) {
		ft := &domain.FeeType{Class: "Six", Session: "2024-2025", Name: "Tuition Fee", Amount: 1000}
		mockFeeTypes.On("Create", ctx, ft).Return(nil).Once()
		assert.NoError(t, svc.CreateFeeType(ctx, ft))
	})

	mockFeeTypes.AssertExpectations(t)
}

func TestCatalogService_FeeLabels(t *testing.T) {
	mockFeeLabels := new(MockFeeLabelRepo)
	svc := NewCatalogService(new(MockFeeTypeRepo), mockFeeLabels, events.NewBus())
	ctx := context.Background()

	t.Run("CreateRejectsEmptyName", func(t *testing.T) {
		assert.ErrorIs(t, svc.CreateFeeLabel(ctx, &domain.FeeLabel{}), ErrValidation)
	})

	t.Run("CreateAndList", func(t *testing.T) {
		label := &domain.FeeLabel{Name: "Library Fee"}
		mockFeeLabels.On("Create", ctx, label).Return(nil).Once()
		assert.NoError(t, svc.CreateFeeLabel(ctx, label))

		mockFeeLabels.On("List", ctx).Return([]domain.FeeLabel{{ID: 1, Name: "Library Fee"}}, nil).Once()
		labels, err := svc.ListFeeLabels(ctx)
		assert.NoError(t, err)
		assert.Len(t, labels, 1)
	})

	mockFeeLabels.AssertExpectations(t)
}

func TestCatalogService_PublishesChangeNotifications(t *testing.T) {
	mockFeeTypes := new(MockFeeTypeRepo)
	bus := events.NewBus()
	svc := NewCatalogService(mockFeeTypes, new(MockFeeLabelRepo), bus)
	ctx := context.Background()

	ch, cancel := bus.Subscribe(events.TopicFeeTypesUpdated)
	defer cancel()

	ft := &domain.FeeType{Class: "Six", Session: "2024-2025", Name: "Tuition Fee", Amount: 1000}
	mockFeeTypes.On("Create", ctx, ft).Return(nil).Once()
	assert.NoError(t, svc.CreateFeeType(ctx, ft))

	select {
	case topic := <-ch:
		assert.Equal(t, events.TopicFeeTypesUpdated, topic)
	default:
		t.Fatal("expected a fee types change notification")
	}
}
