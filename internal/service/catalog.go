package service

import (
	"context"
	"errors"
	"fmt"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/events"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository"
)

type catalogService struct {
	feeTypeRepo  repository.FeeTypeRepository
	feeLabelRepo repository.FeeLabelRepository
	bus          *events.Bus
}

func NewCatalogService(feeTypeRepo repository.FeeTypeRepository, feeLabelRepo repository.FeeLabelRepository, bus *events.Bus) CatalogService {
	return &catalogService{feeTypeRepo: feeTypeRepo, feeLabelRepo: feeLabelRepo, bus: bus}
}

func (s *catalogService) ResolveBaseAmount(ctx context.Context, f domain.FeeFilter) (float64, error) {
	logger.EnterMethod("catalogService.ResolveBaseAmount", "feeType", f.FeeTypeName, "class", f.Class)

	ft, err := s.feeTypeRepo.FindByFilter(ctx, f)
	if errors.Is(err, repository.ErrNotFound) {
		logger.ExitMethod("catalogService.ResolveBaseAmount", "feeType", f.FeeTypeName, "offered", false)
		return 0, fmt.Errorf("%w: %s for class %s section %s session %s",
			ErrNotOffered, f.FeeTypeName, f.Class, f.Section, f.Session)
	}
	if err != nil {
		logger.ExitMethodWithError("catalogService.ResolveBaseAmount", err, "feeType", f.FeeTypeName)
		return 0, err
	}

	logger.ExitMethod("catalogService.ResolveBaseAmount", "feeType", f.FeeTypeName, "amount", ft.Amount)
	return ft.Amount, nil
}

func (s *catalogService) CreateFeeType(ctx context.Context, ft *domain.FeeType) error {
	if ft.Name == "" || ft.Class == "" || ft.Session == "" {
		return fmt.Errorf("%w: fee type needs a name, class and session", ErrValidation)
	}
	if ft.Amount < 0 {
		return fmt.Errorf("%w: fee amount must not be negative", ErrValidation)
	}
	if err := s.feeTypeRepo.Create(ctx, ft); err != nil {
		return err
	}
	s.bus.Publish(events.TopicFeeTypesUpdated)
	return nil
}

func (s *catalogService) ListFeeTypes(ctx context.Context) ([]domain.FeeType, error) {
	return s.feeTypeRepo.List(ctx)
}

func (s *catalogService) UpdateFeeType(ctx context.Context, ft *domain.FeeType) error {
	if ft.Amount < 0 {
		return fmt.Errorf("%w: fee amount must not be negative", ErrValidation)
	}
	if err := s.feeTypeRepo.Update(ctx, ft); err != nil {
		return err
	}
	s.bus.Publish(events.TopicFeeTypesUpdated)
	return nil
}

func (s *catalogService) DeleteFeeType(ctx context.Context, id int32) error {
	if err := s.feeTypeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(events.TopicFeeTypesUpdated)
	return nil
}

func (s *catalogService) CreateFeeLabel(ctx context.Context, label *domain.FeeLabel) error {
	if label.Name == "" {
		return fmt.Errorf("%w: fee label needs a name", ErrValidation)
	}
	if err := s.feeLabelRepo.Create(ctx, label); err != nil {
		return err
	}
	s.bus.Publish(events.TopicFeesUpdated)
	return nil
}

func (s *catalogService) ListFeeLabels(ctx context.Context) ([]domain.FeeLabel, error) {
	return s.feeLabelRepo.List(ctx)
}

func (s *catalogService) DeleteFeeLabel(ctx context.Context, id int32) error {
	if err := s.feeLabelRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(events.TopicFeesUpdated)
	return nil
}
