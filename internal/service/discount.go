package service

import (
	"context"
	"fmt"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/events"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository"
	"schoolfees-backend/internal/utils"
)

// TieBreakPolicy decides which discount wins when several cover the same
// (student, fee type, date).
type TieBreakPolicy string

const (
	// TieBreakLatest picks the most recently created discount (default).
	TieBreakLatest TieBreakPolicy = "latest"
	// TieBreakFirst picks the oldest discount, mirroring first-match lookup.
	TieBreakFirst TieBreakPolicy = "first"
	// TieBreakError rejects ambiguous matches outright.
	TieBreakError TieBreakPolicy = "error"
)

type discountService struct {
	discountRepo repository.DiscountRepository
	bus          *events.Bus
	tieBreak     TieBreakPolicy
}

func NewDiscountService(discountRepo repository.DiscountRepository, bus *events.Bus, tieBreak TieBreakPolicy) DiscountService {
	if tieBreak == "" {
		tieBreak = TieBreakLatest
	}
	return &discountService{discountRepo: discountRepo, bus: bus, tieBreak: tieBreak}
}

func (s *discountService) ResolveEffectiveAmount(ctx context.Context, baseAmount float64, studentName string, f domain.FeeFilter, day string) (float64, error) {
	logger.EnterMethod("discountService.ResolveEffectiveAmount", "studentName", studentName, "feeType", f.FeeTypeName, "day", day)

	matches, err := s.discountRepo.ListMatching(ctx, studentName, f)
	if err != nil {
		logger.ExitMethodWithError("discountService.ResolveEffectiveAmount", err, "studentName", studentName)
		return 0, err
	}

	var active []domain.Discount
	for _, d := range matches {
		if d.ActiveOn(day) {
			active = append(active, d)
		}
	}

	if len(active) == 0 {
		logger.ExitMethod("discountService.ResolveEffectiveAmount", "studentName", studentName, "discounted", false)
		return baseAmount, nil
	}

	winner, err := s.pickWinner(active)
	if err != nil {
		logger.ExitMethodWithError("discountService.ResolveEffectiveAmount", err, "studentName", studentName)
		return 0, err
	}

	effective := effectiveAmount(baseAmount, winner)
	logger.ExitMethod("discountService.ResolveEffectiveAmount",
		"studentName", studentName, "discountID", winner.ID, "kind", string(winner.Kind), "effective", effective)
	return effective, nil
}

func (s *discountService) pickWinner(active []domain.Discount) (domain.Discount, error) {
	if len(active) == 1 {
		return active[0], nil
	}

	switch s.tieBreak {
	case TieBreakError:
		return domain.Discount{}, fmt.Errorf("%w: %d discounts active", ErrAmbiguousDiscount, len(active))
	case TieBreakFirst:
		return active[0], nil
	default:
		// Most recently created wins. CreatedOn is day-granular, so the id
		// breaks same-day ties.
		winner := active[0]
		for _, d := range active[1:] {
			if d.CreatedOn > winner.CreatedOn || (d.CreatedOn == winner.CreatedOn && d.ID > winner.ID) {
				winner = d
			}
		}
		return winner, nil
	}
}

// effectiveAmount computes the overridden payable amount. The fixed path uses
// the discount's own stored base, which embeds the catalog amount cached at
// discount-creation time, and settles in whole units. The percentage path
// works off the live base amount and keeps two decimals. The asymmetry is
// inherited behavior, kept on purpose.
func effectiveAmount(baseAmount float64, d domain.Discount) float64 {
	switch d.Kind {
	case domain.DiscountKindFixed:
		return utils.RoundWhole(utils.ClampNonNegative(d.RegularAmount - d.DiscountAmount))
	case domain.DiscountKindPercentage:
		return utils.RoundCents(utils.ClampNonNegative(baseAmount * (1 - d.DiscountAmount/100)))
	default:
		return baseAmount
	}
}

func (s *discountService) CreateDiscount(ctx context.Context, d *domain.Discount) error {
	if err := validateDiscount(d); err != nil {
		return err
	}
	if err := s.discountRepo.Create(ctx, d); err != nil {
		return err
	}
	s.bus.Publish(events.TopicDiscountsUpdated)
	return nil
}

func (s *discountService) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	return s.discountRepo.List(ctx)
}

func (s *discountService) UpdateDiscount(ctx context.Context, d *domain.Discount) error {
	if err := validateDiscount(d); err != nil {
		return err
	}
	if err := s.discountRepo.Update(ctx, d); err != nil {
		return err
	}
	s.bus.Publish(events.TopicDiscountsUpdated)
	return nil
}

func (s *discountService) DeleteDiscount(ctx context.Context, id int32) error {
	if err := s.discountRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(events.TopicDiscountsUpdated)
	return nil
}

func validateDiscount(d *domain.Discount) error {
	if d.StudentName == "" || d.FeeTypeName == "" {
		return fmt.Errorf("%w: discount needs a student name and fee type", ErrValidation)
	}
	if d.Kind != domain.DiscountKindFixed && d.Kind != domain.DiscountKindPercentage {
		return fmt.Errorf("%w: unknown discount kind %q", ErrValidation, d.Kind)
	}
	if d.DiscountAmount < 0 {
		return fmt.Errorf("%w: discount amount must not be negative", ErrValidation)
	}
	if d.Kind == domain.DiscountKindPercentage && d.DiscountAmount > 100 {
		return fmt.Errorf("%w: percentage discount cannot exceed 100", ErrValidation)
	}
	if err := utils.ValidateISODate(d.StartDate); err != nil {
		return fmt.Errorf("%w: start date: %v", ErrValidation, err)
	}
	if err := utils.ValidateISODate(d.EndDate); err != nil {
		return fmt.Errorf("%w: end date: %v", ErrValidation, err)
	}
	if d.EndDate < d.StartDate {
		return fmt.Errorf("%w: discount window ends before it starts", ErrValidation)
	}
	return nil
}
