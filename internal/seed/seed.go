// Package seed populates an empty store with the default datasets. Seeding
// happens at most once per logical table: a table that already holds records
// is never touched, so user state survives restarts.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository"
)

// Dataset is the seedable slice of the key-value space.
type Dataset struct {
	FeeTypes  []domain.FeeType  `json:"fee_types"`
	FeeLabels []domain.FeeLabel `json:"fee_labels"`
	Discounts []domain.Discount `json:"discounts"`
	Students  []domain.Student  `json:"students"`
}

// Stores groups the repositories seeding writes into.
type Stores struct {
	FeeTypes  repository.FeeTypeRepository
	FeeLabels repository.FeeLabelRepository
	Discounts repository.DiscountRepository
	Students  repository.StudentRepository
}

// Default returns the static dataset merged into fresh deployments.
func Default() Dataset {
	return Dataset{
		FeeLabels: []domain.FeeLabel{
			{Name: "Tuition Fee"},
			{Name: "Exam Fee"},
			{Name: "Admission Fee"},
			{Name: "Library Fee"},
			{Name: "Transport Fee"},
		},
		FeeTypes: []domain.FeeType{
			{Class: "Six", Group: "General", Section: "A", Session: "2024-2025", Name: "Tuition Fee", Amount: 1000},
			{Class: "Six", Group: "General", Section: "A", Session: "2024-2025", Name: "Exam Fee", Amount: 500},
			{Class: "Seven", Group: "General", Section: "A", Session: "2024-2025", Name: "Tuition Fee", Amount: 1200},
		},
	}
}

// LoadFile reads a JSON dataset from disk.
func LoadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return ds, nil
}

// Initialize seeds each empty table from the dataset. Non-empty tables are
// left exactly as they are.
func Initialize(ctx context.Context, stores Stores, ds Dataset) error {
	if err := seedFeeLabels(ctx, stores.FeeLabels, ds.FeeLabels); err != nil {
		return err
	}
	if err := seedFeeTypes(ctx, stores.FeeTypes, ds.FeeTypes); err != nil {
		return err
	}
	if err := seedDiscounts(ctx, stores.Discounts, ds.Discounts); err != nil {
		return err
	}
	return seedStudents(ctx, stores.Students, ds.Students)
}

func seedFeeLabels(ctx context.Context, repo repository.FeeLabelRepository, labels []domain.FeeLabel) error {
	if len(labels) == 0 {
		return nil
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count fee labels: %w", err)
	}
	if count > 0 {
		return nil
	}
	logger.Info("Seeding fee labels", "count", len(labels))
	for i := range labels {
		label := labels[i]
		if err := repo.Create(ctx, &label); err != nil {
			return fmt.Errorf("failed to seed fee label %q: %w", label.Name, err)
		}
	}
	return nil
}

func seedFeeTypes(ctx context.Context, repo repository.FeeTypeRepository, feeTypes []domain.FeeType) error {
	if len(feeTypes) == 0 {
		return nil
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count fee types: %w", err)
	}
	if count > 0 {
		return nil
	}
	logger.Info("Seeding fee types", "count", len(feeTypes))
	for i := range feeTypes {
		ft := feeTypes[i]
		if err := repo.Create(ctx, &ft); err != nil {
			return fmt.Errorf("failed to seed fee type %q: %w", ft.Name, err)
		}
	}
	return nil
}

func seedDiscounts(ctx context.Context, repo repository.DiscountRepository, discounts []domain.Discount) error {
	if len(discounts) == 0 {
		return nil
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count discounts: %w", err)
	}
	if count > 0 {
		return nil
	}
	logger.Info("Seeding discounts", "count", len(discounts))
	for i := range discounts {
		d := discounts[i]
		if err := repo.Create(ctx, &d); err != nil {
			return fmt.Errorf("failed to seed discount for %q: %w", d.StudentName, err)
		}
	}
	return nil
}

func seedStudents(ctx context.Context, repo repository.StudentRepository, students []domain.Student) error {
	if len(students) == 0 {
		return nil
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if count > 0 {
		return nil
	}
	logger.Info("Seeding students", "count", len(students))
	for i := range students {
		s := students[i]
		if err := repo.Create(ctx, &s); err != nil {
			return fmt.Errorf("failed to seed student %q: %w", s.Name, err)
		}
	}
	return nil
}
