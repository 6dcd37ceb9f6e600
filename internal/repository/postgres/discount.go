package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository"
)

type discountRepository struct {
	db *sql.DB
}

func NewDiscountRepository(db *sql.DB) repository.DiscountRepository {
	return &discountRepository{db: db}
}

const discountColumns = `id, student_name, class, class_group, section, session, fee_type_name,
	kind, regular_amount, discount_amount, start_date, end_date, created_on`

func (r *discountRepository) Create(ctx context.Context, d *domain.Discount) error {
	logger.EnterMethod("discountRepository.Create", "studentName", d.StudentName, "feeType", d.FeeTypeName)

	query := `INSERT INTO discounts (student_name, class, class_group, section, session, fee_type_name,
	          kind, regular_amount, discount_amount, start_date, end_date, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now().Format("2006-01-02")
	err := r.db.QueryRowContext(ctx, query,
		d.StudentName, d.Class, d.Group, d.Section, d.Session, d.FeeTypeName,
		d.Kind, d.RegularAmount, d.DiscountAmount, d.StartDate, d.EndDate, now,
	).Scan(&d.ID)

	if err != nil {
		logger.ExitMethodWithError("discountRepository.Create", err, "studentName", d.StudentName)
		return err
	}
	d.CreatedOn = now

	logger.ExitMethod("discountRepository.Create", "discountID", d.ID)
	return nil
}

func (r *discountRepository) GetByID(ctx context.Context, id int32) (*domain.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = $1`
	d := &domain.Discount{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.StudentName, &d.Class, &d.Group, &d.Section, &d.Session, &d.FeeTypeName,
		&d.Kind, &d.RegularAmount, &d.DiscountAmount, &d.StartDate, &d.EndDate, &d.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *discountRepository) List(ctx context.Context) ([]domain.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDiscounts(rows)
}

func (r *discountRepository) ListMatching(ctx context.Context, studentName string, f domain.FeeFilter) ([]domain.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts
	          WHERE student_name = $1 AND class = $2 AND class_group = $3 AND section = $4
	            AND session = $5 AND fee_type_name = $6
	          ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, studentName, f.Class, f.Group, f.Section, f.Session, f.FeeTypeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDiscounts(rows)
}

func scanDiscounts(rows *sql.Rows) ([]domain.Discount, error) {
	var out []domain.Discount
	for rows.Next() {
		var d domain.Discount
		if err := rows.Scan(
			&d.ID, &d.StudentName, &d.Class, &d.Group, &d.Section, &d.Session, &d.FeeTypeName,
			&d.Kind, &d.RegularAmount, &d.DiscountAmount, &d.StartDate, &d.EndDate, &d.CreatedOn,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *discountRepository) Update(ctx context.Context, d *domain.Discount) error {
	query := `UPDATE discounts SET student_name = $1, class = $2, class_group = $3, section = $4,
	          session = $5, fee_type_name = $6, kind = $7, regular_amount = $8, discount_amount = $9,
	          start_date = $10, end_date = $11 WHERE id = $12`
	res, err := r.db.ExecContext(ctx, query,
		d.StudentName, d.Class, d.Group, d.Section, d.Session, d.FeeTypeName,
		d.Kind, d.RegularAmount, d.DiscountAmount, d.StartDate, d.EndDate, d.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *discountRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *discountRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM discounts`).Scan(&count)
	return count, err
}
