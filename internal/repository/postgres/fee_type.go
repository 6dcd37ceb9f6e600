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

type feeTypeRepository struct {
	db *sql.DB
}

func NewFeeTypeRepository(db *sql.DB) repository.FeeTypeRepository {
	return &feeTypeRepository{db: db}
}

func (r *feeTypeRepository) Create(ctx context.Context, ft *domain.FeeType) error {
	logger.EnterMethod("feeTypeRepository.Create", "name", ft.Name, "class", ft.Class)

	query := `INSERT INTO fee_types (class, class_group, section, session, name, amount, last_payable_date, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now().Format("2006-01-02")
	err := r.db.QueryRowContext(ctx, query,
		ft.Class, ft.Group, ft.Section, ft.Session, ft.Name, ft.Amount, ft.LastPayableDate, now,
	).Scan(&ft.ID)

	if err != nil {
		logger.ExitMethodWithError("feeTypeRepository.Create", err, "name", ft.Name)
		return err
	}
	ft.CreatedOn = now

	logger.ExitMethod("feeTypeRepository.Create", "feeTypeID", ft.ID)
	return nil
}

func (r *feeTypeRepository) GetByID(ctx context.Context, id int32) (*domain.FeeType, error) {
	query := `SELECT id, class, class_group, section, session, name, amount, last_payable_date, created_on
	          FROM fee_types WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *feeTypeRepository) FindByFilter(ctx context.Context, f domain.FeeFilter) (*domain.FeeType, error) {
	query := `SELECT id, class, class_group, section, session, name, amount, last_payable_date, created_on
	          FROM fee_types
	          WHERE class = $1 AND class_group = $2 AND section = $3 AND session = $4 AND name = $5`
	return r.scanOne(r.db.QueryRowContext(ctx, query, f.Class, f.Group, f.Section, f.Session, f.FeeTypeName))
}

func (r *feeTypeRepository) scanOne(row *sql.Row) (*domain.FeeType, error) {
	ft := &domain.FeeType{}
	err := row.Scan(&ft.ID, &ft.Class, &ft.Group, &ft.Section, &ft.Session, &ft.Name, &ft.Amount, &ft.LastPayableDate, &ft.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ft, nil
}

func (r *feeTypeRepository) List(ctx context.Context) ([]domain.FeeType, error) {
	query := `SELECT id, class, class_group, section, session, name, amount, last_payable_date, created_on
	          FROM fee_types ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FeeType
	for rows.Next() {
		var ft domain.FeeType
		if err := rows.Scan(&ft.ID, &ft.Class, &ft.Group, &ft.Section, &ft.Session, &ft.Name, &ft.Amount, &ft.LastPayableDate, &ft.CreatedOn); err != nil {
			return nil, err
		}
		out = append(out, ft)
	}
	return out, rows.Err()
}

func (r *feeTypeRepository) Update(ctx context.Context, ft *domain.FeeType) error {
	query := `UPDATE fee_types SET class = $1, class_group = $2, section = $3, session = $4,
	          name = $5, amount = $6, last_payable_date = $7 WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		ft.Class, ft.Group, ft.Section, ft.Session, ft.Name, ft.Amount, ft.LastPayableDate, ft.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *feeTypeRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fee_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *feeTypeRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM fee_types`).Scan(&count)
	return count, err
}

// requireRow maps a zero-row mutation onto the not-found sentinel.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
