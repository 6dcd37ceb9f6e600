package postgres

import (
	"context"
	"database/sql"
	"time"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/repository"
)

type feeLabelRepository struct {
	db *sql.DB
}

func NewFeeLabelRepository(db *sql.DB) repository.FeeLabelRepository {
	return &feeLabelRepository{db: db}
}

func (r *feeLabelRepository) Create(ctx context.Context, label *domain.FeeLabel) error {
	query := `INSERT INTO fee_labels (name, created_on) VALUES ($1, $2) RETURNING id`
	now := time.Now().Format("2006-01-02")
	if err := r.db.QueryRowContext(ctx, query, label.Name, now).Scan(&label.ID); err != nil {
		return err
	}
	label.CreatedOn = now
	return nil
}

func (r *feeLabelRepository) List(ctx context.Context) ([]domain.FeeLabel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_on FROM fee_labels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FeeLabel
	for rows.Next() {
		var l domain.FeeLabel
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedOn); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *feeLabelRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fee_labels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *feeLabelRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM fee_labels`).Scan(&count)
	return count, err
}
