package postgres

import (
	"context"
	"database/sql"
	"errors"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository"
)

type studentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) repository.StudentRepository {
	return &studentRepository{db: db}
}

const studentColumns = `id, name, class, class_group, section, session, COALESCE(email, ''), fees_due`

func (r *studentRepository) Create(ctx context.Context, s *domain.Student) error {
	query := `INSERT INTO students (name, class, class_group, section, session, email, fees_due)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		s.Name, s.Class, s.Group, s.Section, s.Session, s.Email, s.FeesDue,
	).Scan(&s.ID)
}

func (r *studentRepository) GetByID(ctx context.Context, id int32) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	s := &domain.Student{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Class, &s.Group, &s.Section, &s.Session, &s.Email, &s.FeesDue,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *studentRepository) List(ctx context.Context) ([]domain.Student, error) {
	return r.list(ctx, `SELECT `+studentColumns+` FROM students ORDER BY id`)
}

func (r *studentRepository) ListWithDues(ctx context.Context) ([]domain.Student, error) {
	return r.list(ctx, `SELECT `+studentColumns+` FROM students WHERE fees_due > 0 ORDER BY id`)
}

func (r *studentRepository) list(ctx context.Context, query string) ([]domain.Student, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Student
	for rows.Next() {
		var s domain.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Class, &s.Group, &s.Section, &s.Session, &s.Email, &s.FeesDue); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *studentRepository) UpdateFeesDue(ctx context.Context, id int32, feesDue float64) error {
	logger.DatabaseCall("studentRepository.UpdateFeesDue", "UPDATE students SET fees_due", "studentID", id, "feesDue", feesDue)

	res, err := r.db.ExecContext(ctx, `UPDATE students SET fees_due = $1 WHERE id = $2`, feesDue, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *studentRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM students`).Scan(&count)
	return count, err
}
