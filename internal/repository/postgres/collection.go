package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository"
	"schoolfees-backend/internal/utils"
)

type collectionRepository struct {
	db *sql.DB
}

func NewCollectionRepository(db *sql.DB) repository.CollectionRepository {
	return &collectionRepository{db: db}
}

const collectionColumns = `serial, receipt_ref, student_id, student_name, class, class_group, section,
	session, fee_types, total_payable, paid_amount, payable_due, total_due, overdue_amount,
	pay_date, payment_method, created_on`

func (r *collectionRepository) Create(ctx context.Context, col *domain.Collection, settleSerials []int32) error {
	logger.EnterMethod("collectionRepository.Create", "studentID", col.StudentID, "settleCount", len(settleSerials))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("collectionRepository.Create", err, "studentID", col.StudentID)
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO collections (receipt_ref, student_id, student_name, class, class_group, section,
	          session, fee_types, total_payable, paid_amount, payable_due, total_due, overdue_amount,
	          pay_date, payment_method, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING serial`
	now := time.Now().Format("2006-01-02")
	err = tx.QueryRowContext(ctx, query,
		col.ReceiptRef, col.StudentID, col.StudentName, col.Class, col.Group, col.Section,
		col.Session, pq.Array(col.FeeTypes), col.TotalPayable, col.PaidAmount, col.PayableDue,
		col.TotalDue, col.OverdueAmount, col.PayDate, col.PaymentMethod, now,
	).Scan(&col.Serial)
	if err != nil {
		logger.ExitMethodWithError("collectionRepository.Create", err, "studentID", col.StudentID)
		return err
	}
	col.CreatedOn = now

	// Settlement writes ride in the same transaction as the new record so a
	// covering payment and the records it zeroes can never diverge.
	if len(settleSerials) > 0 {
		settle := `UPDATE collections SET total_due = 0, payable_due = 0 WHERE serial = ANY($1)`
		if _, err := tx.ExecContext(ctx, settle, pq.Array(settleSerials)); err != nil {
			logger.ExitMethodWithError("collectionRepository.Create", err, "studentID", col.StudentID)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("collectionRepository.Create", err, "studentID", col.StudentID)
		return err
	}

	logger.ExitMethod("collectionRepository.Create", "serial", col.Serial)
	return nil
}

func (r *collectionRepository) GetBySerial(ctx context.Context, serial int32) (*domain.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE serial = $1`
	col := &domain.Collection{}
	err := r.db.QueryRowContext(ctx, query, serial).Scan(
		&col.Serial, &col.ReceiptRef, &col.StudentID, &col.StudentName, &col.Class, &col.Group,
		&col.Section, &col.Session, pq.Array(&col.FeeTypes), &col.TotalPayable, &col.PaidAmount,
		&col.PayableDue, &col.TotalDue, &col.OverdueAmount, &col.PayDate, &col.PaymentMethod, &col.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return col, nil
}

func (r *collectionRepository) List(ctx context.Context) ([]domain.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections ORDER BY serial`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCollections(rows)
}

func (r *collectionRepository) ListByStudent(ctx context.Context, studentID int32) ([]domain.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE student_id = $1 ORDER BY serial`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCollections(rows)
}

func (r *collectionRepository) ListOutstanding(ctx context.Context, studentID int32, f domain.FeeFilter) ([]domain.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections
	          WHERE student_id = $1 AND class = $2 AND class_group = $3 AND section = $4
	            AND session = $5 AND total_due > 0
	          ORDER BY serial`
	rows, err := r.db.QueryContext(ctx, query, studentID, f.Class, f.Group, f.Section, f.Session)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCollections(rows)
}

func scanCollections(rows *sql.Rows) ([]domain.Collection, error) {
	var out []domain.Collection
	for rows.Next() {
		var col domain.Collection
		if err := rows.Scan(
			&col.Serial, &col.ReceiptRef, &col.StudentID, &col.StudentName, &col.Class, &col.Group,
			&col.Section, &col.Session, pq.Array(&col.FeeTypes), &col.TotalPayable, &col.PaidAmount,
			&col.PayableDue, &col.TotalDue, &col.OverdueAmount, &col.PayDate, &col.PaymentMethod, &col.CreatedOn,
		); err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, rows.Err()
}

func (r *collectionRepository) Update(ctx context.Context, serial int32, patch domain.CollectionPatch) (*domain.Collection, error) {
	logger.EnterMethod("collectionRepository.Update", "serial", serial)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + collectionColumns + ` FROM collections WHERE serial = $1 FOR UPDATE`
	col := &domain.Collection{}
	err = tx.QueryRowContext(ctx, query, serial).Scan(
		&col.Serial, &col.ReceiptRef, &col.StudentID, &col.StudentName, &col.Class, &col.Group,
		&col.Section, &col.Session, pq.Array(&col.FeeTypes), &col.TotalPayable, &col.PaidAmount,
		&col.PayableDue, &col.TotalDue, &col.OverdueAmount, &col.PayDate, &col.PaymentMethod, &col.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		logger.ExitMethodWithError("collectionRepository.Update", err, "serial", serial)
		return nil, err
	}

	applyPatch(col, patch)

	update := `UPDATE collections SET fee_types = $1, total_payable = $2, paid_amount = $3,
	           payable_due = $4, total_due = $5, pay_date = $6, payment_method = $7 WHERE serial = $8`
	if _, err := tx.ExecContext(ctx, update,
		pq.Array(col.FeeTypes), col.TotalPayable, col.PaidAmount, col.PayableDue, col.TotalDue,
		col.PayDate, col.PaymentMethod, serial,
	); err != nil {
		logger.ExitMethodWithError("collectionRepository.Update", err, "serial", serial)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	logger.ExitMethod("collectionRepository.Update", "serial", serial)
	return col, nil
}

// applyPatch overlays the non-nil patch fields and re-derives payableDue from
// the patched amounts. Editing is a direct field patch; it never reruns
// settlement propagation.
func applyPatch(col *domain.Collection, patch domain.CollectionPatch) {
	if patch.TotalPayable != nil {
		col.TotalPayable = *patch.TotalPayable
	}
	if patch.PaidAmount != nil {
		col.PaidAmount = *patch.PaidAmount
	}
	if patch.TotalDue != nil {
		col.TotalDue = utils.ClampNonNegative(*patch.TotalDue)
	}
	if patch.PayDate != nil {
		col.PayDate = *patch.PayDate
	}
	if patch.PaymentMethod != nil {
		col.PaymentMethod = *patch.PaymentMethod
	}
	if patch.FeeTypes != nil {
		col.FeeTypes = patch.FeeTypes
	}
	col.PayableDue = utils.ClampNonNegative(col.TotalPayable - col.PaidAmount)
}

func (r *collectionRepository) Delete(ctx context.Context, serial int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE serial = $1`, serial)
	if err != nil {
		return err
	}
	return requireRow(res)
}
