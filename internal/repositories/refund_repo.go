package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "ferryops/internal/config"
	intdb "ferryops/internal/db"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

type RefundRepo struct {
	DB *sql.DB
}

func (r RefundRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const refundColumns = `id, booking_id, payment_id, amount, COALESCE(reason,''),
	status, COALESCE(refund_method,''), COALESCE(transaction_id,''),
	COALESCE(refunded_by,''), created_at`

func scanRefund(row interface{ Scan(...any) error }) (models.Refund, error) {
	var rf models.Refund
	var status string
	err := row.Scan(
		&rf.ID, &rf.BookingID, &rf.PaymentID, &rf.Amount, &rf.Reason,
		&status, &rf.RefundMethod, &rf.TransactionID, &rf.RefundedBy, &rf.CreatedAt,
	)
	rf.Status = domain.RefundStatus(status)
	return rf, err
}

func (r RefundRepo) Insert(q intdb.Queryer, rf models.Refund) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO refunds
			(booking_id, payment_id, amount, reason, status, refund_method,
			 transaction_id, refunded_by, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,NOW(),NOW())`,
		rf.BookingID, rf.PaymentID, rf.Amount, nullIfEmpty(rf.Reason),
		string(rf.Status), nullIfEmpty(rf.RefundMethod),
		nullIfEmpty(rf.TransactionID), nullIfEmpty(rf.RefundedBy),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RefundRepo) GetByID(id int64) (models.Refund, error) {
	if id <= 0 {
		return models.Refund{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(`SELECT `+refundColumns+` FROM refunds WHERE id=? LIMIT 1`, id)
	rf, err := scanRefund(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Refund{}, domain.NotFoundError{Resource: "refund"}
	}
	return rf, err
}

func (r RefundRepo) UpdateStatus(q intdb.Queryer, id int64, status domain.RefundStatus, transactionID, refundedBy string) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := q.Exec(`
		UPDATE refunds SET
			status=?,
			transaction_id=COALESCE(?, transaction_id),
			refunded_by=COALESCE(?, refunded_by),
			updated_at=NOW()
		WHERE id=?`,
		string(status), nullIfEmpty(transactionID), nullIfEmpty(refundedBy), id,
	)
	return err
}

func (r RefundRepo) ListByBooking(bookingID int64) ([]models.Refund, error) {
	rows, err := r.db().Query(`
		SELECT `+refundColumns+`
		FROM refunds WHERE booking_id=? ORDER BY id DESC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRefunds(rows)
}

func (r RefundRepo) List(status domain.RefundStatus) ([]models.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds`
	args := []any{}
	if status != "" {
		query += ` WHERE status=?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRefunds(rows)
}

func collectRefunds(rows *sql.Rows) ([]models.Refund, error) {
	out := []models.Refund{}
	for rows.Next() {
		rf, err := scanRefund(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rf)
	}
	return out, rows.Err()
}

// RefundPolicyRepo reads the policy table consumed by the evaluator.
type RefundPolicyRepo struct {
	DB *sql.DB
}

func (r RefundPolicyRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListActive returns active policies sorted by descending day threshold,
// the order the evaluator expects.
func (r RefundPolicyRepo) ListActive() ([]models.RefundPolicy, error) {
	rows, err := r.db().Query(`
		SELECT id, days_before_departure, percentage,
			COALESCE(min_fee,0), COALESCE(max_fee,0),
			COALESCE(description,''), active
		FROM refund_policies
		WHERE active=1
		ORDER BY days_before_departure DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RefundPolicy{}
	for rows.Next() {
		var p models.RefundPolicy
		if err := rows.Scan(
			&p.ID, &p.DaysBeforeDeparture, &p.Percentage,
			&p.MinFee, &p.MaxFee, &p.Description, &p.Active,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
