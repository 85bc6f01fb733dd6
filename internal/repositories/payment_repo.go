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

type PaymentRepo struct {
	DB *sql.DB
}

func (r PaymentRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `id, booking_id, external_id, amount, method,
	COALESCE(channel,''), status, expiry_at, payment_at`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	var method, status string
	err := row.Scan(
		&p.ID, &p.BookingID, &p.ExternalID, &p.Amount, &method,
		&p.Channel, &status, &p.ExpiryAt, &p.PaymentAt,
	)
	p.Method = domain.PaymentMethod(method)
	p.Status = domain.PaymentStatus(status)
	return p, err
}

func (r PaymentRepo) Insert(q intdb.Queryer, p models.Payment) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO payments
			(booking_id, external_id, amount, method, channel, status,
			 expiry_at, payment_at, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,NOW(),NOW())`,
		p.BookingID, p.ExternalID, p.Amount, string(p.Method),
		nullIfEmpty(p.Channel), string(p.Status), p.ExpiryAt, p.PaymentAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepo) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id=? LIMIT 1`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "pembayaran"}
	}
	return p, err
}

func (r PaymentRepo) ListByBooking(bookingID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT `+paymentColumns+`
		FROM payments WHERE booking_id=? ORDER BY id DESC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// FindPending returns the open PENDING payment for a booking, if any.
func (r PaymentRepo) FindPending(q intdb.Queryer, bookingID int64) (models.Payment, bool, error) {
	row := q.QueryRow(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE booking_id=? AND status='PENDING'
		ORDER BY id DESC LIMIT 1`, bookingID)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, false, nil
	}
	if err != nil {
		return models.Payment{}, false, err
	}
	return p, true, nil
}

// FindSuccess returns the settled SUCCESS payment for a booking, if any.
func (r PaymentRepo) FindSuccess(bookingID int64) (models.Payment, bool, error) {
	return r.FindSuccessTx(r.db(), bookingID)
}

func (r PaymentRepo) FindSuccessTx(q intdb.Queryer, bookingID int64) (models.Payment, bool, error) {
	row := q.QueryRow(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE booking_id=? AND status='SUCCESS'
		ORDER BY id DESC LIMIT 1`, bookingID)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, false, nil
	}
	if err != nil {
		return models.Payment{}, false, err
	}
	return p, true, nil
}

// UpdateStatus moves a payment; stampPaymentAt sets payment_at=NOW() (used on
// SUCCESS). Re-applying the same status is a harmless no-op, which keeps the
// gateway poller idempotent.
func (r PaymentRepo) UpdateStatus(q intdb.Queryer, id int64, status domain.PaymentStatus, stampPaymentAt bool) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	query := `UPDATE payments SET status=?, updated_at=NOW()`
	if stampPaymentAt {
		query += `, payment_at=NOW()`
	}
	query += ` WHERE id=?`
	_, err := q.Exec(query, string(status), id)
	return err
}

// ListPendingNonCash feeds the gateway status poller.
func (r PaymentRepo) ListPendingNonCash() ([]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE status='PENDING' AND method<>'CASH'
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func collectPayments(rows *sql.Rows) ([]models.Payment, error) {
	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
