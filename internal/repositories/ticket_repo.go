package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "ferryops/internal/config"
	intdb "ferryops/internal/db"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

type TicketRepo struct {
	DB *sql.DB
}

func (r TicketRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const ticketColumns = `id, code, qr_token, booking_id, passenger_name,
	COALESCE(passenger_id_number,''), status, checked_in, boarding_at`

func scanTicket(row interface{ Scan(...any) error }) (models.Ticket, error) {
	var t models.Ticket
	var status string
	err := row.Scan(
		&t.ID, &t.Code, &t.QRToken, &t.BookingID, &t.PassengerName,
		&t.PassengerIDNumber, &status, &t.CheckedIn, &t.BoardingAt,
	)
	t.Status = domain.TicketStatus(status)
	return t, err
}

func (r TicketRepo) GetByID(id int64) (models.Ticket, error) {
	if id <= 0 {
		return models.Ticket{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(`SELECT `+ticketColumns+` FROM tickets WHERE id=? LIMIT 1`, id)
	t, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ticket{}, domain.NotFoundError{Resource: "tiket"}
	}
	return t, err
}

// GetByCodeOrToken resolves a ticket from either its printed code or the
// opaque QR token.
func (r TicketRepo) GetByCodeOrToken(key string) (models.Ticket, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.Ticket{}, fmt.Errorf("kode tiket kosong")
	}
	row := r.db().QueryRow(`
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE code=? OR qr_token=? LIMIT 1`, key, key)
	t, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ticket{}, domain.NotFoundError{Resource: "tiket"}
	}
	return t, err
}

func (r TicketRepo) ListByBooking(bookingID int64) ([]models.Ticket, error) {
	return r.ListByBookingTx(r.db(), bookingID)
}

// ListByBookingTx reads through q so callers inside a transaction see their
// own uncommitted writes.
func (r TicketRepo) ListByBookingTx(q intdb.Queryer, bookingID int64) ([]models.Ticket, error) {
	rows, err := q.Query(`
		SELECT `+ticketColumns+`
		FROM tickets WHERE booking_id=? ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TicketRepo) Insert(q intdb.Queryer, t models.Ticket) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO tickets
			(code, qr_token, booking_id, passenger_name, passenger_id_number,
			 status, checked_in, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,NOW(),NOW())`,
		t.Code, t.QRToken, t.BookingID, strings.TrimSpace(t.PassengerName),
		nullIfEmpty(t.PassengerIDNumber), string(t.Status), t.CheckedIn,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateStatusByBooking cascades a booking-level transition to its tickets.
// Only ACTIVE tickets move; USED/EXPIRED ones keep their history.
func (r TicketRepo) UpdateStatusByBooking(q intdb.Queryer, bookingID int64, to domain.TicketStatus) error {
	_, err := q.Exec(`
		UPDATE tickets SET status=?, updated_at=NOW()
		WHERE booking_id=? AND status='ACTIVE'`,
		string(to), bookingID,
	)
	return err
}

func (r TicketRepo) CheckIn(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := r.db().Exec(`
		UPDATE tickets SET checked_in=1, boarding_at=NOW(), updated_at=NOW()
		WHERE id=?`, id)
	return err
}

// ExpirePast marks ACTIVE tickets of past departures EXPIRED; returns the
// number of tickets touched.
func (r TicketRepo) ExpirePast() (int64, error) {
	res, err := r.db().Exec(`
		UPDATE tickets t
		JOIN bookings b ON b.id = t.booking_id
		SET t.status='EXPIRED', t.updated_at=NOW()
		WHERE t.status='ACTIVE' AND b.date < CURDATE()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
