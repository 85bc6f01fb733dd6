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

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, code, user_id, schedule_id,
	DATE_FORMAT(date, '%Y-%m-%d'), passenger_count,
	COALESCE(motorcycle_count,0), COALESCE(car_count,0),
	COALESCE(bus_count,0), COALESCE(truck_count,0),
	amount, status, COALESCE(cancellation_reason,''), COALESCE(notes,''),
	COALESCE(created_by,''), created_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var status string
	err := row.Scan(
		&b.ID, &b.Code, &b.UserID, &b.ScheduleID,
		&b.Date, &b.PassengerCount,
		&b.Vehicles.Motorcycle, &b.Vehicles.Car,
		&b.Vehicles.Bus, &b.Vehicles.Truck,
		&b.Amount, &status, &b.CancellationReason, &b.Notes,
		&b.CreatedBy, &b.CreatedAt,
	)
	b.Status = domain.BookingStatus(status)
	return b, err
}

func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

func (r BookingRepo) GetByCode(code string) (models.Booking, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.Booking{}, fmt.Errorf("kode tidak valid")
	}
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE code=? LIMIT 1`, code)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

// LockByID reloads a booking under FOR UPDATE so status transitions cannot
// race each other.
func (r BookingRepo) LockByID(q intdb.Queryer, id int64) (models.Booking, error) {
	row := q.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? FOR UPDATE`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

func (r BookingRepo) Insert(q intdb.Queryer, b models.Booking) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO bookings
			(code, user_id, schedule_id, date, passenger_count,
			 motorcycle_count, car_count, bus_count, truck_count,
			 amount, status, cancellation_reason, notes, created_by,
			 created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		b.Code, b.UserID, b.ScheduleID, b.Date, b.PassengerCount,
		b.Vehicles.Motorcycle, b.Vehicles.Car, b.Vehicles.Bus, b.Vehicles.Truck,
		b.Amount, string(b.Status),
		nullIfEmpty(b.CancellationReason), nullIfEmpty(b.Notes), nullIfEmpty(b.CreatedBy),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateStatus writes the new status plus optional cancellation reason/notes.
func (r BookingRepo) UpdateStatus(q intdb.Queryer, id int64, status domain.BookingStatus, cancellationReason, notes string) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	sets := []string{"status=?", "updated_at=NOW()"}
	args := []any{string(status)}
	if cancellationReason != "" {
		sets = append(sets, "cancellation_reason=?")
		args = append(args, cancellationReason)
	}
	if notes != "" {
		sets = append(sets, "notes=?")
		args = append(args, notes)
	}
	args = append(args, id)
	_, err := q.Exec(`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	return err
}

// BookingFilter narrows List; zero values mean "no filter".
type BookingFilter struct {
	Status     domain.BookingStatus
	ScheduleID int64
	UserID     int64
	DateFrom   string
	DateTo     string
	Limit      int
}

func (r BookingRepo) List(f BookingFilter) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		query += ` AND status=?`
		args = append(args, string(f.Status))
	}
	if f.ScheduleID > 0 {
		query += ` AND schedule_id=?`
		args = append(args, f.ScheduleID)
	}
	if f.UserID > 0 {
		query += ` AND user_id=?`
		args = append(args, f.UserID)
	}
	if f.DateFrom != "" {
		query += ` AND date >= ?`
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		query += ` AND date <= ?`
		args = append(args, f.DateTo)
	}
	query += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListExpiredPending returns PENDING bookings whose payment expiry passed;
// the sweep cancels them.
func (r BookingRepo) ListExpiredPending() ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.status='PENDING'
		  AND EXISTS (
			SELECT 1 FROM payments p
			WHERE p.booking_id=b.id AND p.status='PENDING'
			  AND p.expiry_at IS NOT NULL AND p.expiry_at <= NOW()
		  )`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
