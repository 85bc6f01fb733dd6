package repositories

import (
	"database/sql"

	intconfig "ferryops/internal/config"
	intdb "ferryops/internal/db"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

// BookingLogRepo is append-only; there is deliberately no update or delete.
type BookingLogRepo struct {
	DB *sql.DB
}

func (r BookingLogRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingLogRepo) Insert(q intdb.Queryer, l models.BookingLog) error {
	_, err := q.Exec(`
		INSERT INTO booking_logs
			(booking_id, previous_status, new_status, changed_by_type,
			 changed_by_id, notes, created_at)
		VALUES (?,?,?,?,?,?,NOW())`,
		l.BookingID, string(l.PreviousStatus), string(l.NewStatus),
		string(l.ChangedByType), l.ChangedByID, nullIfEmpty(l.Notes),
	)
	return err
}

func (r BookingLogRepo) ListByBooking(bookingID int64) ([]models.BookingLog, error) {
	rows, err := r.db().Query(`
		SELECT id, booking_id, previous_status, new_status, changed_by_type,
			COALESCE(changed_by_id,0), COALESCE(notes,''), created_at
		FROM booking_logs
		WHERE booking_id=? ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingLog{}
	for rows.Next() {
		var l models.BookingLog
		var prev, next, actor string
		if err := rows.Scan(
			&l.ID, &l.BookingID, &prev, &next, &actor,
			&l.ChangedByID, &l.Notes, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.PreviousStatus = domain.BookingStatus(prev)
		l.NewStatus = domain.BookingStatus(next)
		l.ChangedByType = domain.ActorType(actor)
		out = append(out, l)
	}
	return out, rows.Err()
}
