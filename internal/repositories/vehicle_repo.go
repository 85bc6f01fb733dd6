package repositories

import (
	"database/sql"
	"strings"

	intconfig "ferryops/internal/config"
	intdb "ferryops/internal/db"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

type VehicleRepo struct {
	DB *sql.DB
}

func (r VehicleRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r VehicleRepo) Insert(q intdb.Queryer, v models.Vehicle) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO vehicles
			(booking_id, type, plate_number, owner_name, created_at, updated_at)
		VALUES (?,?,?,?,NOW(),NOW())`,
		v.BookingID, string(v.Type),
		strings.ToUpper(strings.TrimSpace(v.PlateNumber)),
		nullIfEmpty(v.OwnerName),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepo) ListByBooking(bookingID int64) ([]models.Vehicle, error) {
	return r.ListByBookingTx(r.db(), bookingID)
}

func (r VehicleRepo) ListByBookingTx(q intdb.Queryer, bookingID int64) ([]models.Vehicle, error) {
	rows, err := q.Query(`
		SELECT id, booking_id, type, plate_number, COALESCE(owner_name,'')
		FROM vehicles WHERE booking_id=? ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		var typ string
		if err := rows.Scan(&v.ID, &v.BookingID, &typ, &v.PlateNumber, &v.OwnerName); err != nil {
			return nil, err
		}
		v.Type = domain.VehicleType(typ)
		out = append(out, v)
	}
	return out, rows.Err()
}
