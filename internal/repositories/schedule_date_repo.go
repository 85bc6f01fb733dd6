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

// ScheduleDateRepo is the capacity ledger. Counter mutations must run inside
// the same transaction as the booking/ticket writes they belong to, so the
// mutating methods take a Queryer instead of using the shared handle.
type ScheduleDateRepo struct {
	DB *sql.DB
}

func (r ScheduleDateRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const scheduleDateColumns = `id, schedule_id, DATE_FORMAT(date, '%Y-%m-%d'),
	COALESCE(passenger_count,0), COALESCE(motorcycle_count,0),
	COALESCE(car_count,0), COALESCE(bus_count,0), COALESCE(truck_count,0),
	COALESCE(status,'AVAILABLE'), COALESCE(status_source,'INHERITED'),
	COALESCE(status_reason,''),
	COALESCE(DATE_FORMAT(status_expiry_date, '%Y-%m-%d %H:%i:%s'), '')`

func scanScheduleDate(row interface{ Scan(...any) error }) (models.ScheduleDate, error) {
	var sd models.ScheduleDate
	var status, source string
	err := row.Scan(
		&sd.ID, &sd.ScheduleID, &sd.Date,
		&sd.PassengerCount, &sd.Vehicles.Motorcycle,
		&sd.Vehicles.Car, &sd.Vehicles.Bus, &sd.Vehicles.Truck,
		&status, &source, &sd.StatusReason, &sd.StatusExpiryDate,
	)
	sd.Status = domain.ScheduleDateStatus(status)
	sd.StatusSource = domain.StatusSource(source)
	return sd, err
}

// GetOrDefault returns the existing ledger row or a zero-valued transient one
// (ID 0 marks it as not yet persisted).
func (r ScheduleDateRepo) GetOrDefault(scheduleID int64, date string) (models.ScheduleDate, error) {
	row := r.db().QueryRow(`
		SELECT `+scheduleDateColumns+`
		FROM schedule_dates
		WHERE schedule_id=? AND date=? LIMIT 1`, scheduleID, date)
	sd, err := scanScheduleDate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScheduleDate{
			ScheduleID:   scheduleID,
			Date:         date,
			Status:       domain.DateAvailable,
			StatusSource: domain.SourceInherited,
		}, nil
	}
	return sd, err
}

func (r ScheduleDateRepo) GetByID(id int64) (models.ScheduleDate, error) {
	if id <= 0 {
		return models.ScheduleDate{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(`SELECT `+scheduleDateColumns+` FROM schedule_dates WHERE id=? LIMIT 1`, id)
	sd, err := scanScheduleDate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScheduleDate{}, domain.NotFoundError{Resource: "tanggal jadwal"}
	}
	return sd, err
}

// Lock loads the ledger row with SELECT ... FOR UPDATE, serializing the
// read-check-increment sequence of concurrent reservations on the same row.
// Returns found=false when the row does not exist yet.
func (r ScheduleDateRepo) Lock(q intdb.Queryer, scheduleID int64, date string) (models.ScheduleDate, bool, error) {
	row := q.QueryRow(`
		SELECT `+scheduleDateColumns+`
		FROM schedule_dates
		WHERE schedule_id=? AND date=?
		FOR UPDATE`, scheduleID, date)
	sd, err := scanScheduleDate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScheduleDate{}, false, nil
	}
	if err != nil {
		return models.ScheduleDate{}, false, err
	}
	return sd, true, nil
}

// Create inserts a fresh ledger row (lazy creation on first booking, or the
// admin date-range generator).
func (r ScheduleDateRepo) Create(q intdb.Queryer, sd models.ScheduleDate) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO schedule_dates
			(schedule_id, date, passenger_count, motorcycle_count, car_count,
			 bus_count, truck_count, status, status_source, status_reason,
			 status_expiry_date, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		sd.ScheduleID, sd.Date, sd.PassengerCount,
		sd.Vehicles.Motorcycle, sd.Vehicles.Car, sd.Vehicles.Bus, sd.Vehicles.Truck,
		string(sd.Status), string(sd.StatusSource),
		nullIfEmpty(sd.StatusReason), nullIfEmpty(sd.StatusExpiryDate),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// AddCounts increments ledger counters. Callers must have validated capacity
// under the row lock first.
func (r ScheduleDateRepo) AddCounts(q intdb.Queryer, id int64, passengers int, veh models.VehicleCounts) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := q.Exec(`
		UPDATE schedule_dates SET
			passenger_count = passenger_count + ?,
			motorcycle_count = motorcycle_count + ?,
			car_count = car_count + ?,
			bus_count = bus_count + ?,
			truck_count = truck_count + ?,
			updated_at = NOW()
		WHERE id=?`,
		passengers, veh.Motorcycle, veh.Car, veh.Bus, veh.Truck, id,
	)
	return err
}

// SubtractCounts releases ledger counters with a zero floor, so a stray
// double release can never drive a counter negative.
func (r ScheduleDateRepo) SubtractCounts(q intdb.Queryer, id int64, passengers int, veh models.VehicleCounts) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := q.Exec(`
		UPDATE schedule_dates SET
			passenger_count = GREATEST(passenger_count - ?, 0),
			motorcycle_count = GREATEST(motorcycle_count - ?, 0),
			car_count = GREATEST(car_count - ?, 0),
			bus_count = GREATEST(bus_count - ?, 0),
			truck_count = GREATEST(truck_count - ?, 0),
			updated_at = NOW()
		WHERE id=?`,
		passengers, veh.Motorcycle, veh.Car, veh.Bus, veh.Truck, id,
	)
	return err
}

func (r ScheduleDateRepo) UpdateStatus(q intdb.Queryer, id int64, status domain.ScheduleDateStatus, source domain.StatusSource, reason, expiry string) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := q.Exec(`
		UPDATE schedule_dates SET
			status=?, status_source=?, status_reason=?, status_expiry_date=?,
			updated_at=NOW()
		WHERE id=?`,
		string(status), string(source), nullIfEmpty(reason), nullIfEmpty(expiry), id,
	)
	return err
}

func (r ScheduleDateRepo) ListBySchedule(scheduleID int64, from, to string) ([]models.ScheduleDate, error) {
	query := `SELECT ` + scheduleDateColumns + ` FROM schedule_dates WHERE schedule_id=?`
	args := []any{scheduleID}
	if from != "" {
		query += ` AND date >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY date`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScheduleDates(rows)
}

// ListPastActive returns AVAILABLE/FULL rows whose date already passed;
// the sweep marks them DEPARTED.
func (r ScheduleDateRepo) ListPastActive() ([]models.ScheduleDate, error) {
	rows, err := r.db().Query(`
		SELECT ` + scheduleDateColumns + `
		FROM schedule_dates
		WHERE date < CURDATE() AND status IN ('AVAILABLE','FULL')`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScheduleDates(rows)
}

// ListExpiredInactive returns rows whose temporary INACTIVE window ended.
func (r ScheduleDateRepo) ListExpiredInactive() ([]models.ScheduleDate, error) {
	rows, err := r.db().Query(`
		SELECT ` + scheduleDateColumns + `
		FROM schedule_dates
		WHERE status='INACTIVE'
		  AND status_expiry_date IS NOT NULL
		  AND status_expiry_date <= NOW()`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScheduleDates(rows)
}

func collectScheduleDates(rows *sql.Rows) ([]models.ScheduleDate, error) {
	out := []models.ScheduleDate{}
	for rows.Next() {
		sd, err := scanScheduleDate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sd)
	}
	return out, rows.Err()
}
