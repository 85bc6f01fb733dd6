package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "ferryops/internal/config"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

type ScheduleRepo struct {
	DB *sql.DB
}

func (r ScheduleRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const scheduleColumns = `id, route_id, ferry_id, departure_time, arrival_time,
	days, COALESCE(status,'ACTIVE'), COALESCE(status_reason,''),
	COALESCE(DATE_FORMAT(status_expiry_date, '%Y-%m-%d %H:%i:%s'), '')`

func scanSchedule(row interface{ Scan(...any) error }) (models.Schedule, error) {
	var s models.Schedule
	var days, status string
	err := row.Scan(
		&s.ID, &s.RouteID, &s.FerryID, &s.DepartureTime, &s.ArrivalTime,
		&days, &status, &s.StatusReason, &s.StatusExpiryDate,
	)
	if err != nil {
		return s, err
	}
	s.Status = domain.ScheduleStatus(status)
	// days is the legacy "1,3,5" column; convert at the boundary only.
	set, perr := domain.ParseDaySet(days)
	if perr != nil {
		return s, fmt.Errorf("kolom days jadwal %d rusak: %w", s.ID, perr)
	}
	s.Days = set
	return s, nil
}

func (r ScheduleRepo) GetByID(id int64) (models.Schedule, error) {
	if id <= 0 {
		return models.Schedule{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(`SELECT `+scheduleColumns+` FROM schedules WHERE id=? LIMIT 1`, id)
	s, err := scanSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Schedule{}, domain.NotFoundError{Resource: "jadwal"}
	}
	return s, err
}

// ListActiveByFerry feeds the conflict checker.
func (r ScheduleRepo) ListActiveByFerry(ferryID int64) ([]models.Schedule, error) {
	rows, err := r.db().Query(`
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE ferry_id=? AND status='ACTIVE'
		ORDER BY id`, ferryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func (r ScheduleRepo) List() ([]models.Schedule, error) {
	rows, err := r.db().Query(`SELECT ` + scheduleColumns + ` FROM schedules ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func collectSchedules(rows *sql.Rows) ([]models.Schedule, error) {
	out := []models.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ActiveFerryForRoute returns the ferry currently serving a route via any
// ACTIVE schedule, or 0 when the route is unserved. excludeID skips the
// schedule being updated.
func (r ScheduleRepo) ActiveFerryForRoute(routeID, excludeID int64) (int64, error) {
	var ferryID int64
	err := r.db().QueryRow(`
		SELECT ferry_id FROM schedules
		WHERE route_id=? AND status='ACTIVE' AND id<>?
		LIMIT 1`, routeID, excludeID).Scan(&ferryID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return ferryID, err
}

func (r ScheduleRepo) Create(s models.Schedule) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO schedules
			(route_id, ferry_id, departure_time, arrival_time, days, status,
			 status_reason, status_expiry_date, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,NOW(),NOW())`,
		s.RouteID, s.FerryID, s.DepartureTime, s.ArrivalTime,
		s.Days.String(), string(s.Status),
		nullIfEmpty(s.StatusReason), nullIfEmpty(s.StatusExpiryDate),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ScheduleRepo) Update(s models.Schedule) error {
	if s.ID <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := r.db().Exec(`
		UPDATE schedules SET
			route_id=?, ferry_id=?, departure_time=?, arrival_time=?, days=?,
			status=?, status_reason=?, status_expiry_date=?, updated_at=NOW()
		WHERE id=?`,
		s.RouteID, s.FerryID, s.DepartureTime, s.ArrivalTime,
		s.Days.String(), string(s.Status),
		nullIfEmpty(s.StatusReason), nullIfEmpty(s.StatusExpiryDate),
		s.ID,
	)
	return err
}

func (r ScheduleRepo) UpdateStatus(id int64, status domain.ScheduleStatus, reason, expiry string) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := r.db().Exec(`
		UPDATE schedules SET status=?, status_reason=?, status_expiry_date=?, updated_at=NOW()
		WHERE id=?`,
		string(status), nullIfEmpty(reason), nullIfEmpty(expiry), id,
	)
	return err
}

// ListExpiredInactive returns INACTIVE schedules whose expiry already passed,
// candidates for automatic reactivation by the sweep.
func (r ScheduleRepo) ListExpiredInactive() ([]models.Schedule, error) {
	rows, err := r.db().Query(`
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE status='INACTIVE'
		  AND status_expiry_date IS NOT NULL
		  AND status_expiry_date <= NOW()`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSchedules(rows)
}
