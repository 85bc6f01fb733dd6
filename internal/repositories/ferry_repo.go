package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "ferryops/internal/config"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

type FerryRepo struct {
	DB *sql.DB
}

func (r FerryRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const ferryColumns = `id, name, COALESCE(capacity_passenger,0),
	COALESCE(capacity_motorcycle,0), COALESCE(capacity_car,0),
	COALESCE(capacity_bus,0), COALESCE(capacity_truck,0), COALESCE(status,'ACTIVE')`

func scanFerry(row interface{ Scan(...any) error }) (models.Ferry, error) {
	var f models.Ferry
	var status string
	err := row.Scan(
		&f.ID, &f.Name, &f.CapacityPassenger,
		&f.CapacityMotorcycle, &f.CapacityCar,
		&f.CapacityBus, &f.CapacityTruck, &status,
	)
	f.Status = domain.ScheduleStatus(status)
	return f, err
}

func (r FerryRepo) GetByID(id int64) (models.Ferry, error) {
	if id <= 0 {
		return models.Ferry{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(`SELECT `+ferryColumns+` FROM ferries WHERE id=? LIMIT 1`, id)
	f, err := scanFerry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ferry{}, domain.NotFoundError{Resource: "kapal"}
	}
	return f, err
}

func (r FerryRepo) List() ([]models.Ferry, error) {
	rows, err := r.db().Query(`SELECT ` + ferryColumns + ` FROM ferries ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ferry{}
	for rows.Next() {
		f, err := scanFerry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r FerryRepo) Create(f models.Ferry) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO ferries
			(name, capacity_passenger, capacity_motorcycle, capacity_car,
			 capacity_bus, capacity_truck, status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,NOW(),NOW())`,
		strings.TrimSpace(f.Name), f.CapacityPassenger, f.CapacityMotorcycle,
		f.CapacityCar, f.CapacityBus, f.CapacityTruck, string(f.Status),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r FerryRepo) Update(f models.Ferry) error {
	if f.ID <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := r.db().Exec(`
		UPDATE ferries SET
			name=?, capacity_passenger=?, capacity_motorcycle=?,
			capacity_car=?, capacity_bus=?, capacity_truck=?, status=?,
			updated_at=NOW()
		WHERE id=?`,
		strings.TrimSpace(f.Name), f.CapacityPassenger, f.CapacityMotorcycle,
		f.CapacityCar, f.CapacityBus, f.CapacityTruck, string(f.Status), f.ID,
	)
	return err
}
