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

type RouteRepo struct {
	DB *sql.DB
}

func (r RouteRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const routeColumns = `id, origin, destination, COALESCE(duration_minutes,0),
	COALESCE(base_price,0), COALESCE(motorcycle_price,0), COALESCE(car_price,0),
	COALESCE(bus_price,0), COALESCE(truck_price,0), COALESCE(status,'ACTIVE')`

func scanRoute(row interface{ Scan(...any) error }) (models.Route, error) {
	var rt models.Route
	var status string
	err := row.Scan(
		&rt.ID, &rt.Origin, &rt.Destination, &rt.DurationMinutes,
		&rt.BasePrice, &rt.MotorcyclePrice, &rt.CarPrice,
		&rt.BusPrice, &rt.TruckPrice, &status,
	)
	rt.Status = domain.ScheduleStatus(status)
	return rt, err
}

func (r RouteRepo) GetByID(id int64) (models.Route, error) {
	if id <= 0 {
		return models.Route{}, fmt.Errorf("id tidak valid")
	}
	row := r.db().QueryRow(`SELECT `+routeColumns+` FROM routes WHERE id=? LIMIT 1`, id)
	rt, err := scanRoute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Route{}, domain.NotFoundError{Resource: "rute"}
	}
	return rt, err
}

func (r RouteRepo) List() ([]models.Route, error) {
	rows, err := r.db().Query(`SELECT ` + routeColumns + ` FROM routes ORDER BY origin, destination`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepo) Create(rt models.Route) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO routes
			(origin, destination, duration_minutes, base_price,
			 motorcycle_price, car_price, bus_price, truck_price, status,
			 created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		strings.TrimSpace(rt.Origin), strings.TrimSpace(rt.Destination),
		rt.DurationMinutes, rt.BasePrice,
		rt.MotorcyclePrice, rt.CarPrice, rt.BusPrice, rt.TruckPrice,
		string(rt.Status),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RouteRepo) Update(rt models.Route) error {
	if rt.ID <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := r.db().Exec(`
		UPDATE routes SET
			origin=?, destination=?, duration_minutes=?, base_price=?,
			motorcycle_price=?, car_price=?, bus_price=?, truck_price=?,
			status=?, updated_at=NOW()
		WHERE id=?`,
		strings.TrimSpace(rt.Origin), strings.TrimSpace(rt.Destination),
		rt.DurationMinutes, rt.BasePrice,
		rt.MotorcyclePrice, rt.CarPrice, rt.BusPrice, rt.TruckPrice,
		string(rt.Status), rt.ID,
	)
	return err
}
