package repositories

import (
	"database/sql"

	intconfig "ferryops/internal/config"
)

// ReportRepo runs the read-only aggregation queries behind the report
// endpoints. Pure rollups, no control logic.
type ReportRepo struct {
	DB *sql.DB
}

func (r ReportRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// BookingBucket is one per-day aggregate row of the booking report.
type BookingBucket struct {
	Date         string `json:"date"`
	Bookings     int    `json:"bookings"`
	Passengers   int    `json:"passengers"`
	Vehicles     int    `json:"vehicles"`
	Revenue      int64  `json:"revenue"`
	CancelledCnt int    `json:"cancelled"`
}

// BookingReport groups bookings per departure date. Revenue counts only
// CONFIRMED/COMPLETED bookings; cancellations are tallied separately.
func (r ReportRepo) BookingReport(dateFrom, dateTo string, scheduleID int64) ([]BookingBucket, error) {
	query := `
		SELECT DATE_FORMAT(date, '%Y-%m-%d') AS d,
			COUNT(*),
			COALESCE(SUM(CASE WHEN status IN ('CONFIRMED','COMPLETED') THEN passenger_count ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN status IN ('CONFIRMED','COMPLETED')
				THEN motorcycle_count + car_count + bus_count + truck_count ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN status IN ('CONFIRMED','COMPLETED') THEN amount ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN status='CANCELLED' THEN 1 ELSE 0 END),0)
		FROM bookings
		WHERE date >= ? AND date <= ?`
	args := []any{dateFrom, dateTo}
	if scheduleID > 0 {
		query += ` AND schedule_id=?`
		args = append(args, scheduleID)
	}
	query += ` GROUP BY d ORDER BY d`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BookingBucket{}
	for rows.Next() {
		var b BookingBucket
		if err := rows.Scan(&b.Date, &b.Bookings, &b.Passengers, &b.Vehicles, &b.Revenue, &b.CancelledCnt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// RevenueBucket is one per-route aggregate row of the revenue report.
type RevenueBucket struct {
	RouteID     int64  `json:"route_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Bookings    int    `json:"bookings"`
	Gross       int64  `json:"gross"`
	Refunded    int64  `json:"refunded"`
	Net         int64  `json:"net"`
}

// RevenueReport rolls paid amounts and completed refunds up per route.
func (r ReportRepo) RevenueReport(dateFrom, dateTo string) ([]RevenueBucket, error) {
	rows, err := r.db().Query(`
		SELECT rt.id, rt.origin, rt.destination,
			COUNT(b.id),
			COALESCE(SUM(b.amount),0),
			COALESCE((
				SELECT SUM(rf.amount) FROM refunds rf
				JOIN bookings b2 ON b2.id = rf.booking_id
				JOIN schedules s2 ON s2.id = b2.schedule_id
				WHERE s2.route_id = rt.id AND rf.status='COMPLETED'
				  AND b2.date >= ? AND b2.date <= ?
			),0)
		FROM routes rt
		JOIN schedules s ON s.route_id = rt.id
		JOIN bookings b ON b.schedule_id = s.id
		WHERE b.status IN ('CONFIRMED','COMPLETED','REFUNDED','REFUND_PENDING')
		  AND b.date >= ? AND b.date <= ?
		GROUP BY rt.id, rt.origin, rt.destination
		ORDER BY rt.origin, rt.destination`,
		dateFrom, dateTo, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RevenueBucket{}
	for rows.Next() {
		var b RevenueBucket
		if err := rows.Scan(&b.RouteID, &b.Origin, &b.Destination, &b.Bookings, &b.Gross, &b.Refunded); err != nil {
			return nil, err
		}
		b.Net = b.Gross - b.Refunded
		out = append(out, b)
	}
	return out, rows.Err()
}

// OccupancyBucket is one (schedule, date) row of the occupancy report.
type OccupancyBucket struct {
	ScheduleID        int64   `json:"schedule_id"`
	Date              string  `json:"date"`
	Origin            string  `json:"origin"`
	Destination       string  `json:"destination"`
	FerryName         string  `json:"ferry_name"`
	Passengers        int     `json:"passengers"`
	CapacityPassenger int     `json:"capacity_passenger"`
	VehicleSlots      int     `json:"vehicle_slots"`
	CapacityVehicle   int     `json:"capacity_vehicle"`
	OccupancyPercent  float64 `json:"occupancy_percent"`
}

// OccupancyReport compares ledger counters to ferry capacity per sailing.
func (r ReportRepo) OccupancyReport(dateFrom, dateTo string) ([]OccupancyBucket, error) {
	rows, err := r.db().Query(`
		SELECT sd.schedule_id, DATE_FORMAT(sd.date, '%Y-%m-%d'),
			rt.origin, rt.destination, f.name,
			COALESCE(sd.passenger_count,0),
			COALESCE(f.capacity_passenger,0),
			COALESCE(sd.motorcycle_count,0) + COALESCE(sd.car_count,0)
				+ COALESCE(sd.bus_count,0) + COALESCE(sd.truck_count,0),
			COALESCE(f.capacity_motorcycle,0) + COALESCE(f.capacity_car,0)
				+ COALESCE(f.capacity_bus,0) + COALESCE(f.capacity_truck,0)
		FROM schedule_dates sd
		JOIN schedules s ON s.id = sd.schedule_id
		JOIN routes rt ON rt.id = s.route_id
		JOIN ferries f ON f.id = s.ferry_id
		WHERE sd.date >= ? AND sd.date <= ?
		ORDER BY sd.date, sd.schedule_id`,
		dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OccupancyBucket{}
	for rows.Next() {
		var b OccupancyBucket
		if err := rows.Scan(
			&b.ScheduleID, &b.Date, &b.Origin, &b.Destination, &b.FerryName,
			&b.Passengers, &b.CapacityPassenger, &b.VehicleSlots, &b.CapacityVehicle,
		); err != nil {
			return nil, err
		}
		if b.CapacityPassenger > 0 {
			b.OccupancyPercent = float64(b.Passengers) * 100 / float64(b.CapacityPassenger)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
