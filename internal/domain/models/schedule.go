package models

import "ferryops/internal/domain"

// Route is a ferry crossing with per-class pricing.
type Route struct {
	ID              int64                 `json:"id"`
	Origin          string                `json:"origin"`
	Destination     string                `json:"destination"`
	DurationMinutes int                   `json:"duration_minutes"`
	BasePrice       int64                 `json:"base_price"`
	MotorcyclePrice int64                 `json:"motorcycle_price"`
	CarPrice        int64                 `json:"car_price"`
	BusPrice        int64                 `json:"bus_price"`
	TruckPrice      int64                 `json:"truck_price"`
	Status          domain.ScheduleStatus `json:"status"`
}

// VehiclePrice returns the fare for one vehicle of the given class.
func (r Route) VehiclePrice(t domain.VehicleType) int64 {
	switch t {
	case domain.VehicleMotorcycle:
		return r.MotorcyclePrice
	case domain.VehicleCar:
		return r.CarPrice
	case domain.VehicleBus:
		return r.BusPrice
	case domain.VehicleTruck:
		return r.TruckPrice
	}
	return 0
}

// Ferry capacity is fixed per class; read-only for the booking subsystem.
type Ferry struct {
	ID                 int64                 `json:"id"`
	Name               string                `json:"name"`
	CapacityPassenger  int                   `json:"capacity_passenger"`
	CapacityMotorcycle int                   `json:"capacity_motorcycle"`
	CapacityCar        int                   `json:"capacity_car"`
	CapacityBus        int                   `json:"capacity_bus"`
	CapacityTruck      int                   `json:"capacity_truck"`
	Status             domain.ScheduleStatus `json:"status"`
}

func (f Ferry) Capacity(t domain.VehicleType) int {
	switch t {
	case domain.VehicleMotorcycle:
		return f.CapacityMotorcycle
	case domain.VehicleCar:
		return f.CapacityCar
	case domain.VehicleBus:
		return f.CapacityBus
	case domain.VehicleTruck:
		return f.CapacityTruck
	}
	return 0
}

type Schedule struct {
	ID               int64                 `json:"id"`
	RouteID          int64                 `json:"route_id"`
	FerryID          int64                 `json:"ferry_id"`
	DepartureTime    string                `json:"departure_time"` // "HH:MM"
	ArrivalTime      string                `json:"arrival_time"`   // "HH:MM"
	Days             domain.DaySet         `json:"days"`
	Status           domain.ScheduleStatus `json:"status"`
	StatusReason     string                `json:"status_reason"`
	StatusExpiryDate string                `json:"status_expiry_date"` // "YYYY-MM-DD HH:MM:SS", empty when none
}

// VehicleCounts groups the four ledger vehicle counters.
type VehicleCounts struct {
	Motorcycle int `json:"motorcycle"`
	Car        int `json:"car"`
	Bus        int `json:"bus"`
	Truck      int `json:"truck"`
}

func (v VehicleCounts) Get(t domain.VehicleType) int {
	switch t {
	case domain.VehicleMotorcycle:
		return v.Motorcycle
	case domain.VehicleCar:
		return v.Car
	case domain.VehicleBus:
		return v.Bus
	case domain.VehicleTruck:
		return v.Truck
	}
	return 0
}

func (v *VehicleCounts) Set(t domain.VehicleType, n int) {
	switch t {
	case domain.VehicleMotorcycle:
		v.Motorcycle = n
	case domain.VehicleCar:
		v.Car = n
	case domain.VehicleBus:
		v.Bus = n
	case domain.VehicleTruck:
		v.Truck = n
	}
}

func (v VehicleCounts) Total() int {
	return v.Motorcycle + v.Car + v.Bus + v.Truck
}

// ScheduleDate is the capacity ledger row for one (schedule, calendar date).
type ScheduleDate struct {
	ID               int64                     `json:"id"`
	ScheduleID       int64                     `json:"schedule_id"`
	Date             string                    `json:"date"` // "YYYY-MM-DD"
	PassengerCount   int                       `json:"passenger_count"`
	Vehicles         VehicleCounts             `json:"vehicles"`
	Status           domain.ScheduleDateStatus `json:"status"`
	StatusSource     domain.StatusSource       `json:"status_source"`
	StatusReason     string                    `json:"status_reason"`
	StatusExpiryDate string                    `json:"status_expiry_date"`
}
