package services

import (
	"fmt"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"
)

// CapacityService answers availability questions against the ledger.
type CapacityService struct {
	ScheduleRepo     repositories.ScheduleRepo
	FerryRepo        repositories.FerryRepo
	ScheduleDateRepo repositories.ScheduleDateRepo
}

// Availability is the per-class headroom of one (schedule, date).
type Availability struct {
	ScheduleID          int64                     `json:"schedule_id"`
	Date                string                    `json:"date"`
	Status              domain.ScheduleDateStatus `json:"status"`
	AvailablePassenger  int                       `json:"available_passenger"`
	AvailableMotorcycle int                       `json:"available_motorcycle"`
	AvailableCar        int                       `json:"available_car"`
	AvailableBus        int                       `json:"available_bus"`
	AvailableTruck      int                       `json:"available_truck"`
}

// For computes available_X = ferry.capacity_X - ledger.X_count.
func (s CapacityService) For(scheduleID int64, date string) (Availability, error) {
	sched, err := s.ScheduleRepo.GetByID(scheduleID)
	if err != nil {
		return Availability{}, err
	}
	ferry, err := s.FerryRepo.GetByID(sched.FerryID)
	if err != nil {
		return Availability{}, err
	}
	ledger, err := s.ScheduleDateRepo.GetOrDefault(scheduleID, date)
	if err != nil {
		return Availability{}, domain.InternalError{Err: err}
	}
	return Availability{
		ScheduleID:          scheduleID,
		Date:                date,
		Status:              ledger.Status,
		AvailablePassenger:  clampZero(ferry.CapacityPassenger - ledger.PassengerCount),
		AvailableMotorcycle: clampZero(ferry.CapacityMotorcycle - ledger.Vehicles.Motorcycle),
		AvailableCar:        clampZero(ferry.CapacityCar - ledger.Vehicles.Car),
		AvailableBus:        clampZero(ferry.CapacityBus - ledger.Vehicles.Bus),
		AvailableTruck:      clampZero(ferry.CapacityTruck - ledger.Vehicles.Truck),
	}, nil
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// checkHeadroom rejects a reservation that would push any counter past the
// ferry capacity, or that targets a non-AVAILABLE ledger row. Field-scoped
// so the handler can emit errors:{field:[...]}.
func checkHeadroom(ferry models.Ferry, ledger models.ScheduleDate, passengers int, veh models.VehicleCounts) error {
	if ledger.Status != domain.DateAvailable {
		return domain.ValidationError{
			Field: "date",
			Msg:   fmt.Sprintf("jadwal tanggal %s tidak tersedia (status %s)", ledger.Date, ledger.Status),
		}
	}
	if ledger.PassengerCount+passengers > ferry.CapacityPassenger {
		return domain.ValidationError{Field: "passenger_count", Msg: "kursi penumpang tidak mencukupi"}
	}
	for _, t := range domain.VehicleTypes {
		if veh.Get(t) == 0 {
			continue
		}
		if ledger.Vehicles.Get(t)+veh.Get(t) > ferry.Capacity(t) {
			return domain.ValidationError{
				Field: t.Field(),
				Msg:   fmt.Sprintf("slot kendaraan %s tidak mencukupi", t.Label()),
			}
		}
	}
	return nil
}

// ledgerFull reports whether every class is at capacity after a mutation.
func ledgerFull(ferry models.Ferry, ledger models.ScheduleDate) bool {
	if ledger.PassengerCount < ferry.CapacityPassenger {
		return false
	}
	for _, t := range domain.VehicleTypes {
		if ledger.Vehicles.Get(t) < ferry.Capacity(t) {
			return false
		}
	}
	return true
}
