package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "ferryops/internal/config"
	intdb "ferryops/internal/db"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"
)

// RescheduleService moves a confirmed booking's counts from one
// (schedule, date) ledger row to another, cloning the aggregate into a new
// booking. Counts move; they are never duplicated.
type RescheduleService struct {
	DB *sql.DB

	BookingRepo      repositories.BookingRepo
	TicketRepo       repositories.TicketRepo
	VehicleRepo      repositories.VehicleRepo
	PaymentRepo      repositories.PaymentRepo
	BookingLogRepo   repositories.BookingLogRepo
	ScheduleRepo     repositories.ScheduleRepo
	FerryRepo        repositories.FerryRepo
	ScheduleDateRepo repositories.ScheduleDateRepo
}

func (s RescheduleService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type RescheduleInput struct {
	BookingID    int64
	ToScheduleID int64
	ToDate       string
	Notes        string
	ActorType    domain.ActorType
	ActorID      int64
}

// Transfer executes the reschedule inside one transaction; failure at any
// step leaves the original booking untouched.
func (s RescheduleService) Transfer(in RescheduleInput) (BookingDetail, error) {
	toDate, err := utils.ParseDate(in.ToDate)
	if err != nil {
		return BookingDetail{}, domain.ValidationError{Field: "date", Msg: "format tanggal harus YYYY-MM-DD"}
	}
	if utils.DaysUntil(toDate) < 0 {
		return BookingDetail{}, domain.ValidationError{Field: "date", Msg: "tanggal tujuan sudah lewat"}
	}
	dateStr := utils.FormatDate(toDate)

	target, err := s.ScheduleRepo.GetByID(in.ToScheduleID)
	if err != nil {
		return BookingDetail{}, err
	}
	if target.Status != domain.ScheduleActive {
		return BookingDetail{}, domain.ValidationError{Field: "schedule_id", Msg: "jadwal tujuan tidak aktif"}
	}
	if !target.Days.Has(domain.ISOWeekday(toDate)) {
		return BookingDetail{}, domain.ValidationError{
			Field: "date",
			Msg:   fmt.Sprintf("jadwal tujuan tidak berlayar pada hari %s", domain.DayName(domain.ISOWeekday(toDate))),
		}
	}
	ferry, err := s.FerryRepo.GetByID(target.FerryID)
	if err != nil {
		return BookingDetail{}, err
	}

	var detail BookingDetail
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		booking, err := s.BookingRepo.LockByID(tx, in.BookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.BookingConfirmed {
			return domain.ValidationError{
				Field: "status",
				Msg:   fmt.Sprintf("hanya booking CONFIRMED yang bisa dijadwalkan ulang (status saat ini %s)", booking.Status),
			}
		}
		if booking.ScheduleID == in.ToScheduleID && booking.Date == dateStr {
			return domain.ValidationError{Field: "date", Msg: "jadwal dan tanggal tujuan sama dengan asal"}
		}

		origin, destination, err := s.lockBothLedgers(tx, booking, in.ToScheduleID, dateStr)
		if err != nil {
			return err
		}

		// Headroom on the destination, checked under its row lock.
		if err := checkHeadroom(ferry, destination, booking.PassengerCount, booking.Vehicles); err != nil {
			return err
		}

		// Counts leave the origin row first.
		if origin.ID > 0 {
			if err := s.ScheduleDateRepo.SubtractCounts(tx, origin.ID, booking.PassengerCount, booking.Vehicles); err != nil {
				return domain.InternalError{Err: err}
			}
			if origin.Status == domain.DateFull {
				if err := s.ScheduleDateRepo.UpdateStatus(tx, origin.ID, domain.DateAvailable, origin.StatusSource, "", ""); err != nil {
					return domain.InternalError{Err: err}
				}
			}
		}

		if err := s.TicketRepo.UpdateStatusByBooking(tx, booking.ID, domain.TicketCancelled); err != nil {
			return domain.InternalError{Err: err}
		}

		note := fmt.Sprintf("dijadwalkan ulang ke jadwal %d tanggal %s", in.ToScheduleID, dateStr)
		if err := s.BookingRepo.UpdateStatus(tx, booking.ID, domain.BookingRescheduled, "", utils.AppendNote(booking.Notes, note)); err != nil {
			return domain.InternalError{Err: err}
		}

		newBooking := models.Booking{
			Code:           utils.NewBookingCode(),
			UserID:         booking.UserID,
			ScheduleID:     in.ToScheduleID,
			Date:           dateStr,
			PassengerCount: booking.PassengerCount,
			Vehicles:       booking.Vehicles,
			Amount:         booking.Amount,
			Status:         domain.BookingConfirmed,
			Notes:          strings.TrimSpace(fmt.Sprintf("hasil reschedule dari %s. %s", booking.Code, strings.TrimSpace(in.Notes))),
		}
		newID, err := s.BookingRepo.Insert(tx, newBooking)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		newBooking.ID = newID

		oldTickets, err := s.TicketRepo.ListByBookingTx(tx, booking.ID)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		newTickets := make([]models.Ticket, 0, len(oldTickets))
		for _, t := range oldTickets {
			clone := models.Ticket{
				Code:              utils.NewTicketCode(),
				QRToken:           utils.NewQRToken(),
				BookingID:         newID,
				PassengerName:     t.PassengerName,
				PassengerIDNumber: t.PassengerIDNumber,
				Status:            domain.TicketActive,
			}
			id, err := s.TicketRepo.Insert(tx, clone)
			if err != nil {
				return domain.InternalError{Err: err}
			}
			clone.ID = id
			newTickets = append(newTickets, clone)
		}

		oldVehicles, err := s.VehicleRepo.ListByBookingTx(tx, booking.ID)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		newVehicles := make([]models.Vehicle, 0, len(oldVehicles))
		for _, v := range oldVehicles {
			clone := models.Vehicle{
				BookingID:   newID,
				Type:        v.Type,
				PlateNumber: v.PlateNumber,
				OwnerName:   v.OwnerName,
			}
			id, err := s.VehicleRepo.Insert(tx, clone)
			if err != nil {
				return domain.InternalError{Err: err}
			}
			clone.ID = id
			newVehicles = append(newVehicles, clone)
		}

		if err := s.ScheduleDateRepo.AddCounts(tx, destination.ID, booking.PassengerCount, booking.Vehicles); err != nil {
			return domain.InternalError{Err: err}
		}
		destination.PassengerCount += booking.PassengerCount
		for _, t := range domain.VehicleTypes {
			destination.Vehicles.Set(t, destination.Vehicles.Get(t)+booking.Vehicles.Get(t))
		}
		if ledgerFull(ferry, destination) {
			if err := s.ScheduleDateRepo.UpdateStatus(tx, destination.ID, domain.DateFull, destination.StatusSource, "", ""); err != nil {
				return domain.InternalError{Err: err}
			}
		}

		// Carry the settled payment over for audit continuity.
		payments := []models.Payment{}
		if paid, ok, err := s.PaymentRepo.FindSuccessTx(tx, booking.ID); err != nil {
			return domain.InternalError{Err: err}
		} else if ok {
			now := time.Now()
			clone := models.Payment{
				BookingID:  newID,
				ExternalID: utils.NewExternalID(),
				Amount:     paid.Amount,
				Method:     paid.Method,
				Channel:    paid.Channel,
				Status:     domain.PaymentSuccess,
				PaymentAt:  &now,
			}
			id, err := s.PaymentRepo.Insert(tx, clone)
			if err != nil {
				return domain.InternalError{Err: err}
			}
			clone.ID = id
			payments = append(payments, clone)
		}

		if err := s.BookingLogRepo.Insert(tx, models.BookingLog{
			BookingID:      booking.ID,
			PreviousStatus: domain.BookingConfirmed,
			NewStatus:      domain.BookingRescheduled,
			ChangedByType:  in.ActorType,
			ChangedByID:    in.ActorID,
			Notes:          note,
		}); err != nil {
			return domain.InternalError{Err: err}
		}
		if err := s.BookingLogRepo.Insert(tx, models.BookingLog{
			BookingID:      newID,
			PreviousStatus: domain.BookingNew,
			NewStatus:      domain.BookingConfirmed,
			ChangedByType:  in.ActorType,
			ChangedByID:    in.ActorID,
			Notes:          fmt.Sprintf("hasil reschedule dari %s", booking.Code),
		}); err != nil {
			return domain.InternalError{Err: err}
		}

		detail = BookingDetail{
			Booking:  newBooking,
			Tickets:  newTickets,
			Vehicles: newVehicles,
			Payments: payments,
		}
		return nil
	})
	if err != nil {
		return BookingDetail{}, err
	}
	return detail, nil
}

// lockBothLedgers acquires both row locks in (schedule_id, date) order so two
// opposing transfers cannot deadlock. The destination row must already exist;
// reschedule never creates ledger rows implicitly.
func (s RescheduleService) lockBothLedgers(tx *sql.Tx, booking models.Booking, toScheduleID int64, toDate string) (origin, destination models.ScheduleDate, err error) {
	type key struct {
		scheduleID int64
		date       string
	}
	from := key{booking.ScheduleID, booking.Date}
	to := key{toScheduleID, toDate}

	first, second := from, to
	if to.scheduleID < from.scheduleID || (to.scheduleID == from.scheduleID && to.date < from.date) {
		first, second = to, from
	}

	rows := map[key]models.ScheduleDate{}
	found := map[key]bool{}
	for _, k := range []key{first, second} {
		row, ok, lerr := s.ScheduleDateRepo.Lock(tx, k.scheduleID, k.date)
		if lerr != nil {
			return origin, destination, domain.InternalError{Err: lerr}
		}
		rows[k] = row
		found[k] = ok
	}

	if !found[to] {
		return origin, destination, domain.ValidationError{
			Field: "date",
			Msg:   "tanggal tujuan belum dibuka untuk pemesanan",
		}
	}
	return rows[from], rows[to], nil
}
