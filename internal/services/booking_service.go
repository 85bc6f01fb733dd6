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

// BookingService runs the reservation workflow: capacity check and all
// entity writes inside one transaction against the capacity ledger.
type BookingService struct {
	DB *sql.DB

	BookingRepo      repositories.BookingRepo
	TicketRepo       repositories.TicketRepo
	VehicleRepo      repositories.VehicleRepo
	PaymentRepo      repositories.PaymentRepo
	BookingLogRepo   repositories.BookingLogRepo
	UserRepo         repositories.UserRepo
	ScheduleRepo     repositories.ScheduleRepo
	RouteRepo        repositories.RouteRepo
	FerryRepo        repositories.FerryRepo
	ScheduleDateRepo repositories.ScheduleDateRepo
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type CreateBookingInput struct {
	UserID     int64
	ScheduleID int64
	Date       string
	Passengers []models.PassengerInput
	Vehicles   []models.VehicleInput
	Method     domain.PaymentMethod
	Channel    string
	Notes      string
	ActorType  domain.ActorType
	ActorID    int64
}

// BookingDetail bundles the aggregate for responses.
type BookingDetail struct {
	Booking  models.Booking   `json:"booking"`
	Tickets  []models.Ticket  `json:"tickets"`
	Vehicles []models.Vehicle `json:"vehicles"`
	Payments []models.Payment `json:"payments"`
}

// Create validates the request, reserves capacity under the row lock and
// persists booking+tickets+vehicles+payment+log atomically.
func (s BookingService) Create(in CreateBookingInput) (BookingDetail, error) {
	if len(in.Passengers) == 0 {
		return BookingDetail{}, domain.ValidationError{Field: "passengers", Msg: "minimal satu penumpang"}
	}
	for i, p := range in.Passengers {
		if strings.TrimSpace(p.Name) == "" {
			return BookingDetail{}, domain.ValidationError{
				Field: "passengers",
				Msg:   fmt.Sprintf("nama penumpang ke-%d kosong", i+1),
			}
		}
	}
	if !in.Method.IsValid() {
		return BookingDetail{}, domain.ValidationError{Field: "payment_method", Msg: "metode pembayaran tidak dikenal"}
	}

	veh, err := countVehicles(in.Vehicles)
	if err != nil {
		return BookingDetail{}, err
	}

	depDate, err := utils.ParseDate(in.Date)
	if err != nil {
		return BookingDetail{}, domain.ValidationError{Field: "date", Msg: "format tanggal harus YYYY-MM-DD"}
	}
	if utils.DaysUntil(depDate) < 0 {
		return BookingDetail{}, domain.ValidationError{Field: "date", Msg: "tanggal keberangkatan sudah lewat"}
	}

	sched, err := s.ScheduleRepo.GetByID(in.ScheduleID)
	if err != nil {
		return BookingDetail{}, err
	}
	if sched.Status != domain.ScheduleActive {
		return BookingDetail{}, domain.ValidationError{Field: "schedule_id", Msg: "jadwal tidak aktif"}
	}
	if !sched.Days.Has(domain.ISOWeekday(depDate)) {
		return BookingDetail{}, domain.ValidationError{
			Field: "date",
			Msg: fmt.Sprintf("jadwal tidak berlayar pada hari %s (hari operasional: %s)",
				domain.DayName(domain.ISOWeekday(depDate)), strings.Join(sched.Days.Names(), ", ")),
		}
	}

	route, err := s.RouteRepo.GetByID(sched.RouteID)
	if err != nil {
		return BookingDetail{}, err
	}
	ferry, err := s.FerryRepo.GetByID(sched.FerryID)
	if err != nil {
		return BookingDetail{}, err
	}

	amount := route.BasePrice * int64(len(in.Passengers))
	for _, t := range domain.VehicleTypes {
		amount += route.VehiclePrice(t) * int64(veh.Get(t))
	}

	date := utils.FormatDate(depDate)
	status := domain.BookingPending
	if in.Method == domain.MethodCash {
		// Cash is settled at the counter: skip PENDING entirely.
		status = domain.BookingConfirmed
	}

	var detail BookingDetail
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		ledger, found, err := s.ScheduleDateRepo.Lock(tx, in.ScheduleID, date)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if !found {
			// Lazy ledger creation on first booking of this sailing.
			ledger = models.ScheduleDate{
				ScheduleID:   in.ScheduleID,
				Date:         date,
				Status:       domain.DateAvailable,
				StatusSource: domain.SourceInherited,
			}
			id, err := s.ScheduleDateRepo.Create(tx, ledger)
			if err != nil {
				return domain.InternalError{Err: err}
			}
			ledger.ID = id
		}

		if err := checkHeadroom(ferry, ledger, len(in.Passengers), veh); err != nil {
			return err
		}

		booking := models.Booking{
			Code:           utils.NewBookingCode(),
			UserID:         in.UserID,
			ScheduleID:     in.ScheduleID,
			Date:           date,
			PassengerCount: len(in.Passengers),
			Vehicles:       veh,
			Amount:         amount,
			Status:         status,
			Notes:          strings.TrimSpace(in.Notes),
		}
		bookingID, err := s.BookingRepo.Insert(tx, booking)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		booking.ID = bookingID

		tickets := make([]models.Ticket, 0, len(in.Passengers))
		for _, p := range in.Passengers {
			t := models.Ticket{
				Code:              utils.NewTicketCode(),
				QRToken:           utils.NewQRToken(),
				BookingID:         bookingID,
				PassengerName:     strings.TrimSpace(p.Name),
				PassengerIDNumber: strings.TrimSpace(p.IDNumber),
				Status:            domain.TicketActive,
			}
			id, err := s.TicketRepo.Insert(tx, t)
			if err != nil {
				return domain.InternalError{Err: err}
			}
			t.ID = id
			tickets = append(tickets, t)
		}

		vehicles := make([]models.Vehicle, 0, len(in.Vehicles))
		for _, v := range in.Vehicles {
			rec := models.Vehicle{
				BookingID:   bookingID,
				Type:        domain.VehicleType(strings.ToUpper(strings.TrimSpace(v.Type))),
				PlateNumber: v.PlateNumber,
				OwnerName:   strings.TrimSpace(v.OwnerName),
			}
			id, err := s.VehicleRepo.Insert(tx, rec)
			if err != nil {
				return domain.InternalError{Err: err}
			}
			rec.ID = id
			vehicles = append(vehicles, rec)
		}

		if err := s.ScheduleDateRepo.AddCounts(tx, ledger.ID, len(in.Passengers), veh); err != nil {
			return domain.InternalError{Err: err}
		}
		ledger.PassengerCount += len(in.Passengers)
		for _, t := range domain.VehicleTypes {
			ledger.Vehicles.Set(t, ledger.Vehicles.Get(t)+veh.Get(t))
		}
		if ledgerFull(ferry, ledger) {
			if err := s.ScheduleDateRepo.UpdateStatus(tx, ledger.ID, domain.DateFull, ledger.StatusSource, "", ""); err != nil {
				return domain.InternalError{Err: err}
			}
		}

		payment := models.Payment{
			BookingID:  bookingID,
			ExternalID: utils.NewExternalID(),
			Amount:     amount,
			Method:     in.Method,
			Channel:    strings.TrimSpace(in.Channel),
			Status:     domain.PaymentPending,
		}
		now := time.Now()
		if in.Method == domain.MethodCash {
			payment.Status = domain.PaymentSuccess
			payment.PaymentAt = &now
		} else {
			expiry := now.Add(24 * time.Hour)
			payment.ExpiryAt = &expiry
		}
		payID, err := s.PaymentRepo.Insert(tx, payment)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		payment.ID = payID

		if err := s.BookingLogRepo.Insert(tx, models.BookingLog{
			BookingID:      bookingID,
			PreviousStatus: domain.BookingNew,
			NewStatus:      status,
			ChangedByType:  in.ActorType,
			ChangedByID:    in.ActorID,
			Notes:          "booking dibuat",
		}); err != nil {
			return domain.InternalError{Err: err}
		}

		if err := s.UserRepo.IncrementTotalBookings(tx, in.UserID); err != nil {
			return domain.InternalError{Err: err}
		}

		detail = BookingDetail{
			Booking:  booking,
			Tickets:  tickets,
			Vehicles: vehicles,
			Payments: []models.Payment{payment},
		}
		return nil
	})
	if err != nil {
		return BookingDetail{}, err
	}
	return detail, nil
}

// Detail loads the full aggregate for one booking.
func (s BookingService) Detail(id int64) (BookingDetail, error) {
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return BookingDetail{}, err
	}
	tickets, err := s.TicketRepo.ListByBooking(id)
	if err != nil {
		return BookingDetail{}, domain.InternalError{Err: err}
	}
	vehicles, err := s.VehicleRepo.ListByBooking(id)
	if err != nil {
		return BookingDetail{}, domain.InternalError{Err: err}
	}
	payments, err := s.PaymentRepo.ListByBooking(id)
	if err != nil {
		return BookingDetail{}, domain.InternalError{Err: err}
	}
	return BookingDetail{Booking: booking, Tickets: tickets, Vehicles: vehicles, Payments: payments}, nil
}

// countVehicles validates the declared vehicles and tallies them per class.
func countVehicles(inputs []models.VehicleInput) (models.VehicleCounts, error) {
	var veh models.VehicleCounts
	for i, v := range inputs {
		t := domain.VehicleType(strings.ToUpper(strings.TrimSpace(v.Type)))
		if !t.IsValid() {
			return veh, domain.ValidationError{
				Field: "vehicles",
				Msg:   fmt.Sprintf("jenis kendaraan ke-%d tidak dikenal: %q", i+1, v.Type),
			}
		}
		if strings.TrimSpace(v.PlateNumber) == "" {
			return veh, domain.ValidationError{
				Field: "vehicles",
				Msg:   fmt.Sprintf("plat nomor kendaraan ke-%d kosong", i+1),
			}
		}
		veh.Set(t, veh.Get(t)+1)
	}
	return veh, nil
}
