package services

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"
)

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "route_id", "ferry_id", "departure_time", "arrival_time",
		"days", "status", "status_reason", "status_expiry_date",
	})
}

func routeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "origin", "destination", "duration_minutes", "base_price",
		"motorcycle_price", "car_price", "bus_price", "truck_price", "status",
	})
}

func ferryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "capacity_passenger", "capacity_motorcycle",
		"capacity_car", "capacity_bus", "capacity_truck", "status",
	})
}

func ledgerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "schedule_id", "date", "passenger_count", "motorcycle_count",
		"car_count", "bus_count", "truck_count", "status", "status_source",
		"status_reason", "status_expiry_date",
	})
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "code", "user_id", "schedule_id", "date", "passenger_count",
		"motorcycle_count", "car_count", "bus_count", "truck_count",
		"amount", "status", "cancellation_reason", "notes", "created_by", "created_at",
	})
}

func paymentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_id", "external_id", "amount", "method",
		"channel", "status", "expiry_at", "payment_at",
	})
}

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := BookingService{
		DB:               db,
		BookingRepo:      repositories.BookingRepo{DB: db},
		TicketRepo:       repositories.TicketRepo{DB: db},
		VehicleRepo:      repositories.VehicleRepo{DB: db},
		PaymentRepo:      repositories.PaymentRepo{DB: db},
		BookingLogRepo:   repositories.BookingLogRepo{DB: db},
		UserRepo:         repositories.UserRepo{DB: db},
		ScheduleRepo:     repositories.ScheduleRepo{DB: db},
		RouteRepo:        repositories.RouteRepo{DB: db},
		FerryRepo:        repositories.FerryRepo{DB: db},
		ScheduleDateRepo: repositories.ScheduleDateRepo{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestCreateBookingReservesCapacity(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	dep := time.Now().AddDate(0, 0, 7)
	dateStr := utils.FormatDate(dep)
	day := strconv.Itoa(domain.ISOWeekday(dep))

	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(1, 1, 1, "08:00", "10:00", day, "ACTIVE", "", ""))
	mock.ExpectQuery("FROM routes").WillReturnRows(
		routeRows().AddRow(1, "Merak", "Bakauheni", 120, 50000, 25000, 150000, 250000, 350000, "ACTIVE"))
	mock.ExpectQuery("FROM ferries").WillReturnRows(
		ferryRows().AddRow(1, "KMP Jatra I", 100, 30, 20, 5, 5, "ACTIVE"))

	mock.ExpectBegin()
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(
		ledgerRows().AddRow(9, 1, dateStr, 10, 2, 1, 0, 0, "AVAILABLE", "INHERITED", "", ""))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO tickets").WillReturnResult(sqlmock.NewResult(70, 1))
	mock.ExpectExec("INSERT INTO tickets").WillReturnResult(sqlmock.NewResult(71, 1))
	mock.ExpectExec("INSERT INTO vehicles").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("UPDATE schedule_dates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO booking_logs").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	detail, err := svc.Create(CreateBookingInput{
		UserID:     2,
		ScheduleID: 1,
		Date:       dateStr,
		Passengers: []models.PassengerInput{
			{Name: "Budi Santoso", IDNumber: "3201010101010001"},
			{Name: "Siti Rahma"},
		},
		Vehicles:  []models.VehicleInput{{Type: "motorcycle", PlateNumber: "B 1234 XYZ"}},
		Method:    domain.MethodBankTransfer,
		ActorType: domain.ActorUser,
		ActorID:   2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Booking.ID != 42 {
		t.Errorf("booking id = %d, want 42", detail.Booking.ID)
	}
	// 2 x 50000 base + 1 x 25000 motor.
	if detail.Booking.Amount != 125000 {
		t.Errorf("amount = %d, want 125000", detail.Booking.Amount)
	}
	if detail.Booking.Status != domain.BookingPending {
		t.Errorf("status = %s, want PENDING", detail.Booking.Status)
	}
	if len(detail.Tickets) != 2 {
		t.Errorf("tickets = %d, want 2", len(detail.Tickets))
	}
	if len(detail.Payments) != 1 || detail.Payments[0].Status != domain.PaymentPending {
		t.Errorf("payment tidak PENDING: %+v", detail.Payments)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreateBookingCashConfirmsImmediately(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	dep := time.Now().AddDate(0, 0, 3)
	dateStr := utils.FormatDate(dep)
	day := strconv.Itoa(domain.ISOWeekday(dep))

	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(1, 1, 1, "08:00", "10:00", day, "ACTIVE", "", ""))
	mock.ExpectQuery("FROM routes").WillReturnRows(
		routeRows().AddRow(1, "Merak", "Bakauheni", 120, 50000, 25000, 150000, 250000, 350000, "ACTIVE"))
	mock.ExpectQuery("FROM ferries").WillReturnRows(
		ferryRows().AddRow(1, "KMP Jatra I", 100, 30, 20, 5, 5, "ACTIVE"))

	mock.ExpectBegin()
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(
		ledgerRows().AddRow(9, 1, dateStr, 0, 0, 0, 0, 0, "AVAILABLE", "INHERITED", "", ""))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectExec("INSERT INTO tickets").WillReturnResult(sqlmock.NewResult(72, 1))
	mock.ExpectExec("UPDATE schedule_dates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec("INSERT INTO booking_logs").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	detail, err := svc.Create(CreateBookingInput{
		UserID:     2,
		ScheduleID: 1,
		Date:       dateStr,
		Passengers: []models.PassengerInput{{Name: "Budi Santoso"}},
		Method:     domain.MethodCash,
		ActorType:  domain.ActorAdmin,
		ActorID:    1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Booking.Status != domain.BookingConfirmed {
		t.Errorf("status = %s, want CONFIRMED", detail.Booking.Status)
	}
	if detail.Payments[0].Status != domain.PaymentSuccess {
		t.Errorf("payment = %s, want SUCCESS", detail.Payments[0].Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreateBookingRejectsFullSailing(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	dep := time.Now().AddDate(0, 0, 7)
	dateStr := utils.FormatDate(dep)
	day := strconv.Itoa(domain.ISOWeekday(dep))

	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(1, 1, 1, "08:00", "10:00", day, "ACTIVE", "", ""))
	mock.ExpectQuery("FROM routes").WillReturnRows(
		routeRows().AddRow(1, "Merak", "Bakauheni", 120, 50000, 25000, 150000, 250000, 350000, "ACTIVE"))
	mock.ExpectQuery("FROM ferries").WillReturnRows(
		ferryRows().AddRow(1, "KMP Kecil", 2, 0, 0, 0, 0, "ACTIVE"))

	mock.ExpectBegin()
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(
		ledgerRows().AddRow(9, 1, dateStr, 2, 0, 0, 0, 0, "AVAILABLE", "INHERITED", "", ""))
	mock.ExpectRollback()

	_, err := svc.Create(CreateBookingInput{
		UserID:     2,
		ScheduleID: 1,
		Date:       dateStr,
		Passengers: []models.PassengerInput{{Name: "Budi Santoso"}},
		Method:     domain.MethodCash,
		ActorType:  domain.ActorUser,
		ActorID:    2,
	})
	if err == nil {
		t.Fatal("harus gagal saat kapasitas penuh")
	}
	if !domain.IsValidation(err) {
		t.Errorf("bukan validation error: %v", err)
	}
	if !strings.Contains(err.Error(), "kursi penumpang tidak mencukupi") {
		t.Errorf("pesan salah: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreateBookingRejectsNonOperatingDay(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	dep := time.Now().AddDate(0, 0, 7)
	dateStr := utils.FormatDate(dep)
	// Pick any other weekday than the departure day.
	other := domain.ISOWeekday(dep)%7 + 1

	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(1, 1, 1, "08:00", "10:00", strconv.Itoa(other), "ACTIVE", "", ""))

	_, err := svc.Create(CreateBookingInput{
		UserID:     2,
		ScheduleID: 1,
		Date:       dateStr,
		Passengers: []models.PassengerInput{{Name: "Budi Santoso"}},
		Method:     domain.MethodCash,
		ActorType:  domain.ActorUser,
		ActorID:    2,
	})
	if err == nil {
		t.Fatal("harus gagal di luar hari operasional")
	}
	if !strings.Contains(err.Error(), "jadwal tidak berlayar") {
		t.Errorf("pesan salah: %v", err)
	}
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	past := utils.FormatDate(time.Now().AddDate(0, 0, -1))
	_, err := svc.Create(CreateBookingInput{
		UserID:     2,
		ScheduleID: 1,
		Date:       past,
		Passengers: []models.PassengerInput{{Name: "Budi Santoso"}},
		Method:     domain.MethodCash,
	})
	if err == nil || !strings.Contains(err.Error(), "sudah lewat") {
		t.Errorf("tanggal lampau harus ditolak, err=%v", err)
	}
}
