package services

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"ferryops/internal/domain"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"
)

func vehicleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "booking_id", "type", "plate_number", "owner_name"})
}

func newRescheduleService(t *testing.T) (RescheduleService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := RescheduleService{
		DB:               db,
		BookingRepo:      repositories.BookingRepo{DB: db},
		TicketRepo:       repositories.TicketRepo{DB: db},
		VehicleRepo:      repositories.VehicleRepo{DB: db},
		PaymentRepo:      repositories.PaymentRepo{DB: db},
		BookingLogRepo:   repositories.BookingLogRepo{DB: db},
		ScheduleRepo:     repositories.ScheduleRepo{DB: db},
		FerryRepo:        repositories.FerryRepo{DB: db},
		ScheduleDateRepo: repositories.ScheduleDateRepo{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestTransferMovesCountsBetweenLedgers(t *testing.T) {
	svc, mock, done := newRescheduleService(t)
	defer done()

	fromDate := utils.FormatDate(time.Now().AddDate(0, 0, 3))
	toDate := time.Now().AddDate(0, 0, 7)
	toDateStr := utils.FormatDate(toDate)
	day := strconv.Itoa(domain.ISOWeekday(toDate))

	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(2, 1, 1, "14:00", "16:00", day, "ACTIVE", "", ""))
	mock.ExpectQuery("FROM ferries").WillReturnRows(
		ferryRows().AddRow(1, "KMP Jatra I", 100, 30, 20, 5, 5, "ACTIVE"))

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(5, "FBK-ASAL", 2, 1, fromDate, 2, 1, 0, 0, 0,
			125000, "CONFIRMED", "", "", "", time.Now()))
	// Origin then destination, locked in (schedule_id, date) order.
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(
		ledgerRows().AddRow(9, 1, fromDate, 2, 1, 0, 0, 0, "AVAILABLE", "INHERITED", "", ""))
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(
		ledgerRows().AddRow(10, 2, toDateStr, 0, 0, 0, 0, 0, "AVAILABLE", "INHERITED", "", ""))
	mock.ExpectExec("UPDATE schedule_dates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE tickets").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(50, 1))
	mock.ExpectQuery("FROM tickets").WillReturnRows(
		ticketRows().
			AddRow(70, "FTK-LAMA1", "qr-1", 5, "Budi Santoso", "", "CANCELLED", false, nil).
			AddRow(71, "FTK-LAMA2", "qr-2", 5, "Siti Rahma", "", "CANCELLED", false, nil))
	mock.ExpectExec("INSERT INTO tickets").WillReturnResult(sqlmock.NewResult(80, 1))
	mock.ExpectExec("INSERT INTO tickets").WillReturnResult(sqlmock.NewResult(81, 1))
	mock.ExpectQuery("FROM vehicles").WillReturnRows(
		vehicleRows().AddRow(6, 5, "MOTORCYCLE", "B 1234 XYZ", ""))
	mock.ExpectExec("INSERT INTO vehicles").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE schedule_dates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM payments").WillReturnRows(
		paymentRows().AddRow(3, 5, "FPY-1", 125000, "BANK_TRANSFER", "", "SUCCESS", nil, time.Now()))
	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec("INSERT INTO booking_logs").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_logs").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	detail, err := svc.Transfer(RescheduleInput{
		BookingID:    5,
		ToScheduleID: 2,
		ToDate:       toDateStr,
		ActorType:    domain.ActorAdmin,
		ActorID:      1,
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if detail.Booking.ID != 50 || detail.Booking.ScheduleID != 2 || detail.Booking.Date != toDateStr {
		t.Errorf("booking baru = %+v", detail.Booking)
	}
	if detail.Booking.Status != domain.BookingConfirmed {
		t.Errorf("status = %s, want CONFIRMED", detail.Booking.Status)
	}
	if len(detail.Tickets) != 2 {
		t.Errorf("tiket = %d, want 2", len(detail.Tickets))
	}
	if len(detail.Payments) != 1 || detail.Payments[0].Amount != 125000 {
		t.Errorf("payments = %+v", detail.Payments)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTransferRequiresOpenDestinationDate(t *testing.T) {
	svc, mock, done := newRescheduleService(t)
	defer done()

	fromDate := utils.FormatDate(time.Now().AddDate(0, 0, 3))
	toDate := time.Now().AddDate(0, 0, 7)
	toDateStr := utils.FormatDate(toDate)
	day := strconv.Itoa(domain.ISOWeekday(toDate))

	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(2, 1, 1, "14:00", "16:00", day, "ACTIVE", "", ""))
	mock.ExpectQuery("FROM ferries").WillReturnRows(
		ferryRows().AddRow(1, "KMP Jatra I", 100, 30, 20, 5, 5, "ACTIVE"))

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(5, "FBK-ASAL", 2, 1, fromDate, 2, 0, 0, 0, 0,
			100000, "CONFIRMED", "", "", "", time.Now()))
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(
		ledgerRows().AddRow(9, 1, fromDate, 2, 0, 0, 0, 0, "AVAILABLE", "INHERITED", "", ""))
	// Destination row was never generated.
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(ledgerRows())
	mock.ExpectRollback()

	_, err := svc.Transfer(RescheduleInput{
		BookingID:    5,
		ToScheduleID: 2,
		ToDate:       toDateStr,
		ActorType:    domain.ActorAdmin,
	})
	if err == nil || !strings.Contains(err.Error(), "tanggal tujuan belum dibuka") {
		t.Errorf("tujuan tanpa ledger harus ditolak, err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTransferRejectsUnconfirmedBooking(t *testing.T) {
	svc, mock, done := newRescheduleService(t)
	defer done()

	fromDate := utils.FormatDate(time.Now().AddDate(0, 0, 3))
	toDate := time.Now().AddDate(0, 0, 7)
	toDateStr := utils.FormatDate(toDate)
	day := strconv.Itoa(domain.ISOWeekday(toDate))

	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(2, 1, 1, "14:00", "16:00", day, "ACTIVE", "", ""))
	mock.ExpectQuery("FROM ferries").WillReturnRows(
		ferryRows().AddRow(1, "KMP Jatra I", 100, 30, 20, 5, 5, "ACTIVE"))

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(5, "FBK-ASAL", 2, 1, fromDate, 2, 0, 0, 0, 0,
			100000, "PENDING", "", "", "", time.Now()))
	mock.ExpectRollback()

	_, err := svc.Transfer(RescheduleInput{
		BookingID:    5,
		ToScheduleID: 2,
		ToDate:       toDateStr,
		ActorType:    domain.ActorAdmin,
	})
	if err == nil || !strings.Contains(err.Error(), "hanya booking CONFIRMED") {
		t.Errorf("booking PENDING harus ditolak, err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
