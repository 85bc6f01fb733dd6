package services

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"ferryops/internal/domain"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"
)

func ticketRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "code", "qr_token", "booking_id", "passenger_name",
		"passenger_id_number", "status", "checked_in", "boarding_at",
	})
}

func newTicketService(t *testing.T) (TicketService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := TicketService{
		TicketRepo:  repositories.TicketRepo{DB: db},
		BookingRepo: repositories.BookingRepo{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestCheckInOnDepartureDay(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	today := utils.FormatDate(time.Now())

	mock.ExpectQuery("FROM tickets").WillReturnRows(
		ticketRows().AddRow(70, "FTK-AAAA2222", "qr-1", 5, "Budi Santoso", "", "ACTIVE", false, nil))
	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(5, "FBK-1", 2, 1, today, 1, 0, 0, 0, 0,
			50000, "CONFIRMED", "", "", "", time.Now()))
	mock.ExpectExec("UPDATE tickets").WillReturnResult(sqlmock.NewResult(0, 1))
	now := time.Now()
	mock.ExpectQuery("FROM tickets").WillReturnRows(
		ticketRows().AddRow(70, "FTK-AAAA2222", "qr-1", 5, "Budi Santoso", "", "ACTIVE", true, now))

	ticket, err := svc.CheckIn("FTK-AAAA2222")
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if !ticket.CheckedIn {
		t.Error("tiket harus tercatat check-in")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCheckInRejectedBeforeDepartureDay(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	tomorrow := utils.FormatDate(time.Now().AddDate(0, 0, 1))

	mock.ExpectQuery("FROM tickets").WillReturnRows(
		ticketRows().AddRow(70, "FTK-AAAA2222", "qr-1", 5, "Budi Santoso", "", "ACTIVE", false, nil))
	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(5, "FBK-1", 2, 1, tomorrow, 1, 0, 0, 0, 0,
			50000, "CONFIRMED", "", "", "", time.Now()))

	_, err := svc.CheckIn("FTK-AAAA2222")
	if err == nil || !strings.Contains(err.Error(), "check-in hanya pada tanggal keberangkatan") {
		t.Errorf("check-in sebelum hari-H harus ditolak, err=%v", err)
	}
}

func TestCheckInRejectedForUnconfirmedBooking(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	today := utils.FormatDate(time.Now())

	mock.ExpectQuery("FROM tickets").WillReturnRows(
		ticketRows().AddRow(70, "FTK-AAAA2222", "qr-1", 5, "Budi Santoso", "", "ACTIVE", false, nil))
	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(5, "FBK-1", 2, 1, today, 1, 0, 0, 0, 0,
			50000, "PENDING", "", "", "", time.Now()))

	_, err := svc.CheckIn("FTK-AAAA2222")
	if err == nil || !strings.Contains(err.Error(), "hanya CONFIRMED yang bisa boarding") {
		t.Errorf("booking belum bayar harus ditolak, err=%v", err)
	}
}

func TestCheckInRejectedTwice(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("FROM tickets").WillReturnRows(
		ticketRows().AddRow(70, "FTK-AAAA2222", "qr-1", 5, "Budi Santoso", "", "ACTIVE", true, time.Now()))

	_, err := svc.CheckIn("FTK-AAAA2222")
	if err == nil || !strings.Contains(err.Error(), "sudah check-in") {
		t.Errorf("check-in ganda harus ditolak, err=%v", err)
	}
}

func TestCheckInRejectedForCancelledTicket(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("FROM tickets").WillReturnRows(
		ticketRows().AddRow(70, "FTK-AAAA2222", "qr-1", 5, "Budi Santoso", "", "CANCELLED", false, nil))

	_, err := svc.CheckIn("FTK-AAAA2222")
	if err == nil || !domain.IsValidation(err) {
		t.Errorf("tiket batal harus ditolak, err=%v", err)
	}
}
