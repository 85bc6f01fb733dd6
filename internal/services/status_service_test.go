package services

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"ferryops/internal/domain"
	"ferryops/internal/repositories"
)

func newStatusService(t *testing.T) (StatusService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := StatusService{
		DB:               db,
		BookingRepo:      repositories.BookingRepo{DB: db},
		TicketRepo:       repositories.TicketRepo{DB: db},
		PaymentRepo:      repositories.PaymentRepo{DB: db},
		BookingLogRepo:   repositories.BookingLogRepo{DB: db},
		ScheduleRepo:     repositories.ScheduleRepo{DB: db},
		FerryRepo:        repositories.FerryRepo{DB: db},
		ScheduleDateRepo: repositories.ScheduleDateRepo{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestCancelReleasesLedgerAndReopensFullDate(t *testing.T) {
	svc, mock, done := newStatusService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(5, "FBK-1", 2, 1, "2026-09-01", 2, 1, 0, 0, 0,
			125000, "PENDING", "", "", "", time.Now()))
	mock.ExpectExec("UPDATE tickets").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(
		ledgerRows().AddRow(9, 1, "2026-09-01", 2, 1, 0, 0, 0, "FULL", "INHERITED", "", ""))
	// Subtract counts, then FULL reopens to AVAILABLE.
	mock.ExpectExec("UPDATE schedule_dates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE schedule_dates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM payments").WillReturnRows(
		paymentRows().AddRow(3, 5, "FPY-1", 125000, "BANK_TRANSFER", "", "PENDING", nil, nil))
	mock.ExpectExec("UPDATE payments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_logs").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	out, err := svc.Transition(TransitionInput{
		BookingID: 5,
		To:        domain.BookingCancelled,
		Reason:    "cuaca buruk",
		ActorType: domain.ActorAdmin,
		ActorID:   1,
	})
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if out.Status != domain.BookingCancelled {
		t.Errorf("status = %s, want CANCELLED", out.Status)
	}
	if out.CancellationReason != "cuaca buruk" {
		t.Errorf("reason = %q", out.CancellationReason)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCancelAfterRefundDoesNotReleaseTwice(t *testing.T) {
	svc, mock, done := newStatusService(t)
	defer done()

	// REFUND_PENDING -> CANCELLED: capacity was already released on the
	// first cancellation, so no ledger queries this time.
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(5, "FBK-1", 2, 1, "2026-09-01", 2, 0, 0, 0, 0,
			100000, "REFUND_PENDING", "", "", "", time.Now()))
	mock.ExpectExec("UPDATE tickets").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM payments").WillReturnRows(paymentRows())
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_logs").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := svc.Transition(TransitionInput{
		BookingID: 5,
		To:        domain.BookingCancelled,
		ActorType: domain.ActorAdmin,
		ActorID:   1,
	})
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestConfirmSettlesPendingPayment(t *testing.T) {
	svc, mock, done := newStatusService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(5, "FBK-1", 2, 1, "2026-09-01", 1, 0, 0, 0, 0,
			50000, "PENDING", "", "", "", time.Now()))
	mock.ExpectQuery("FROM payments").WillReturnRows(
		paymentRows().AddRow(3, 5, "FPY-1", 50000, "BANK_TRANSFER", "", "PENDING", nil, nil))
	mock.ExpectExec("UPDATE payments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_logs").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	out, err := svc.Transition(TransitionInput{
		BookingID: 5,
		To:        domain.BookingConfirmed,
		ActorType: domain.ActorSystem,
	})
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if out.Status != domain.BookingConfirmed {
		t.Errorf("status = %s, want CONFIRMED", out.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestIllegalTransitionRejected(t *testing.T) {
	svc, mock, done := newStatusService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(5, "FBK-1", 2, 1, "2026-09-01", 1, 0, 0, 0, 0,
			50000, "COMPLETED", "", "", "", time.Now()))
	mock.ExpectRollback()

	_, err := svc.Transition(TransitionInput{
		BookingID: 5,
		To:        domain.BookingCancelled,
		ActorType: domain.ActorAdmin,
	})
	if err == nil {
		t.Fatal("transisi ilegal harus gagal")
	}
	if !domain.IsValidation(err) {
		t.Errorf("bukan validation error: %v", err)
	}
	if !strings.Contains(err.Error(), "transisi COMPLETED ke CANCELLED tidak diizinkan") {
		t.Errorf("pesan salah: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUnknownTargetStatusRejected(t *testing.T) {
	svc, _, done := newStatusService(t)
	defer done()

	_, err := svc.Transition(TransitionInput{BookingID: 5, To: "TELEPORTED"})
	if err == nil || !domain.IsValidation(err) {
		t.Errorf("status asing harus validation error, err=%v", err)
	}
}
