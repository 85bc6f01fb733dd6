package services

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"ferryops/internal/domain"
	"ferryops/internal/repositories"
)

func newScheduleService(t *testing.T) (ScheduleService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := ScheduleService{
		DB:               db,
		ScheduleRepo:     repositories.ScheduleRepo{DB: db},
		ScheduleDateRepo: repositories.ScheduleDateRepo{DB: db},
		RouteRepo:        repositories.RouteRepo{DB: db},
		FerryRepo:        repositories.FerryRepo{DB: db},
		Conflicts:        ConflictService{ScheduleRepo: repositories.ScheduleRepo{DB: db}},
	}
	return svc, mock, func() { db.Close() }
}

func TestGenerateDatesSkipsNonOperatingDays(t *testing.T) {
	svc, mock, done := newScheduleService(t)
	defer done()

	// Schedule sails Mondays only; 2026-09-07 is the lone Monday in range.
	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(1, 1, 1, "08:00", "10:00", "1", "ACTIVE", "", ""))
	mock.ExpectBegin()
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(ledgerRows())
	mock.ExpectExec("INSERT INTO schedule_dates").WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	created, err := svc.GenerateDates(1, "2026-09-07", "2026-09-13")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created = %d, want 1", len(created))
	}
	sd := created[0]
	if sd.Date != "2026-09-07" || sd.ID != 11 {
		t.Errorf("row = %+v", sd)
	}
	if sd.Status != domain.DateAvailable || sd.StatusSource != domain.SourceInherited {
		t.Errorf("status = %s/%s, want AVAILABLE/INHERITED", sd.Status, sd.StatusSource)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGenerateDatesSkipsExistingRows(t *testing.T) {
	svc, mock, done := newScheduleService(t)
	defer done()

	// Two Mondays in range; the first ledger row already exists.
	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(1, 1, 1, "08:00", "10:00", "1", "ACTIVE", "", ""))
	mock.ExpectBegin()
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(
		ledgerRows().AddRow(10, 1, "2026-09-07", 0, 0, 0, 0, 0, "AVAILABLE", "INHERITED", "", ""))
	mock.ExpectQuery("FROM schedule_dates").WillReturnRows(ledgerRows())
	mock.ExpectExec("INSERT INTO schedule_dates").WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	created, err := svc.GenerateDates(1, "2026-09-07", "2026-09-14")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(created) != 1 || created[0].Date != "2026-09-14" {
		t.Errorf("created = %+v, want hanya 2026-09-14", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGenerateDatesRejectsBadRange(t *testing.T) {
	svc, mock, done := newScheduleService(t)
	defer done()

	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(1, 1, 1, "08:00", "10:00", "1", "ACTIVE", "", ""))
	if _, err := svc.GenerateDates(1, "2026-09-14", "2026-09-07"); !domain.IsValidation(err) {
		t.Errorf("rentang terbalik harus validation error, err=%v", err)
	}

	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(1, 1, 1, "08:00", "10:00", "1", "ACTIVE", "", ""))
	_, err := svc.GenerateDates(1, "2026-01-01", "2027-06-01")
	if !domain.IsValidation(err) || !strings.Contains(err.Error(), "rentang maksimal satu tahun") {
		t.Errorf("rentang lebih dari setahun harus ditolak, err=%v", err)
	}
}

func TestScheduleValidateOneFerryPerRoute(t *testing.T) {
	svc, mock, done := newScheduleService(t)
	defer done()

	mock.ExpectQuery("FROM routes").WillReturnRows(
		routeRows().AddRow(1, "Merak", "Bakauheni", 120, 50000, 25000, 150000, 250000, 350000, "ACTIVE"))
	mock.ExpectQuery("FROM ferries").WillReturnRows(
		ferryRows().AddRow(2, "KMP Jatra II", 100, 30, 20, 5, 5, "ACTIVE"))
	// Route 1 is already served by ferry 1.
	mock.ExpectQuery("SELECT ferry_id FROM schedules").WillReturnRows(
		sqlmock.NewRows([]string{"ferry_id"}).AddRow(1))

	_, err := svc.Create(ScheduleInput{
		RouteID:       1,
		FerryID:       2,
		DepartureTime: "08:00",
		ArrivalTime:   "10:00",
		Days:          mustDays(t, "1,3"),
	})
	if err == nil || !strings.Contains(err.Error(), "rute sudah dilayani kapal 1") {
		t.Errorf("rute ganda harus ditolak, err=%v", err)
	}
}

func TestScheduleCreateRejectsConflict(t *testing.T) {
	svc, mock, done := newScheduleService(t)
	defer done()

	mock.ExpectQuery("FROM routes").WillReturnRows(
		routeRows().AddRow(1, "Merak", "Bakauheni", 120, 50000, 25000, 150000, 250000, 350000, "ACTIVE"))
	mock.ExpectQuery("FROM ferries").WillReturnRows(
		ferryRows().AddRow(1, "KMP Jatra I", 100, 30, 20, 5, 5, "ACTIVE"))
	mock.ExpectQuery("SELECT ferry_id FROM schedules").WillReturnRows(
		sqlmock.NewRows([]string{"ferry_id"}))
	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().AddRow(7, 2, 1, "08:00", "10:00", "1,3", "ACTIVE", "", ""))

	_, err := svc.Create(ScheduleInput{
		RouteID:       1,
		FerryID:       1,
		DepartureTime: "09:00",
		ArrivalTime:   "11:00",
		Days:          mustDays(t, "3,5"),
	})
	if err == nil {
		t.Fatal("jadwal bentrok harus ditolak")
	}
	if !strings.Contains(err.Error(), "jadwal bentrok dengan jadwal lain pada kapal yang sama") {
		t.Errorf("pesan salah: %v", err)
	}
	fields := domain.FieldErrors(err)
	if len(fields["schedule_conflicts"]) != 1 {
		t.Errorf("field errors = %+v", fields)
	}
}
