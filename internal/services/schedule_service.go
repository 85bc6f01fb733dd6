package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "ferryops/internal/config"
	intdb "ferryops/internal/db"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"
)

// ScheduleService handles schedule administration: conflict-checked
// create/update, date-range generation and date status management.
type ScheduleService struct {
	DB *sql.DB

	ScheduleRepo     repositories.ScheduleRepo
	ScheduleDateRepo repositories.ScheduleDateRepo
	RouteRepo        repositories.RouteRepo
	FerryRepo        repositories.FerryRepo
	Conflicts        ConflictService
}

func (s ScheduleService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type ScheduleInput struct {
	RouteID       int64
	FerryID       int64
	DepartureTime string
	ArrivalTime   string
	Days          domain.DaySet
	Status        domain.ScheduleStatus
}

// validate runs the shared guards: entities exist, one ferry per route, and
// no day/time overlap on the ferry. excludeID skips the schedule under update.
func (s ScheduleService) validate(in ScheduleInput, excludeID int64) error {
	if in.Days.IsEmpty() {
		return domain.ValidationError{Field: "days", Msg: "hari operasional kosong"}
	}
	if _, err := utils.ParseClock(in.DepartureTime); err != nil {
		return domain.ValidationError{Field: "departure_time", Msg: err.Error()}
	}
	if _, err := utils.ParseClock(in.ArrivalTime); err != nil {
		return domain.ValidationError{Field: "arrival_time", Msg: err.Error()}
	}
	if _, err := s.RouteRepo.GetByID(in.RouteID); err != nil {
		return err
	}
	if _, err := s.FerryRepo.GetByID(in.FerryID); err != nil {
		return err
	}

	// One route is served by exactly one ferry at a time.
	servingFerry, err := s.ScheduleRepo.ActiveFerryForRoute(in.RouteID, excludeID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if servingFerry != 0 && servingFerry != in.FerryID {
		return domain.ValidationError{
			Field: "ferry_id",
			Msg:   fmt.Sprintf("rute sudah dilayani kapal %d", servingFerry),
		}
	}

	conflicts, err := s.Conflicts.Check(in.FerryID, in.Days, in.DepartureTime, in.ArrivalTime, excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		msgs := make([]string, 0, len(conflicts))
		for _, c := range conflicts {
			msgs = append(msgs, c.Reason)
		}
		return domain.ValidationErrors{
			Msg:    "jadwal bentrok dengan jadwal lain pada kapal yang sama",
			Fields: map[string][]string{"schedule_conflicts": msgs},
		}
	}
	return nil
}

func (s ScheduleService) Create(in ScheduleInput) (models.Schedule, error) {
	if err := s.validate(in, 0); err != nil {
		return models.Schedule{}, err
	}
	status := in.Status
	if status == "" {
		status = domain.ScheduleActive
	}
	sched := models.Schedule{
		RouteID:       in.RouteID,
		FerryID:       in.FerryID,
		DepartureTime: in.DepartureTime,
		ArrivalTime:   in.ArrivalTime,
		Days:          in.Days,
		Status:        status,
	}
	id, err := s.ScheduleRepo.Create(sched)
	if err != nil {
		return models.Schedule{}, domain.InternalError{Err: err}
	}
	sched.ID = id
	return sched, nil
}

func (s ScheduleService) Update(id int64, in ScheduleInput) (models.Schedule, error) {
	existing, err := s.ScheduleRepo.GetByID(id)
	if err != nil {
		return models.Schedule{}, err
	}
	if err := s.validate(in, id); err != nil {
		return models.Schedule{}, err
	}
	existing.RouteID = in.RouteID
	existing.FerryID = in.FerryID
	existing.DepartureTime = in.DepartureTime
	existing.ArrivalTime = in.ArrivalTime
	existing.Days = in.Days
	if in.Status != "" {
		existing.Status = in.Status
	}
	if err := s.ScheduleRepo.Update(existing); err != nil {
		return models.Schedule{}, domain.InternalError{Err: err}
	}
	return existing, nil
}

// UpdateStatus flips a schedule and cascades INHERITED status to its future
// ledger rows that were not pinned manually by an operator.
func (s ScheduleService) UpdateStatus(id int64, status domain.ScheduleStatus, reason, expiry string) error {
	sched, err := s.ScheduleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if expiry != "" {
		if _, err := utils.ParseDateTime(expiry); err != nil {
			return domain.ValidationError{Field: "status_expiry_date", Msg: "format harus YYYY-MM-DD HH:MM:SS"}
		}
	}

	return intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		if err := s.ScheduleRepo.UpdateStatus(id, status, reason, expiry); err != nil {
			return domain.InternalError{Err: err}
		}

		dateStatus := domain.DateAvailable
		if status == domain.ScheduleInactive {
			dateStatus = domain.DateInactive
		}
		_, err := tx.Exec(`
			UPDATE schedule_dates SET
				status=?, status_source='INHERITED', status_reason=?,
				status_expiry_date=?, updated_at=NOW()
			WHERE schedule_id=? AND date >= CURDATE()
			  AND status_source='INHERITED'
			  AND status NOT IN ('DEPARTED','FULL')`,
			string(dateStatus), intdb.NullIfEmpty(reason), intdb.NullIfEmpty(expiry), sched.ID,
		)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		return nil
	})
}

// GenerateDates creates ledger rows for every operating day in [from, to],
// skipping pairs that already exist. Returns the created rows.
func (s ScheduleService) GenerateDates(scheduleID int64, from, to string) ([]models.ScheduleDate, error) {
	sched, err := s.ScheduleRepo.GetByID(scheduleID)
	if err != nil {
		return nil, err
	}
	start, err := utils.ParseDate(from)
	if err != nil {
		return nil, domain.ValidationError{Field: "date_from", Msg: "format tanggal harus YYYY-MM-DD"}
	}
	end, err := utils.ParseDate(to)
	if err != nil {
		return nil, domain.ValidationError{Field: "date_to", Msg: "format tanggal harus YYYY-MM-DD"}
	}
	if end.Before(start) {
		return nil, domain.ValidationError{Field: "date_to", Msg: "tanggal akhir sebelum tanggal mulai"}
	}
	if end.Sub(start) > 366*24*time.Hour {
		return nil, domain.ValidationError{Field: "date_to", Msg: "rentang maksimal satu tahun"}
	}

	created := []models.ScheduleDate{}
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !sched.Days.Has(domain.ISOWeekday(d)) {
				continue
			}
			dateStr := utils.FormatDate(d)
			if _, found, err := s.ScheduleDateRepo.Lock(tx, scheduleID, dateStr); err != nil {
				return domain.InternalError{Err: err}
			} else if found {
				continue
			}
			sd := models.ScheduleDate{
				ScheduleID:   scheduleID,
				Date:         dateStr,
				Status:       domain.DateAvailable,
				StatusSource: domain.SourceInherited,
			}
			id, err := s.ScheduleDateRepo.Create(tx, sd)
			if err != nil {
				return domain.InternalError{Err: err}
			}
			sd.ID = id
			created = append(created, sd)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateDateStatus sets one ledger row's status directly; the row becomes
// MANUAL so schedule-level cascades leave it alone.
func (s ScheduleService) UpdateDateStatus(dateID int64, status domain.ScheduleDateStatus, reason, expiry string) (models.ScheduleDate, error) {
	if !status.IsValid() {
		return models.ScheduleDate{}, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("status %q tidak dikenal", status)}
	}
	sd, err := s.ScheduleDateRepo.GetByID(dateID)
	if err != nil {
		return models.ScheduleDate{}, err
	}
	if expiry != "" {
		if _, err := utils.ParseDateTime(expiry); err != nil {
			return models.ScheduleDate{}, domain.ValidationError{Field: "status_expiry_date", Msg: "format harus YYYY-MM-DD HH:MM:SS"}
		}
	}
	if err := s.ScheduleDateRepo.UpdateStatus(s.db(), dateID, status, domain.SourceManual, reason, expiry); err != nil {
		return models.ScheduleDate{}, domain.InternalError{Err: err}
	}
	sd.Status = status
	sd.StatusSource = domain.SourceManual
	sd.StatusReason = reason
	sd.StatusExpiryDate = expiry
	return sd, nil
}
