package services

import (
	"fmt"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"
)

// ConflictService detects day/time overlaps between schedules on one ferry.
type ConflictService struct {
	ScheduleRepo repositories.ScheduleRepo
}

// ScheduleConflict describes one overlap for the 422 payload.
type ScheduleConflict struct {
	ScheduleID int64    `json:"schedule_id"`
	Days       []string `json:"days"`
	Reason     string   `json:"reason"`
}

// Check scans ACTIVE schedules of the ferry for overlap with the candidate
// window. excludeID skips the schedule being updated.
func (s ConflictService) Check(ferryID int64, days domain.DaySet, departure, arrival string, excludeID int64) ([]ScheduleConflict, error) {
	start, end, err := clockWindow(departure, arrival)
	if err != nil {
		return nil, domain.ValidationError{Field: "departure_time", Msg: err.Error()}
	}

	existing, err := s.ScheduleRepo.ListActiveByFerry(ferryID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	conflicts := []ScheduleConflict{}
	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		shared := days.Intersect(other.Days)
		if shared.IsEmpty() {
			continue
		}
		oStart, oEnd, err := clockWindow(other.DepartureTime, other.ArrivalTime)
		if err != nil {
			return nil, domain.InternalError{Msg: fmt.Sprintf("jadwal %d memiliki jam rusak", other.ID), Err: err}
		}
		reason, overlap := overlapReason(start, end, oStart, oEnd, other)
		if !overlap {
			continue
		}
		conflicts = append(conflicts, ScheduleConflict{
			ScheduleID: other.ID,
			Days:       shared.Names(),
			Reason:     reason,
		})
	}
	return conflicts, nil
}

// clockWindow converts an HH:MM pair to minutes since midnight. An arrival
// at or before the departure is an overnight crossing and rolls into the
// next day. Windows are compared within one service day only: a crossing
// that rolled past midnight is not matched against the next day's
// early-morning windows.
func clockWindow(departure, arrival string) (int, int, error) {
	start, err := utils.ParseClock(departure)
	if err != nil {
		return 0, 0, err
	}
	end, err := utils.ParseClock(arrival)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		end += 24 * 60
	}
	return start, end, nil
}

// overlapReason checks the five overlap cases explicitly so each conflict
// carries a distinct human-readable description.
func overlapReason(start, end, oStart, oEnd int, other models.Schedule) (string, bool) {
	switch {
	case start == oStart && end == oEnd:
		return fmt.Sprintf("jam berlayar sama persis dengan jadwal #%d (%s-%s)",
			other.ID, other.DepartureTime, other.ArrivalTime), true
	case start <= oStart && end >= oEnd:
		return fmt.Sprintf("jadwal baru menelan seluruh pelayaran jadwal #%d (%s-%s)",
			other.ID, other.DepartureTime, other.ArrivalTime), true
	case oStart <= start && oEnd >= end:
		return fmt.Sprintf("jadwal baru berada di dalam pelayaran jadwal #%d (%s-%s)",
			other.ID, other.DepartureTime, other.ArrivalTime), true
	case start > oStart && start < oEnd:
		return fmt.Sprintf("jam berangkat berada di tengah pelayaran jadwal #%d (%s-%s)",
			other.ID, other.DepartureTime, other.ArrivalTime), true
	case end > oStart && end < oEnd:
		return fmt.Sprintf("jam tiba berada di tengah pelayaran jadwal #%d (%s-%s)",
			other.ID, other.DepartureTime, other.ArrivalTime), true
	}
	return "", false
}
