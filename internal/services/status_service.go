package services

import (
	"database/sql"
	"fmt"

	intconfig "ferryops/internal/config"
	intdb "ferryops/internal/db"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"
)

// StatusService guards booking status transitions and applies their side
// effects. Every transition, side effects or not, writes one audit log row.
type StatusService struct {
	DB *sql.DB

	BookingRepo      repositories.BookingRepo
	TicketRepo       repositories.TicketRepo
	PaymentRepo      repositories.PaymentRepo
	BookingLogRepo   repositories.BookingLogRepo
	ScheduleRepo     repositories.ScheduleRepo
	FerryRepo        repositories.FerryRepo
	ScheduleDateRepo repositories.ScheduleDateRepo
}

func (s StatusService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type TransitionInput struct {
	BookingID int64
	To        domain.BookingStatus
	Reason    string
	Notes     string
	ActorType domain.ActorType
	ActorID   int64
}

// Transition moves a booking along the allowed-transition table.
func (s StatusService) Transition(in TransitionInput) (models.Booking, error) {
	if !in.To.IsValid() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("status %q tidak dikenal", in.To)}
	}

	var out models.Booking
	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		booking, err := s.BookingRepo.LockByID(tx, in.BookingID)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(in.To) {
			return domain.ValidationError{
				Field: "status",
				Msg:   fmt.Sprintf("transisi %s ke %s tidak diizinkan", booking.Status, in.To),
			}
		}

		switch in.To {
		case domain.BookingCancelled:
			if err := s.applyCancellation(tx, booking); err != nil {
				return err
			}
		case domain.BookingCompleted:
			if err := s.TicketRepo.UpdateStatusByBooking(tx, booking.ID, domain.TicketUsed); err != nil {
				return domain.InternalError{Err: err}
			}
		case domain.BookingConfirmed:
			if payment, ok, err := s.PaymentRepo.FindPending(tx, booking.ID); err != nil {
				return domain.InternalError{Err: err}
			} else if ok {
				if err := s.PaymentRepo.UpdateStatus(tx, payment.ID, domain.PaymentSuccess, true); err != nil {
					return domain.InternalError{Err: err}
				}
			}
		}

		if err := s.BookingRepo.UpdateStatus(tx, booking.ID, in.To, in.Reason, in.Notes); err != nil {
			return domain.InternalError{Err: err}
		}

		if err := s.BookingLogRepo.Insert(tx, models.BookingLog{
			BookingID:      booking.ID,
			PreviousStatus: booking.Status,
			NewStatus:      in.To,
			ChangedByType:  in.ActorType,
			ChangedByID:    in.ActorID,
			Notes:          in.Notes,
		}); err != nil {
			return domain.InternalError{Err: err}
		}

		booking.Status = in.To
		if in.Reason != "" {
			booking.CancellationReason = in.Reason
		}
		out = booking
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	return out, nil
}

// applyCancellation cascades tickets, releases ledger counts and fails any
// open payment. Capacity was reserved while the booking was PENDING or
// CONFIRMED; later cancellations (refund path) must not release twice.
func (s StatusService) applyCancellation(tx *sql.Tx, booking models.Booking) error {
	if err := s.TicketRepo.UpdateStatusByBooking(tx, booking.ID, domain.TicketCancelled); err != nil {
		return domain.InternalError{Err: err}
	}

	if booking.Status == domain.BookingPending || booking.Status == domain.BookingConfirmed {
		if err := s.releaseLedger(tx, booking); err != nil {
			return err
		}
	}

	if payment, ok, err := s.PaymentRepo.FindPending(tx, booking.ID); err != nil {
		return domain.InternalError{Err: err}
	} else if ok {
		if err := s.PaymentRepo.UpdateStatus(tx, payment.ID, domain.PaymentFailed, false); err != nil {
			return domain.InternalError{Err: err}
		}
	}
	return nil
}

// releaseLedger subtracts the booking's counts from its ledger row (zero
// floored) and reopens a FULL row.
func (s StatusService) releaseLedger(tx *sql.Tx, booking models.Booking) error {
	ledger, found, err := s.ScheduleDateRepo.Lock(tx, booking.ScheduleID, booking.Date)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !found {
		// Ledger row was never created; nothing to release.
		return nil
	}
	if err := s.ScheduleDateRepo.SubtractCounts(tx, ledger.ID, booking.PassengerCount, booking.Vehicles); err != nil {
		return domain.InternalError{Err: err}
	}
	if ledger.Status == domain.DateFull {
		if err := s.ScheduleDateRepo.UpdateStatus(tx, ledger.ID, domain.DateAvailable, ledger.StatusSource, "", ""); err != nil {
			return domain.InternalError{Err: err}
		}
	}
	return nil
}
