package services

import (
	"context"
	"fmt"
	"strings"

	"ferryops/internal/domain"
	"ferryops/internal/gateway"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"
)

// SweepService runs the periodic housekeeping passes: expire unpaid bookings,
// expire stale tickets, close departed ledger rows, reopen expired INACTIVE
// windows and reconcile pending online payments with the gateway. Every pass
// is idempotent; running it twice changes nothing.
type SweepService struct {
	Status  StatusService
	Gateway gateway.Client

	BookingRepo      repositories.BookingRepo
	TicketRepo       repositories.TicketRepo
	PaymentRepo      repositories.PaymentRepo
	ScheduleRepo     repositories.ScheduleRepo
	ScheduleDateRepo repositories.ScheduleDateRepo
}

// Run executes all passes; a failing pass is logged and does not stop the rest.
func (s SweepService) Run(ctx context.Context) {
	if err := s.ExpirePendingBookings(); err != nil {
		utils.LogEvent("", "sweep", "expire_bookings_error", err.Error())
	}
	if err := s.ExpireTickets(); err != nil {
		utils.LogEvent("", "sweep", "expire_tickets_error", err.Error())
	}
	if err := s.MarkDepartedDates(); err != nil {
		utils.LogEvent("", "sweep", "mark_departed_error", err.Error())
	}
	if err := s.ReactivateExpired(); err != nil {
		utils.LogEvent("", "sweep", "reactivate_error", err.Error())
	}
	if err := s.PollPayments(ctx); err != nil {
		utils.LogEvent("", "sweep", "poll_payments_error", err.Error())
	}
}

// ExpirePendingBookings cancels PENDING bookings whose payment window closed.
// Cancellation goes through the transition guard so tickets, ledger and the
// open payment are released the same way a manual cancel would.
func (s SweepService) ExpirePendingBookings() error {
	bookings, err := s.BookingRepo.ListExpiredPending()
	if err != nil {
		return err
	}
	for _, b := range bookings {
		_, err := s.Status.Transition(TransitionInput{
			BookingID: b.ID,
			To:        domain.BookingCancelled,
			Reason:    "pembayaran kedaluwarsa",
			Notes:     "dibatalkan otomatis: batas waktu pembayaran terlewati",
			ActorType: domain.ActorSystem,
		})
		if err != nil {
			utils.LogEvent("", "sweep", "expire_booking_skip", fmt.Sprintf("booking=%s err=%v", b.Code, err))
			continue
		}
		utils.LogEvent("", "sweep", "expire_booking", fmt.Sprintf("booking=%s", b.Code))
	}
	return nil
}

// ExpireTickets marks ACTIVE tickets of past departures EXPIRED.
func (s SweepService) ExpireTickets() error {
	n, err := s.TicketRepo.ExpirePast()
	if err != nil {
		return err
	}
	if n > 0 {
		utils.LogEvent("", "sweep", "expire_tickets", fmt.Sprintf("count=%d", n))
	}
	return nil
}

// MarkDepartedDates closes ledger rows whose sailing date already passed.
func (s SweepService) MarkDepartedDates() error {
	rows, err := s.ScheduleDateRepo.ListPastActive()
	if err != nil {
		return err
	}
	for _, sd := range rows {
		if err := s.ScheduleDateRepo.UpdateStatus(s.Status.db(), sd.ID, domain.DateDeparted, sd.StatusSource, "", ""); err != nil {
			return err
		}
	}
	if len(rows) > 0 {
		utils.LogEvent("", "sweep", "mark_departed", fmt.Sprintf("count=%d", len(rows)))
	}
	return nil
}

// ReactivateExpired reopens schedules and ledger rows whose temporary
// INACTIVE window ended. Rows pinned MANUAL by an operator stay closed until
// the operator reopens them.
func (s SweepService) ReactivateExpired() error {
	schedules, err := s.ScheduleRepo.ListExpiredInactive()
	if err != nil {
		return err
	}
	for _, sched := range schedules {
		if err := s.ScheduleRepo.UpdateStatus(sched.ID, domain.ScheduleActive, "", ""); err != nil {
			return err
		}
		utils.LogEvent("", "sweep", "reactivate_schedule", fmt.Sprintf("schedule=%d", sched.ID))
	}

	dates, err := s.ScheduleDateRepo.ListExpiredInactive()
	if err != nil {
		return err
	}
	for _, sd := range dates {
		if sd.StatusSource == domain.SourceManual {
			continue
		}
		if err := s.ScheduleDateRepo.UpdateStatus(s.Status.db(), sd.ID, domain.DateAvailable, domain.SourceInherited, "", ""); err != nil {
			return err
		}
		utils.LogEvent("", "sweep", "reactivate_date", fmt.Sprintf("schedule=%d date=%s", sd.ScheduleID, sd.Date))
	}
	return nil
}

// PollPayments asks the gateway about every PENDING online payment and applies
// the settled/expired outcome through the transition guard.
func (s SweepService) PollPayments(ctx context.Context) error {
	if s.Gateway == nil {
		return nil
	}
	payments, err := s.PaymentRepo.ListPendingNonCash()
	if err != nil {
		return err
	}
	for _, p := range payments {
		booking, err := s.BookingRepo.GetByID(p.BookingID)
		if err != nil {
			utils.LogEvent("", "sweep", "poll_skip", fmt.Sprintf("payment=%d err=%v", p.ID, err))
			continue
		}
		status, err := s.Gateway.CheckTransaction(ctx, booking.Code)
		if err != nil {
			utils.LogEvent("", "sweep", "poll_error", fmt.Sprintf("booking=%s err=%v", booking.Code, err))
			continue
		}

		switch strings.ToLower(status.Status) {
		case "settlement", "capture":
			if booking.Status != domain.BookingPending {
				continue
			}
			if _, err := s.Status.Transition(TransitionInput{
				BookingID: booking.ID,
				To:        domain.BookingConfirmed,
				Notes:     "pembayaran terverifikasi dari gateway",
				ActorType: domain.ActorSystem,
			}); err != nil {
				utils.LogEvent("", "sweep", "poll_confirm_error", fmt.Sprintf("booking=%s err=%v", booking.Code, err))
				continue
			}
			utils.LogEvent("", "sweep", "poll_confirm", fmt.Sprintf("booking=%s", booking.Code))
		case "expire", "cancel", "deny":
			if booking.Status != domain.BookingPending {
				continue
			}
			if _, err := s.Status.Transition(TransitionInput{
				BookingID: booking.ID,
				To:        domain.BookingCancelled,
				Reason:    "pembayaran " + strings.ToLower(status.Status) + " di gateway",
				Notes:     "dibatalkan otomatis dari status gateway",
				ActorType: domain.ActorSystem,
			}); err != nil {
				utils.LogEvent("", "sweep", "poll_cancel_error", fmt.Sprintf("booking=%s err=%v", booking.Code, err))
				continue
			}
			utils.LogEvent("", "sweep", "poll_cancel", fmt.Sprintf("booking=%s", booking.Code))
		}
	}
	return nil
}
