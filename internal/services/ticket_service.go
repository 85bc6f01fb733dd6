package services

import (
	"fmt"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"
)

// TicketService handles boarding: resolve a ticket by code or QR token and
// check the passenger in.
type TicketService struct {
	TicketRepo  repositories.TicketRepo
	BookingRepo repositories.BookingRepo
	RequestID   string
}

func (s TicketService) Get(key string) (models.Ticket, error) {
	return s.TicketRepo.GetByCodeOrToken(key)
}

// CheckIn validates and stamps boarding for one ticket. A ticket boards only
// on its departure date while the booking is CONFIRMED.
func (s TicketService) CheckIn(key string) (models.Ticket, error) {
	ticket, err := s.TicketRepo.GetByCodeOrToken(key)
	if err != nil {
		return models.Ticket{}, err
	}
	if ticket.Status != domain.TicketActive {
		return models.Ticket{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("tiket berstatus %s, tidak bisa check-in", ticket.Status),
		}
	}
	if ticket.CheckedIn {
		return models.Ticket{}, domain.ValidationError{Field: "status", Msg: "tiket sudah check-in"}
	}

	booking, err := s.BookingRepo.GetByID(ticket.BookingID)
	if err != nil {
		return models.Ticket{}, err
	}
	if booking.Status != domain.BookingConfirmed {
		return models.Ticket{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("booking berstatus %s, hanya CONFIRMED yang bisa boarding", booking.Status),
		}
	}
	depDate, err := utils.ParseDate(booking.Date)
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	if utils.DaysUntil(depDate) != 0 {
		return models.Ticket{}, domain.ValidationError{
			Field: "date",
			Msg:   fmt.Sprintf("check-in hanya pada tanggal keberangkatan (%s)", booking.Date),
		}
	}

	if err := s.TicketRepo.CheckIn(ticket.ID); err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "ticket", "check_in", fmt.Sprintf("ticket=%s booking=%s", ticket.Code, booking.Code))

	return s.TicketRepo.GetByID(ticket.ID)
}
