package handlers

import (
	"net/http"
	"strings"

	"ferryops/internal/http/middleware"
	"ferryops/internal/repositories"
	"ferryops/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/tickets/:key
func GetTicket(c *gin.Context) {
	svc := services.TicketService{
		TicketRepo:  repositories.TicketRepo{},
		BookingRepo: repositories.BookingRepo{},
	}
	ticket, err := svc.Get(strings.TrimSpace(c.Param("key")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "detail tiket", ticket)
}

// POST /api/admin/tickets/:key/check-in
func CheckInTicket(c *gin.Context) {
	svc := services.TicketService{
		TicketRepo:  repositories.TicketRepo{},
		BookingRepo: repositories.BookingRepo{},
		RequestID:   middleware.GetRequestID(c),
	}
	ticket, err := svc.CheckIn(strings.TrimSpace(c.Param("key")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "penumpang berhasil check-in", ticket)
}

// GET /api/tickets/:key/e-ticket returns the printable PDF (inline).
func GetTicketPDF(c *gin.Context) {
	svc := services.DocsService{
		TicketRepo:   repositories.TicketRepo{},
		BookingRepo:  repositories.BookingRepo{},
		ScheduleRepo: repositories.ScheduleRepo{},
		RouteRepo:    repositories.RouteRepo{},
		FerryRepo:    repositories.FerryRepo{},
		RequestID:    middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateETicket(strings.TrimSpace(c.Param("key")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
