package services

import (
	"bytes"
	"fmt"
	"strings"

	"ferryops/internal/domain"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService menghasilkan PDF e-ticket per penumpang.
type DocsService struct {
	TicketRepo   repositories.TicketRepo
	BookingRepo  repositories.BookingRepo
	ScheduleRepo repositories.ScheduleRepo
	RouteRepo    repositories.RouteRepo
	FerryRepo    repositories.FerryRepo
	RequestID    string
	Loader       func(string) (ticketDocData, error)
}

type ticketDocData struct {
	TicketCode    string
	QRToken       string
	BookingCode   string
	PassengerName string
	IDNumber      string
	Origin        string
	Destination   string
	FerryName     string
	Date          string
	DepartureTime string
	ArrivalTime   string
	Amount        int64
	Status        string
}

func (s DocsService) GenerateETicket(key string) ([]byte, string, error) {
	data, err := s.loadTicketDocData(key)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket=%s", data.TicketCode))
	return buildETicketPDF(data)
}

func (s DocsService) loadTicketDocData(key string) (ticketDocData, error) {
	if s.Loader != nil {
		return s.Loader(key)
	}
	var out ticketDocData

	ticket, err := s.TicketRepo.GetByCodeOrToken(key)
	if err != nil {
		return out, err
	}
	if ticket.Status != domain.TicketActive && ticket.Status != domain.TicketUsed {
		return out, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("tiket berstatus %s, e-ticket tidak tersedia", ticket.Status),
		}
	}
	booking, err := s.BookingRepo.GetByID(ticket.BookingID)
	if err != nil {
		return out, err
	}

	out.TicketCode = ticket.Code
	out.QRToken = ticket.QRToken
	out.BookingCode = booking.Code
	out.PassengerName = ticket.PassengerName
	out.IDNumber = ticket.PassengerIDNumber
	out.Date = booking.Date
	out.Amount = booking.Amount
	out.Status = string(booking.Status)

	if sched, err := s.ScheduleRepo.GetByID(booking.ScheduleID); err == nil {
		out.DepartureTime = sched.DepartureTime
		out.ArrivalTime = sched.ArrivalTime
		if route, err := s.RouteRepo.GetByID(sched.RouteID); err == nil {
			out.Origin = route.Origin
			out.Destination = route.Destination
		}
		if ferry, err := s.FerryRepo.GetByID(sched.FerryID); err == nil {
			out.FerryName = ferry.Name
		}
	}
	return out, nil
}

func buildETicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET PENYEBERANGAN")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Nama Penumpang : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("No Identitas   : %s", safe(d.IDNumber, "-")),
		fmt.Sprintf("Rute           : %s -> %s", safe(d.Origin, "-"), safe(d.Destination, "-")),
		fmt.Sprintf("Kapal          : %s", safe(d.FerryName, "-")),
		fmt.Sprintf("Tanggal        : %s", safe(d.Date, "-")),
		fmt.Sprintf("Jam            : %s - %s", safe(d.DepartureTime, "-"), safe(d.ArrivalTime, "-")),
		fmt.Sprintf("Kode Booking   : %s", safe(d.BookingCode, "-")),
		fmt.Sprintf("Kode Tiket     : %s", safe(d.TicketCode, "-")),
		fmt.Sprintf("Token QR       : %s", safe(d.QRToken, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: E-ticket ini berlaku untuk 1 penumpang. Harap tunjukkan kode tiket atau token QR saat boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", safeFilenamePart(d.BookingCode), safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
