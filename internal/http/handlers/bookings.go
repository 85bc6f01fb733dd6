package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/http/middleware"
	"ferryops/internal/repositories"
	"ferryops/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService() services.BookingService {
	return services.BookingService{
		BookingRepo:      repositories.BookingRepo{},
		TicketRepo:       repositories.TicketRepo{},
		VehicleRepo:      repositories.VehicleRepo{},
		PaymentRepo:      repositories.PaymentRepo{},
		BookingLogRepo:   repositories.BookingLogRepo{},
		UserRepo:         repositories.UserRepo{},
		ScheduleRepo:     repositories.ScheduleRepo{},
		RouteRepo:        repositories.RouteRepo{},
		FerryRepo:        repositories.FerryRepo{},
		ScheduleDateRepo: repositories.ScheduleDateRepo{},
	}
}

func statusService() services.StatusService {
	return services.StatusService{
		BookingRepo:      repositories.BookingRepo{},
		TicketRepo:       repositories.TicketRepo{},
		PaymentRepo:      repositories.PaymentRepo{},
		BookingLogRepo:   repositories.BookingLogRepo{},
		ScheduleRepo:     repositories.ScheduleRepo{},
		FerryRepo:        repositories.FerryRepo{},
		ScheduleDateRepo: repositories.ScheduleDateRepo{},
	}
}

// actorFrom maps the authenticated role to an audit actor type.
func actorFrom(c *gin.Context) (domain.ActorType, int64) {
	role := strings.ToLower(middleware.GetUserRole(c))
	id := middleware.GetUserID(c)
	switch role {
	case "admin", "owner", "operator":
		return domain.ActorAdmin, id
	default:
		return domain.ActorUser, id
	}
}

type createBookingRequest struct {
	ScheduleID int64                   `json:"schedule_id"`
	Date       string                  `json:"date"`
	Passengers []models.PassengerInput `json:"passengers"`
	Vehicles   []models.VehicleInput   `json:"vehicles"`
	Method     string                  `json:"payment_method"`
	Channel    string                  `json:"payment_channel"`
	Notes      string                  `json:"notes"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	actorType, actorID := actorFrom(c)
	detail, err := bookingService().Create(services.CreateBookingInput{
		UserID:     middleware.GetUserID(c),
		ScheduleID: req.ScheduleID,
		Date:       req.Date,
		Passengers: req.Passengers,
		Vehicles:   req.Vehicles,
		Method:     domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.Method))),
		Channel:    req.Channel,
		Notes:      req.Notes,
		ActorType:  actorType,
		ActorID:    actorID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "booking dibuat", detail)
}

// GET /api/bookings/:id
func GetBookingDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id booking tidak valid")
		return
	}
	detail, err := bookingService().Detail(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "detail booking", detail)
}

// GET /api/bookings
func ListBookings(c *gin.Context) {
	filter := repositories.BookingFilter{
		Status:   domain.BookingStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
	if v, err := strconv.ParseInt(c.Query("schedule_id"), 10, 64); err == nil {
		filter.ScheduleID = v
	}
	if v, err := strconv.ParseInt(c.Query("user_id"), 10, 64); err == nil {
		filter.UserID = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = v
	}

	// non-admins only see their own bookings
	if actorType, actorID := actorFrom(c); actorType == domain.ActorUser {
		filter.UserID = actorID
	}

	bookings, err := repositories.BookingRepo{}.List(filter)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	Respond(c, http.StatusOK, "daftar booking", bookings)
}

// GET /api/bookings/:id/logs
func GetBookingLogs(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id booking tidak valid")
		return
	}
	if _, err := (repositories.BookingRepo{}).GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	logs, err := repositories.BookingLogRepo{}.ListByBooking(id)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	Respond(c, http.StatusOK, "riwayat status booking", logs)
}

type statusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// PATCH /api/admin/bookings/:id/status
func UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id booking tidak valid")
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	actorType, actorID := actorFrom(c)
	booking, err := statusService().Transition(services.TransitionInput{
		BookingID: id,
		To:        domain.BookingStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		Reason:    req.Reason,
		Notes:     req.Notes,
		ActorType: actorType,
		ActorID:   actorID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "status booking diperbarui", booking)
}

type rescheduleRequest struct {
	ScheduleID int64  `json:"schedule_id"`
	Date       string `json:"date"`
	Notes      string `json:"notes"`
}

// POST /api/admin/bookings/:id/reschedule
func RescheduleBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id booking tidak valid")
		return
	}
	var req rescheduleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	actorType, actorID := actorFrom(c)
	svc := services.RescheduleService{
		BookingRepo:      repositories.BookingRepo{},
		TicketRepo:       repositories.TicketRepo{},
		VehicleRepo:      repositories.VehicleRepo{},
		PaymentRepo:      repositories.PaymentRepo{},
		BookingLogRepo:   repositories.BookingLogRepo{},
		ScheduleRepo:     repositories.ScheduleRepo{},
		FerryRepo:        repositories.FerryRepo{},
		ScheduleDateRepo: repositories.ScheduleDateRepo{},
	}
	detail, err := svc.Transfer(services.RescheduleInput{
		BookingID:    id,
		ToScheduleID: req.ScheduleID,
		ToDate:       req.Date,
		Notes:        req.Notes,
		ActorType:    actorType,
		ActorID:      actorID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "booking dijadwalkan ulang", detail)
}
