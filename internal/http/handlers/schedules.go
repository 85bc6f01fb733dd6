package handlers

import (
	"net/http"
	"strconv"

	"ferryops/internal/domain"
	"ferryops/internal/repositories"
	"ferryops/internal/services"

	"github.com/gin-gonic/gin"
)

func scheduleService() services.ScheduleService {
	return services.ScheduleService{
		ScheduleRepo:     repositories.ScheduleRepo{},
		ScheduleDateRepo: repositories.ScheduleDateRepo{},
		RouteRepo:        repositories.RouteRepo{},
		FerryRepo:        repositories.FerryRepo{},
		Conflicts:        services.ConflictService{ScheduleRepo: repositories.ScheduleRepo{}},
	}
}

type scheduleRequest struct {
	RouteID       int64         `json:"route_id"`
	FerryID       int64         `json:"ferry_id"`
	DepartureTime string        `json:"departure_time"`
	ArrivalTime   string        `json:"arrival_time"`
	Days          domain.DaySet `json:"days"`
	Status        string        `json:"status"`
}

func (r scheduleRequest) toInput() services.ScheduleInput {
	return services.ScheduleInput{
		RouteID:       r.RouteID,
		FerryID:       r.FerryID,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		Days:          r.Days,
		Status:        domain.ScheduleStatus(r.Status),
	}
}

// GET /api/schedules
func GetSchedules(c *gin.Context) {
	schedules, err := repositories.ScheduleRepo{}.List()
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	Respond(c, http.StatusOK, "daftar jadwal", schedules)
}

// GET /api/schedules/:id
func GetScheduleByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id jadwal tidak valid")
		return
	}
	sched, err := repositories.ScheduleRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "detail jadwal", sched)
}

// POST /api/admin/schedules
func CreateSchedule(c *gin.Context) {
	var req scheduleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sched, err := scheduleService().Create(req.toInput())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "jadwal dibuat", sched)
}

// PUT /api/admin/schedules/:id
func UpdateSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id jadwal tidak valid")
		return
	}
	var req scheduleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sched, err := scheduleService().Update(id, req.toInput())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "jadwal diperbarui", sched)
}

type scheduleStatusRequest struct {
	Status           string `json:"status"`
	Reason           string `json:"reason"`
	StatusExpiryDate string `json:"status_expiry_date"`
}

// PATCH /api/admin/schedules/:id/status
func UpdateScheduleStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id jadwal tidak valid")
		return
	}
	var req scheduleStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status := domain.ScheduleStatus(req.Status)
	if status != domain.ScheduleActive && status != domain.ScheduleInactive {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "status harus ACTIVE atau INACTIVE"})
		return
	}
	if err := scheduleService().UpdateStatus(id, status, req.Reason, req.StatusExpiryDate); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "status jadwal diperbarui", gin.H{"id": id, "status": status})
}

type generateDatesRequest struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

// POST /api/admin/schedules/:id/dates
func GenerateScheduleDates(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id jadwal tidak valid")
		return
	}
	var req generateDatesRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	created, err := scheduleService().GenerateDates(id, req.DateFrom, req.DateTo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "tanggal jadwal dibuat", gin.H{
		"created": len(created),
		"dates":   created,
	})
}

// GET /api/schedules/:id/dates
func GetScheduleDates(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id jadwal tidak valid")
		return
	}
	dates, err := repositories.ScheduleDateRepo{}.ListBySchedule(id, c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	Respond(c, http.StatusOK, "daftar tanggal jadwal", dates)
}

type dateStatusRequest struct {
	Status           string `json:"status"`
	Reason           string `json:"reason"`
	StatusExpiryDate string `json:"status_expiry_date"`
}

// PATCH /api/admin/schedule-dates/:id/status
func UpdateScheduleDateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tanggal jadwal tidak valid")
		return
	}
	var req dateStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sd, err := scheduleService().UpdateDateStatus(id, domain.ScheduleDateStatus(req.Status), req.Reason, req.StatusExpiryDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "status tanggal jadwal diperbarui", sd)
}

// GET /api/schedules/:id/availability?date=YYYY-MM-DD
func GetAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id jadwal tidak valid")
		return
	}
	date := c.Query("date")
	if date == "" {
		RespondDomainError(c, domain.ValidationError{Field: "date", Msg: "parameter date wajib diisi"})
		return
	}
	svc := services.CapacityService{
		ScheduleRepo:     repositories.ScheduleRepo{},
		FerryRepo:        repositories.FerryRepo{},
		ScheduleDateRepo: repositories.ScheduleDateRepo{},
	}
	avail, err := svc.For(id, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "ketersediaan kapasitas", avail)
}
