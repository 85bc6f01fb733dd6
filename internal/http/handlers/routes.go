package handlers

import (
	"net/http"
	"strconv"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"

	"github.com/gin-gonic/gin"
)

type routeRequest struct {
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	DurationMinutes int    `json:"duration_minutes"`
	BasePrice       int64  `json:"base_price"`
	MotorcyclePrice int64  `json:"motorcycle_price"`
	CarPrice        int64  `json:"car_price"`
	BusPrice        int64  `json:"bus_price"`
	TruckPrice      int64  `json:"truck_price"`
	Status          string `json:"status"`
}

func (r routeRequest) validate() error {
	if r.Origin == "" || r.Destination == "" {
		return domain.ValidationError{Field: "origin", Msg: "asal dan tujuan wajib diisi"}
	}
	if r.BasePrice <= 0 {
		return domain.ValidationError{Field: "base_price", Msg: "harga dasar harus lebih dari nol"}
	}
	return nil
}

func (r routeRequest) toModel() models.Route {
	status := domain.ScheduleStatus(r.Status)
	if status == "" {
		status = domain.ScheduleActive
	}
	return models.Route{
		Origin:          r.Origin,
		Destination:     r.Destination,
		DurationMinutes: r.DurationMinutes,
		BasePrice:       r.BasePrice,
		MotorcyclePrice: r.MotorcyclePrice,
		CarPrice:        r.CarPrice,
		BusPrice:        r.BusPrice,
		TruckPrice:      r.TruckPrice,
		Status:          status,
	}
}

// GET /api/routes
func GetRoutes(c *gin.Context) {
	routes, err := repositories.RouteRepo{}.List()
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	Respond(c, http.StatusOK, "daftar rute", routes)
}

// GET /api/routes/:id
func GetRouteByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id rute tidak valid")
		return
	}
	route, err := repositories.RouteRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "detail rute", route)
}

// POST /api/admin/routes
func CreateRoute(c *gin.Context) {
	var req routeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	route := req.toModel()
	id, err := repositories.RouteRepo{}.Create(route)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	route.ID = id
	Respond(c, http.StatusCreated, "rute dibuat", route)
}

// PUT /api/admin/routes/:id
func UpdateRoute(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id rute tidak valid")
		return
	}
	repo := repositories.RouteRepo{}
	if _, err := repo.GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	var req routeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	route := req.toModel()
	route.ID = id
	if err := repo.Update(route); err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	Respond(c, http.StatusOK, "rute diperbarui", route)
}
