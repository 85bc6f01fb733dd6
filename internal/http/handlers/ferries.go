package handlers

import (
	"net/http"
	"strconv"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"

	"github.com/gin-gonic/gin"
)

type ferryRequest struct {
	Name               string `json:"name"`
	CapacityPassenger  int    `json:"capacity_passenger"`
	CapacityMotorcycle int    `json:"capacity_motorcycle"`
	CapacityCar        int    `json:"capacity_car"`
	CapacityBus        int    `json:"capacity_bus"`
	CapacityTruck      int    `json:"capacity_truck"`
	Status             string `json:"status"`
}

func (r ferryRequest) validate() error {
	if r.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "nama kapal wajib diisi"}
	}
	if r.CapacityPassenger <= 0 {
		return domain.ValidationError{Field: "capacity_passenger", Msg: "kapasitas penumpang harus lebih dari nol"}
	}
	if r.CapacityMotorcycle < 0 || r.CapacityCar < 0 || r.CapacityBus < 0 || r.CapacityTruck < 0 {
		return domain.ValidationError{Field: "capacity_car", Msg: "kapasitas kendaraan tidak boleh negatif"}
	}
	return nil
}

func (r ferryRequest) toModel() models.Ferry {
	status := domain.ScheduleStatus(r.Status)
	if status == "" {
		status = domain.ScheduleActive
	}
	return models.Ferry{
		Name:               r.Name,
		CapacityPassenger:  r.CapacityPassenger,
		CapacityMotorcycle: r.CapacityMotorcycle,
		CapacityCar:        r.CapacityCar,
		CapacityBus:        r.CapacityBus,
		CapacityTruck:      r.CapacityTruck,
		Status:             status,
	}
}

// GET /api/ferries
func GetFerries(c *gin.Context) {
	ferries, err := repositories.FerryRepo{}.List()
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	Respond(c, http.StatusOK, "daftar kapal", ferries)
}

// GET /api/ferries/:id
func GetFerryByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id kapal tidak valid")
		return
	}
	ferry, err := repositories.FerryRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "detail kapal", ferry)
}

// POST /api/admin/ferries
func CreateFerry(c *gin.Context) {
	var req ferryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	ferry := req.toModel()
	id, err := repositories.FerryRepo{}.Create(ferry)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	ferry.ID = id
	Respond(c, http.StatusCreated, "kapal dibuat", ferry)
}

// PUT /api/admin/ferries/:id
func UpdateFerry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id kapal tidak valid")
		return
	}
	repo := repositories.FerryRepo{}
	if _, err := repo.GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	var req ferryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	ferry := req.toModel()
	ferry.ID = id
	if err := repo.Update(ferry); err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	Respond(c, http.StatusOK, "kapal diperbarui", ferry)
}
