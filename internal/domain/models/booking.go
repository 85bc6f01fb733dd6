package models

import (
	"time"

	"ferryops/internal/domain"
)

// Booking is the aggregate root for tickets, vehicles, payments and logs.
type Booking struct {
	ID                 int64                `json:"id"`
	Code               string               `json:"code"`
	UserID             int64                `json:"user_id"`
	ScheduleID         int64                `json:"schedule_id"`
	Date               string               `json:"date"` // departure date "YYYY-MM-DD"
	PassengerCount     int                  `json:"passenger_count"`
	Vehicles           VehicleCounts        `json:"vehicles"`
	Amount             int64                `json:"amount"`
	Status             domain.BookingStatus `json:"status"`
	CancellationReason string               `json:"cancellation_reason"`
	Notes              string               `json:"notes"`
	CreatedBy          string               `json:"created_by"`
	CreatedAt          time.Time            `json:"created_at"`
}

type Ticket struct {
	ID                int64               `json:"id"`
	Code              string              `json:"code"`
	QRToken           string              `json:"qr_token"`
	BookingID         int64               `json:"booking_id"`
	PassengerName     string              `json:"passenger_name"`
	PassengerIDNumber string              `json:"passenger_id_number"`
	Status            domain.TicketStatus `json:"status"`
	CheckedIn         bool                `json:"checked_in"`
	BoardingAt        *time.Time          `json:"boarding_at"`
}

type Vehicle struct {
	ID          int64              `json:"id"`
	BookingID   int64              `json:"booking_id"`
	Type        domain.VehicleType `json:"type"`
	PlateNumber string             `json:"plate_number"`
	OwnerName   string             `json:"owner_name"`
}

// BookingLog is one append-only audit row per status transition.
type BookingLog struct {
	ID             int64                `json:"id"`
	BookingID      int64                `json:"booking_id"`
	PreviousStatus domain.BookingStatus `json:"previous_status"`
	NewStatus      domain.BookingStatus `json:"new_status"`
	ChangedByType  domain.ActorType     `json:"changed_by_type"`
	ChangedByID    int64                `json:"changed_by_id"`
	Notes          string               `json:"notes"`
	CreatedAt      time.Time            `json:"created_at"`
}

// PassengerInput is the per-passenger payload on booking creation.
type PassengerInput struct {
	Name     string `json:"name"`
	IDNumber string `json:"id_number"`
}

// VehicleInput is the per-vehicle payload on booking creation.
type VehicleInput struct {
	Type        string `json:"type"`
	PlateNumber string `json:"plate_number"`
	OwnerName   string `json:"owner_name"`
}
