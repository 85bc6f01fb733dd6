package models

import (
	"time"

	"ferryops/internal/domain"
)

type Payment struct {
	ID         int64                `json:"id"`
	BookingID  int64                `json:"booking_id"`
	ExternalID string               `json:"external_id"`
	Amount     int64                `json:"amount"`
	Method     domain.PaymentMethod `json:"method"`
	Channel    string               `json:"channel"`
	Status     domain.PaymentStatus `json:"status"`
	ExpiryAt   *time.Time           `json:"expiry_at"`
	PaymentAt  *time.Time           `json:"payment_at"`
}

type Refund struct {
	ID            int64               `json:"id"`
	BookingID     int64               `json:"booking_id"`
	PaymentID     int64               `json:"payment_id"`
	Amount        int64               `json:"amount"`
	Reason        string              `json:"reason"`
	Status        domain.RefundStatus `json:"status"`
	RefundMethod  string              `json:"refund_method"`
	TransactionID string              `json:"transaction_id"`
	RefundedBy    string              `json:"refunded_by"`
	CreatedAt     time.Time           `json:"created_at"`
}

// RefundPolicy maps days-before-departure to a refund percentage with an
// optional fee corridor. Evaluated in descending DaysBeforeDeparture order.
type RefundPolicy struct {
	ID                  int64   `json:"id"`
	DaysBeforeDeparture int     `json:"days_before_departure"`
	Percentage          float64 `json:"percentage"`
	MinFee              int64   `json:"min_fee"` // 0 = no floor
	MaxFee              int64   `json:"max_fee"` // 0 = no ceiling
	Description         string  `json:"description"`
	Active              bool    `json:"active"`
}
