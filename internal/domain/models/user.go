package models

// User mirrors the auth users table; TotalBookings is the lifetime counter
// incremented on every accepted booking.
type User struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	TotalBookings int    `json:"total_bookings"`
}
