package models

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Payment holds the UPI instructions shown to the renter.
type Payment struct {
	UPIID  string  `json:"upi_id"`
	Amount float64 `json:"amount"`
}

// Booking represents a machine rental request.
type Booking struct {
	ID         string    `json:"id"`
	MachineID  string    `json:"machine_id"`
	UserID     string    `json:"user_id"`
	StartDate  time.Time `json:"start_date"`
	Days       int       `json:"days"`
	DailyRate  float64   `json:"daily_rate"`  // Rates at the time of booking
	WeeklyRate float64   `json:"weekly_rate"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	Payment    Payment   `json:"payment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
