package models

import "time"

// Machine availability states.
const (
	AvailabilityAvailable   = "available"
	AvailabilityBusy        = "busy"
	AvailabilityMaintenance = "maintenance"
)

// Machine represents a piece of farm equipment offered for rent.
type Machine struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name"`
	Type         string    `json:"type" gorm:"index;type:varchar(16)"`
	Description  string    `json:"description"`
	DailyRate    float64   `json:"daily_rate"`
	WeeklyRate   float64   `json:"weekly_rate"`
	Location     string    `json:"location"`
	Owner        string    `json:"owner"`
	Phone        string    `json:"phone"`
	Rating       float64   `json:"rating"`
	TotalRentals int       `json:"total_rentals"`
	Availability string    `json:"availability" gorm:"type:varchar(16)"`
	Features     []string  `json:"features" gorm:"serializer:json"`
	Image        string    `json:"image,omitempty"`
	Position     int       `json:"-" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SearchText returns the fields matched by a catalog search.
func (m Machine) SearchText() (string, string) { return m.Name, m.Description }

// Kind returns the machine type.
func (m Machine) Kind() string { return m.Type }

// Group is always empty: machines are not categorised.
func (m Machine) Group() string { return "" }
