package repositories

import (
	"farmconnect/internal/models"
)

// BookingRepository defines the interface for rental booking access.
type BookingRepository interface {
	GetAll() ([]models.Booking, error)
	GetByUser(userID string) ([]models.Booking, error)
	GetByID(id string) (*models.Booking, error)
	Create(booking *models.Booking) error
	UpdateStatus(id string, status string) error
}
