package repositories

import "farmconnect/internal/models"

// MachineRepository defines the interface for rental machine access.
// GetAll returns machines in insertion order.
type MachineRepository interface {
	GetAll() ([]models.Machine, error)
	GetByID(id string) (*models.Machine, error)
	Create(machine *models.Machine) error
}
