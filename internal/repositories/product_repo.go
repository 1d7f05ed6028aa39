package repositories

import (
	"farmconnect/internal/models"
)

// ProductRepository defines the interface for marketplace listing access.
// GetAll returns listings in insertion order.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
