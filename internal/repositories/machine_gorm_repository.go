package repositories

import (
	"errors"
	"fmt"

	"farmconnect/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMachineRepository is a GORM implementation of MachineRepository.
type GORMMachineRepository struct {
	db *gorm.DB
}

// NewGORMMachineRepository creates a new instance of GORMMachineRepository.
func NewGORMMachineRepository(db *gorm.DB) *GORMMachineRepository {
	return &GORMMachineRepository{db: db}
}

// GetAll retrieves all machines in insertion order.
func (r *GORMMachineRepository) GetAll() ([]models.Machine, error) {
	var machines []models.Machine
	if err := r.db.Order("position asc, created_at asc, id asc").Find(&machines).Error; err != nil {
		return nil, fmt.Errorf("failed to get all machines: %w", err)
	}
	return machines, nil
}

// GetByID retrieves a single machine by its ID.
func (r *GORMMachineRepository) GetByID(id string) (*models.Machine, error) {
	var machine models.Machine
	if err := r.db.First(&machine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("machine with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get machine by ID %s: %w", id, err)
	}
	return &machine, nil
}

// Create appends a machine to the catalog.
func (r *GORMMachineRepository) Create(machine *models.Machine) error {
	if machine.ID == "" {
		machine.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Machine{}).Where("id = ?", machine.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check machine %s: %w", machine.ID, err)
		}
		if count > 0 {
			return fmt.Errorf("machine with ID %s %w", machine.ID, ErrDuplicate)
		}
		position, err := nextPosition(tx, &models.Machine{})
		if err != nil {
			return err
		}
		machine.Position = position
		if err := tx.Create(machine).Error; err != nil {
			return fmt.Errorf("failed to create machine: %w", err)
		}
		return nil
	})
}
