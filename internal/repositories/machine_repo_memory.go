package repositories

import (
	"fmt"
	"sync"
	"time"

	"farmconnect/internal/models"

	"github.com/google/uuid"
)

// MemoryMachineRepository is an in-memory implementation of MachineRepository.
type MemoryMachineRepository struct {
	machines map[string]models.Machine
	order    []string
	mu       sync.RWMutex
}

// NewMemoryMachineRepository creates a new instance of MemoryMachineRepository.
func NewMemoryMachineRepository() *MemoryMachineRepository {
	return &MemoryMachineRepository{
		machines: make(map[string]models.Machine),
	}
}

// GetAll returns all machines in insertion order.
func (r *MemoryMachineRepository) GetAll() ([]models.Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Machine, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.machines[id])
	}
	return list, nil
}

// GetByID returns a machine by its ID.
func (r *MemoryMachineRepository) GetByID(id string) (*models.Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	machine, ok := r.machines[id]
	if !ok {
		return nil, fmt.Errorf("machine with ID %s %w", id, ErrNotFound)
	}
	return &machine, nil
}

// Create adds a machine at the end of the catalog.
func (r *MemoryMachineRepository) Create(machine *models.Machine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if machine.ID == "" {
		machine.ID = uuid.New().String()
	}
	if _, exists := r.machines[machine.ID]; exists {
		return fmt.Errorf("machine with ID %s %w", machine.ID, ErrDuplicate)
	}
	now := time.Now()
	machine.Position = len(r.order) + 1
	machine.CreatedAt = now
	machine.UpdatedAt = now
	r.machines[machine.ID] = *machine
	r.order = append(r.order, machine.ID)
	return nil
}
