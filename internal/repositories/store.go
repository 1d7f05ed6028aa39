package repositories

import (
	"fmt"

	"farmconnect/internal/models"

	"gorm.io/gorm"
)

// Store bundles the repositories the application runs on.
type Store struct {
	Products ProductRepository
	Machines MachineRepository
	Bookings BookingRepository
	Users    UserRepository
}

// NewMemoryStore returns a store that keeps everything in process memory.
func NewMemoryStore() *Store {
	return &Store{
		Products: NewMemoryProductRepository(),
		Machines: NewMemoryMachineRepository(),
		Bookings: NewMemoryBookingRepository(),
		Users:    NewMemoryUserRepository(),
	}
}

// NewGORMStore migrates the schema and returns a store backed by db.
func NewGORMStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.Product{}, &models.Machine{}, &models.User{}, BookingTable()); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{
		Products: NewGORMProductRepository(db),
		Machines: NewGORMMachineRepository(db),
		Bookings: NewGORMBookingRepository(db),
		Users:    NewGORMUserRepository(db),
	}, nil
}
