package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"farmconnect/internal/models"

	"github.com/google/uuid"
)

// MemoryBookingRepository is an in-memory implementation of BookingRepository.
type MemoryBookingRepository struct {
	bookings map[string]models.Booking
	mu       sync.RWMutex
}

// NewMemoryBookingRepository creates a new instance of MemoryBookingRepository.
func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		bookings: make(map[string]models.Booking),
	}
}

// GetAll returns all bookings, oldest first.
func (r *MemoryBookingRepository) GetAll() ([]models.Booking, error) {
	return r.collect(func(models.Booking) bool { return true }), nil
}

// GetByUser returns the bookings made by a user, oldest first.
func (r *MemoryBookingRepository) GetByUser(userID string) ([]models.Booking, error) {
	return r.collect(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (r *MemoryBookingRepository) collect(keep func(models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if keep(b) {
			list = append(list, b)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// GetByID returns a booking by its ID.
func (r *MemoryBookingRepository) GetByID(id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking with ID %s %w", id, ErrNotFound)
	}
	return &booking, nil
}

// Create adds a new booking.
func (r *MemoryBookingRepository) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if _, exists := r.bookings[booking.ID]; exists {
		return fmt.Errorf("booking with ID %s %w", booking.ID, ErrDuplicate)
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.bookings[booking.ID] = *booking
	return nil
}

// UpdateStatus updates the status of a booking.
func (r *MemoryBookingRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking with ID %s %w for status update", id, ErrNotFound)
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	r.bookings[id] = booking
	return nil
}
