package repositories

import (
	"errors"
	"fmt"
	"time"

	"farmconnect/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// bookingRecord is the table layout of a booking; the payment is flattened
// into payment_* columns.
type bookingRecord struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	MachineID  string `gorm:"index;type:varchar(36)"`
	UserID     string `gorm:"index;type:varchar(36)"`
	StartDate  time.Time
	Days       int
	DailyRate  float64
	WeeklyRate float64
	Total      float64
	Status     string         `gorm:"type:varchar(16)"`
	Payment    models.Payment `gorm:"embedded;embeddedPrefix:payment_"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (bookingRecord) TableName() string { return "bookings" }

func toRecord(b *models.Booking) *bookingRecord {
	rec := bookingRecord(*b)
	return &rec
}

// GORMBookingRepository is a GORM implementation of BookingRepository.
type GORMBookingRepository struct {
	db *gorm.DB
}

// NewGORMBookingRepository creates a new instance of GORMBookingRepository.
func NewGORMBookingRepository(db *gorm.DB) *GORMBookingRepository {
	return &GORMBookingRepository{db: db}
}

// BookingTable is the model to pass to AutoMigrate.
func BookingTable() any { return &bookingRecord{} }

// GetAll returns all bookings, oldest first.
func (r *GORMBookingRepository) GetAll() ([]models.Booking, error) {
	return r.find(r.db)
}

// GetByUser returns the bookings made by a user, oldest first.
func (r *GORMBookingRepository) GetByUser(userID string) ([]models.Booking, error) {
	return r.find(r.db.Where("user_id = ?", userID))
}

func (r *GORMBookingRepository) find(q *gorm.DB) ([]models.Booking, error) {
	var records []bookingRecord
	if err := q.Order("created_at asc, id asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	bookings := make([]models.Booking, 0, len(records))
	for _, rec := range records {
		bookings = append(bookings, models.Booking(rec))
	}
	return bookings, nil
}

// GetByID retrieves a booking by its ID.
func (r *GORMBookingRepository) GetByID(id string) (*models.Booking, error) {
	var rec bookingRecord
	if err := r.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking by ID %s: %w", id, err)
	}
	booking := models.Booking(rec)
	return &booking, nil
}

// Create stores a new booking.
func (r *GORMBookingRepository) Create(booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	rec := toRecord(booking)
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	booking.CreatedAt = rec.CreatedAt
	booking.UpdatedAt = rec.UpdatedAt
	return nil
}

// UpdateStatus updates the status of a booking.
func (r *GORMBookingRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&bookingRecord{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking with ID %s %w for status update", id, ErrNotFound)
	}
	return nil
}
