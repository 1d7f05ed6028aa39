package services

import (
	"fmt"
	"time"

	"farmconnect/internal/catalog"
	"farmconnect/internal/models"
	"farmconnect/internal/repositories"
	"farmconnect/internal/viewstate"

	"github.com/google/uuid"
)

// UPIID is the payee every rental is paid to.
const UPIID = "farmconnect@upi"

// MachineTypes lists the machinery types, "all" first.
var MachineTypes = []Option{
	{Value: catalog.All, Label: "All Machinery"},
	{Value: "tractor", Label: "Tractors"},
	{Value: "harvester", Label: "Harvesters"},
	{Value: "tiller", Label: "Tillers"},
	{Value: "pump", Label: "Pumps"},
	{Value: "planter", Label: "Planters"},
}

// bookingTransitions lists the statuses a booking may move to from each status.
// Setting the current status again is always allowed.
var bookingTransitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCancelled},
	models.BookingStatusCancelled: nil,
}

func canTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Quote is the price of renting a machine for a number of days.
type Quote struct {
	MachineID  string  `json:"machine_id"`
	Days       int     `json:"days"`
	Weeks      int     `json:"weeks"`
	ExtraDays  int     `json:"extra_days"`
	DailyRate  float64 `json:"daily_rate"`
	WeeklyRate float64 `json:"weekly_rate"`
	Total      float64 `json:"total"`
}

// BookingRequest is what a renter submits from the booking dialog.
type BookingRequest struct {
	MachineID string
	UserID    string
	StartDate time.Time
	Days      int
}

// RentalService handles business logic related to machinery rental.
type RentalService struct {
	machines repositories.MachineRepository
	bookings repositories.BookingRepository
	mq       Publisher
	now      func() time.Time
}

// NewRentalService creates a new RentalService. mq may be nil.
func NewRentalService(machines repositories.MachineRepository, bookings repositories.BookingRepository, mq Publisher) *RentalService {
	return &RentalService{
		machines: machines,
		bookings: bookings,
		mq:       mq,
		now:      time.Now,
	}
}

// Browse returns the machines visible in the given rental state.
func (s *RentalService) Browse(state viewstate.Rental) (viewstate.View[models.Machine], error) {
	machines, err := s.machines.GetAll()
	if err != nil {
		return viewstate.View[models.Machine]{}, err
	}
	return state.Visible(machines), nil
}

// MachineTypes returns the machine type filter options.
func (s *RentalService) MachineTypes() []Option { return MachineTypes }

// DurationOptions returns the selectable rental durations.
func (s *RentalService) DurationOptions() []catalog.Duration { return catalog.DurationOptions() }

// GetMachine retrieves a single machine by its ID.
func (s *RentalService) GetMachine(id string) (*models.Machine, error) {
	return s.machines.GetByID(id)
}

// selection walks the booking dialog for a machine and duration.
func (s *RentalService) selection(machineID string, days int) (viewstate.Rental, error) {
	if days < 1 {
		return viewstate.Rental{}, ErrInvalidDuration
	}
	machine, err := s.machines.GetByID(machineID)
	if err != nil {
		return viewstate.Rental{}, err
	}
	state := viewstate.ReduceRental(viewstate.NewRental(), viewstate.BookRequested{Machine: *machine})
	if state.Selected == nil {
		return viewstate.Rental{}, fmt.Errorf("%w: %s is %s", ErrMachineUnavailable, machine.Name, machine.Availability)
	}
	return viewstate.ReduceRental(state, viewstate.DaysSelected{Days: days}), nil
}

// Quote prices a rental without booking it.
func (s *RentalService) Quote(machineID string, days int) (*Quote, error) {
	state, err := s.selection(machineID, days)
	if err != nil {
		return nil, err
	}
	m := state.Selected
	return &Quote{
		MachineID:  m.ID,
		Days:       state.Days,
		Weeks:      state.Days / 7,
		ExtraDays:  state.Days % 7,
		DailyRate:  m.DailyRate,
		WeeklyRate: m.WeeklyRate,
		Total:      state.Total(),
	}, nil
}

// Book creates a pending booking and returns it with its payment instructions.
func (s *RentalService) Book(req BookingRequest) (*models.Booking, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	if req.StartDate.Before(today) {
		return nil, ErrInvalidStartDate
	}
	state, err := s.selection(req.MachineID, req.Days)
	if err != nil {
		return nil, err
	}
	state = viewstate.ReduceRental(state, viewstate.StartDateSelected{Date: req.StartDate})
	state = viewstate.ReduceRental(state, viewstate.PaymentRequested{})

	total := state.Total()
	booking := &models.Booking{
		ID:         uuid.New().String(),
		MachineID:  state.Selected.ID,
		UserID:     req.UserID,
		StartDate:  state.StartDate,
		Days:       state.Days,
		DailyRate:  state.Selected.DailyRate,
		WeeklyRate: state.Selected.WeeklyRate,
		Total:      total,
		Status:     models.BookingStatusPending,
		Payment:    models.Payment{UPIID: UPIID, Amount: total},
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking in repository: %w", err)
	}

	publish(s.mq, EventBookingCreated, map[string]any{
		"bookingID": booking.ID,
		"machineID": booking.MachineID,
		"userID":    booking.UserID,
		"days":      booking.Days,
		"total":     booking.Total,
		"status":    booking.Status,
	})
	return booking, nil
}

// GetBooking retrieves a single booking by its ID.
func (s *RentalService) GetBooking(id string) (*models.Booking, error) {
	return s.bookings.GetByID(id)
}

// ListBookings returns the bookings of a user, or all bookings when userID is empty.
func (s *RentalService) ListBookings(userID string) ([]models.Booking, error) {
	if userID == "" {
		return s.bookings.GetAll()
	}
	return s.bookings.GetByUser(userID)
}

// UpdateBookingStatus moves a booking to another status. A cancelled booking
// stays cancelled and a confirmed one cannot go back to pending.
func (s *RentalService) UpdateBookingStatus(id string, status string) error {
	if _, ok := bookingTransitions[status]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get booking %s: %w", id, err)
	}
	if !canTransition(booking.Status, status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, booking.Status, status)
	}
	if err := s.bookings.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update status for booking %s: %w", id, err)
	}

	publish(s.mq, EventBookingStatusChanged, map[string]any{
		"bookingID": id,
		"status":    status,
	})
	return nil
}
