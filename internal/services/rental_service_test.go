package services_test

import (
	"testing"
	"time"

	"farmconnect/internal/models"
	"farmconnect/internal/repositories"
	"farmconnect/internal/services"
	"farmconnect/internal/viewstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var rentalToday = time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)

func newRentalService(t *testing.T, mq services.Publisher) *services.RentalService {
	t.Helper()
	store := repositories.NewMemoryStore()
	require.NoError(t, repositories.Seed(store))
	s := services.NewRentalService(store.Machines, store.Bookings, mq)
	s.SetNow(func() time.Time { return rentalToday })
	return s
}

func TestRentalService_Browse(t *testing.T) {
	service := newRentalService(t, nil)

	view, err := service.Browse(viewstate.NewRental())
	require.NoError(t, err)
	assert.Len(t, view.Items, 6)

	state := viewstate.ReduceRental(viewstate.NewRental(), viewstate.TypeSelected{Type: "tractor"})
	view, err = service.Browse(state)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "1", view.Items[0].ID)
	assert.Equal(t, "2", view.Items[1].ID)

	state = viewstate.ReduceRental(state, viewstate.SearchChanged{Term: "paddy"})
	view, err = service.Browse(state)
	require.NoError(t, err)
	assert.True(t, view.Empty)
}

func TestRentalService_Quote(t *testing.T) {
	service := newRentalService(t, nil)

	q, err := service.Quote("1", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Weeks)
	assert.Equal(t, 3, q.ExtraDays)
	assert.Equal(t, 10600.0, q.Total)

	q, err = service.Quote("1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, q.Total)

	_, err = service.Quote("1", 0)
	assert.ErrorIs(t, err, services.ErrInvalidDuration)

	_, err = service.Quote("3", 2)
	assert.ErrorIs(t, err, services.ErrMachineUnavailable)

	_, err = service.Quote("99", 2)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRentalService_Book(t *testing.T) {
	mockMQ := new(MockPublisher)
	service := newRentalService(t, mockMQ)
	mockMQ.On("Publish", services.Exchange, services.EventBookingCreated, mock.Anything).Return(nil).Once()

	start := rentalToday.Truncate(24 * time.Hour)
	booking, err := service.Book(services.BookingRequest{MachineID: "2", UserID: "user-1", StartDate: start, Days: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, 4500.0, booking.Total)
	assert.Equal(t, services.UPIID, booking.Payment.UPIID)
	assert.Equal(t, booking.Total, booking.Payment.Amount)
	mockMQ.AssertExpectations(t)

	stored, err := service.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, stored.ID)

	mine, err := service.ListBookings("user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := service.ListBookings("user-2")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestRentalService_Book_Rejected(t *testing.T) {
	service := newRentalService(t, nil)
	tomorrow := rentalToday.AddDate(0, 0, 1)

	_, err := service.Book(services.BookingRequest{MachineID: "1", StartDate: rentalToday.AddDate(0, 0, -1), Days: 1})
	assert.ErrorIs(t, err, services.ErrInvalidStartDate)

	_, err = service.Book(services.BookingRequest{MachineID: "3", StartDate: tomorrow, Days: 1})
	assert.ErrorIs(t, err, services.ErrMachineUnavailable)

	_, err = service.Book(services.BookingRequest{MachineID: "1", StartDate: tomorrow, Days: -2})
	assert.ErrorIs(t, err, services.ErrInvalidDuration)

	all, err := service.ListBookings("")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRentalService_UpdateBookingStatus(t *testing.T) {
	mockMQ := new(MockPublisher)
	service := newRentalService(t, mockMQ)
	mockMQ.On("Publish", services.Exchange, mock.Anything, mock.Anything).Return(nil)

	booking, err := service.Book(services.BookingRequest{MachineID: "1", UserID: "u", StartDate: rentalToday, Days: 1})
	require.NoError(t, err)

	require.NoError(t, service.UpdateBookingStatus(booking.ID, models.BookingStatusConfirmed))
	stored, err := service.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	mockMQ.AssertCalled(t, "Publish", services.Exchange, services.EventBookingStatusChanged, mock.Anything)

	err = service.UpdateBookingStatus(booking.ID, "shipped")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	err = service.UpdateBookingStatus("missing", models.BookingStatusCancelled)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRentalService_UpdateBookingStatus_Transitions(t *testing.T) {
	mockMQ := new(MockPublisher)
	service := newRentalService(t, mockMQ)
	mockMQ.On("Publish", services.Exchange, mock.Anything, mock.Anything).Return(nil)

	booking, err := service.Book(services.BookingRequest{MachineID: "1", UserID: "u", StartDate: rentalToday, Days: 1})
	require.NoError(t, err)

	require.NoError(t, service.UpdateBookingStatus(booking.ID, models.BookingStatusPending))
	require.NoError(t, service.UpdateBookingStatus(booking.ID, models.BookingStatusConfirmed))

	err = service.UpdateBookingStatus(booking.ID, models.BookingStatusPending)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	require.NoError(t, service.UpdateBookingStatus(booking.ID, models.BookingStatusCancelled))
	require.NoError(t, service.UpdateBookingStatus(booking.ID, models.BookingStatusCancelled))

	for _, status := range []string{models.BookingStatusConfirmed, models.BookingStatusPending} {
		err = service.UpdateBookingStatus(booking.ID, status)
		assert.ErrorIs(t, err, services.ErrInvalidTransition, status)
	}

	stored, err := service.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, stored.Status)
}
