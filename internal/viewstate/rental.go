package viewstate

import (
	"time"

	"farmconnect/internal/catalog"
	"farmconnect/internal/models"
)

// Step is where the renter is in the booking flow.
type Step string

const (
	StepBrowsing Step = "browsing"
	StepBooking  Step = "booking"
	StepPayment  Step = "payment"
)

// Rental is the state of the machinery rental browser and its booking dialogs.
type Rental struct {
	Search    string
	Type      string
	Selected  *models.Machine
	StartDate time.Time
	Days      int
	Step      Step
}

// NewRental returns the initial rental state with a one-day duration.
func NewRental() Rental {
	return Rental{Type: catalog.All, Days: 1, Step: StepBrowsing}
}

// RentalEvent is an input the rental screen reacts to.
type RentalEvent interface{ rentalEvent() }

// BookRequested opens the booking dialog for a machine. Machines that are not
// available are ignored.
type BookRequested struct{ Machine models.Machine }

// StartDateSelected sets the first rental day.
type StartDateSelected struct{ Date time.Time }

// DaysSelected sets the rental duration. Values below one are ignored.
type DaysSelected struct{ Days int }

// PaymentRequested moves from the booking dialog to payment.
type PaymentRequested struct{}

// DialogClosed returns to browsing.
type DialogClosed struct{}

func (SearchChanged) rentalEvent()     {}
func (TypeSelected) rentalEvent()      {}
func (BookRequested) rentalEvent()     {}
func (StartDateSelected) rentalEvent() {}
func (DaysSelected) rentalEvent()      {}
func (PaymentRequested) rentalEvent()  {}
func (DialogClosed) rentalEvent()      {}

// ReduceRental applies e to s.
func ReduceRental(s Rental, e RentalEvent) Rental {
	switch ev := e.(type) {
	case SearchChanged:
		s.Search = ev.Term
	case TypeSelected:
		s.Type = orAll(ev.Type)
	case BookRequested:
		if !catalog.Bookable(ev.Machine.Availability) {
			return s
		}
		m := ev.Machine
		s.Selected = &m
		s.Step = StepBooking
	case StartDateSelected:
		s.StartDate = ev.Date
	case DaysSelected:
		if ev.Days >= 1 {
			s.Days = ev.Days
		}
	case PaymentRequested:
		if s.Step == StepBooking && s.Selected != nil {
			s.Step = StepPayment
		}
	case DialogClosed:
		s.Step = StepBrowsing
	}
	return s
}

// Criteria returns the filter the state describes.
func (s Rental) Criteria() catalog.Criteria {
	return catalog.Criteria{Search: s.Search, Type: s.Type}
}

// Visible filters machines by the current state.
func (s Rental) Visible(machines []models.Machine) View[models.Machine] {
	return newView(machines, s.Criteria())
}

// Total is the cost of renting the selected machine for the selected days.
func (s Rental) Total() float64 {
	if s.Selected == nil {
		return 0
	}
	return catalog.RentalCost(s.Selected.DailyRate, s.Selected.WeeklyRate, s.Days)
}
