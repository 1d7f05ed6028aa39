package handlers

import (
	"fmt"
	"strconv"
	"time"

	"farmconnect/internal/catalog"
	"farmconnect/internal/models"
	"farmconnect/internal/repositories"
	"farmconnect/internal/services"
	"farmconnect/internal/viewstate"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DateLayout is the format of booking start dates.
const DateLayout = "2006-01-02"

// RentalHandler handles HTTP requests for machinery rental and bookings.
type RentalHandler struct {
	service  *services.RentalService
	validate *validator.Validate
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(service *services.RentalService) *RentalHandler {
	return &RentalHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the rental routes. auth guards every booking route.
func (h *RentalHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	rentalRoutes := router.Group("/rental")
	rentalRoutes.Get("/machines", h.HandleGetMachines)
	rentalRoutes.Get("/machines/:id", h.HandleGetMachineByID)
	rentalRoutes.Get("/types", h.HandleGetTypes)
	rentalRoutes.Get("/durations", h.HandleGetDurations)
	rentalRoutes.Get("/quote", h.HandleQuote)

	bookingRoutes := rentalRoutes.Group("/bookings", auth)
	bookingRoutes.Get("/", h.HandleGetBookings)
	bookingRoutes.Get("/:id", h.HandleGetBookingByID)
	bookingRoutes.Post("/", h.HandleCreateBooking)
	bookingRoutes.Patch("/:id/status", h.HandleUpdateBookingStatus)
}

// machineView is a machine with its display fields.
type machineView struct {
	models.Machine
	AvailabilityTone string `json:"availability_tone"`
	Bookable         bool   `json:"bookable"`
	DailyLabel       string `json:"daily_label"`
	WeeklyLabel      string `json:"weekly_label"`
}

func newMachineView(m models.Machine) machineView {
	return machineView{
		Machine:          m,
		AvailabilityTone: string(catalog.AvailabilityTone(m.Availability)),
		Bookable:         catalog.Bookable(m.Availability),
		DailyLabel:       catalog.PriceLabel("", m.DailyRate),
		WeeklyLabel:      catalog.PriceLabel("", m.WeeklyRate),
	}
}

// HandleGetMachines lists the machines matching ?search=&type=.
func (h *RentalHandler) HandleGetMachines(c *fiber.Ctx) error {
	state := viewstate.NewRental()
	state = viewstate.ReduceRental(state, viewstate.SearchChanged{Term: c.Query("search")})
	state = viewstate.ReduceRental(state, viewstate.TypeSelected{Type: c.Query("type")})

	view, err := h.service.Browse(state)
	if err != nil {
		return fail(c, "Could not retrieve machines", err)
	}

	items := make([]machineView, 0, len(view.Items))
	for _, m := range view.Items {
		items = append(items, newMachineView(m))
	}
	return c.JSON(viewstate.View[machineView]{Items: items, Total: view.Total, Empty: view.Empty})
}

// HandleGetMachineByID retrieves a single machine by its ID.
func (h *RentalHandler) HandleGetMachineByID(c *fiber.Ctx) error {
	machine, err := h.service.GetMachine(c.Params("id"))
	if err != nil {
		return fail(c, "Could not retrieve machine", err)
	}
	return c.JSON(newMachineView(*machine))
}

// HandleGetTypes returns the machine type filter options.
func (h *RentalHandler) HandleGetTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"types": h.service.MachineTypes()})
}

// HandleGetDurations returns the selectable rental durations.
func (h *RentalHandler) HandleGetDurations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"durations": h.service.DurationOptions()})
}

// HandleQuote prices ?machine_id=&days= without booking.
func (h *RentalHandler) HandleQuote(c *fiber.Ctx) error {
	machineID := c.Query("machine_id")
	if machineID == "" {
		return badRequest(c, "machine_id is required", nil)
	}
	days, err := strconv.Atoi(c.Query("days", "1"))
	if err != nil {
		return badRequest(c, "days must be a whole number", err)
	}

	quote, err := h.service.Quote(machineID, days)
	if err != nil {
		return fail(c, "Could not price rental", err)
	}
	return c.JSON(quote)
}

// BookingRequest represents the request body for a new booking.
type BookingRequest struct {
	MachineID string `json:"machine_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	Days      int    `json:"days" validate:"required,gte=1"`
}

// HandleCreateBooking books a machine for the authenticated user.
func (h *RentalHandler) HandleCreateBooking(c *fiber.Ctx) error {
	var req BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	start, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		return badRequest(c, fmt.Sprintf("start_date must use the %s layout", DateLayout), err)
	}

	booking, err := h.service.Book(services.BookingRequest{
		MachineID: req.MachineID,
		UserID:    currentUser(c),
		StartDate: start,
		Days:      req.Days,
	})
	if err != nil {
		return fail(c, "Could not create booking", err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// HandleGetBookings lists the bookings of the authenticated user.
func (h *RentalHandler) HandleGetBookings(c *fiber.Ctx) error {
	bookings, err := h.service.ListBookings(currentUser(c))
	if err != nil {
		return fail(c, "Could not retrieve bookings", err)
	}
	return c.JSON(viewstate.View[models.Booking]{Items: bookings, Total: len(bookings), Empty: len(bookings) == 0})
}

// booking returns the booking with the path id if it belongs to the caller.
func (h *RentalHandler) booking(c *fiber.Ctx) (*models.Booking, error) {
	booking, err := h.service.GetBooking(c.Params("id"))
	if err != nil {
		return nil, err
	}
	if booking.UserID != currentUser(c) {
		return nil, fmt.Errorf("booking with ID %s %w", booking.ID, repositories.ErrNotFound)
	}
	return booking, nil
}

// HandleGetBookingByID retrieves one of the caller's bookings.
func (h *RentalHandler) HandleGetBookingByID(c *fiber.Ctx) error {
	booking, err := h.booking(c)
	if err != nil {
		return fail(c, "Could not retrieve booking", err)
	}
	return c.JSON(booking)
}

// HandleUpdateBookingStatus confirms or cancels one of the caller's bookings.
func (h *RentalHandler) HandleUpdateBookingStatus(c *fiber.Ctx) error {
	var updateData struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return badRequest(c, "Invalid request body for status update", err)
	}
	if err := h.validate.Struct(updateData); err != nil {
		return validationFailed(c, err)
	}

	booking, err := h.booking(c)
	if err != nil {
		return fail(c, "Booking update failed", err)
	}
	if err := h.service.UpdateBookingStatus(booking.ID, updateData.Status); err != nil {
		return fail(c, "Booking update failed", err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Booking %s status updated successfully to %s", booking.ID, updateData.Status),
	})
}
