package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace-api/internal/core/domain"
	"github.com/servicehub/marketplace-api/internal/core/ports"
)

// BookingHandler handles the booking ledger endpoints.
type BookingHandler struct {
	bookings ports.BookingService
}

func NewBookingHandler(bookings ports.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create books a slot for the calling customer.
//
// @Summary      Book a worker's time slot
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  bookingResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	fullName, _ := c.Get("full_name").(string)

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookings.Create(c.Request().Context(), ports.CreateBookingInput{
		CustomerID:    userID,
		CustomerName:  fullName,
		WorkerID:      req.WorkerID,
		Date:          req.Date,
		Slot:          req.Slot,
		Price:         req.Price,
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, bookingResponse{Success: true, Booking: booking})
}

// List returns the caller's bookings, partitioned into ongoing and history.
// Customers see the bookings they placed; workers see the bookings on
// their profile.
//
// @Summary      List the caller's bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  bookingListResponse
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	userID, _, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var list *ports.BookingList
	if role == domain.RoleWorker {
		list, err = h.bookings.ListForWorker(c.Request().Context(), userID)
	} else {
		list, err = h.bookings.ListForCustomer(c.Request().Context(), userID)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookingListResponse{Success: true, Ongoing: list.Ongoing, History: list.History})
}

// Availability lists the occupied slots for a worker on a date.
//
// @Summary      Booked slots for a worker and date
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        workerId  query     string  true  "Worker profile ID"
// @Param        date      query     string  true  "Calendar date (YYYY-MM-DD)"
// @Success      200       {object}  availabilityResponse
// @Failure      400       {object}  map[string]string
// @Router       /bookings/availability [get]
func (h *BookingHandler) Availability(c echo.Context) error {
	workerID := c.QueryParam("workerId")
	date := c.QueryParam("date")
	if workerID == "" || date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "workerId and date are required")
	}

	slots, err := h.bookings.Availability(c.Request().Context(), workerID, date)
	if err != nil {
		return err
	}
	if slots == nil {
		slots = []string{}
	}

	return c.JSON(http.StatusOK, availabilityResponse{
		Success:     true,
		WorkerID:    workerID,
		Date:        date,
		BookedSlots: slots,
	})
}

// Transition moves a booking to a new status.
//
// @Summary      Update a booking's status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Booking ID"
// @Param        body  body      transitionRequest  true  "Target status"
// @Success      200   {object}  bookingResponse
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /bookings/{id}/status [patch]
func (h *BookingHandler) Transition(c echo.Context) error {
	userID, _, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookings.Transition(c.Request().Context(), ports.TransitionInput{
		BookingID: c.Param("id"),
		ActorID:   userID,
		ActorRole: role,
		NewStatus: domain.BookingStatus(req.Status),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookingResponse{Success: true, Booking: booking})
}
