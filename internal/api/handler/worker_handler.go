package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace-api/internal/core/ports"
)

// WorkerHandler handles the worker directory and earnings endpoints.
type WorkerHandler struct {
	workers  ports.WorkerService
	bookings ports.BookingService
}

func NewWorkerHandler(workers ports.WorkerService, bookings ports.BookingService) *WorkerHandler {
	return &WorkerHandler{workers: workers, bookings: bookings}
}

// UpsertProfile publishes or replaces the caller's directory profile.
//
// @Summary      Publish the worker profile
// @Tags         workers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      upsertProfileRequest  true  "Profile fields"
// @Success      200   {object}  workerResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /workers/profile [post]
func (h *WorkerHandler) UpsertProfile(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req upsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.workers.UpsertProfile(c.Request().Context(), ports.UpsertProfileInput{
		OwnerAccountID: userID,
		FullName:       req.FullName,
		City:           req.City,
		Experience:     req.Experience,
		HourlyRate:     req.HourlyRate,
		Bio:            req.Bio,
		Services:       req.Services,
		Image:          req.Image,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, workerResponse{Success: true, Worker: profile})
}

// List returns completed profiles, optionally filtered by service tag.
//
// @Summary      Browse the worker directory
// @Tags         workers
// @Produce      json
// @Param        service  query     string  false  "Service tag filter (e.g. plumber)"
// @Success      200      {object}  workerListResponse
// @Router       /workers [get]
func (h *WorkerHandler) List(c echo.Context) error {
	profiles, err := h.workers.ListByService(c.Request().Context(), c.QueryParam("service"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, workerListResponse{Success: true, Workers: profiles})
}

// Earnings sums the caller's accepted and completed booking prices.
//
// @Summary      Worker earnings total
// @Tags         workers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  earningsResponse
// @Failure      404  {object}  map[string]string
// @Router       /workers/earnings [get]
func (h *WorkerHandler) Earnings(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	total, err := h.bookings.Earnings(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, earningsResponse{Success: true, Balance: total})
}
