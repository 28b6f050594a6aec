package handlers

import (
	"errors"

	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/core/services"
	"phd-timeoff/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HolidayHandler handles holiday calendar endpoints
type HolidayHandler struct {
	holidayService *services.HolidayService
	authService    *services.AuthService
}

// NewHolidayHandler creates a new holiday handler
func NewHolidayHandler(holidayService *services.HolidayService, authService *services.AuthService) *HolidayHandler {
	return &HolidayHandler{
		holidayService: holidayService,
		authService:    authService,
	}
}

func holidayError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrHolidayNotFound), errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Holiday not found")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to perform this action")
	default:
		return response.InternalServerError(c, fallback)
	}
}

// ListHolidays handles listing the holiday calendar
// @Summary List holidays
// @Description Get the full holiday calendar; pass from=YYYY-MM-DD for upcoming only
// @Tags Holidays
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param upcoming query bool false "Only holidays from today onward"
// @Param from query string false "Only holidays on or after this date"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /holidays [get]
func (h *HolidayHandler) ListHolidays(c *fiber.Ctx) error {
	var holidays []domain.Holiday
	if c.QueryBool("upcoming") || c.Query("from") != "" {
		holidays = h.holidayService.Upcoming(c.Query("from"))
	} else {
		holidays = h.holidayService.List()
	}

	return response.Success(c, "Holidays retrieved successfully", fiber.Map{
		"holidays": holidays,
		"count":    len(holidays),
	})
}

// CreateHoliday handles adding a holiday (Admin only)
// @Summary Create holiday
// @Description Add a holiday to the calendar (Admin only)
// @Tags Holidays
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.HolidayInput true "Holiday data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /holidays [post]
func (h *HolidayHandler) CreateHoliday(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.HolidayInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	holiday, err := h.holidayService.Create(c.Context(), actor, &input)
	if err != nil {
		return holidayError(c, err, "Failed to create holiday")
	}

	return response.Created(c, "Holiday created successfully", fiber.Map{
		"holiday": holiday,
	})
}

// UpdateHoliday handles updating a holiday (Admin only)
// @Summary Update holiday
// @Description Update a holiday's fields (Admin only)
// @Tags Holidays
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Holiday ID"
// @Param body body services.HolidayInput true "Holiday data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /holidays/{id} [put]
func (h *HolidayHandler) UpdateHoliday(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.HolidayInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	holiday, err := h.holidayService.Update(c.Context(), actor, c.Params("id"), &input)
	if err != nil {
		return holidayError(c, err, "Failed to update holiday")
	}

	return response.Success(c, "Holiday updated successfully", fiber.Map{
		"holiday": holiday,
	})
}

// DeleteHoliday handles removing a holiday (Admin only)
// @Summary Delete holiday
// @Description Remove a holiday from the calendar (Admin only)
// @Tags Holidays
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Holiday ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /holidays/{id} [delete]
func (h *HolidayHandler) DeleteHoliday(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.holidayService.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return holidayError(c, err, "Failed to delete holiday")
	}

	return response.Success(c, "Holiday deleted successfully", nil)
}
