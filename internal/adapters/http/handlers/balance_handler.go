package handlers

import (
	"errors"

	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/core/services"
	"phd-timeoff/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BalanceHandler handles leave balance endpoints
type BalanceHandler struct {
	balanceService *services.BalanceService
	authService    *services.AuthService
}

// NewBalanceHandler creates a new balance handler
func NewBalanceHandler(balanceService *services.BalanceService, authService *services.AuthService) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		authService:    authService,
	}
}

// GetMyBalance handles a student reading their own ledger
// @Summary Own leave balance
// @Description Get the caller's remaining leave balance
// @Tags Balances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /balances/me [get]
func (h *BalanceHandler) GetMyBalance(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	balance, err := h.balanceService.Get(actor.ID)
	if err != nil {
		return response.NotFound(c, "No leave balance on record")
	}

	return response.Success(c, "Balance retrieved successfully", fiber.Map{
		"balance": balance,
	})
}

// GetBalance handles reading a student's ledger (reviewers)
// @Summary Student leave balance
// @Description Get a student's remaining leave balance
// @Tags Balances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /balances/{studentId} [get]
func (h *BalanceHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.balanceService.Get(c.Params("studentId"))
	if err != nil {
		return response.NotFound(c, "No leave balance on record")
	}

	return response.Success(c, "Balance retrieved successfully", fiber.Map{
		"balance": balance,
	})
}

// ListBalances handles listing every ledger (Admin only)
// @Summary List leave balances
// @Description Get every student's remaining leave balance (Admin only)
// @Tags Balances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /balances [get]
func (h *BalanceHandler) ListBalances(c *fiber.Ctx) error {
	balances := h.balanceService.All()
	return response.Success(c, "Balances retrieved successfully", fiber.Map{
		"balances": balances,
		"count":    len(balances),
	})
}

// SetBalance handles an admin patching a student's ledger
// @Summary Set leave balance
// @Description Patch a student's remaining leave balance (Admin only)
// @Tags Balances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Param body body services.UpdateBalanceInput true "Balance fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /balances/{studentId} [put]
func (h *BalanceHandler) SetBalance(c *fiber.Ctx) error {
	var input services.UpdateBalanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	balance, err := h.balanceService.Set(c.Params("studentId"), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to update balance")
	}

	return response.Success(c, "Balance updated successfully", fiber.Map{
		"balance": balance,
	})
}
