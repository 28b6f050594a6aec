package handlers

import (
	"phd-timeoff/internal/core/services"
	"phd-timeoff/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles role-scoped dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	authService      *services.AuthService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, authService *services.AuthService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		authService:      authService,
	}
}

// GetStats handles the dashboard summary counters
// @Summary Dashboard statistics
// @Description Get summary counters scoped to the caller's role
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats := h.dashboardService.StatsForActor(actor)
	return response.Success(c, "Stats retrieved successfully", fiber.Map{
		"stats": stats,
	})
}

// GetPendingApprovals handles listing applications waiting on the caller
// @Summary Pending approvals
// @Description Get applications waiting on the caller's role in the workflow
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/pending [get]
func (h *DashboardHandler) GetPendingApprovals(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	leaves := h.dashboardService.PendingForActor(actor)
	return response.Success(c, "Pending approvals retrieved successfully", fiber.Map{
		"leaves": leaves,
		"count":  len(leaves),
	})
}

// GetMyStudents handles listing the caller's supervised students
// @Summary Supervised students
// @Description Get the students the caller guides or assists (Faculty/HOD)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/my-students [get]
func (h *DashboardHandler) GetMyStudents(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	students := h.dashboardService.MyStudents(actor)
	return response.Success(c, "Students retrieved successfully", fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

// GetOnLeaveToday handles listing students currently on approved leave
// @Summary Students on leave today
// @Description Get approved leaves covering today's date
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/on-leave-today [get]
func (h *DashboardHandler) GetOnLeaveToday(c *fiber.Ctx) error {
	if _, err := actorFromCtx(c, h.authService); err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	students := h.dashboardService.OnLeaveToday()
	return response.Success(c, "Students on leave retrieved successfully", fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

// GetSpecialAttention handles listing over-quota applications
// @Summary Special attention leaves
// @Description Get applications whose duration exceeds the per-type attention thresholds
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/special-attention [get]
func (h *DashboardHandler) GetSpecialAttention(c *fiber.Ctx) error {
	if _, err := actorFromCtx(c, h.authService); err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	leaves := h.dashboardService.SpecialAttention()
	return response.Success(c, "Special attention leaves retrieved successfully", fiber.Map{
		"leaves": leaves,
		"count":  len(leaves),
	})
}
