package handlers

import (
	"errors"

	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/core/services"
	"phd-timeoff/internal/pkg/pagination"
	"phd-timeoff/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LeaveHandler handles leave application endpoints
type LeaveHandler struct {
	leaveService *services.LeaveService
	authService  *services.AuthService
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(leaveService *services.LeaveService, authService *services.AuthService) *LeaveHandler {
	return &LeaveHandler{
		leaveService: leaveService,
		authService:  authService,
	}
}

// leaveError maps workflow errors onto HTTP responses.
func leaveError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidDateRange):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrDocumentRequired):
		return response.BadRequest(c, "Medical leave requires a supporting document")
	case errors.Is(err, domain.ErrGuideNotFound):
		return response.BadRequest(c, "No guide is assigned to this student")
	case errors.Is(err, domain.ErrLeaveNotFound), errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Leave application not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "Student record not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, "Leave application is not in a state that allows this action")
	case errors.Is(err, domain.ErrNotApprover):
		return response.Forbidden(c, "You are not the approver for this application")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to perform this action")
	default:
		return response.InternalServerError(c, fallback)
	}
}

// SubmitLeave handles a student submitting a leave application
// @Summary Submit leave application
// @Description Create a pending leave application and consume quota (Student only)
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitLeaveInput true "Leave application"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /leaves [post]
func (h *LeaveHandler) SubmitLeave(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SubmitLeaveInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	leave, err := h.leaveService.Submit(c.Context(), actor, &input)
	if err != nil {
		return leaveError(c, err, "Failed to submit leave application")
	}

	return response.Created(c, "Leave application submitted successfully", fiber.Map{
		"leave": leave,
	})
}

// ListLeaves handles listing leave applications visible to the caller
// @Summary List leave applications
// @Description Get leave applications scoped to the caller's role
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Filter by student"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /leaves [get]
func (h *LeaveHandler) ListLeaves(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	filter := services.LeaveFilter{
		StudentID: c.Query("studentId"),
		Status:    domain.LeaveStatus(c.Query("status")),
	}

	leaves := h.leaveService.List(actor, filter)

	params := pagination.GetParams(c)
	lo, hi := params.Bounds(len(leaves))

	return response.Success(c, "Leaves retrieved successfully", fiber.Map{
		"leaves": leaves[lo:hi],
		"meta":   pagination.GetMeta(params, int64(len(leaves))),
	})
}

// GetLeave handles getting a single leave application
// @Summary Get leave application
// @Description Get a leave application by ID, subject to role visibility
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leaves/{id} [get]
func (h *LeaveHandler) GetLeave(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	leave, err := h.leaveService.Get(actor, c.Params("id"))
	if err != nil {
		return leaveError(c, err, "Failed to get leave application")
	}

	return response.Success(c, "Leave retrieved successfully", fiber.Map{
		"leave": leave,
	})
}

// GuideApprove handles the guide/TA approval step
// @Summary Guide approval
// @Description Approve a pending leave application as the student's guide or TA
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leaves/{id}/guide-approve [put]
func (h *LeaveHandler) GuideApprove(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	leave, err := h.leaveService.GuideApprove(c.Context(), actor, c.Params("id"))
	if err != nil {
		return leaveError(c, err, "Failed to approve leave application")
	}

	return response.Success(c, "Leave approved by guide", fiber.Map{
		"leave": leave,
	})
}

// HODApprove handles the HOD approval step
// @Summary HOD approval
// @Description Approve a guide-approved application with a paid/unpaid decision (HOD only)
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Param body body services.HODApproveInput false "Approval type"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leaves/{id}/hod-approve [put]
func (h *LeaveHandler) HODApprove(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.HODApproveInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	leave, err := h.leaveService.HODApprove(c.Context(), actor, c.Params("id"), &input)
	if err != nil {
		return leaveError(c, err, "Failed to approve leave application")
	}

	return response.Success(c, "Leave approved by HOD", fiber.Map{
		"leave": leave,
	})
}

// RejectLeave handles rejection by the responsible approver
// @Summary Reject leave application
// @Description Reject a reviewable application; consumed quota is not restored
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leaves/{id}/reject [put]
func (h *LeaveHandler) RejectLeave(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	leave, err := h.leaveService.Reject(c.Context(), actor, c.Params("id"))
	if err != nil {
		return leaveError(c, err, "Failed to reject leave application")
	}

	return response.Success(c, "Leave rejected", fiber.Map{
		"leave": leave,
	})
}

// DeanCompleteRequest represents the dean approval completion body
type DeanCompleteRequest struct {
	DocumentRef string `json:"documentRef"`
}

// CompleteDeanApproval handles marking the Dean AP step as done
// @Summary Complete dean approval
// @Description Attach the generated Dean AP document and finalize the application (Admin only)
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Param body body DeanCompleteRequest true "Document reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leaves/{id}/dean-approve [put]
func (h *LeaveHandler) CompleteDeanApproval(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req DeanCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	leave, err := h.leaveService.CompleteDeanApproval(c.Context(), actor, c.Params("id"), req.DocumentRef)
	if err != nil {
		return leaveError(c, err, "Failed to complete dean approval")
	}

	return response.Success(c, "Dean approval completed", fiber.Map{
		"leave": leave,
	})
}

// DeleteLeave handles removing a leave application (Admin only)
// @Summary Delete leave application
// @Description Delete a leave application (Admin only)
// @Tags Leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leaves/{id} [delete]
func (h *LeaveHandler) DeleteLeave(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.leaveService.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return leaveError(c, err, "Failed to delete leave application")
	}

	return response.Success(c, "Leave deleted successfully", nil)
}
