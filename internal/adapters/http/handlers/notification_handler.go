package handlers

import (
	"errors"

	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/core/services"
	"phd-timeoff/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles in-app notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
	authService         *services.AuthService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService, authService *services.AuthService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		authService:         authService,
	}
}

// ListNotifications handles listing the caller's notifications
// @Summary List notifications
// @Description Get the caller's notifications, newest first
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread notifications"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	notifications := h.notificationService.ForUser(actor.ID, c.QueryBool("unread"))
	return response.Success(c, "Notifications retrieved successfully", fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkRead handles marking a notification as read
// @Summary Mark notification read
// @Description Flip the read flag on one of the caller's notifications
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if _, err := actorFromCtx(c, h.authService); err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notificationService.MarkRead(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to mark notification as read")
	}

	return response.Success(c, "Notification marked as read", nil)
}
