package handlers

import (
	"errors"

	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/core/services"
	"phd-timeoff/internal/pkg/pagination"
	"phd-timeoff/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// userError maps user management errors onto HTTP responses.
func userError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotAFaculty):
		return response.BadRequest(c, "Guide and TA must reference active faculty users")
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return response.Conflict(c, "Email already exists")
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to perform this action")
	default:
		return response.InternalServerError(c, fallback)
	}
}

// ListUsers handles listing all users (Admin only)
// @Summary List all users
// @Description Get all users (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users := h.userService.List()

	params := pagination.GetParams(c)
	lo, hi := params.Bounds(len(users))

	// Never expose password hashes
	out := make([]*domain.UserResponse, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, users[i].ToResponse())
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": out,
		"meta":  pagination.GetMeta(params, int64(len(users))),
	})
}

// GetUser handles getting a user by ID (Admin only)
// @Summary Get user by ID
// @Description Get a specific user by ID (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.Params("id"))
	if err != nil {
		return userError(c, err, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// CreateUser handles creating a user (Admin only)
// @Summary Create user
// @Description Create a new user (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Create(c.Context(), actor, &input)
	if err != nil {
		return userError(c, err, "Failed to create user")
	}

	return response.Created(c, "User created successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UpdateUser handles updating a user (Admin only)
// @Summary Update user
// @Description Update a user's information (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body services.UpdateUserInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(c.Context(), actor, c.Params("id"), &input)
	if err != nil {
		return userError(c, err, "Failed to update user")
	}

	return response.Success(c, "User updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// DeleteUser handles deleting a user (Admin only)
// @Summary Delete user
// @Description Delete a user (Admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	// Prevent deleting own account
	if c.Params("id") == actor.ID {
		return response.BadRequest(c, "Cannot delete your own account")
	}

	if err := h.userService.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return userError(c, err, "Failed to delete user")
	}

	return response.Success(c, "User deleted successfully", nil)
}
