package handlers

import (
	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// actorFromCtx resolves the full user record behind the token claims set by
// the auth middleware. Role checks in the services need the live record,
// not the claims snapshot.
func actorFromCtx(c *fiber.Ctx, auth *services.AuthService) (*domain.User, error) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return auth.CurrentUser(userID)
}
