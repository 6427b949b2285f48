package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx pulls the authenticated user id and role that JwtMiddleware
// stored in the request locals.
func actorFromCtx(ctx *fiber.Ctx) (uuid.UUID, string, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, "", fiber.ErrUnauthorized
	}
	role, _ := ctx.Locals("role").(string)
	return userId, role, nil
}
