package middleware

import (
	"github.com/gofiber/fiber/v2"

	apimodels "erm-backend/models/api"
)

func AdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция доступна только администратору"))
		}
		return ctx.Next()
	}
}
