package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "erm-backend/lib/utils/auth-utils"
	"erm-backend/models"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	userID, ok := claims["sub"].(string)
	if !ok {
		return ""
	}
	return userID
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	role, ok := claims["role"].(string)
	if !ok {
		return ""
	}
	return models.UserRole(role)
}

func GetUserDepartment(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	departmentID, ok := claims["department"].(string)
	if !ok {
		return ""
	}
	return departmentID
}
