package middleware

import (
	"github.com/civicwatch-app/backend/internal/config"
	"github.com/civicwatch-app/backend/internal/dto"
	"github.com/civicwatch-app/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// QueryAuth guards the read-only query surface. Requests carrying a valid
// X-API-Key header are admitted directly; anything else goes through the
// normal JWT check. Regenerating a key invalidates the old one immediately
// because the lookup runs per request, and blocked users' keys are dead.
func QueryAuth(db *gorm.DB, cfg *config.Config) fiber.Handler {
	jwtHandler := JWTProtected(cfg)

	return func(c *fiber.Ctx) error {
		key := c.Get("X-API-Key")
		if key == "" {
			return jwtHandler(c)
		}

		var user models.User
		if err := db.First(&user, "api_key = ?", key).Error; err != nil || user.IsBlocked {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: invalid API key",
			})
		}
		c.Locals("role", user.Role)
		c.Locals("api_user_id", user.ID)
		return c.Next()
	}
}

// ViewerRole resolves the caller's role for response shaping: the role
// cached by QueryAuth when present, otherwise a database lookup by the JWT
// subject. Unknown callers get the lowest visibility.
func ViewerRole(c *fiber.Ctx, db *gorm.DB) string {
	if role, ok := c.Locals("role").(string); ok && role != "" {
		return role
	}
	userID, err := GetUserID(c)
	if err != nil {
		return models.RoleUser
	}
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return models.RoleUser
	}
	return user.Role
}
