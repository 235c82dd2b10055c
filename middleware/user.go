package middleware

import (
	"coursestore/database"
	"coursestore/models"

	"github.com/gofiber/fiber/v2"
)

// CurrentUser loads the provisioned user for the authenticated identity.
// Returns nil without error when the identity has never placed an order
// (no local record exists yet).
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	identityToken, ok := c.Locals("identityToken").(string)
	if !ok || identityToken == "" {
		return nil, false
	}

	var user models.User
	if err := database.Database.Db.Where("identity_token = ? AND is_deleted = ?", identityToken, false).First(&user).Error; err != nil {
		return nil, true
	}
	return &user, true
}
