package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daylog/internal/services"
)

const (
	authCookieName  = "daylog_auth"
	flashCookieName = "daylog_flash"
	contextUserKey  = "current_user"

	authCookiePurpose  = "auth"
	flashCookiePurpose = "flash"
)

func currentUser(c *fiber.Ctx) (*services.Identity, bool) {
	user, ok := c.Locals(contextUserKey).(*services.Identity)
	return user, ok
}
