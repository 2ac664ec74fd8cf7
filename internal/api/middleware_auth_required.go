package api

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired guards the pages. The /api routes stay open.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		if strings.HasPrefix(c.Path(), "/api/") || acceptsJSON(c) {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		return c.Redirect(loginPathWithNext(c), fiber.StatusSeeOther)
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

func loginPathWithNext(c *fiber.Ctx) string {
	if c.Method() != fiber.MethodGet {
		return "/login"
	}
	next := c.OriginalURL()
	if next == "" || next == "/" {
		return "/login"
	}
	return loginPathFor(next)
}

func loginPathFor(next string) string {
	return "/login?next=" + url.QueryEscape(next)
}
