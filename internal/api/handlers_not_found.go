package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") || acceptsJSON(c) {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	currentUser := handler.optionalAuthenticatedUser(c)
	if currentUser != nil {
		c.Locals(contextUserKey, currentUser)
	}

	primaryPath := "/login"
	primaryLabel := "Sign in"
	if currentUser != nil {
		primaryPath = "/"
		primaryLabel = "Back to the journal"
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title":        "daylog | Page Not Found",
		"PrimaryPath":  primaryPath,
		"PrimaryLabel": primaryLabel,
	})
}
