package api

import (
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daylog/internal/media"
	"github.com/terraincognita07/daylog/internal/services"
)

func redirectOrJSON(c *fiber.Ctx, path string) error {
	if isHTMX(c) {
		c.Set("HX-Redirect", path)
		return c.SendStatus(fiber.StatusOK)
	}
	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

func apiError(c *fiber.Ctx, status int, message string) error {
	if isHTMX(c) {
		return c.Status(status).SendString(fmt.Sprintf("<div class=\"status-error\">%s</div>", template.HTMLEscapeString(message)))
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceErrorStatus maps journal errors to a status and a message that is
// safe to show. Anything unrecognised is a server error reported with
// fallback.
func serviceErrorStatus(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidDate):
		return fiber.StatusBadRequest, "invalid date"
	case errors.Is(err, services.ErrFutureDate):
		return fiber.StatusForbidden, services.ErrFutureDate.Error()
	case errors.Is(err, services.ErrEntryNotFound):
		return fiber.StatusNotFound, services.ErrEntryNotFound.Error()
	case errors.Is(err, services.ErrMediaNotFound):
		return fiber.StatusNotFound, services.ErrMediaNotFound.Error()
	case errors.Is(err, services.ErrTextBlockNotFound):
		return fiber.StatusNotFound, services.ErrTextBlockNotFound.Error()
	case errors.Is(err, services.ErrReorderIndex):
		return fiber.StatusBadRequest, "invalid reorder"
	case errors.Is(err, services.ErrNoUpload):
		return fiber.StatusBadRequest, "No file provided"
	case errors.Is(err, media.ErrNotFound):
		return fiber.StatusNotFound, "File not found"
	default:
		return fiber.StatusInternalServerError, fallback
	}
}

func respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	status, message := serviceErrorStatus(err, fallback)
	return apiError(c, status, message)
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func isHTMX(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Get("HX-Request"), "true")
}

func sanitizeRedirectPath(raw string, fallback string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "//") || !strings.HasPrefix(candidate, "/") {
		return fallback
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.IsAbs() {
		return fallback
	}
	return candidate
}

func journalPath(date string) string {
	return "/?date=" + url.QueryEscape(date)
}
