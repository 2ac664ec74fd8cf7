package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daylog/internal/services"
)

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	if _, err := handler.authenticateRequest(c); err == nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	flash := handler.popFlashCookie(c)
	return handler.render(c, "login", fiber.Map{
		"Title":        "daylog | Sign in",
		"ErrorMessage": flash.AuthError,
		"Username":     flash.LoginUsername,
		"Next":         sanitizeRedirectPath(c.Query("next"), ""),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input")
	}

	identity, err := handler.auth.Authenticate(credentials.Username, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return handler.respondAuthError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	if err := handler.setAuthCookie(c, identity, credentials.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	if isJSONRequest(c) {
		return c.JSON(fiber.Map{"ok": true, "username": identity.Username})
	}
	return redirectOrJSON(c, sanitizeRedirectPath(credentials.Next, "/"))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	handler.clearFlashCookie(c)
	if isHTMX(c) {
		c.Set("HX-Redirect", "/login")
		return c.SendStatus(fiber.StatusOK)
	}
	if isJSONRequest(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// Session reports who the auth cookie belongs to.
func (handler *Handler) Session(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"username":      user.Username,
		"name":          user.Name,
	})
}

// respondAuthError sends form logins back to the login page with a flash
// message; API clients get the error as JSON. The message never says which
// field was wrong.
func (handler *Handler) respondAuthError(c *fiber.Ctx, status int, message string) error {
	if !isJSONRequest(c) && !isHTMX(c) {
		handler.setFlashCookie(c, FlashPayload{
			AuthError:     message,
			LoginUsername: strings.TrimSpace(c.FormValue("username")),
		})
		return c.Redirect(loginPathWithFormNext(c), fiber.StatusSeeOther)
	}
	return apiError(c, status, message)
}

func loginPathWithFormNext(c *fiber.Ctx) string {
	next := sanitizeRedirectPath(c.FormValue("next"), "")
	if next == "" || next == "/" {
		return "/login"
	}
	return loginPathFor(next)
}
