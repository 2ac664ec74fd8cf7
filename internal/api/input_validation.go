package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, err
	}

	credentials.Username = strings.TrimSpace(credentials.Username)
	credentials.RememberMe = credentials.RememberMe || parseBoolValue(c.FormValue("remember_me"))
	if credentials.Username == "" || credentials.Password == "" {
		return credentialsInput{}, errors.New("missing credentials")
	}
	return credentials, nil
}

func parseBoolValue(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

func parseReorderPayload(c *fiber.Ctx) (reorderPayload, error) {
	payload := reorderPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return reorderPayload{}, err
	}
	payload.Dragged = strings.TrimSpace(payload.Dragged)
	payload.Target = strings.TrimSpace(payload.Target)

	hasIndexes := payload.From != nil && payload.To != nil
	hasIDs := payload.Dragged != "" && payload.Target != ""
	if !hasIndexes && !hasIDs {
		return reorderPayload{}, errors.New("reorder needs from and to, or dragged and target")
	}
	return payload, nil
}

// parseMovePair reads a "dragged|target" pair posted by the read view.
func parseMovePair(raw string) (string, string, bool) {
	dragged, target, found := strings.Cut(strings.TrimSpace(raw), "|")
	if !found || dragged == "" || target == "" {
		return "", "", false
	}
	return dragged, target, true
}

func parseMonthQuery(raw string) (int, int, bool) {
	yearRaw, monthRaw, found := strings.Cut(strings.TrimSpace(raw), "-")
	if !found || len(yearRaw) != 4 || len(monthRaw) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(monthRaw)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

func isJSONRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) || acceptsJSON(c)
}
