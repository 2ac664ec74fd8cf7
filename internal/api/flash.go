package api

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashTTL = 5 * time.Minute

// setFlashCookie stores a one-shot message for the next page render. The
// value is sealed like the session cookie, so a forged flash never renders.
func (handler *Handler) setFlashCookie(c *fiber.Ctx, payload FlashPayload) {
	payload = payload.trimmed()
	if payload.empty() {
		handler.clearFlashCookie(c)
		return
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		log.Printf("flash encode failed: %v", err)
		return
	}
	sealed, err := handler.cookieCodec.seal(flashCookiePurpose, serialized)
	if err != nil {
		log.Printf("flash seal failed: %v", err)
		return
	}
	handler.writeFlashCookie(c, sealed, time.Now().Add(flashTTL))
}

func (handler *Handler) popFlashCookie(c *fiber.Ctx) FlashPayload {
	raw := c.Cookies(flashCookieName)
	if strings.TrimSpace(raw) == "" {
		return FlashPayload{}
	}
	handler.clearFlashCookie(c)

	opened, err := handler.cookieCodec.open(flashCookiePurpose, raw)
	if err != nil {
		return FlashPayload{}
	}
	var payload FlashPayload
	if err := json.Unmarshal(opened, &payload); err != nil {
		return FlashPayload{}
	}
	return payload.trimmed()
}

func (handler *Handler) clearFlashCookie(c *fiber.Ctx) {
	handler.writeFlashCookie(c, "", time.Now().Add(-time.Hour))
}

func (handler *Handler) writeFlashCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expires,
	})
}

func (payload FlashPayload) trimmed() FlashPayload {
	return FlashPayload{
		AuthError:      strings.TrimSpace(payload.AuthError),
		LoginUsername:  strings.TrimSpace(payload.LoginUsername),
		JournalError:   strings.TrimSpace(payload.JournalError),
		JournalSuccess: strings.TrimSpace(payload.JournalSuccess),
	}
}

func (payload FlashPayload) empty() bool {
	return payload == FlashPayload{}
}
