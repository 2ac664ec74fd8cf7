package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daylog/internal/services"
)

func (handler *Handler) Search(c *fiber.Ctx) error {
	results, err := handler.journal.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		log.Printf("search entries: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to read entries")
	}
	return c.JSON(results)
}

func (handler *Handler) Calendar(c *fiber.Ctx) error {
	monthStart, ok := handler.resolveMonth(c.Query("month"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	days, err := handler.journal.Calendar(c.UserContext(), monthStart)
	if err != nil {
		log.Printf("build calendar: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to read entries")
	}
	return c.JSON(fiber.Map{
		"month": monthStart.Format(monthLayout),
		"today": services.TodayKey(handler.journal.Now(), handler.location),
		"days":  days,
	})
}

const monthLayout = "2006-01"

// resolveMonth parses a YYYY-MM query value; blank means the current month.
func (handler *Handler) resolveMonth(raw string) (time.Time, bool) {
	if raw == "" {
		return services.MonthStart(handler.journal.Now(), handler.location), true
	}
	year, month, ok := parseMonthQuery(raw)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, handler.location), true
}
