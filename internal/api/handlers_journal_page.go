package api

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daylog/internal/services"
)

func (handler *Handler) ShowJournal(c *fiber.Ctx) error {
	flash := handler.popFlashCookie(c)
	options := journalViewOptions{
		Month:          c.Query("month"),
		Query:          strings.TrimSpace(c.Query("q")),
		ErrorMessage:   flash.JournalError,
		SuccessMessage: flash.JournalSuccess,
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = services.TodayKey(handler.journal.Now(), handler.location)
	}

	session, err := handler.journal.OpenSession(c.UserContext(), date)
	if errors.Is(err, services.ErrInvalidDate) {
		options.ErrorMessage = "invalid date"
		session, err = handler.journal.OpenSession(c.UserContext(), services.TodayKey(handler.journal.Now(), handler.location))
	}
	if err != nil {
		log.Printf("open journal: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to read entries")
	}

	if parseBoolValue(c.Query("edit")) {
		if editErr := beginEditing(session); editErr != nil {
			_, options.ErrorMessage = serviceErrorStatus(editErr, "failed to start editing")
		}
	}

	return handler.render(c, "journal", handler.buildJournalPageData(session, options))
}

func beginEditing(session *services.Session) error {
	switch session.State() {
	case services.StateViewing:
		return session.BeginEdit()
	case services.StateNoEntry:
		return session.BeginCreate()
	default:
		return nil
	}
}
