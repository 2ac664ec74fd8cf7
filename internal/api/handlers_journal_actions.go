package api

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daylog/internal/models"
	"github.com/terraincognita07/daylog/internal/services"
)

const removeBlockActionPrefix = "remove_block:"

var errUnknownEditorAction = errors.New("unknown editor action")

// EditJournalEntry handles the editor form. Adding or removing a block
// re-renders the editor with the posted draft; saving persists it.
func (handler *Handler) EditJournalEntry(c *fiber.Ctx) error {
	date := c.Params("date")
	session, err := handler.journal.OpenSession(c.UserContext(), date)
	if err != nil {
		return handler.redirectWithJournalError(c, "/", err, "Failed to read entries")
	}

	draft := draftFromForm(c, currentEntry(session))
	if err := session.ResumeDraft(draft.Title, draft.Blocks); err != nil {
		return handler.redirectWithJournalError(c, journalPath(session.SelectedDate()), err, "failed to start editing")
	}

	action := strings.TrimSpace(c.FormValue("action"))
	switch {
	case action == "add_block":
		if _, err := session.AddBlock(); err != nil {
			return handler.renderEditor(c, session, err, "")
		}
		return handler.renderEditor(c, session, nil, "")
	case strings.HasPrefix(action, removeBlockActionPrefix):
		blockID := strings.TrimPrefix(action, removeBlockActionPrefix)
		if err := session.RemoveBlock(blockID); err != nil {
			return handler.renderEditor(c, session, err, "")
		}
		return handler.renderEditor(c, session, nil, "")
	case action == "save" || action == "":
		if _, err := handler.journal.SaveEntry(c.UserContext(), session.SelectedDate(), draft.Title, draft.Blocks); err != nil {
			logUnexpected("save journal entry", err)
			return handler.renderEditor(c, session, err, "")
		}
		handler.setFlashCookie(c, FlashPayload{JournalSuccess: "Entry saved"})
		return c.Redirect(journalPath(session.SelectedDate()), fiber.StatusSeeOther)
	default:
		return handler.renderEditor(c, session, errUnknownEditorAction, "")
	}
}

// UploadJournalMedia attaches the posted files and returns to the editor
// with the draft intact.
func (handler *Handler) UploadJournalMedia(c *fiber.Ctx) error {
	date := c.Params("date")
	uploads, err := readUploads(c)
	if err != nil {
		uploads = nil
	}

	draft, ok, err := handler.postedDraft(c, date)
	if !ok {
		return err
	}

	_, uploadErr := handler.journal.UploadMediaWithDraft(c.UserContext(), date, &draft, uploads)
	if uploadErr != nil {
		logUnexpected("upload journal media", uploadErr)
	}
	return handler.reopenEditor(c, date, draft, uploadErr, "Media uploaded")
}

func (handler *Handler) DeleteJournalMedia(c *fiber.Ctx) error {
	date := c.Params("date")
	draft, ok, err := handler.postedDraft(c, date)
	if !ok {
		return err
	}

	_, deleteErr := handler.journal.DeleteMedia(c.UserContext(), date, c.Params("id"))
	if deleteErr != nil {
		logUnexpected("delete journal media", deleteErr)
	}
	return handler.reopenEditor(c, date, draft, deleteErr, "Media removed")
}

// ReorderJournalEntry drops one display item onto another from the read
// view. The result is reported through the flash cookie.
func (handler *Handler) ReorderJournalEntry(c *fiber.Ctx) error {
	date := c.Params("date")
	dragged, target, ok := parseMovePair(c.FormValue("move"))
	if !ok {
		dragged = strings.TrimSpace(c.FormValue("dragged"))
		target = strings.TrimSpace(c.FormValue("target"))
	}
	if dragged == "" || target == "" {
		handler.setFlashCookie(c, FlashPayload{JournalError: "invalid reorder"})
		return c.Redirect(journalPath(date), fiber.StatusSeeOther)
	}

	if _, err := handler.journal.ReorderByID(c.UserContext(), date, dragged, target); err != nil {
		logUnexpected("reorder journal entry", err)
		return handler.redirectWithJournalError(c, journalPath(date), err, "Failed to reorder entry")
	}
	return c.Redirect(journalPath(date), fiber.StatusSeeOther)
}

// postedDraft reads the editor fields against the stored entry for date.
// When it returns false the response has already been written.
func (handler *Handler) postedDraft(c *fiber.Ctx, date string) (services.Draft, bool, error) {
	session, err := handler.journal.OpenSession(c.UserContext(), date)
	if err != nil {
		return services.Draft{}, false, handler.redirectWithJournalError(c, "/", err, "Failed to read entries")
	}
	return draftFromForm(c, currentEntry(session)), true, nil
}

func (handler *Handler) reopenEditor(c *fiber.Ctx, date string, draft services.Draft, actionErr error, success string) error {
	session, err := handler.journal.OpenSession(c.UserContext(), date)
	if err != nil {
		return handler.redirectWithJournalError(c, "/", err, "Failed to read entries")
	}
	if err := session.ResumeDraft(draft.Title, draft.Blocks); err != nil {
		return handler.redirectWithJournalError(c, journalPath(session.SelectedDate()), err, "failed to start editing")
	}
	if actionErr != nil {
		return handler.renderEditor(c, session, actionErr, "")
	}
	return handler.renderEditor(c, session, nil, success)
}

func (handler *Handler) renderEditor(c *fiber.Ctx, session *services.Session, actionErr error, success string) error {
	options := journalViewOptions{SuccessMessage: success}
	if actionErr != nil {
		_, options.ErrorMessage = serviceErrorStatus(actionErr, "Failed to save entry")
		if errors.Is(actionErr, errUnknownEditorAction) {
			options.ErrorMessage = actionErr.Error()
		}
	}
	return handler.render(c, "journal", handler.buildJournalPageData(session, options))
}

func (handler *Handler) redirectWithJournalError(c *fiber.Ctx, path string, err error, fallback string) error {
	status, message := serviceErrorStatus(err, fallback)
	if status == fiber.StatusInternalServerError {
		log.Printf("journal page: %v", err)
	}
	handler.setFlashCookie(c, FlashPayload{JournalError: message})
	return c.Redirect(path, fiber.StatusSeeOther)
}

func currentEntry(session *services.Session) *models.Entry {
	entry, found := session.Current()
	if !found {
		return nil
	}
	return &entry
}
