package api

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daylog/internal/models"
)

func (handler *Handler) GetEntries(c *fiber.Ctx) error {
	entries, err := handler.journal.ListEntries(c.UserContext())
	if err != nil {
		log.Printf("list entries: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to read entries")
	}
	return c.JSON(entries)
}

// ReplaceEntries overwrites the whole entry document with the posted array.
// Every failure, including a document that is not an array of valid
// entries, is reported as a failed save.
func (handler *Handler) ReplaceEntries(c *fiber.Ctx) error {
	entries := make([]models.Entry, 0)
	if err := json.Unmarshal(c.Body(), &entries); err != nil || entries == nil {
		log.Printf("replace entries: decode body: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to save entries")
	}
	for index := range entries {
		entries[index].Normalize()
	}

	if err := handler.journal.ReplaceEntries(c.UserContext(), entries); err != nil {
		log.Printf("replace entries: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to save entries")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (handler *Handler) GetEntry(c *fiber.Ctx) error {
	entry, err := handler.journal.EntryForDate(c.UserContext(), c.Params("date"))
	if err != nil {
		return respondServiceError(c, err, "Failed to read entries")
	}
	return c.JSON(entry)
}

func (handler *Handler) PutEntry(c *fiber.Ctx) error {
	payload := entryPayload{}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, err := handler.journal.SaveEntry(c.UserContext(), c.Params("date"), payload.Title, payload.TextBlocks)
	if err != nil {
		logUnexpected("save entry", err)
		return respondServiceError(c, err, "Failed to save entry")
	}
	return c.JSON(entry)
}

func (handler *Handler) UploadEntryMedia(c *fiber.Ctx) error {
	uploads, err := readUploads(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid upload")
	}

	entry, err := handler.journal.UploadMedia(c.UserContext(), c.Params("date"), uploads)
	if err != nil {
		logUnexpected("upload entry media", err)
		return respondServiceError(c, err, "Failed to upload file")
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteEntryMedia(c *fiber.Ctx) error {
	entry, err := handler.journal.DeleteMedia(c.UserContext(), c.Params("date"), c.Params("id"))
	if err != nil {
		logUnexpected("delete entry media", err)
		return respondServiceError(c, err, "Failed to delete media")
	}
	return c.JSON(entry)
}

func (handler *Handler) ReorderEntry(c *fiber.Ctx) error {
	payload, err := parseReorderPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid reorder")
	}

	var entry models.Entry
	if payload.From != nil && payload.To != nil {
		entry, err = handler.journal.Reorder(c.UserContext(), c.Params("date"), *payload.From, *payload.To)
	} else {
		entry, err = handler.journal.ReorderByID(c.UserContext(), c.Params("date"), payload.Dragged, payload.Target)
	}
	if err != nil {
		logUnexpected("reorder entry", err)
		return respondServiceError(c, err, "Failed to reorder entry")
	}
	return c.JSON(entry)
}

// logUnexpected logs errors that will surface as a 500.
func logUnexpected(operation string, err error) {
	if status, _ := serviceErrorStatus(err, ""); status == fiber.StatusInternalServerError {
		log.Printf("%s: %v", operation, err)
	}
}
