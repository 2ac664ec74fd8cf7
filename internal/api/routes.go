package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	app.Get("/login", handler.ShowLoginPage)
	app.Get("/", handler.AuthRequired, handler.ShowJournal)

	journal := app.Group("/journal/:date", handler.AuthRequired)
	journal.Post("/edit", handler.EditJournalEntry)
	journal.Post("/media", handler.UploadJournalMedia)
	journal.Post("/media/:id/delete", handler.DeleteJournalMedia)
	journal.Post("/reorder", handler.ReorderJournalEntry)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/session", handler.Session)

	entries := api.Group("/entries")
	entries.Get("", handler.GetEntries)
	entries.Post("", handler.ReplaceEntries)
	entries.Get("/:date", handler.GetEntry)
	entries.Put("/:date", handler.PutEntry)
	entries.Post("/:date/media", handler.UploadEntryMedia)
	entries.Delete("/:date/media/:id", handler.DeleteEntryMedia)
	entries.Post("/:date/reorder", handler.ReorderEntry)

	api.Post("/media", handler.UploadMedia)
	api.Get("/media/:filename", handler.ServeMedia)

	api.Get("/search", handler.Search)
	api.Get("/calendar", handler.Calendar)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
