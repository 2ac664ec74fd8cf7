package api

import (
	"bytes"
	"log"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}
	payload := handler.withTemplateDefaults(c, data)
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", payload); err != nil {
		log.Printf("render %s: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = "daylog"
	}
	if _, ok := data["CurrentUser"]; !ok {
		if user, found := currentUser(c); found {
			data["CurrentUser"] = user
		} else {
			data["CurrentUser"] = nil
		}
	}
	return data
}
