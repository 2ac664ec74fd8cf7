package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daylog/internal/services"
)

const uploadFieldName = "file"

// UploadMedia stores one file without attaching it to an entry.
func (handler *Handler) UploadMedia(c *fiber.Ctx) error {
	uploads, err := readUploads(c)
	if err != nil || len(uploads) == 0 {
		return apiError(c, fiber.StatusBadRequest, "No file provided")
	}

	item, err := handler.journal.StoreMedia(c.UserContext(), uploads[0])
	if err != nil {
		logUnexpected("upload media", err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to upload file")
	}
	return c.JSON(mediaUploadResponse{
		ID:   item.ID,
		Name: item.Name,
		URL:  item.URL,
	})
}

func (handler *Handler) ServeMedia(c *fiber.Ctx) error {
	blob, err := handler.journal.OpenMedia(c.UserContext(), c.Params("filename"))
	if err != nil {
		logUnexpected("serve media", err)
		return respondServiceError(c, err, "Failed to read file")
	}

	c.Set(fiber.HeaderContentType, blob.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", blob.Filename))
	return c.Send(blob.Data)
}

// readUploads collects every file posted under the upload field. A request
// that is not multipart carries no uploads.
func readUploads(c *fiber.Ctx) ([]services.MediaUpload, error) {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	headers := form.File[uploadFieldName]
	uploads := make([]services.MediaUpload, 0, len(headers))
	for _, header := range headers {
		upload, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func readUpload(header *multipart.FileHeader) (services.MediaUpload, error) {
	file, err := header.Open()
	if err != nil {
		return services.MediaUpload{}, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return services.MediaUpload{}, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}
	return services.MediaUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}
