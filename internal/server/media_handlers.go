package server

import (
	"io"

	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadNewsImage handles POST /news/upload/latestNewsImage
//
// Multipart form: "userId" and "ticketId" fields plus the binary under
// the "image" field. The ticketId field carries the owning news post's
// id; the name is part of the published upload contract.
func (s *Server) UploadNewsImage(c *fiber.Ctx) error {
	ctx := c.Context()

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("no image payload transmitted"))
	}

	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader == nil {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("image attachment is missing"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewServerError(err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, models.NewServerError(err))
	}

	asset, err := s.mediaService.BindImage(ctx, service.BindImageInput{
		UserID:      formValue(form.Value, "userId"),
		OwnerPostID: formValue(form.Value, "ticketId"),
		FileName:    fileHeader.Filename,
		Data:        data,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(asset)
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}
