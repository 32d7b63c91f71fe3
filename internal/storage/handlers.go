package storage

import (
	"errors"

	"github.com/RRRRRRR-777/TokoToko-sub005/internal/walk"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/walks/:id/thumbnail", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID      string `json:"user_id"`
			FileName    string `json:"file_name"`
			ContentType string `json:"content_type"`
			Data        []byte `json:"data"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
			body.UserID = userID
		}
		if body.FileName == "" {
			body.FileName = "thumbnail.jpg"
		}
		if body.ContentType == "" {
			body.ContentType = "image/jpeg"
		}

		url, err := svc.AttachThumbnail(c.Context(), c.Params("id"), body.UserID, body.FileName, body.ContentType, body.Data)
		if err != nil {
			if errors.Is(err, walk.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"thumbnail_image_url": url})
	})
}
