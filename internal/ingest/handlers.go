package ingest

import (
	"github.com/RRRRRRR-777/TokoToko-sub005/internal/walk"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes exposes the batch ingestion endpoint. Devices sample GPS
// at high frequency and upload in bursts; the queue absorbs them and
// replies 202 before storage happens.
func RegisterRoutes(r fiber.Router, q *Queue, authMiddleware fiber.Handler) {
	r.Post("/walks/:id/locations", authMiddleware, func(c *fiber.Ctx) error {
		var samples []walk.LocationSample
		if err := c.BodyParser(&samples); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if len(samples) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "at least one sample required")
		}

		walkID := c.Params("id")
		accepted := 0
		for _, s := range samples {
			// Bounds are checked up front so an obviously bad batch fails
			// loudly instead of being silently dropped by the consumer.
			if err := s.ValidateCoordinates(); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			if q.Enqueue(Update{WalkID: walkID, Sample: s}) {
				accepted++
			}
		}

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"accepted": accepted,
			"dropped":  len(samples) - accepted,
		})
	})
}
