package walk

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Walk
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if userID := localUserID(c); userID != "" {
			req.UserID = userID
		}
		if req.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		w, err := svc.CreateWalk(c.Context(), req)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToResponse(w))
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID := localUserID(c)
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		page := ParsePage(c.Query("page"), c.Query("limit"))
		walks, total, err := svc.ListWalks(c.Context(), userID, page)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(ToListResponse(walks, total, page))
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		w, err := svc.GetWalk(c.Context(), c.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(ToResponse(w))
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Walk
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		w, err := svc.UpdateWalk(c.Context(), c.Params("id"), req)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(ToResponse(w))
	})

	r.Post("/:id/start", authMiddleware, transitionHandler(svc.StartWalk))
	r.Post("/:id/pause", authMiddleware, transitionHandler(svc.PauseWalk))
	r.Post("/:id/resume", authMiddleware, transitionHandler(svc.ResumeWalk))

	r.Post("/:id/complete", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			TotalSteps int `json:"total_steps"`
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}
		w, err := svc.CompleteWalk(c.Context(), c.Params("id"), body.TotalSteps)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(ToResponse(w))
	})

	r.Post("/:id/locations", authMiddleware, func(c *fiber.Ctx) error {
		var req LocationSample
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		sample, err := svc.AppendLocation(c.Context(), c.Params("id"), req)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(sample)
	})

	r.Get("/:id/locations", func(c *fiber.Ctx) error {
		samples, err := svc.Locations(c.Context(), c.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(samples)
	})
}

func transitionHandler(op func(context.Context, string) (Walk, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, err := op(c.Context(), c.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(ToResponse(w))
	}
}

func localUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_id").(string); ok {
		return v
	}
	return ""
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrOutOfRange):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrWalkCompleted),
		errors.Is(err, ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
