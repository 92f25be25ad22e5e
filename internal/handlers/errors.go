package handlers

import (
	"errors"

	"ordermgmt/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError translates a typed domain failure into an HTTP response.
// Services never deal in status codes; this mapping is the only place
// where the taxonomy meets the protocol.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *models.ValidationError

	switch {
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrDuplicateSKU),
		errors.Is(err, models.ErrProductUnavailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrEmptyOrder), errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
			"error":   err.Error(),
		})
	}
}
