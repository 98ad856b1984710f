package files

import (
	"storage-gateway/core/errs"

	"github.com/gofiber/fiber/v2"
)

// Status maps a storage error to the HTTP status returned to clients.
func Status(err error) int {
	switch errs.KindOf(err) {
	case errs.KindInvalidKey:
		return fiber.StatusBadRequest
	case errs.KindNotFound:
		return fiber.StatusNotFound
	case errs.KindNotConfigured:
		return fiber.StatusServiceUnavailable
	case errs.KindQuota:
		return fiber.StatusInsufficientStorage
	case errs.KindAuth, errs.KindIO:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := Status(err)
	if c.Method() == fiber.MethodHead {
		return c.SendStatus(status)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  errs.KindOf(err).String(),
	})
}
