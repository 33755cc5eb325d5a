package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"signpubliq/internal/domain/entity"
)

// respondError maps the domain error taxonomy onto HTTP statuses and
// the standard error envelope.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse("SESSION_NOT_FOUND", err.Error()),
		)
	case errors.Is(err, entity.ErrSessionLocked):
		return c.Status(fiber.StatusConflict).JSON(
			entity.NewErrorResponse("SESSION_LOCKED", err.Error()),
		)
	case errors.Is(err, entity.ErrSendInFlight):
		return c.Status(fiber.StatusConflict).JSON(
			entity.NewErrorResponse("SEND_IN_FLIGHT", err.Error()),
		)
	case errors.Is(err, entity.ErrIncompleteEnvelope):
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("INCOMPLETE_ENVELOPE", err.Error()),
		)
	case errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrMissingRecipient),
		errors.Is(err, entity.ErrMissingDocument):
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("VALIDATION_ERROR", err.Error()),
		)
	case errors.Is(err, entity.ErrStorageFailure):
		return c.Status(fiber.StatusServiceUnavailable).JSON(
			entity.NewErrorResponse("STORAGE_FAILURE", err.Error()),
		)
	case errors.Is(err, entity.ErrSendFailed):
		return c.Status(fiber.StatusBadGateway).JSON(
			entity.NewErrorResponse("SEND_FAILED", err.Error()),
		)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
}
