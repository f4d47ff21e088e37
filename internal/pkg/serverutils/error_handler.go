package serverutils

import (
	"errors"

	"invoice-review-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors to HTTP statuses so controllers
// can simply return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if apperrors.IsValidation(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, err.Error()))
		}
		if apperrors.IsNotFound(err) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, err.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
	}
}
