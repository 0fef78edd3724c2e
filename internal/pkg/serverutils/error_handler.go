package serverutils

import (
	"errors"

	"notevault-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the error taxonomy to HTTP statuses:
// validation 422, precondition 409, not found 404, store 502. Anything
// else is a plain 500. Nothing is retried here; the client decides.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = fiber.StatusUnprocessableEntity
		case errors.Is(err, apperror.ErrPrecondition):
			status = fiber.StatusConflict
		case errors.Is(err, apperror.ErrNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, apperror.ErrStore):
			status = fiber.StatusBadGateway
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}
