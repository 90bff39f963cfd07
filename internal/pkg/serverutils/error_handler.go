package serverutils

import (
	"errors"
	"log"

	"github.com/cleanaz-dev/hueline-sub000/internal/repository/contract"
	"github.com/cleanaz-dev/hueline-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses so
// controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		switch {
		case errors.Is(err, service.ErrSessionNotFound),
			errors.Is(err, service.ErrItemNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))

		case errors.Is(err, contract.ErrVersionConflict):
			// Stale optimistic token: the caller must re-read and retry
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(err.Error()))

		case errors.Is(err, service.ErrRoomExists),
			errors.Is(err, service.ErrSessionEnded):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(err.Error()))

		case errors.Is(err, service.ErrInvalidRole),
			errors.Is(err, service.ErrReservedArea),
			errors.Is(err, service.ErrUnknownType),
			errors.Is(err, service.ErrMissingCounts):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		}

		log.Printf("Unhandled error on %s %s: %v", ctx.Method(), ctx.Path(), err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
