package serverutils

import (
	"errors"

	"groupchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the chat error taxonomy onto HTTP
// statuses. Controllers just return errors; the mapping lives here.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		status := statusForError(err)
		body := ErrorBody{
			Success: false,
			Code:    status,
			Error:   err.Error(),
		}
		// Stable machine-readable code alongside the human message.
		return ctx.Status(status).JSON(fiber.Map{
			"success": body.Success,
			"code":    service.ErrorCode(err),
			"error":   body.Error,
		})
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrNotAMember):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrReactionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrRoomFull),
		errors.Is(err, service.ErrRoomAlreadyExists),
		errors.Is(err, service.ErrDuplicateReaction):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrEmptyBody),
		errors.Is(err, service.ErrBodyTooLong),
		errors.Is(err, service.ErrEmojiTooLong):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
