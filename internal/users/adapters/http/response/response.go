// Package response формирует JSON ответы и отображает ошибки в HTTP статусы.
package response

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"userapi/internal/users/domain/entities"
)

// Тексты ошибок в ответах.
const (
	MsgInvalidEmail  = "Invalid email address"
	MsgValidation    = "Validation failed"
	MsgUserNotFound  = "User not found"
	MsgInternalError = "Internal server error"
	MsgInvalidUserID = "Invalid user id"
	MsgInvalidBody   = "Invalid request body"
	MsgRouteNotFound = "Route not found"
)

// JSON отправляет body со статусом status.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Message отправляет {"error": msg}.
func Message(ctx fiber.Ctx, status int, msg string) error {
	return JSON(ctx, status, fiber.Map{"error": msg})
}

// Error отображает доменную ошибку в статус.
// Детали ошибок хранилища клиенту не передаются.
func Error(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrInvalidEmail):
		return Message(ctx, fiber.StatusBadRequest, MsgInvalidEmail)
	case errors.Is(err, entities.ErrValidation):
		return Message(ctx, fiber.StatusBadRequest, MsgValidation)
	case errors.Is(err, entities.ErrUserNotFound):
		return Message(ctx, fiber.StatusNotFound, MsgUserNotFound)
	default:
		return Message(ctx, fiber.StatusInternalServerError, MsgInternalError)
	}
}
