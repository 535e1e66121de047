// Package users содержит HTTP-обработчики CRUD операций над пользователями.
package users

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userapi/internal/users/adapters/http/middleware"
	"userapi/internal/users/adapters/http/response"
	"userapi/internal/users/app/dto"
	"userapi/internal/users/app/usecases"
	"userapi/internal/users/domain/entities"
	"userapi/pkg/logger"
)

const (
	LogHandlerListUsers  = "handling list users request"
	LogHandlerGetUser    = "handling get user request"
	LogHandlerCreateUser = "handling create user request"
	LogHandlerUpdateUser = "handling update user request"
	LogHandlerDeleteUser = "handling delete user request"

	LogRequestRejected = "request rejected"
	LogRequestFailed   = "request failed"
)

// Handler обрабатывает запросы /users и /user/:id.
type Handler struct {
	uc *usecases.Set
}

// NewHandler создает обработчик пользователей.
func NewHandler(uc *usecases.Set) *Handler {
	return &Handler{uc: uc}
}

// ListUsers отвечает списком всех пользователей.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(requestCtx, LogHandlerListUsers)

	users, err := h.uc.ReadUsers.Execute(requestCtx)
	if err != nil {
		return fail(ctx, log, err)
	}
	return response.JSON(ctx, fiber.StatusOK, users)
}

// GetUser отвечает пользователем с ID из пути.
func (h *Handler) GetUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetUser"))
	log.Debug(requestCtx, LogHandlerGetUser)

	id, err := userID(ctx)
	if err != nil {
		log.Debug(requestCtx, response.MsgInvalidUserID, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidUserID)
	}

	user, err := h.uc.ReadUser.Execute(requestCtx, dto.UserIDInput{ID: id})
	if err != nil {
		return fail(ctx, log, err)
	}
	return response.JSON(ctx, fiber.StatusOK, user)
}

// CreateUser создает пользователя и отвечает 201 с его данными.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(requestCtx, LogHandlerCreateUser)

	var req dto.CreateUserInput
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, response.MsgInvalidBody, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidBody)
	}

	user, err := h.uc.CreateUser.Execute(requestCtx, req)
	if err != nil {
		return fail(ctx, log, err)
	}
	return response.JSON(ctx, fiber.StatusCreated, user)
}

// UpdateUser полностью заменяет имя и email пользователя.
func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateUser"))
	log.Debug(requestCtx, LogHandlerUpdateUser)

	id, err := userID(ctx)
	if err != nil {
		log.Debug(requestCtx, response.MsgInvalidUserID, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidUserID)
	}

	var req dto.UpdateUserInput
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, response.MsgInvalidBody, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidBody)
	}
	req.ID = id

	user, err := h.uc.UpdateUser.Execute(requestCtx, req)
	if err != nil {
		return fail(ctx, log, err)
	}
	return response.JSON(ctx, fiber.StatusOK, user)
}

// DeleteUser удаляет пользователя и отвечает 204.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteUser"))
	log.Debug(requestCtx, LogHandlerDeleteUser)

	id, err := userID(ctx)
	if err != nil {
		log.Debug(requestCtx, response.MsgInvalidUserID, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidUserID)
	}

	if _, err := h.uc.DeleteUser.Execute(requestCtx, dto.UserIDInput{ID: id}); err != nil {
		return fail(ctx, log, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func userID(ctx fiber.Ctx) (int, error) {
	return strconv.Atoi(ctx.Params("id"))
}

// fail логирует ошибку хранилища как Error, остальные как Debug.
func fail(ctx fiber.Ctx, log *logger.Logger, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	if errors.Is(err, entities.ErrStorage) {
		log.Error(requestCtx, LogRequestFailed, zap.Error(err))
	} else {
		log.Debug(requestCtx, LogRequestRejected, zap.Error(err))
	}
	return response.Error(ctx, err)
}
