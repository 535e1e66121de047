// Package status содержит HTTP-обработчик состояния хранилища.
package status

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userapi/internal/users/adapters/http/middleware"
	"userapi/internal/users/adapters/http/response"
	"userapi/internal/users/app/dto"
	"userapi/internal/users/app/usecases"
	"userapi/pkg/logger"
)

// Handler обрабатывает GET /status.
type Handler struct {
	getStatus    *usecases.GetStatus
	databaseName string
}

// NewHandler создает обработчик. databaseName берется из конфигурации.
func NewHandler(getStatus *usecases.GetStatus, databaseName string) *Handler {
	return &Handler{getStatus: getStatus, databaseName: databaseName}
}

// GetStatus отвечает текущим состоянием хранилища.
func (h *Handler) GetStatus(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetStatus"))

	out, err := h.getStatus.Execute(requestCtx, dto.StatusInput{DatabaseName: h.databaseName})
	if err != nil {
		log.Error(requestCtx, "failed to get status", zap.Error(err))
		return response.Error(ctx, err)
	}
	return response.JSON(ctx, fiber.StatusOK, out)
}
