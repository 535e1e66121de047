package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userapi/pkg/logger"
)

const (
	LogRequestServed      = "request served"
	LogRequestClientError = "request rejected"
	LogRequestServerError = "request failed"
)

// NewLoggerMiddleware пишет одну запись на запрос после его обработки.
// Уровень зависит от статуса: 5xx пишется как error, 4xx как warn.
// Ошибка обработчика возвращается без изменений, чтобы ее разобрал ErrorHandler fiber.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		requestCtx := RequestContext(ctx)

		status := responseStatus(ctx, err)
		fields := []zap.Field{
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("bytes_out", len(ctx.Response().Body())),
			zap.String("ip", ctx.IP()),
			zap.String("user_agent", ctx.Get(fiber.HeaderUserAgent)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		log := logger.Log(requestCtx)
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error(requestCtx, LogRequestServerError, fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn(requestCtx, LogRequestClientError, fields...)
		default:
			log.Info(requestCtx, LogRequestServed, fields...)
		}
		return err
	}
}

// responseStatus учитывает, что при ошибке обработчика статус еще не записан в ответ.
func responseStatus(ctx fiber.Ctx, err error) int {
	if err == nil {
		return ctx.Response().StatusCode()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
