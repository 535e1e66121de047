package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userapi/internal/users/adapters/http/response"
	"userapi/pkg/logger"
)

// LogHandlerPanic пишется при панике обработчика.
const LogHandlerPanic = "handler panicked"

// NewRecoveryMiddleware превращает панику обработчика в ответ 500 с телом {"error": ...}.
// Значение паники и стек попадают только в лог.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			requestCtx := RequestContext(ctx)
			logger.Log(requestCtx).Error(requestCtx, LogHandlerPanic,
				zap.Any("panic", r),
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.Path()),
				zap.Stack("stack"))

			err = response.Message(ctx, fiber.StatusInternalServerError, response.MsgInternalError)
		}()

		return ctx.Next()
	}
}
