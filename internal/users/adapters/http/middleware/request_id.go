// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"userapi/pkg/logger"
)

// HeaderRequestID передает идентификатор запроса.
const HeaderRequestID = "X-Request-ID"

const localsRequestContext = "requestContext"

// NewRequestIDMiddleware берет X-Request-ID из запроса или генерирует новый,
// возвращает его в ответе и кладет в контекст запроса.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		requestCtx := logger.NewRequestIDContext(ctx.Context(), requestID)

		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}
		ctx.Locals(localsRequestContext, requestCtx)

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с request id.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(localsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
