package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// NewRequestIDContext сохраняет идентификатор запроса в контексте.
// Пустой идентификатор заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID возвращает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// GenerateRequestID генерирует UUID v4.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID возвращает копию logger с полем request_id из контекста.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	if id, ok := GetRequestID(ctx); ok {
		return l.With(zap.String(RequestID, id))
	}
	return l
}
