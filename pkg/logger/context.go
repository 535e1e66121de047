package logger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Ошибки пакета logger.
var (
	ErrLoggerNotFound   = errors.New("logger not found in context")
	ErrInitGlobalLogger = errors.New("failed to initialize global logger")
)

var (
	globalMu sync.RWMutex
	global   *Logger
	fallback *Logger
)

type loggerKey struct{}

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zl, err := cfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}
	fallback = &Logger{l: zl.With(zap.String("logger", "fallback"))}
}

// NewContext кладет logger в контекст.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext достает logger из контекста.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context: %w", ErrLoggerNotFound)
	}
	l, ok := ctx.Value(loggerKey{}).(*Logger)
	if !ok {
		return nil, fmt.Errorf("context lookup: %w", ErrLoggerNotFound)
	}
	return l, nil
}

// InitGlobalLogger создает глобальный logger, если он еще не задан.
func InitGlobalLogger(env Environment) error {
	return InitGlobalLoggerWithLevel(env, "")
}

// InitGlobalLoggerWithLevel создает глобальный logger с уровнем, если он еще не задан.
func InitGlobalLoggerWithLevel(env Environment, level string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return nil
	}

	l, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	global = l
	return nil
}

// SetGlobalLogger заменяет глобальный logger. nil сбрасывает его.
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

// Log возвращает logger из контекста, затем глобальный, затем резервный.
func Log(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*Logger); ok {
			return l
		}
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	if global != nil {
		return global
	}
	return fallback
}
