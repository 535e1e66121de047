// Package config содержит конфигурацию сервиса пользователей.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "userapi/pkg/config"
	"userapi/pkg/logger"
)

const serviceName = "userapi"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "users service configuration loaded"
	ErrFailedLoadConfig = "failed to load users service configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load читает envPath (если файл есть) и переменные окружения.
func Load(ctx context.Context, envPath string) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, serviceName, envPath)
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("db_type", cfg.Database.Type),
		zap.String("db_host", cfg.Database.Host),
		zap.Int("db_port", cfg.Database.Port),
		zap.String("db_name", cfg.Database.Database),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("environment", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
