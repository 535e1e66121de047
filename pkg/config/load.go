// Package config загружает конфигурацию из .env файла и переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"userapi/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgEnvFileMissing       = "env file not found, reading process environment only"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgFailedLoad           = "failed to load configuration"

	errFailedLoadConfiguration = "failed to load configuration"
	errFailedStatEnvFile       = "failed to stat env file"
	errFailedReadEnvFile       = "failed to read env file"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет T из envPath (если файл существует) и переменных окружения.
// Файл дополняет окружение процесса, но не перекрывает уже заданные переменные.
// Пустой envPath означает чтение только окружения.
func Load[T any](ctx context.Context, serviceName, envPath string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))
	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, envPath))

	var cfg T

	if envPath != "" {
		if err := loadEnvFile(envPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Error(ctx, errFailedReadEnvFile, zap.Error(err))
				return nil, fmt.Errorf("%s: %w", errFailedReadEnvFile, err)
			}
			log.Debug(ctx, msgEnvFileMissing, zap.String(attrPath, envPath))
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, msgFailedLoad, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}

// loadEnvFile выставляет в окружение только отсутствующие в нем переменные из файла.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s: %w", errFailedStatEnvFile, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
