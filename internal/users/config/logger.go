package config

import "userapi/pkg/logger"

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"ENVIRONMENT" env-default:"development"`
}

// GetEnvironment переводит ENVIRONMENT в режим логгера.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}
