package config

import "time"

// ShutdownConfig задает время на корректное завершение.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает таймаут завершения.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
