package config

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// DatabaseConfig содержит выбор хранилища и настройки подключения к Postgres.
type DatabaseConfig struct {
	Type          string `yaml:"type" env:"DB_TYPE" env-default:"memory"`
	Host          string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port          int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User          string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password      string `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
	Database      string `yaml:"database" env:"DB_DATABASE" env-default:"postgres"`
	MinConn       int    `yaml:"min_conn" env:"DB_MIN_CONN" env-default:"1"`
	MaxConn       int    `yaml:"max_conn" env:"DB_MAX_CONN" env-default:"12"`
	MigrationsDir string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR" env-default:"migrations/users"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *DatabaseConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// GetMigrationsSourceURL возвращает file:// URL каталога миграций.
func (p *DatabaseConfig) GetMigrationsSourceURL() (string, error) {
	abs, err := filepath.Abs(p.MigrationsDir)
	if err != nil {
		return "", fmt.Errorf("resolve migrations dir %q: %w", p.MigrationsDir, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
