// Package db подготавливает базу данных сервиса пользователей.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"userapi/internal/users/config"
	"userapi/pkg/db/postgres"
	"userapi/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing users database"
	LogDBInitialized     = "users database initialized successfully"
	LogMigrationStarting = "starting users database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply users database migrations"
	ErrDBConnection      = "failed to connect to users database"
	ErrDBCheckConnection = "error checking the database connection"
)

const applicationName = "userapi"

// DB представляет подготовленное соединение с базой пользователей.
type DB struct {
	database *postgres.Database
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	sourceURL, err := cfg.GetMigrationsSourceURL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", sourceURL))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), sourceURL); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, postgres.Options{
		DSN:             cfg.GetDSN(),
		MinConns:        cfg.MinConn,
		MaxConns:        cfg.MaxConn,
		ApplicationName: applicationName,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)
	return &DB{database: database}, nil
}

// Close закрывает пул.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных. Используется как проверка готовности перед запуском HTTP.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
