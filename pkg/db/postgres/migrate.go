package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер postgres://
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник file://
	"go.uber.org/zap"

	"userapi/pkg/logger"
)

const (
	LogMigrationsApplied  = "database migrations applied"
	LogMigrationsUpToDate = "database schema is up to date"

	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
)

// MigrateDSN применяет все миграции из sourceURL (file://...) к базе databaseURL.
func MigrateDSN(ctx context.Context, databaseURL, sourceURL string) error {
	log := logger.Log(ctx).With(zap.String("source", sourceURL))

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, "failed to close migrator", zap.NamedError("source_error", srcErr), zap.NamedError("database_error", dbErr))
		}
	}()

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info(ctx, LogMigrationsUpToDate)
		return nil
	case err != nil:
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}
