package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userapi/internal/users/adapters/factory"
	httpadapter "userapi/internal/users/adapters/http"
	"userapi/internal/users/adapters/postgres"
	"userapi/internal/users/app/services"
	"userapi/internal/users/app/usecases"
	"userapi/internal/users/config"
	"userapi/internal/users/db"
	"userapi/pkg/logger"
	"userapi/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "ENVIRONMENT"
	EnvLoggerLevel = "LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrStorageKind          = "invalid storage type"
	ErrInitDatabase         = "failed to initialize database"
	ErrInitRepositories     = "failed to initialize repositories"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrDatabaseNotReady     = "database is not ready"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "users service started"
	LogServiceShutdownDone = "users service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitRepositories    = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
	LogDatabaseReady       = "database is ready"
)

const readinessTimeout = 5 * time.Second

func main() {
	envPath := flag.String("env", ".env", "path to the .env file")
	flag.Parse()

	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, *envPath)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", cfg.Logging.Mode),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("storage", cfg.Database.Type),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		kind, err := factory.ParseStorageKind(cfg.Database.Type)
		if err != nil {
			log.Error(ctx, ErrStorageKind, zap.Error(err))
			exitCode = 1
			return
		}

		var (
			database *db.DB
			pool     postgres.PgxPoolInterface
		)
		if kind == factory.Postgres {
			log.Info(ctx, LogInitDatabase)
			database, err = db.New(ctx, &cfg.Database)
			if err != nil {
				log.Error(ctx, ErrInitDatabase, zap.Error(err))
				exitCode = 1
				return
			}
			pool = database.Pool()
		}

		log.Info(ctx, LogInitRepositories, zap.String("kind", string(kind)))
		repos, err := factory.New(kind, pool)
		if err != nil {
			log.Error(ctx, ErrInitRepositories, zap.Error(err))
			exitCode = 1
			if database != nil {
				database.Close(ctx)
			}
			return
		}

		log.Info(ctx, LogInitServices)
		uc := usecases.NewSet(
			services.NewUserService(repos.UserRepository()),
			services.NewStatusService(repos.StatusRepository()),
		)

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpadapter.SetupRouter(app, uc, cfg.Database.Database)

		if database != nil {
			readyCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
			err := database.Ping(readyCtx)
			cancel()
			if err != nil {
				log.Error(ctx, ErrDatabaseNotReady, zap.Error(err))
				exitCode = 1
				database.Close(ctx)
				return
			}
			log.Info(ctx, LogDatabaseReady)
		}

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				if err := app.ShutdownWithContext(ctx); err != nil {
					return fmt.Errorf("http shutdown: %w", err)
				}
				if database != nil {
					log.Info(ctx, LogClosingDatabase)
					database.Close(ctx)
				}
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
