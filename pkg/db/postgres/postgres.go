// Package postgres создает пул соединений pgx и применяет миграции.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"userapi/pkg/logger"
)

const (
	LogOpeningPool = "opening postgres pool"
	LogPoolReady   = "postgres pool is ready"
	LogClosingPool = "closing postgres pool"
)

const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
	ErrPoolLimits   = "invalid pool limits"
)

const defaultPingTimeout = 5 * time.Second

// Options описывает пул соединений.
type Options struct {
	DSN      string
	MinConns int
	MaxConns int
	// ApplicationName попадает в pg_stat_activity.application_name.
	ApplicationName string
	// HealthCheckPeriod: ноль оставляет значение pgxpool.
	HealthCheckPeriod time.Duration
	// PingTimeout ограничивает проверку соединения при открытии. Ноль означает 5s.
	PingTimeout time.Duration
}

func (o Options) validate() error {
	if o.MaxConns <= 0 {
		return fmt.Errorf("max conns must be positive, got %d", o.MaxConns)
	}
	if o.MinConns < 0 || o.MinConns > o.MaxConns {
		return fmt.Errorf("min conns must be in [0, %d], got %d", o.MaxConns, o.MinConns)
	}
	return nil
}

func (o Options) poolConfig() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(o.DSN)
	if err != nil {
		return nil, err
	}
	cfg.MinConns = int32(o.MinConns) //nolint:gosec // ограничено validate
	cfg.MaxConns = int32(o.MaxConns) //nolint:gosec // ограничено validate
	if o.HealthCheckPeriod > 0 {
		cfg.HealthCheckPeriod = o.HealthCheckPeriod
	}
	if o.ApplicationName != "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = o.ApplicationName
	}
	return cfg, nil
}

// Database владеет пулом соединений.
type Database struct {
	pool *pgxpool.Pool
}

// New открывает пул по opts и убеждается, что база отвечает.
// Пул, не прошедший проверку, закрывается.
func New(ctx context.Context, opts Options) (*Database, error) {
	log := logger.Log(ctx).With(
		zap.Int("min_conns", opts.MinConns),
		zap.Int("max_conns", opts.MaxConns),
		zap.String("application_name", opts.ApplicationName))

	if err := opts.validate(); err != nil {
		log.Error(ctx, ErrPoolLimits, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPoolLimits, err)
	}

	cfg, err := opts.poolConfig()
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}

	log.Info(ctx, LogOpeningPool)
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	db := &Database{pool: pool}

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.Ping(pingCtx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, LogPoolReady)
	return db, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Ping проверяет, что база отвечает.
func (db *Database) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}
	return nil
}

// Close закрывает пул. Незавершенные запросы дожидаются освобождения соединений.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosingPool, zap.Int32("total_conns", db.pool.Stat().TotalConns()))
	db.pool.Close()
}
