package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"userapi/internal/users/domain/entities"
	"userapi/internal/users/ports/repositories"
	"userapi/pkg/logger"
)

const (
	ErrServerVersion     = "failed to query server version"
	ErrMaxConnections    = "failed to query max connections"
	ErrActiveConnections = "failed to query active connections"
	ErrGetStatus         = "failed to get database status"
)

const (
	serverVersionQuery  = "SHOW server_version"
	maxConnectionsQuery = "SELECT current_setting('max_connections')::int"
)

// StatusRepository читает состояние сервера PostgreSQL.
type StatusRepository struct {
	pool PgxPoolInterface
}

// NewStatusRepository создает репозиторий состояния.
func NewStatusRepository(pool PgxPoolInterface) repositories.StatusRepository {
	return &StatusRepository{pool: pool}
}

// GetStatus выполняет три запроса параллельно.
// Ошибка любого из них отменяет остальные, частичный результат не возвращается.
func (r *StatusRepository) GetStatus(ctx context.Context, databaseName string) (*entities.Status, error) {
	log := logger.Log(ctx).With(zap.String("method", "StatusRepository.GetStatus"), zap.String("database", databaseName))

	var (
		version           string
		maxConnections    int
		activeConnections int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, serverVersionQuery).Scan(&version); err != nil {
			return entities.NewStorageError(ErrServerVersion, err)
		}
		return nil
	})

	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, maxConnectionsQuery).Scan(&maxConnections); err != nil {
			return entities.NewStorageError(ErrMaxConnections, err)
		}
		return nil
	})

	g.Go(func() error {
		query, args, err := psql.Select("count(*)::int").
			From("pg_stat_activity").
			Where(sq.Eq{"datname": databaseName}).
			ToSql()
		if err != nil {
			return entities.NewStorageError(ErrBuildQuery, err)
		}
		if err := r.pool.QueryRow(gctx, query, args...).Scan(&activeConnections); err != nil {
			return entities.NewStorageError(ErrActiveConnections, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error(ctx, ErrGetStatus, zap.Error(err))
		return nil, err
	}

	return entities.NewStatus(maxConnections, activeConnections, version), nil
}
