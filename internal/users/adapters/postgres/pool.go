// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// PgxPoolInterface покрывает методы пула, нужные репозиториям.
// Реализуется *pgxpool.Pool и пулом pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
