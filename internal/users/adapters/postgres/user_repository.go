package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"userapi/internal/users/domain/entities"
	"userapi/internal/users/ports/repositories"
	"userapi/pkg/logger"
)

const usersTable = "users"

const (
	ErrBuildQuery   = "failed to build query"
	ErrSaveUser     = "failed to save user"
	ErrFindUser     = "failed to find user"
	ErrDeleteUser   = "failed to delete user"
	ErrListUsers    = "failed to list users"
	ErrScanUser     = "failed to scan user"
	ErrIterateUsers = "error iterating users"
	ErrFindLastUser = "failed to find last user"
	ErrUpdateUser   = "failed to update user"
	ErrDuplicateID  = "user with this id already exists"
)

const pgUniqueViolation = "23505"

var userColumns = []string{"id", "name", "email"}

const returningUser = "RETURNING id, name, email"

// UserRepository реализует repositories.UserRepository поверх PostgreSQL.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Save вставляет строку и возвращает ее из RETURNING.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.Save"))
	log.Debug(ctx, "saving user", zap.Int("id", user.ID))

	query, args, err := psql.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email).
		Suffix(returningUser).
		ToSql()
	if err != nil {
		return nil, entities.NewStorageError(ErrBuildQuery, err)
	}

	saved, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			log.Warn(ctx, ErrDuplicateID, zap.Int("id", user.ID))
			return nil, entities.NewStorageError(ErrDuplicateID, err)
		}
		log.Error(ctx, ErrSaveUser, zap.Error(err))
		return nil, entities.NewStorageError(ErrSaveUser, err)
	}

	return saved, nil
}

// FindByID возвращает (nil, nil), если строки нет.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.FindByID"))

	query, args, err := psql.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, entities.NewStorageError(ErrBuildQuery, err)
	}

	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int("id", id))
			return nil, nil
		}
		log.Error(ctx, ErrFindUser, zap.Error(err))
		return nil, entities.NewStorageError(ErrFindUser, err)
	}

	return user, nil
}

// Delete удаляет строку и возвращает ее прежнее содержимое.
func (r *UserRepository) Delete(ctx context.Context, id int) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.Delete"))

	query, args, err := psql.Delete(usersTable).
		Where(sq.Eq{"id": id}).
		Suffix(returningUser).
		ToSql()
	if err != nil {
		return nil, entities.NewStorageError(ErrBuildQuery, err)
	}

	deleted, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, ErrDeleteUser, zap.Error(err))
		return nil, entities.NewStorageError(ErrDeleteUser, err)
	}

	log.Debug(ctx, "user deleted", zap.Int("id", id))
	return deleted, nil
}

// List возвращает всех пользователей, упорядоченных по ID.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.List"))

	query, args, err := psql.Select(userColumns...).
		From(usersTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, entities.NewStorageError(ErrBuildQuery, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, ErrListUsers, zap.Error(err))
		return nil, entities.NewStorageError(ErrListUsers, err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, ErrScanUser, zap.Error(err))
			return nil, entities.NewStorageError(ErrScanUser, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterateUsers, zap.Error(err))
		return nil, entities.NewStorageError(ErrIterateUsers, err)
	}

	return users, nil
}

// FindLast возвращает пользователя с наибольшим ID.
func (r *UserRepository) FindLast(ctx context.Context) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.FindLast"))

	query, args, err := psql.Select(userColumns...).
		From(usersTable).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, entities.NewStorageError(ErrBuildQuery, err)
	}

	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		log.Error(ctx, ErrFindLastUser, zap.Error(err))
		return nil, entities.NewStorageError(ErrFindLastUser, err)
	}

	return user, nil
}

// Update заменяет имя и email строки с ID пользователя.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.Update"))
	log.Debug(ctx, "updating user", zap.Int("id", user.ID))

	query, args, err := psql.Update(usersTable).
		Set("name", user.Name).
		Set("email", user.Email).
		Where(sq.Eq{"id": user.ID}).
		Suffix(returningUser).
		ToSql()
	if err != nil {
		return nil, entities.NewStorageError(ErrBuildQuery, err)
	}

	updated, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int("id", user.ID))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, ErrUpdateUser, zap.Error(err))
		return nil, entities.NewStorageError(ErrUpdateUser, err)
	}

	return updated, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email); err != nil {
		return nil, err
	}
	return &user, nil
}
