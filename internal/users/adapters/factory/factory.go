// Package factory выбирает реализацию хранилища при старте.
package factory

import (
	"errors"
	"fmt"

	"userapi/internal/users/adapters/memory"
	"userapi/internal/users/adapters/postgres"
	"userapi/internal/users/ports/repositories"
)

// StorageKind задает вариант хранилища.
type StorageKind string

// Поддерживаемые хранилища.
const (
	Memory   StorageKind = "memory"
	Postgres StorageKind = "postgres"
)

// Ошибки выбора хранилища.
var (
	ErrUnknownStorage = errors.New("unknown storage kind")
	ErrNilPool        = errors.New("postgres storage requires a connection pool")
)

// ParseStorageKind разбирает значение DB_TYPE.
func ParseStorageKind(s string) (StorageKind, error) {
	switch kind := StorageKind(s); kind {
	case Memory, Postgres:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStorage, s)
	}
}

// RepositoryFactory хранит репозитории, выбранные один раз при старте.
type RepositoryFactory struct {
	kind       StorageKind
	userRepo   repositories.UserRepository
	statusRepo repositories.StatusRepository
}

// New создает репозитории выбранного вида.
// Для memory все потребители получают один общий экземпляр хранилища.
func New(kind StorageKind, pool postgres.PgxPoolInterface) (*RepositoryFactory, error) {
	switch kind {
	case Memory:
		return &RepositoryFactory{
			kind:       kind,
			userRepo:   memory.NewUserRepository(),
			statusRepo: memory.NewStatusRepository(),
		}, nil
	case Postgres:
		if pool == nil {
			return nil, ErrNilPool
		}
		return &RepositoryFactory{
			kind:       kind,
			userRepo:   postgres.NewUserRepository(pool),
			statusRepo: postgres.NewStatusRepository(pool),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, kind)
	}
}

// Kind возвращает вид хранилища.
func (f *RepositoryFactory) Kind() StorageKind {
	return f.kind
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// StatusRepository возвращает репозиторий состояния.
func (f *RepositoryFactory) StatusRepository() repositories.StatusRepository {
	return f.statusRepo
}
