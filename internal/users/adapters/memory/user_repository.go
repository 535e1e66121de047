// Package memory provides in-process implementations of repositories.
package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"userapi/internal/users/domain/entities"
	"userapi/internal/users/ports/repositories"
	"userapi/pkg/logger"
)

const (
	errLockUnavailable = "failed to acquire store lock"
	errDuplicateID     = "user with this id already exists"
)

// UserRepository хранит пользователей в срезе в порядке вставки.
// Один мьютекс защищает и чтение, и запись.
type UserRepository struct {
	mu    sync.Mutex
	users []entities.User
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает пустое хранилище.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make([]entities.User, 0)}
}

// lock захватывает мьютекс, если контекст еще жив.
func (r *UserRepository) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return entities.NewStorageError(errLockUnavailable, err)
	}
	r.mu.Lock()
	return nil
}

// Save добавляет пользователя в конец списка.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := methodLogger(ctx, "UserRepository.Save")
	log.Debug(ctx, "saving user", zap.Int("id", user.ID))

	if err := r.lock(ctx); err != nil {
		log.Error(ctx, errLockUnavailable, zap.Error(err))
		return nil, err
	}
	defer r.mu.Unlock()

	if r.indexOf(user.ID) >= 0 {
		log.Warn(ctx, errDuplicateID, zap.Int("id", user.ID))
		return nil, entities.NewStorageError(errDuplicateID, nil)
	}

	r.users = append(r.users, *user)
	saved := *user
	return &saved, nil
}

// FindByID возвращает копию пользователя или (nil, nil).
func (r *UserRepository) FindByID(ctx context.Context, id int) (*entities.User, error) {
	if err := r.lock(ctx); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		methodLogger(ctx, "UserRepository.FindByID").Debug(ctx, "user not found", zap.Int("id", id))
		return nil, nil
	}
	found := r.users[i]
	return &found, nil
}

// Delete удаляет пользователя с сохранением порядка остальных.
func (r *UserRepository) Delete(ctx context.Context, id int) (*entities.User, error) {
	log := methodLogger(ctx, "UserRepository.Delete")

	if err := r.lock(ctx); err != nil {
		log.Error(ctx, errLockUnavailable, zap.Error(err))
		return nil, err
	}
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		log.Debug(ctx, "user not found", zap.Int("id", id))
		return nil, entities.ErrUserNotFound
	}

	deleted := r.users[i]
	r.users = append(r.users[:i], r.users[i+1:]...)
	log.Debug(ctx, "user deleted", zap.Int("id", id))
	return &deleted, nil
}

// List возвращает копии всех пользователей в порядке вставки.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	if err := r.lock(ctx); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()

	users := make([]*entities.User, 0, len(r.users))
	for i := range r.users {
		u := r.users[i]
		users = append(users, &u)
	}
	return users, nil
}

// FindLast возвращает последнего добавленного пользователя.
func (r *UserRepository) FindLast(ctx context.Context) (*entities.User, error) {
	if err := r.lock(ctx); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()

	if len(r.users) == 0 {
		return nil, nil
	}
	last := r.users[len(r.users)-1]
	return &last, nil
}

// Update заменяет запись целиком, позиция в списке не меняется.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := methodLogger(ctx, "UserRepository.Update")

	if err := r.lock(ctx); err != nil {
		log.Error(ctx, errLockUnavailable, zap.Error(err))
		return nil, err
	}
	defer r.mu.Unlock()

	i := r.indexOf(user.ID)
	if i < 0 {
		log.Debug(ctx, "user not found", zap.Int("id", user.ID))
		return nil, entities.ErrUserNotFound
	}

	r.users[i] = *user
	updated := *user
	return &updated, nil
}

// Reset очищает хранилище.
func (r *UserRepository) Reset(ctx context.Context) error {
	if err := r.lock(ctx); err != nil {
		return err
	}
	defer r.mu.Unlock()

	r.users = make([]entities.User, 0)
	methodLogger(ctx, "UserRepository.Reset").Info(ctx, "store cleared")
	return nil
}

// indexOf вызывается под мьютексом.
func (r *UserRepository) indexOf(id int) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

func methodLogger(ctx context.Context, method string) *logger.Logger {
	return logger.Log(ctx).With(zap.String("method", method))
}
