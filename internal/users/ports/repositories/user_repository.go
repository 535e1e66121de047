// Package repositories defines repository interfaces for the users service.
package repositories

import (
	"context"

	"userapi/internal/users/domain/entities"
)

// UserRepository определяет интерфейс хранилища пользователей.
// Обе реализации (память и PostgreSQL) следуют одному контракту.
type UserRepository interface {
	// Save сохраняет пользователя и возвращает сохраненную копию.
	Save(ctx context.Context, user *entities.User) (*entities.User, error)
	// FindByID возвращает (nil, nil), если пользователя нет.
	FindByID(ctx context.Context, id int) (*entities.User, error)
	// Delete возвращает удаленного пользователя или entities.ErrUserNotFound.
	Delete(ctx context.Context, id int) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	// FindLast возвращает последнего добавленного пользователя или (nil, nil) для пустого хранилища.
	// При назначении ID через UserService.Create это пользователь с наибольшим ID.
	FindLast(ctx context.Context) (*entities.User, error)
	// Update полностью заменяет запись или возвращает entities.ErrUserNotFound.
	Update(ctx context.Context, user *entities.User) (*entities.User, error)
}
