// Package services defines service interfaces for the users service.
package services

import (
	"context"

	"userapi/internal/users/domain/entities"
)

// UserService определяет бизнес-операции над пользователями.
type UserService interface {
	Create(ctx context.Context, name, email string) (*entities.User, error)
	ReadOne(ctx context.Context, id int) (*entities.User, error)
	ReadAll(ctx context.Context) ([]*entities.User, error)
	Update(ctx context.Context, id int, name, email string) (*entities.User, error)
	Delete(ctx context.Context, id int) (*entities.User, error)
	Last(ctx context.Context) (*entities.User, error)
}

// StatusService определяет получение состояния хранилища.
type StatusService interface {
	GetStatus(ctx context.Context, databaseName string) (*entities.Status, error)
}
