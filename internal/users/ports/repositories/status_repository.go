package repositories

import (
	"context"

	"userapi/internal/users/domain/entities"
)

// StatusRepository возвращает состояние хранилища.
type StatusRepository interface {
	GetStatus(ctx context.Context, databaseName string) (*entities.Status, error)
}
