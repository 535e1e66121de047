package memory

import (
	"context"

	"userapi/internal/users/domain/entities"
	"userapi/internal/users/ports/repositories"
)

// Фиксированное состояние хранилища в памяти.
const (
	MaxConnections    = 100
	ActiveConnections = 10
	Version           = "1.0.0"
)

// StatusRepository сообщает фиксированное состояние.
type StatusRepository struct{}

var _ repositories.StatusRepository = (*StatusRepository)(nil)

// NewStatusRepository создает StatusRepository.
func NewStatusRepository() *StatusRepository {
	return &StatusRepository{}
}

// GetStatus игнорирует имя базы.
func (r *StatusRepository) GetStatus(_ context.Context, _ string) (*entities.Status, error) {
	return entities.NewStatus(MaxConnections, ActiveConnections, Version), nil
}

