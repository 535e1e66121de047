package services

import (
	"context"
	"fmt"

	"userapi/internal/users/domain/entities"
	"userapi/internal/users/ports/repositories"
	ports "userapi/internal/users/ports/services"
)

// StatusService реализует services.StatusService.
type StatusService struct {
	repo repositories.StatusRepository
}

var _ ports.StatusService = (*StatusService)(nil)

// NewStatusService создает сервис состояния.
func NewStatusService(repo repositories.StatusRepository) *StatusService {
	return &StatusService{repo: repo}
}

// GetStatus запрашивает состояние у хранилища на каждый вызов.
func (s *StatusService) GetStatus(ctx context.Context, databaseName string) (*entities.Status, error) {
	status, err := s.repo.GetStatus(ctx, databaseName)
	if err != nil {
		return nil, fmt.Errorf("getting database status: %w", err)
	}
	return status, nil
}
