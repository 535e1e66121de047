package usecases

import (
	"context"
	"fmt"

	"userapi/internal/users/app/dto"
	"userapi/internal/users/ports/services"
)

// GetStatus возвращает состояние хранилища.
type GetStatus struct {
	status services.StatusService
}

// NewGetStatus создает сценарий GetStatus.
func NewGetStatus(status services.StatusService) *GetStatus {
	return &GetStatus{status: status}
}

// Execute выполняет сценарий.
func (uc *GetStatus) Execute(ctx context.Context, in dto.StatusInput) (dto.StatusOutput, error) {
	status, err := uc.status.GetStatus(ctx, in.DatabaseName)
	if err != nil {
		return dto.StatusOutput{}, fmt.Errorf("get status: %w", err)
	}
	return dto.NewStatusOutput(status), nil
}
