// Package usecases implements application scenarios for the users service.
package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"userapi/internal/users/app/dto"
	"userapi/internal/users/domain/entities"
	"userapi/internal/users/ports/services"
	"userapi/pkg/logger"
)

const (
	errCtxCreate = "create user"
	errCtxRead   = "read user"
	errCtxList   = "read users"
	errCtxUpdate = "update user"
	errCtxDelete = "delete user"
)

// CreateUser создает пользователя.
type CreateUser struct {
	users services.UserService
}

// NewCreateUser создает сценарий CreateUser.
func NewCreateUser(users services.UserService) *CreateUser {
	return &CreateUser{users: users}
}

// Execute выполняет сценарий.
func (uc *CreateUser) Execute(ctx context.Context, in dto.CreateUserInput) (dto.UserOutput, error) {
	user, err := uc.users.Create(ctx, in.Name, in.Email)
	if err != nil {
		return dto.UserOutput{}, fmt.Errorf("%s: %w", errCtxCreate, err)
	}
	return dto.NewUserOutput(user), nil
}

// ReadUser возвращает одного пользователя.
type ReadUser struct {
	users services.UserService
}

// NewReadUser создает сценарий ReadUser.
func NewReadUser(users services.UserService) *ReadUser {
	return &ReadUser{users: users}
}

// Execute возвращает entities.ErrUserNotFound, если пользователя нет.
func (uc *ReadUser) Execute(ctx context.Context, in dto.UserIDInput) (dto.UserOutput, error) {
	user, err := uc.users.ReadOne(ctx, in.ID)
	if err != nil {
		return dto.UserOutput{}, fmt.Errorf("%s: %w", errCtxRead, err)
	}
	if user == nil {
		logger.Log(ctx).Debug(ctx, "user not found", zap.Int("id", in.ID))
		return dto.UserOutput{}, entities.ErrUserNotFound
	}
	return dto.NewUserOutput(user), nil
}

// ReadUsers возвращает всех пользователей.
type ReadUsers struct {
	users services.UserService
}

// NewReadUsers создает сценарий ReadUsers.
func NewReadUsers(users services.UserService) *ReadUsers {
	return &ReadUsers{users: users}
}

// Execute выполняет сценарий.
func (uc *ReadUsers) Execute(ctx context.Context) ([]dto.UserOutput, error) {
	users, err := uc.users.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxList, err)
	}
	return dto.NewUserOutputs(users), nil
}

// UpdateUser полностью заменяет данные пользователя.
type UpdateUser struct {
	users services.UserService
}

// NewUpdateUser создает сценарий UpdateUser.
func NewUpdateUser(users services.UserService) *UpdateUser {
	return &UpdateUser{users: users}
}

// Execute выполняет сценарий.
func (uc *UpdateUser) Execute(ctx context.Context, in dto.UpdateUserInput) (dto.UserOutput, error) {
	user, err := uc.users.Update(ctx, in.ID, in.Name, in.Email)
	if err != nil {
		return dto.UserOutput{}, fmt.Errorf("%s: %w", errCtxUpdate, err)
	}
	return dto.NewUserOutput(user), nil
}

// DeleteUser удаляет пользователя.
type DeleteUser struct {
	users services.UserService
}

// NewDeleteUser создает сценарий DeleteUser.
func NewDeleteUser(users services.UserService) *DeleteUser {
	return &DeleteUser{users: users}
}

// Execute возвращает удаленного пользователя.
func (uc *DeleteUser) Execute(ctx context.Context, in dto.UserIDInput) (dto.UserOutput, error) {
	user, err := uc.users.Delete(ctx, in.ID)
	if err != nil {
		return dto.UserOutput{}, fmt.Errorf("%s: %w", errCtxDelete, err)
	}
	return dto.NewUserOutput(user), nil
}
