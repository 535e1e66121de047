// Package services implements business rules for users on top of repositories.
package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"userapi/internal/users/domain/entities"
	"userapi/internal/users/ports/repositories"
	ports "userapi/internal/users/ports/services"
	"userapi/pkg/logger"
)

const (
	methodCreate = "UserService.Create"
	methodUpdate = "UserService.Update"

	msgCreatingUser  = "creating user"
	msgUserCreated   = "user created"
	msgUpdatingUser  = "updating user"
	msgInvalidEmail  = "rejected invalid email"
	msgErrFindLast   = "failed to find last user"
	msgErrSaveUser   = "failed to save user"
	msgErrUpdateUser = "failed to update user"

	errCtxFindLast = "finding last user"
	errCtxSave     = "saving user"
	errCtxFindByID = "finding user by ID"
	errCtxList     = "listing users"
	errCtxUpdate   = "updating user"
	errCtxDelete   = "deleting user"
)

// UserService реализует services.UserService.
type UserService struct {
	repo repositories.UserRepository

	// createMu делает пару FindLast + Save атомарной внутри процесса.
	createMu sync.Mutex
}

var _ ports.UserService = (*UserService)(nil)

// NewUserService создает сервис пользователей.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create проверяет email до обращения к хранилищу, затем назначает
// ID = последний ID + 1 (0 для пустого хранилища) и сохраняет.
// Параллельные вызовы одного сервиса получают разные ID.
func (s *UserService) Create(ctx context.Context, name, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate))
	log.Debug(ctx, msgCreatingUser)

	candidate := entities.NewUser(0, name, email)
	if !candidate.HasValidEmail() {
		log.Debug(ctx, msgInvalidEmail)
		return nil, entities.ErrInvalidEmail
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	last, err := s.repo.FindLast(ctx)
	if err != nil {
		log.Error(ctx, msgErrFindLast, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindLast, err)
	}
	if last != nil {
		candidate.ID = last.ID + 1
	}

	saved, err := s.repo.Save(ctx, candidate)
	if err != nil {
		log.Error(ctx, msgErrSaveUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSave, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int("id", saved.ID))
	return saved, nil
}

// ReadOne возвращает (nil, nil), если пользователя нет.
func (s *UserService) ReadOne(ctx context.Context, id int) (*entities.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindByID, err)
	}
	return user, nil
}

// ReadAll возвращает всех пользователей.
func (s *UserService) ReadAll(ctx context.Context) ([]*entities.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxList, err)
	}
	return users, nil
}

// Update проверяет email и полностью заменяет запись.
func (s *UserService) Update(ctx context.Context, id int, name, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdate), zap.Int("id", id))
	log.Debug(ctx, msgUpdatingUser)

	user := entities.NewUser(id, name, email)
	if !user.HasValidEmail() {
		log.Debug(ctx, msgInvalidEmail)
		return nil, entities.ErrInvalidEmail
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		log.Debug(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdate, err)
	}
	return updated, nil
}

// Delete удаляет пользователя и возвращает его.
func (s *UserService) Delete(ctx context.Context, id int) (*entities.User, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDelete, err)
	}
	return deleted, nil
}

// Last возвращает пользователя с наибольшим ID или nil.
func (s *UserService) Last(ctx context.Context) (*entities.User, error) {
	last, err := s.repo.FindLast(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindLast, err)
	}
	return last, nil
}
