package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"userapi/internal/users/adapters/memory"
	"userapi/internal/users/app/services"
	"userapi/internal/users/domain/entities"
)

var errStorageDown = entities.NewStorageError("connection refused", errors.New("dial tcp"))

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) user(args mock.Arguments) (*entities.User, error) {
	if u := args.Get(0); u != nil {
		return u.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	return m.user(m.Called(ctx, user))
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int) (*entities.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *mockUserRepository) Delete(ctx context.Context, id int) (*entities.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) FindLast(ctx context.Context) (*entities.User, error) {
	return m.user(m.Called(ctx))
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	return m.user(m.Called(ctx, user))
}

type mockStatusRepository struct {
	mock.Mock
}

func (m *mockStatusRepository) GetStatus(ctx context.Context, databaseName string) (*entities.Status, error) {
	args := m.Called(ctx, databaseName)
	if s := args.Get(0); s != nil {
		return s.(*entities.Status), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("first user gets id 0", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindLast", ctx).Return(nil, nil)
		repo.On("Save", ctx, entities.NewUser(0, "John", "john@example.com")).
			Return(entities.NewUser(0, "John", "john@example.com"), nil)

		user, err := services.NewUserService(repo).Create(ctx, "John", "john@example.com")

		require.NoError(t, err)
		assert.Equal(t, 0, user.ID)
		repo.AssertExpectations(t)
	})

	t.Run("next id follows the last one", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindLast", ctx).Return(entities.NewUser(4, "D", "d@example.com"), nil)
		repo.On("Save", ctx, mock.MatchedBy(func(u *entities.User) bool { return u.ID == 5 })).
			Return(entities.NewUser(5, "Jane", "jane@example.com"), nil)

		user, err := services.NewUserService(repo).Create(ctx, "Jane", "jane@example.com")

		require.NoError(t, err)
		assert.Equal(t, 5, user.ID)
		repo.AssertExpectations(t)
	})

	t.Run("invalid email never reaches storage", func(t *testing.T) {
		repo := new(mockUserRepository)

		user, err := services.NewUserService(repo).Create(ctx, "X", "bad-email")

		assert.Nil(t, user)
		require.ErrorIs(t, err, entities.ErrValidation)
		repo.AssertNotCalled(t, "FindLast", mock.Anything)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("find last failure", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindLast", ctx).Return(nil, errStorageDown)

		_, err := services.NewUserService(repo).Create(ctx, "John", "john@example.com")

		require.ErrorIs(t, err, entities.ErrStorage)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save failure", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindLast", ctx).Return(nil, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil, errStorageDown)

		_, err := services.NewUserService(repo).Create(ctx, "John", "john@example.com")

		require.ErrorIs(t, err, entities.ErrStorage)
		repo.AssertExpectations(t)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the record", func(t *testing.T) {
		repo := new(mockUserRepository)
		want := entities.NewUser(0, "John Doe", "john.doe@example.com")
		repo.On("Update", ctx, want).Return(want, nil)

		user, err := services.NewUserService(repo).Update(ctx, 0, "John Doe", "john.doe@example.com")

		require.NoError(t, err)
		assert.Equal(t, want, user)
		repo.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		repo := new(mockUserRepository)

		_, err := services.NewUserService(repo).Update(ctx, 0, "John", "nope")

		require.ErrorIs(t, err, entities.ErrInvalidEmail)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Update", ctx, mock.Anything).Return(nil, entities.ErrUserNotFound)

		_, err := services.NewUserService(repo).Update(ctx, 3, "John", "john@example.com")

		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestUserService_Delegation(t *testing.T) {
	ctx := context.Background()
	john := entities.NewUser(0, "John", "john@example.com")

	repo := new(mockUserRepository)
	repo.On("FindByID", ctx, 0).Return(john, nil)
	repo.On("FindByID", ctx, 1).Return(nil, nil)
	repo.On("List", ctx).Return([]*entities.User{john}, nil)
	repo.On("Delete", ctx, 0).Return(john, nil)
	repo.On("Delete", ctx, 1).Return(nil, entities.ErrUserNotFound)
	repo.On("FindLast", ctx).Return(john, nil)

	svc := services.NewUserService(repo)

	found, err := svc.ReadOne(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, john, found)

	missing, err := svc.ReadOne(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := svc.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := svc.Delete(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, john, deleted)

	_, err = svc.Delete(ctx, 1)
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	last, err := svc.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, john, last)

	repo.AssertExpectations(t)
}

func TestUserService_MemoryIDSequence(t *testing.T) {
	ctx := context.Background()
	svc := services.NewUserService(memory.NewUserRepository())

	for want := 0; want < 3; want++ {
		user, err := svc.Create(ctx, "user", "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, want, user.ID)
	}

	_, err := svc.Delete(ctx, 2)
	require.NoError(t, err)

	reused, err := svc.Create(ctx, "tail", "tail@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, reused.ID, "freed tail id is reused")
}

func TestUserService_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	svc := services.NewUserService(repo)

	const creators = 200
	var wg sync.WaitGroup
	errs := make(chan error, creators)
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(ctx, "user", "user@example.com"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent create failed: %v", err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, creators)

	seen := make(map[int]bool, creators)
	for _, u := range users {
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
	}
	for id := 0; id < creators; id++ {
		assert.True(t, seen[id], "missing id %d", id)
	}
}

func TestStatusService(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates", func(t *testing.T) {
		repo := new(mockStatusRepository)
		want := entities.NewStatus(100, 3, "16.2")
		repo.On("GetStatus", ctx, "postgres").Return(want, nil)

		status, err := services.NewStatusService(repo).GetStatus(ctx, "postgres")

		require.NoError(t, err)
		assert.Equal(t, want, status)
		repo.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(mockStatusRepository)
		repo.On("GetStatus", ctx, "postgres").Return(nil, errStorageDown)

		status, err := services.NewStatusService(repo).GetStatus(ctx, "postgres")

		assert.Nil(t, status)
		require.ErrorIs(t, err, entities.ErrStorage)
	})

	t.Run("memory status", func(t *testing.T) {
		status, err := services.NewStatusService(memory.NewStatusRepository()).GetStatus(ctx, "any")
		require.NoError(t, err)
		assert.Equal(t, 100, status.Database.MaxConnections)
		assert.Equal(t, 10, status.Database.ActiveConnections)
		assert.Equal(t, "1.0.0", status.Database.Version)
	})
}
