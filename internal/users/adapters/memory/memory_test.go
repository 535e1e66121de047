package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapi/internal/users/adapters/memory"
	"userapi/internal/users/domain/entities"
)

func seed(t *testing.T, repo *memory.UserRepository, users ...*entities.User) {
	t.Helper()
	for _, u := range users {
		_, err := repo.Save(context.Background(), u)
		require.NoError(t, err)
	}
}

func TestUserRepositorySave(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a copy", func(t *testing.T) {
		repo := memory.NewUserRepository()
		user := entities.NewUser(0, "John", "john@example.com")

		saved, err := repo.Save(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, user, saved)
		assert.NotSame(t, user, saved)

		saved.Name = "changed"
		user.Name = "changed too"
		found, err := repo.FindByID(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, "John", found.Name)
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		repo := memory.NewUserRepository()
		seed(t, repo, entities.NewUser(0, "John", "john@example.com"))

		saved, err := repo.Save(ctx, entities.NewUser(0, "Jane", "jane@example.com"))
		require.ErrorIs(t, err, entities.ErrStorage)
		assert.Nil(t, saved)
	})

	t.Run("cancelled context is a storage error", func(t *testing.T) {
		repo := memory.NewUserRepository()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.Save(cctx, entities.NewUser(0, "John", "john@example.com"))
		require.ErrorIs(t, err, entities.ErrStorage)
		require.ErrorIs(t, err, context.Canceled)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestUserRepositoryFindByID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	seed(t, repo,
		entities.NewUser(0, "John", "john@example.com"),
		entities.NewUser(1, "Jane", "jane@example.com"),
	)

	found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entities.NewUser(1, "Jane", "jane@example.com"), found)

	missing, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	seed(t, repo,
		entities.NewUser(0, "A", "a@example.com"),
		entities.NewUser(1, "B", "b@example.com"),
		entities.NewUser(2, "C", "c@example.com"),
	)

	deleted, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted.ID)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 0, users[0].ID)
	assert.Equal(t, 2, users[1].ID)

	_, err = repo.Delete(ctx, 1)
	require.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestUserRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	seed(t, repo,
		entities.NewUser(5, "E", "e@example.com"),
		entities.NewUser(3, "C", "c@example.com"),
	)

	users, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 5, users[0].ID, "insertion order is kept")

	users[0].Name = "mutated"
	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "E", again[0].Name)
}

func TestUserRepositoryFindLast(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	last, err := repo.FindLast(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	seed(t, repo,
		entities.NewUser(0, "A", "a@example.com"),
		entities.NewUser(1, "B", "b@example.com"),
	)

	last, err = repo.FindLast(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, last.ID)

	t.Run("insertion order, not highest id", func(t *testing.T) {
		repo := memory.NewUserRepository()
		seed(t, repo,
			entities.NewUser(5, "E", "e@example.com"),
			entities.NewUser(3, "C", "c@example.com"),
		)

		last, err := repo.FindLast(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, last.ID)
	})
}

func TestUserRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	seed(t, repo,
		entities.NewUser(0, "John", "john@example.com"),
		entities.NewUser(1, "Jane", "jane@example.com"),
	)

	updated, err := repo.Update(ctx, entities.NewUser(0, "John Doe", "john.doe@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "John Doe", updated.Name)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", users[0].Name, "position is kept")
	assert.Equal(t, "john.doe@example.com", users[0].Email)

	_, err = repo.Update(ctx, entities.NewUser(9, "X", "x@example.com"))
	require.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestUserRepositoryReset(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	seed(t, repo, entities.NewUser(0, "John", "john@example.com"))

	require.NoError(t, repo.Reset(ctx))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepositoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := repo.Save(ctx, entities.NewUser(id, "user", "user@example.com"))
			assert.NoError(t, err)
			_, err = repo.List(ctx)
			assert.NoError(t, err)
			_, err = repo.FindByID(ctx, id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, workers)
}

func TestStatusRepository(t *testing.T) {
	status, err := memory.NewStatusRepository().GetStatus(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, entities.NewStatus(100, 10, "1.0.0"), status)
}
