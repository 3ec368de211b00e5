package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NO-YA/MedBridge/internal/apperrors"
	"github.com/NO-YA/MedBridge/internal/model"
)

func TestMemoryTodoIDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()

	var last uint
	for i := 0; i < 5; i++ {
		todo := &model.Todo{Task: "take morning medication"}
		assert.NoError(t, repo.Create(ctx, todo))
		assert.Greater(t, todo.ID, last)
		last = todo.ID
	}

	// Ids are not reused after a delete.
	assert.NoError(t, repo.Delete(ctx, last))
	todo := &model.Todo{Task: "check blood pressure"}
	assert.NoError(t, repo.Create(ctx, todo))
	assert.Greater(t, todo.ID, last)
}

func TestMemoryTodoListKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()

	tasks := []string{"first", "second", "third"}
	for _, task := range tasks {
		assert.NoError(t, repo.Create(ctx, &model.Todo{Task: task}))
	}

	todos, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, todos, 3)
	for i, todo := range todos {
		assert.Equal(t, tasks[i], todo.Task)
	}
}

func TestMemoryTodoDeleteTwice(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()

	todo := &model.Todo{Task: "take evening medication"}
	assert.NoError(t, repo.Create(ctx, todo))

	assert.NoError(t, repo.Delete(ctx, todo.ID))
	assert.ErrorIs(t, repo.Delete(ctx, todo.ID), apperrors.ErrTodoNotFound)
}

func TestMemoryTodoNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()

	_, err := repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrTodoNotFound)

	err = repo.Update(ctx, &model.Todo{ID: 999, Task: "ghost"})
	assert.ErrorIs(t, err, apperrors.ErrTodoNotFound)
}

func TestMemoryTodoUpdateDoesNotAffectOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()

	first := &model.Todo{Task: "first"}
	second := &model.Todo{Task: "second"}
	assert.NoError(t, repo.Create(ctx, first))
	assert.NoError(t, repo.Create(ctx, second))

	first.Done = true
	assert.NoError(t, repo.Update(ctx, first))

	todos, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "first", todos[0].Task)
	assert.True(t, todos[0].Done)
}

func TestMemoryTodoCounts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()

	assert.NoError(t, repo.Create(ctx, &model.Todo{Task: "one", Done: true}))
	assert.NoError(t, repo.Create(ctx, &model.Todo{Task: "two"}))

	total, err := repo.Count(ctx)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, total)

	done, err := repo.CountDone(ctx)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, done)
}

func TestMemoryUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	assert.NoError(t, repo.Create(ctx, &model.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"}))

	err := repo.Create(ctx, &model.User{Name: "Other Alice", Email: "alice@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	// The failed create left the collection unchanged.
	count, err := repo.Count(ctx)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Comparison is exact-match on the stored string.
	assert.NoError(t, repo.Create(ctx, &model.User{Name: "Upper Alice", Email: "Alice@example.com", PasswordHash: "h"}))
}

func TestMemoryUserFindByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	assert.NoError(t, repo.Create(ctx, &model.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"}))

	user, err := repo.FindByEmail(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = repo.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestMemoryUserIDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	var last uint
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		user := &model.User{Name: "n", Email: email, PasswordHash: "h"}
		assert.NoError(t, repo.Create(ctx, user))
		assert.Greater(t, user.ID, last)
		last = user.ID
	}
}
