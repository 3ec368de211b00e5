package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NO-YA/MedBridge/internal/model"
	"github.com/NO-YA/MedBridge/internal/repository"
)

func TestStatsService_Stats(t *testing.T) {
	ctx := context.Background()
	todos := repository.NewMemoryTodoRepository()
	users := repository.NewMemoryUserRepository()
	svc := NewStatsService(todos, users)

	// Empty store.
	stats, err := svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, &Stats{}, stats)

	assert.NoError(t, todos.Create(ctx, &model.Todo{Task: "take medication", Done: true}))
	assert.NoError(t, todos.Create(ctx, &model.Todo{Task: "check blood pressure"}))
	assert.NoError(t, users.Create(ctx, &model.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"}))

	stats, err = svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, &Stats{
		TotalTodos:     2,
		CompletedTodos: 1,
		PendingTodos:   1,
		TotalUsers:     1,
	}, stats)

	// Stats are recomputed from current state, not cached.
	assert.NoError(t, todos.Delete(ctx, 1))
	stats, err = svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, &Stats{TotalTodos: 1, PendingTodos: 1, TotalUsers: 1}, stats)
}
