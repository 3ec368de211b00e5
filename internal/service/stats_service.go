package service

import (
	"context"

	"github.com/NO-YA/MedBridge/internal/repository"
)

// Stats is a snapshot of collection counts.
type Stats struct {
	TotalTodos     int64 `json:"total_todos"`
	CompletedTodos int64 `json:"completed_todos"`
	PendingTodos   int64 `json:"pending_todos"`
	TotalUsers     int64 `json:"total_users"`
}

// StatsService derives counts from the current store state. Results are
// recomputed on every call and never cached.
type StatsService interface {
	Stats(ctx context.Context) (*Stats, error)
}

type statsService struct {
	todos repository.TodoRepository
	users repository.UserRepository
}

// NewStatsService builds a StatsService over both repositories.
func NewStatsService(todos repository.TodoRepository, users repository.UserRepository) StatsService {
	return &statsService{todos: todos, users: users}
}

func (s *statsService) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.todos.Count(ctx)
	if err != nil {
		return nil, err
	}
	done, err := s.todos.CountDone(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalTodos:     total,
		CompletedTodos: done,
		PendingTodos:   total - done,
		TotalUsers:     users,
	}, nil
}
