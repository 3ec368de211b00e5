package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NO-YA/MedBridge/internal/apperrors"
	"github.com/NO-YA/MedBridge/internal/cache"
	"github.com/NO-YA/MedBridge/internal/model"
	"github.com/NO-YA/MedBridge/internal/repository"
)

const todoCacheTTL = 5 * time.Minute

// TodoPatch carries the fields of a partial update. A nil field was not
// supplied; a non-nil field is applied even when it points at a zero value,
// so an explicit done=false is honored.
type TodoPatch struct {
	Task *string
	Done *bool
}

// TodoService exposes todo domain operations.
type TodoService interface {
	CreateTodo(ctx context.Context, task string, done bool, ownerID *uint) (*model.Todo, error)
	ListTodos(ctx context.Context) ([]model.Todo, error)
	GetTodo(ctx context.Context, id uint) (*model.Todo, error)
	ReplaceTodo(ctx context.Context, id uint, task string, done bool) (*model.Todo, error)
	PatchTodo(ctx context.Context, id uint, patch TodoPatch) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id uint) error
}

type todoService struct {
	todos repository.TodoRepository
	users repository.UserRepository
	cache *cache.Client
}

// NewTodoService builds a TodoService with its repositories and cache.
func NewTodoService(todos repository.TodoRepository, users repository.UserRepository, cache *cache.Client) TodoService {
	return &todoService{todos: todos, users: users, cache: cache}
}

func (s *todoService) cacheKey(id uint) string {
	return fmt.Sprintf("todo:%d", id)
}

// CreateTodo verifies the owner reference before any mutation, so a failed
// create leaves the collection untouched.
func (s *todoService) CreateTodo(ctx context.Context, task string, done bool, ownerID *uint) (*model.Todo, error) {
	if ownerID != nil {
		if _, err := s.users.FindByID(ctx, *ownerID); err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return nil, apperrors.ErrOwnerNotFound
			}
			return nil, err
		}
	}
	todo := &model.Todo{Task: task, Done: done, OwnerID: ownerID}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) ListTodos(ctx context.Context) ([]model.Todo, error) {
	return s.todos.List(ctx)
}

func (s *todoService) GetTodo(ctx context.Context, id uint) (*model.Todo, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Todo
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(todo); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, todoCacheTTL)
	}
	return todo, nil
}

// ReplaceTodo overwrites task and done; id and owner are preserved.
func (s *todoService) ReplaceTodo(ctx context.Context, id uint, task string, done bool) (*model.Todo, error) {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	todo.Task = task
	todo.Done = done
	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return todo, nil
}

func (s *todoService) PatchTodo(ctx context.Context, id uint, patch TodoPatch) (*model.Todo, error) {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Task != nil {
		todo.Task = *patch.Task
	}
	if patch.Done != nil {
		todo.Done = *patch.Done
	}
	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return todo, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, id uint) error {
	if err := s.todos.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
