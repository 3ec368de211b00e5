package repository

import (
	"context"
	"sync"
	"time"

	"github.com/NO-YA/MedBridge/internal/apperrors"
	"github.com/NO-YA/MedBridge/internal/model"
)

// The in-memory repositories back the zero-dependency store driver. All
// operations serialize on a mutex: ids stay strictly increasing and are never
// reused within a run, even under concurrent requests.

type memoryTodoRepository struct {
	mu     sync.Mutex
	todos  map[uint]model.Todo
	order  []uint
	nextID uint
}

// NewMemoryTodoRepository builds an in-memory todo repository.
func NewMemoryTodoRepository() TodoRepository {
	return &memoryTodoRepository{todos: make(map[uint]model.Todo), nextID: 1}
}

func (r *memoryTodoRepository) Create(_ context.Context, todo *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	todo.ID = r.nextID
	r.nextID++
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now()
	}
	r.todos[todo.ID] = *todo
	r.order = append(r.order, todo.ID)
	return nil
}

func (r *memoryTodoRepository) List(_ context.Context) ([]model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	todos := make([]model.Todo, 0, len(r.order))
	for _, id := range r.order {
		todos = append(todos, r.todos[id])
	}
	return todos, nil
}

func (r *memoryTodoRepository) FindByID(_ context.Context, id uint) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	todo, ok := r.todos[id]
	if !ok {
		return nil, apperrors.ErrTodoNotFound
	}
	return &todo, nil
}

func (r *memoryTodoRepository) Update(_ context.Context, todo *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[todo.ID]; !ok {
		return apperrors.ErrTodoNotFound
	}
	r.todos[todo.ID] = *todo
	return nil
}

func (r *memoryTodoRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return apperrors.ErrTodoNotFound
	}
	delete(r.todos, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryTodoRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.todos)), nil
}

func (r *memoryTodoRepository) CountDone(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, todo := range r.todos {
		if todo.Done {
			n++
		}
	}
	return n, nil
}

type memoryUserRepository struct {
	mu     sync.Mutex
	users  map[uint]model.User
	order  []uint
	nextID uint
}

// NewMemoryUserRepository builds an in-memory user repository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[uint]model.User), nextID: 1}
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *memoryUserRepository) List(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]model.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.users[id])
	}
	return users, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if user := r.users[id]; user.Email == email {
			return &user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}
