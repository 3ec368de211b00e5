package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"gorm.io/gorm"

	"github.com/NO-YA/MedBridge/internal/apperrors"
	"github.com/NO-YA/MedBridge/internal/model"
)

// TodoRepository defines todo persistence operations.
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	List(ctx context.Context) ([]model.Todo, error)
	FindByID(ctx context.Context, id uint) (*model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountDone(ctx context.Context) (int64, error)
}

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository builds a GORM-backed todo repository.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

// storeErr classifies connectivity failures as ErrStoreUnavailable so callers
// can map them to 503 instead of a generic 500.
func storeErr(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *todoRepository) Create(ctx context.Context, todo *model.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return storeErr("create todo", err)
	}
	return nil
}

func (r *todoRepository) List(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.WithContext(ctx).Order("id").Find(&todos).Error; err != nil {
		return nil, storeErr("list todos", err)
	}
	return todos, nil
}

func (r *todoRepository) FindByID(ctx context.Context, id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTodoNotFound
		}
		return nil, storeErr("find todo", err)
	}
	return &todo, nil
}

func (r *todoRepository) Update(ctx context.Context, todo *model.Todo) error {
	// Select forces zero values through, so done=false is written. Rows
	// affected is not checked here: MySQL reports 0 for no-change updates,
	// and callers resolve the todo before updating.
	err := r.db.WithContext(ctx).Model(todo).
		Select("task", "done", "owner_id").
		Updates(map[string]interface{}{
			"task":     todo.Task,
			"done":     todo.Done,
			"owner_id": todo.OwnerID,
		}).Error
	if err != nil {
		return storeErr("update todo", err)
	}
	return nil
}

func (r *todoRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Todo{}, id)
	if res.Error != nil {
		return storeErr("delete todo", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTodoNotFound
	}
	return nil
}

func (r *todoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Todo{}).Count(&n).Error; err != nil {
		return 0, storeErr("count todos", err)
	}
	return n, nil
}

func (r *todoRepository) CountDone(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Todo{}).Where("done = ?", true).Count(&n).Error; err != nil {
		return 0, storeErr("count done todos", err)
	}
	return n, nil
}
