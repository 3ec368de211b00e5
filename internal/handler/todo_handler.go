package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/NO-YA/MedBridge/internal/apperrors"
	"github.com/NO-YA/MedBridge/internal/service"
)

// TodoHandler bundles todo HTTP handlers.
type TodoHandler struct {
	svc service.TodoService
}

// NewTodoHandler creates a todo handler layer.
func NewTodoHandler(svc service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// CreateTodoRequest is the POST /todos payload.
type CreateTodoRequest struct {
	Task    string `json:"task" validate:"required,min=1,max=200"`
	Done    bool   `json:"done"`
	OwnerID *uint  `json:"owner_id"`
}

// ReplaceTodoRequest is the PUT /todos/{id} payload.
type ReplaceTodoRequest struct {
	Task string `json:"task" validate:"required,min=1,max=200"`
	Done bool   `json:"done"`
}

// PatchTodoRequest is the PATCH /todos/{id} payload. Pointer fields tell an
// absent key apart from an explicit zero value.
type PatchTodoRequest struct {
	Task *string `json:"task" validate:"omitempty,min=1,max=200"`
	Done *bool   `json:"done"`
}

func todoID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid todo id",
			Code:  "VALIDATION_ERROR",
		})
	}
	return uint(id), nil
}

func domainError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func validationError(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

// CreateTodo godoc
// @Summary Create todo
// @Tags todos
// @Accept json
// @Produce json
// @Param todo body CreateTodoRequest true "Todo payload"
// @Success 201 {object} model.Todo
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return validationError(err)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}
	todo, err := h.svc.CreateTodo(c.Request().Context(), req.Task, req.Done, req.OwnerID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, todo)
}

// ListTodos godoc
// @Summary List todos in creation order
// @Tags todos
// @Produce json
// @Success 200 {array} model.Todo
// @Router /todos [get]
func (h *TodoHandler) ListTodos(c echo.Context) error {
	todos, err := h.svc.ListTodos(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, todos)
}

// GetTodo godoc
// @Summary Get todo by id
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /todos/{id} [get]
func (h *TodoHandler) GetTodo(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}
	todo, err := h.svc.GetTodo(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, todo)
}

// ReplaceTodo godoc
// @Summary Replace task and done of a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param todo body ReplaceTodoRequest true "Replacement payload"
// @Success 200 {object} model.Todo
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /todos/{id} [put]
func (h *TodoHandler) ReplaceTodo(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}
	var req ReplaceTodoRequest
	if err := c.Bind(&req); err != nil {
		return validationError(err)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}
	todo, err := h.svc.ReplaceTodo(c.Request().Context(), id, req.Task, req.Done)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, todo)
}

// PatchTodo godoc
// @Summary Update only the supplied fields of a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param todo body PatchTodoRequest true "Patch payload"
// @Success 200 {object} model.Todo
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /todos/{id} [patch]
func (h *TodoHandler) PatchTodo(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}
	var req PatchTodoRequest
	if err := c.Bind(&req); err != nil {
		return validationError(err)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}
	todo, err := h.svc.PatchTodo(c.Request().Context(), id, service.TodoPatch{Task: req.Task, Done: req.Done})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary Delete todo
// @Tags todos
// @Param id path int true "Todo ID"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTodo(c.Request().Context(), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
