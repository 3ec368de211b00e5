package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NO-YA/MedBridge/internal/service"
)

// UserHandler bundles user HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a user handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest is the POST /users payload. The password never appears in
// any response.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User payload"
// @Success 201 {object} model.User
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return validationError(err)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}
	user, err := h.svc.CreateUser(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// ListUsers godoc
// @Summary List users in creation order
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, users)
}
