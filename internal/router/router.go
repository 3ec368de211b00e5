package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/NO-YA/MedBridge/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	todoHandler *handler.TodoHandler,
	userHandler *handler.UserHandler,
	statsHandler *handler.StatsHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "API to-do medicale fonctionne!"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/todos", todoHandler.ListTodos)
	e.POST("/todos", todoHandler.CreateTodo)
	e.GET("/todos/:id", todoHandler.GetTodo)
	e.PUT("/todos/:id", todoHandler.ReplaceTodo)
	e.PATCH("/todos/:id", todoHandler.PatchTodo)
	e.DELETE("/todos/:id", todoHandler.DeleteTodo)

	e.POST("/users", userHandler.CreateUser)
	e.GET("/users", userHandler.ListUsers)

	e.GET("/stats", statsHandler.GetStats)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
