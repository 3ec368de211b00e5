package main

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	_ "github.com/NO-YA/MedBridge/docs" // swagger docs

	"github.com/NO-YA/MedBridge/internal/cache"
	"github.com/NO-YA/MedBridge/internal/config"
	"github.com/NO-YA/MedBridge/internal/db"
	"github.com/NO-YA/MedBridge/internal/handler"
	"github.com/NO-YA/MedBridge/internal/model"
	"github.com/NO-YA/MedBridge/internal/password"
	"github.com/NO-YA/MedBridge/internal/repository"
	"github.com/NO-YA/MedBridge/internal/router"
	"github.com/NO-YA/MedBridge/internal/service"
)

// @title MedBridge API
// @version 1.0
// @description Medical to-do REST API with optional user accounts.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	// The hash scheme pair is resolved here, once, and logged. There is no
	// silent per-call fallback.
	hasher := password.New(cfg.HashScheme, cfg.HashFallback)
	logger.Info().
		Str("scheme", string(cfg.HashScheme)).
		Str("fallback", string(cfg.HashFallback)).
		Msg("password hashing scheme resolved")

	var todoRepo repository.TodoRepository
	var userRepo repository.UserRepository
	switch cfg.StoreDriver {
	case config.DriverMemory:
		todoRepo = repository.NewMemoryTodoRepository()
		userRepo = repository.NewMemoryUserRepository()
	default:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("database init")
		}
		if err := gormDB.AutoMigrate(&model.User{}, &model.Todo{}); err != nil {
			logger.Fatal().Err(err).Msg("auto-migrate")
		}
		todoRepo = repository.NewTodoRepository(gormDB)
		userRepo = repository.NewUserRepository(gormDB)
	}
	logger.Info().Str("driver", string(cfg.StoreDriver)).Msg("store driver resolved")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	todoService := service.NewTodoService(todoRepo, userRepo, cacheClient)
	userService := service.NewUserService(userRepo, hasher)
	statsService := service.NewStatsService(todoRepo, userRepo)

	todoHandler := handler.NewTodoHandler(todoService)
	userHandler := handler.NewUserHandler(userService)
	statsHandler := handler.NewStatsHandler(statsService)

	e := echo.New()
	router.Register(e, todoHandler, userHandler, statsHandler)

	addr := ":" + cfg.ServerPort
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server start")
	}
}
