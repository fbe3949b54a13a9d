package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/kaverin/task-system-api/internal/config"
	"github.com/kaverin/task-system-api/internal/platform/cache"
	"github.com/kaverin/task-system-api/internal/platform/postgres"
	"github.com/kaverin/task-system-api/internal/service"
	"github.com/kaverin/task-system-api/internal/service/auth"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// application holds the fully wired dependency graph: configuration,
// infrastructure clients, stores, and services. It is assembled once at
// startup and torn down in cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger

	db          *sql.DB
	redisClient *redis.Client

	authService    *auth.Service
	taskService    *service.TaskService
	commentService *service.CommentService
	tokenService   auth.TokenService
}

// newApplication wires the application from configuration: it opens the
// database and Redis connections, builds the stores and the cache-aside
// repository, and constructs the services on top.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisClient, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}

	userStore := postgres.NewUserStore(db, log)
	taskStore := postgres.NewTaskStore(db, log)
	commentStore := postgres.NewCommentStore(db, log)
	taskCache := cache.NewRedisTaskCache(redisClient, cfg.Redis, log)

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	taskRepo := service.NewTaskRepository(taskCache, taskStore, log)

	return &application{
		config:         cfg,
		logger:         log,
		db:             db,
		redisClient:    redisClient,
		authService:    auth.NewService(userStore, tokenService, auth.NewBcryptHasher(0)),
		taskService:    service.NewTaskService(taskRepo, taskStore, log),
		commentService: service.NewCommentService(commentStore, taskRepo, log),
		tokenService:   tokenService,
	}, nil
}

// cleanup closes the infrastructure connections.
func (app *application) cleanup() {
	if err := app.redisClient.Close(); err != nil {
		app.logger.Error("failed to close redis client", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
